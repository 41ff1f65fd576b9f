package identity

// pythonKeywords are the hard keywords of Python 3.
var pythonKeywords = map[string]bool{
	"false": true, "none": true, "true": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// stdlibModules are top-level standard library modules a generated package
// must not shadow.
var stdlibModules = map[string]bool{
	"abc": true, "argparse": true, "array": true, "ast": true, "asyncio": true,
	"base64": true, "bisect": true, "builtins": true, "calendar": true,
	"cmd": true, "code": true, "codecs": true, "collections": true,
	"concurrent": true, "config": true, "contextlib": true, "copy": true,
	"csv": true, "ctypes": true, "dataclasses": true, "datetime": true,
	"decimal": true, "difflib": true, "dis": true, "email": true,
	"encodings": true, "enum": true, "errno": true, "fnmatch": true,
	"fractions": true, "functools": true, "gc": true, "getpass": true,
	"glob": true, "gzip": true, "hashlib": true, "heapq": true, "hmac": true,
	"html": true, "http": true, "imaplib": true, "importlib": true,
	"inspect": true, "io": true, "ipaddress": true, "itertools": true,
	"json": true, "keyword": true, "locale": true, "logging": true,
	"math": true, "mimetypes": true, "multiprocessing": true, "numbers": true,
	"operator": true, "os": true, "pathlib": true, "pickle": true,
	"platform": true, "pprint": true, "queue": true, "random": true, "re": true,
	"secrets": true, "select": true, "selectors": true, "shlex": true,
	"shutil": true, "signal": true, "site": true, "smtplib": true,
	"socket": true, "sqlite3": true, "ssl": true, "stat": true,
	"statistics": true, "string": true, "struct": true, "subprocess": true,
	"sys": true, "tempfile": true, "test": true, "textwrap": true,
	"threading": true, "time": true, "timeit": true, "token": true,
	"tokenize": true, "trace": true, "traceback": true, "types": true,
	"typing": true, "unittest": true, "urllib": true, "uuid": true,
	"venv": true, "warnings": true, "weakref": true, "xml": true,
	"zipfile": true, "zlib": true,
}

// dependencies are the distributions the generated project installs, by
// import name.
var dependencies = map[string]bool{
	"alembic": true, "black": true, "celery": true, "email_validator": true,
	"fastapi": true, "flake8": true, "httpx": true, "isort": true,
	"jose": true, "loguru": true, "mypy": true, "passlib": true,
	"psycopg2": true, "pydantic": true, "pydantic_settings": true,
	"pytest": true, "redis": true, "sqlalchemy": true, "starlette": true,
	"tests": true, "uvicorn": true, "dotenv": true, "multipart": true,
}

// Reserved reports whether pkg is a name the generated package cannot take,
// and what it would collide with.
func Reserved(pkg string) (string, bool) {
	switch {
	case pythonKeywords[pkg]:
		return "a Python keyword", true
	case stdlibModules[pkg]:
		return "a Python standard library module", true
	case dependencies[pkg]:
		return "a package the generated project depends on", true
	default:
		return "", false
	}
}
