package templates

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// funcs are the quoting helpers available to catalog sources. User text
// placed in Python, TOML, YAML or dotenv files goes through one of them.
var funcs = template.FuncMap{
	"pystr":   pyString,
	"tomlstr": tomlString,
	"yamlstr": yamlString,
	"envstr":  envString,
}

// pyString returns s as a double-quoted Python string literal.
func pyString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			writeRune(&b, r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// tomlString returns s as a TOML basic string. TOML has no \x escape, so
// control characters are written as \uXXXX.
func tomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			writeRune(&b, r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// yamlString returns s as a double-quoted YAML scalar. Every escape Go's
// quoting emits (\a, \x, \u, \U and friends) is also a YAML escape.
func yamlString(s string) string {
	return strconv.Quote(s)
}

// envString returns s double-quoted for a dotenv file. Only backslash and
// quote are escaped; python-dotenv does not decode \u sequences.
func envString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// writeRune writes r, escaping control characters as \uXXXX, which both
// Python and TOML accept.
func writeRune(b *strings.Builder, r rune) {
	if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
		fmt.Fprintf(b, `\u%04X`, r)
		return
	}
	b.WriteRune(r)
}
