// Package identity derives the identifiers a generated project is named by.
//
// Every identifier is a pure function of the display name: the same name
// always yields the same slug, package name, title, image name and project ID.
package identity

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"k8s.io/apimachinery/pkg/util/validation"

	oerrors "github.com/svcgen/cli/internal/errors"
)

// Namespace is the UUID v5 namespace project IDs are computed in.
var Namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("svcgen.dev"))

// Identifiers holds every name derived from a project display name.
type Identifiers struct {
	// DisplayName is the input with surrounding whitespace removed.
	DisplayName string

	// Slug is the lowercase, hyphen-separated directory and container name.
	Slug string

	// PackageName is the lowercase, underscore-separated Python package name.
	PackageName string

	// Title is the display name in title case with collapsed whitespace.
	Title string

	// ImageName is the container image repository name.
	ImageName string

	// ProjectID is a deterministic UUID v5 of the slug.
	ProjectID string
}

// Derive computes the identifiers for displayName.
func Derive(displayName string) (Identifiers, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return Identifiers{}, oerrors.NewConfigurationError(oerrors.StageDerivation,
			"project name is empty", "name",
			`Pass a project name, e.g. svcgen new "Todo API"`)
	}

	folded := fold(name)
	slug := Slugify(folded)
	pkg := PackageName(folded)

	if slug == "" || pkg == "" {
		return Identifiers{}, oerrors.NewConfigurationError(oerrors.StageDerivation,
			"project name "+quote(name)+" contains no letters or digits", "name",
			"Use a name with at least one letter or digit")
	}

	if reason, reserved := Reserved(pkg); reserved {
		return Identifiers{}, oerrors.NewConfigurationError(oerrors.StageDerivation,
			"package name "+quote(pkg)+" would shadow "+reason, "name",
			"Choose a more specific name, e.g. "+quote(name+" service"))
	}

	if errs := validation.IsDNS1123Label(slug); len(errs) > 0 {
		return Identifiers{}, oerrors.NewConfigurationError(oerrors.StageDerivation,
			"slug "+quote(slug)+" is not a valid container name: "+strings.Join(errs, "; "), "name",
			"Use a shorter project name")
	}

	return Identifiers{
		DisplayName: name,
		Slug:        slug,
		PackageName: pkg,
		Title:       Title(name),
		ImageName:   slug,
		ProjectID:   uuid.NewSHA1(Namespace, []byte(slug)).String(),
	}, nil
}

// Slugify lowercases s and replaces runs of characters outside [a-z0-9]
// with a single hyphen.
func Slugify(s string) string {
	return collapse(fold(s), '-')
}

// PackageName lowercases s and replaces runs of characters outside [a-z0-9]
// with a single underscore. A leading digit gets an underscore prefix.
func PackageName(s string) string {
	pkg := collapse(fold(s), '_')
	if pkg != "" && pkg[0] >= '0' && pkg[0] <= '9' {
		pkg = "_" + pkg
	}
	return pkg
}

// Title collapses whitespace in s and title-cases each word. Words that
// already contain an upper-case letter are kept as written.
func Title(s string) string {
	caser := cases.Title(language.English)
	words := strings.Fields(s)
	for i, w := range words {
		if strings.IndexFunc(w, unicode.IsUpper) >= 0 {
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// fold decomposes s and strips combining marks, so "Café" becomes "Cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func collapse(s string, sep byte) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

func quote(s string) string {
	return `"` + s + `"`
}
