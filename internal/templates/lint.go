package templates

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	sigsyaml "sigs.k8s.io/yaml"

	oerrors "github.com/svcgen/cli/internal/errors"
)

// manifestDir is where rendered Kubernetes manifests live.
const manifestDir = "deploy/kubernetes/"

// Lint checks that a rendered file parses as its type. Files of types with
// no linter pass unchecked.
func Lint(f RenderedFile) error {
	var err error
	switch ext := path.Ext(f.Path); {
	case strings.HasPrefix(f.Path, manifestDir) && (ext == ".yaml" || ext == ".yml"):
		err = lintManifest(f.Content)
	case ext == ".yaml" || ext == ".yml":
		err = lintYAML(f.Content)
	case ext == ".ini":
		_, err = ini.Load(f.Content)
	case ext == ".toml":
		var doc map[string]any
		err = toml.Unmarshal(f.Content, &doc)
	default:
		return nil
	}

	if err != nil {
		return &oerrors.TemplateError{
			Template: f.Path,
			Message:  "rendered output is not valid " + kindOf(f.Path),
			Cause:    err,
		}
	}
	return nil
}

// LintAll lints files in order and stops at the first failure.
func LintAll(files []RenderedFile) error {
	for _, f := range files {
		if err := Lint(f); err != nil {
			return err
		}
	}
	return nil
}

func lintYAML(content []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// lintManifest strictly decodes a manifest into its typed API object, so
// misspelled or misplaced fields fail.
func lintManifest(content []byte) error {
	var meta metav1.TypeMeta
	if err := sigsyaml.Unmarshal(content, &meta); err != nil {
		return err
	}

	var obj any
	switch meta.GroupVersionKind().String() {
	case appsv1.SchemeGroupVersion.WithKind("Deployment").String():
		obj = &appsv1.Deployment{}
	case corev1.SchemeGroupVersion.WithKind("Service").String():
		obj = &corev1.Service{}
	case corev1.SchemeGroupVersion.WithKind("ConfigMap").String():
		obj = &corev1.ConfigMap{}
	case corev1.SchemeGroupVersion.WithKind("Secret").String():
		obj = &corev1.Secret{}
	default:
		return fmt.Errorf("unsupported manifest kind %q (apiVersion %q)", meta.Kind, meta.APIVersion)
	}

	return sigsyaml.UnmarshalStrict(content, obj)
}

func kindOf(p string) string {
	switch {
	case strings.HasPrefix(p, manifestDir):
		return "Kubernetes manifest"
	case strings.HasSuffix(p, ".ini"):
		return "INI"
	case strings.HasSuffix(p, ".toml"):
		return "TOML"
	default:
		return "YAML"
	}
}
