package lawdoc

import (
	"os"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/MinBZK/regelrecht-mvp-sub000/constants"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"gopkg.in/yaml.v3"
)

var schemaConstraint = mustConstraint(">= 0.3.0, < 0.4.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// FromYAMLFile loads a law from a YAML file on disk. Errors never
// expose the path — only a generic load failure.
func FromYAMLFile(path string) (*ArticleBasedLaw, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, rrerr.ErrLoad("failed to access law file")
	}
	if info.Size() > constants.MaxDocumentBytes {
		return nil, rrerr.ErrLoad("file exceeds maximum size limit (%d bytes)", constants.MaxDocumentBytes)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, rrerr.ErrLoad("failed to read law file")
	}
	return FromYAMLString(string(content))
}

// FromYAMLString parses a law from a YAML document already held in
// memory, enforcing the same size and structural bounds as
// FromYAMLFile.
func FromYAMLString(content string) (*ArticleBasedLaw, error) {
	if len(content) > constants.MaxDocumentBytes {
		return nil, rrerr.ErrLoad("YAML content exceeds maximum size limit (%d bytes)", constants.MaxDocumentBytes)
	}

	var law ArticleBasedLaw
	if err := yaml.Unmarshal([]byte(content), &law); err != nil {
		return nil, rrerr.ErrYaml(err)
	}

	if err := law.validateArraySizes(); err != nil {
		return nil, err
	}
	if err := law.validateSchemaVersion(); err != nil {
		return nil, err
	}
	return &law, nil
}

func (l *ArticleBasedLaw) validateArraySizes() error {
	if len(l.Articles) > constants.MaxArticles {
		return rrerr.ErrLoad("too many articles (%d, max %d)", len(l.Articles), constants.MaxArticles)
	}
	for _, a := range l.Articles {
		exec, ok := a.GetExecutionSpec()
		if !ok {
			continue
		}
		if len(exec.Parameters) > constants.MaxArticleArray ||
			len(exec.Input) > constants.MaxArticleArray ||
			len(exec.Output) > constants.MaxArticleArray ||
			len(exec.Actions) > constants.MaxArticleArray {
			return rrerr.ErrLoad("article %q exceeds maximum field array size (%d)", a.Number, constants.MaxArticleArray)
		}
		for _, act := range exec.Actions {
			if len(act.Values) > constants.MaxArticleArray || len(act.Conditions) > constants.MaxArticleArray {
				return rrerr.ErrLoad("article %q action exceeds maximum values/conditions size (%d)", a.Number, constants.MaxArticleArray)
			}
		}
	}
	return nil
}

// validateSchemaVersion rejects documents whose $schema declares a
// version outside the supported v0.3.x range. A document with no
// $schema field is accepted for backward compatibility.
func (l *ArticleBasedLaw) validateSchemaVersion() error {
	if l.Schema == "" {
		return nil
	}
	match := versionPattern.FindString(l.Schema)
	if match == "" {
		return rrerr.ErrLoad("unrecognized $schema version")
	}
	v, err := semver.NewVersion(match)
	if err != nil {
		return rrerr.ErrLoad("unrecognized $schema version")
	}
	if !schemaConstraint.Check(v) {
		return rrerr.ErrLoad("unsupported $schema version")
	}
	return nil
}
