// Package lawdoc implements C2: the YAML schema for article-based law
// documents and the loader that turns a YAML document into validated
// in-memory structures. Grounded on original_source's article.rs,
// re-expressed with gopkg.in/yaml.v3 in place of serde_yaml/serde —
// yaml.v3 has no equivalent of #[serde(untagged)], so the untagged
// enums (CompetentAuthority, Definition, ActionValue) get hand-written
// UnmarshalYAML methods that try each shape in turn.
package lawdoc

import "github.com/MinBZK/regelrecht-mvp-sub000/value"

// RegulatoryLayer names where in the Dutch regulatory hierarchy a law
// document sits.
type RegulatoryLayer string

const (
	Wet                      RegulatoryLayer = "WET"
	MinisterieleRegeling     RegulatoryLayer = "MINISTERIELE_REGELING"
	Amvb                     RegulatoryLayer = "AMVB"
	GemeentelijkeVerordening RegulatoryLayer = "GEMEENTELIJKE_VERORDENING"
	Beleidsregel             RegulatoryLayer = "BELEIDSREGEL"
)

// ParameterType names the declared type of a parameter or input field.
type ParameterType string

const (
	ParamString  ParameterType = "string"
	ParamNumber  ParameterType = "number"
	ParamBoolean ParameterType = "boolean"
	ParamDate    ParameterType = "date"
	ParamArray   ParameterType = "array"
	ParamObject  ParameterType = "object"
)

// TypeSpec carries optional type metadata for an input/output field.
type TypeSpec struct {
	Unit string `yaml:"unit,omitempty"`
}

// Produces describes the legal character of what an article's action
// output represents.
type Produces struct {
	LegalCharacter string `yaml:"legal_character,omitempty"`
	DecisionType   string `yaml:"decision_type,omitempty"`
}

// Parameter is a named, typed input to a law's top-level execution.
type Parameter struct {
	Name        string        `yaml:"name"`
	Type        ParameterType `yaml:"type"`
	Required    bool          `yaml:"required,omitempty"`
	Description string        `yaml:"description,omitempty"`
}

// Input is a named value an article's execution needs, optionally
// sourced from another law or a delegation.
type Input struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Source      *Source   `yaml:"source,omitempty"`
	TypeSpec    *TypeSpec `yaml:"type_spec,omitempty"`
	Description string    `yaml:"description,omitempty"`
}

// Output is a named value an article's execution produces.
type Output struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	TypeSpec    *TypeSpec `yaml:"type_spec,omitempty"`
	Description string    `yaml:"description,omitempty"`
}

// Source describes where an Input's value comes from: a direct
// cross-law reference, or a delegation lookup.
type Source struct {
	Regulation string                 `yaml:"regulation,omitempty"`
	Delegation *Delegation            `yaml:"delegation,omitempty"`
	Output     string                 `yaml:"output"`
	Parameters map[string]ActionValue `yaml:"parameters,omitempty"`
}

// Delegation points at the law/article that establishes a delegation,
// and the criteria used to pick among candidate regulations.
type Delegation struct {
	LawID     string             `yaml:"law_id"`
	Article   string             `yaml:"article"`
	SelectOn  []SelectOnCriteria `yaml:"select_on,omitempty"`
}

// SelectOnCriteria is one name/value match condition in a delegation.
type SelectOnCriteria struct {
	Name  string      `yaml:"name"`
	Value ActionValue `yaml:"value"`
}

// LegalBasis records that this law exercises authority granted by
// another (higher) law's article.
type LegalBasis struct {
	LawID       string `yaml:"law_id"`
	Article     string `yaml:"article"`
	Description string `yaml:"description,omitempty"`
}

// LegalBasisForContract declares the parameter/output shape a
// delegated regulation must honor.
type LegalBasisForContract struct {
	Parameters []Parameter `yaml:"parameters,omitempty"`
	Output     []Output    `yaml:"output,omitempty"`
}

// LegalBasisForDefaults supplies a synthetic article (definitions and
// actions) to fall back on when no delegated regulation exists.
type LegalBasisForDefaults struct {
	Definitions map[string]Definition `yaml:"definitions,omitempty"`
	Actions     []Action              `yaml:"actions,omitempty"`
}

// LegalBasisFor declares what a lower regulatory layer is authorized
// to provide under this article, and what applies if nothing does.
type LegalBasisFor struct {
	RegulatoryLayer RegulatoryLayer         `yaml:"regulatory_layer"`
	Subject         string                  `yaml:"subject"`
	Contract        *LegalBasisForContract  `yaml:"contract,omitempty"`
	Defaults        *LegalBasisForDefaults  `yaml:"defaults,omitempty"`
}

// Resolve describes how this article resolves a delegated value back
// from a lower regulation.
type Resolve struct {
	Type    string        `yaml:"type"`
	Output  string        `yaml:"output"`
	Match   *ResolveMatch `yaml:"match,omitempty"`
}

// ResolveMatch is the matching condition attached to a Resolve.
type ResolveMatch struct {
	Output string      `yaml:"output"`
	Value  ActionValue `yaml:"value"`
}

// SwitchCase is one branch of a SWITCH operation.
type SwitchCase struct {
	When ActionValue `yaml:"when"`
	Then ActionValue `yaml:"then"`
}

// ActionOperation is a nested operation appearing as an ActionValue.
// It carries the union of every field any of the 21 operations needs;
// only the fields the named Operation actually reads are populated in
// a well-formed document.
type ActionOperation struct {
	Operation  value.Operation `yaml:"operation"`
	Subject    *ActionValue    `yaml:"subject,omitempty"`
	Value      *ActionValue    `yaml:"value,omitempty"`
	Values     []ActionValue   `yaml:"values,omitempty"`
	When       *ActionValue    `yaml:"when,omitempty"`
	Then       *ActionValue    `yaml:"then,omitempty"`
	Else       *ActionValue    `yaml:"else,omitempty"`
	Conditions []ActionValue   `yaml:"conditions,omitempty"`
	Cases      []SwitchCase    `yaml:"cases,omitempty"`
	Default    *ActionValue    `yaml:"default,omitempty"`
	Unit       string          `yaml:"unit,omitempty"`
}

// Action is one step of an article's execution. Unlike ActionOperation,
// Action has no Cases/Default fields — SWITCH cannot appear directly as
// an action, only nested inside a value/subject field, mirroring the
// source schema's Action struct.
type Action struct {
	Output     string        `yaml:"output,omitempty"`
	Operation  value.Operation `yaml:"operation,omitempty"`
	Value      *ActionValue  `yaml:"value,omitempty"`
	Values     []ActionValue `yaml:"values,omitempty"`
	Subject    *ActionValue  `yaml:"subject,omitempty"`
	When       *ActionValue  `yaml:"when,omitempty"`
	Then       *ActionValue  `yaml:"then,omitempty"`
	Else       *ActionValue  `yaml:"else,omitempty"`
	Conditions []ActionValue `yaml:"conditions,omitempty"`
	Resolve    *Resolve      `yaml:"resolve,omitempty"`
}

// HasOperation reports whether this action names a top-level
// operation (as opposed to a direct literal/value assignment).
func (a Action) HasOperation() bool { return a.Operation != "" }

// Execution is the machine_readable.execution section of an article.
type Execution struct {
	Produces   *Produces   `yaml:"produces,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty"`
	Input      []Input     `yaml:"input,omitempty"`
	Output     []Output    `yaml:"output,omitempty"`
	Actions    []Action    `yaml:"actions,omitempty"`
}

// MachineReadable is the machine_readable section of an Article.
type MachineReadable struct {
	Definitions        map[string]Definition `yaml:"definitions,omitempty"`
	Execution          *Execution            `yaml:"execution,omitempty"`
	Requires           []string              `yaml:"requires,omitempty"`
	CompetentAuthority *CompetentAuthority   `yaml:"competent_authority,omitempty"`
	LegalBasisFor      []LegalBasisFor       `yaml:"legal_basis_for,omitempty"`
}
