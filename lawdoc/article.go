package lawdoc

// Article is a single numbered article within a law.
type Article struct {
	Number          string           `yaml:"number"`
	Text            string           `yaml:"text"`
	URL             string           `yaml:"url,omitempty"`
	MachineReadable *MachineReadable `yaml:"machine_readable,omitempty"`
}

// UnmarshalYAML accepts "ref" as an alias for "url", for documents
// written against the older field name.
func (a *Article) UnmarshalYAML(unmarshal func(any) error) error {
	type plain struct {
		Number          string           `yaml:"number"`
		Text            string           `yaml:"text"`
		URL             string           `yaml:"url,omitempty"`
		Ref             string           `yaml:"ref,omitempty"`
		MachineReadable *MachineReadable `yaml:"machine_readable,omitempty"`
	}
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	a.Number = p.Number
	a.Text = p.Text
	a.URL = p.URL
	if a.URL == "" {
		a.URL = p.Ref
	}
	a.MachineReadable = p.MachineReadable
	return nil
}

// GetExecutionSpec returns this article's execution block, if any.
func (a Article) GetExecutionSpec() (*Execution, bool) {
	if a.MachineReadable == nil || a.MachineReadable.Execution == nil {
		return nil, false
	}
	return a.MachineReadable.Execution, true
}

// GetDefinitions returns this article's definitions map, if any.
func (a Article) GetDefinitions() (map[string]Definition, bool) {
	if a.MachineReadable == nil || a.MachineReadable.Definitions == nil {
		return nil, false
	}
	return a.MachineReadable.Definitions, true
}

// GetRequires returns the list of URI dependencies this article
// declares.
func (a Article) GetRequires() []string {
	if a.MachineReadable == nil {
		return nil
	}
	return a.MachineReadable.Requires
}

// HasOutput reports whether this article's execution declares the
// given output name, without allocating an intermediate slice.
func (a Article) HasOutput(name string) bool {
	exec, ok := a.GetExecutionSpec()
	if !ok {
		return false
	}
	for _, o := range exec.Output {
		if o.Name == name {
			return true
		}
	}
	return false
}

// OutputNames returns every output name this article's execution
// declares.
func (a Article) OutputNames() []string {
	exec, ok := a.GetExecutionSpec()
	if !ok {
		return nil
	}
	names := make([]string, len(exec.Output))
	for i, o := range exec.Output {
		names[i] = o.Name
	}
	return names
}

// IsPublic reports whether this article is callable as a standalone
// output (i.e. declares at least one output).
func (a Article) IsPublic() bool {
	exec, ok := a.GetExecutionSpec()
	return ok && len(exec.Output) > 0
}

// GetCompetentAuthority returns this article's competent_authority
// override, if any.
func (a Article) GetCompetentAuthority() (*CompetentAuthority, bool) {
	if a.MachineReadable == nil || a.MachineReadable.CompetentAuthority == nil {
		return nil, false
	}
	return a.MachineReadable.CompetentAuthority, true
}

// GetLegalBasisFor returns what this article authorizes lower layers
// to provide, if anything.
func (a Article) GetLegalBasisFor() ([]LegalBasisFor, bool) {
	if a.MachineReadable == nil || a.MachineReadable.LegalBasisFor == nil {
		return nil, false
	}
	return a.MachineReadable.LegalBasisFor, true
}
