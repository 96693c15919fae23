package lawdoc

// ArticleBasedLaw is a fully parsed law document.
type ArticleBasedLaw struct {
	Schema             string            `yaml:"$schema,omitempty"`
	ID                 string            `yaml:"$id"`
	UUID               string            `yaml:"uuid,omitempty"`
	RegulatoryLayer    RegulatoryLayer   `yaml:"regulatory_layer"`
	PublicationDate    string            `yaml:"publication_date"`
	ValidFrom          string            `yaml:"valid_from,omitempty"`
	Name               string            `yaml:"name,omitempty"`
	CompetentAuthority *CompetentAuthority `yaml:"competent_authority,omitempty"`
	BwbID              string            `yaml:"bwb_id,omitempty"`
	URL                string            `yaml:"url,omitempty"`
	Identifiers        map[string]string `yaml:"identifiers,omitempty"`
	GemeenteCode       string            `yaml:"gemeente_code,omitempty"`
	OfficieleTitel     string            `yaml:"officiele_titel,omitempty"`
	Jaar               int               `yaml:"jaar,omitempty"`
	LegalBasis         []LegalBasis      `yaml:"legal_basis,omitempty"`
	Articles           []Article         `yaml:"articles,omitempty"`
}

// FindArticleByOutput returns the first article whose execution
// declares the given output name.
func (l *ArticleBasedLaw) FindArticleByOutput(output string) (*Article, bool) {
	for i := range l.Articles {
		if l.Articles[i].HasOutput(output) {
			return &l.Articles[i], true
		}
	}
	return nil, false
}

// FindArticleByNumber returns the article with the given number.
func (l *ArticleBasedLaw) FindArticleByNumber(number string) (*Article, bool) {
	for i := range l.Articles {
		if l.Articles[i].Number == number {
			return &l.Articles[i], true
		}
	}
	return nil, false
}

// PublicOutputs returns every output name any article in this law
// publicly produces.
func (l *ArticleBasedLaw) PublicOutputs() []string {
	var names []string
	for _, a := range l.Articles {
		if a.IsPublic() {
			names = append(names, a.OutputNames()...)
		}
	}
	return names
}
