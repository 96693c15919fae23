package lawdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLaw = `
$schema: https://schemas.regelrecht.nl/v0.3.0/article-law.json
$id: zorgtoeslagwet
regulatory_layer: WET
publication_date: "2023-01-01"
valid_from: "2023-01-01"
name: Zorgtoeslagwet
articles:
  - number: "2"
    text: Recht op zorgtoeslag
    url: https://wetten.overheid.nl/zvw
    machine_readable:
      definitions:
        drempel:
          value: 100
      execution:
        parameters:
          - name: inkomen
            type: number
        output:
          - name: heeft_recht_op_zorgtoeslag
            type: boolean
        actions:
          - output: heeft_recht_op_zorgtoeslag
            operation: GREATER_THAN
            subject:
              operation: ADD
              values:
                - 1
                - 2
            value: 1
`

func TestFromYAMLStringParsesLaw(t *testing.T) {
	law, err := FromYAMLString(sampleLaw)
	require.NoError(t, err)
	assert.Equal(t, "zorgtoeslagwet", law.ID)
	assert.Equal(t, Wet, law.RegulatoryLayer)
	require.Len(t, law.Articles, 1)

	art, ok := law.FindArticleByNumber("2")
	require.True(t, ok)
	assert.True(t, art.HasOutput("heeft_recht_op_zorgtoeslag"))
	assert.True(t, art.IsPublic())

	defs, ok := art.GetDefinitions()
	require.True(t, ok)
	i, _ := defs["drempel"].Value().AsInt()
	assert.Equal(t, int64(100), i)
}

func TestFromYAMLStringNestedActionOperation(t *testing.T) {
	law, err := FromYAMLString(sampleLaw)
	require.NoError(t, err)
	art, _ := law.FindArticleByNumber("2")
	exec, _ := art.GetExecutionSpec()
	require.Len(t, exec.Actions, 1)

	action := exec.Actions[0]
	assert.Equal(t, "heeft_recht_op_zorgtoeslag", action.Output)

	op, ok := action.Subject.AsOperation()
	require.True(t, ok)
	assert.Equal(t, "ADD", string(op.Operation))
	require.Len(t, op.Values, 2)

	lit, ok := action.Value.AsLiteral()
	require.True(t, ok)
	i, _ := lit.AsInt()
	assert.Equal(t, int64(1), i)
}

func TestFromYAMLStringRejectsOversized(t *testing.T) {
	huge := strings.Repeat("a", 2_000_000)
	_, err := FromYAMLString(huge)
	assert.Error(t, err)
}

func TestFromYAMLStringRejectsUnknownOperation(t *testing.T) {
	bad := `
$id: test
regulatory_layer: WET
publication_date: "2023-01-01"
articles:
  - number: "1"
    text: x
    machine_readable:
      execution:
        output:
          - name: foo
            type: boolean
        actions:
          - output: foo
            operation: FROBNICATE
`
	_, err := FromYAMLString(bad)
	assert.Error(t, err)
}

func TestFromYAMLStringRejectsUnsupportedSchemaVersion(t *testing.T) {
	bad := `
$schema: https://schemas.regelrecht.nl/v9.9.9/article-law.json
$id: test
regulatory_layer: WET
publication_date: "2023-01-01"
`
	_, err := FromYAMLString(bad)
	assert.Error(t, err)
}

func TestRefAliasForURL(t *testing.T) {
	doc := `
$id: test
regulatory_layer: WET
publication_date: "2023-01-01"
articles:
  - number: "1"
    text: x
    ref: https://example.com/law
`
	law, err := FromYAMLString(doc)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/law", law.Articles[0].URL)
}

func TestCompetentAuthorityBothShapes(t *testing.T) {
	doc := `
$id: test
regulatory_layer: WET
publication_date: "2023-01-01"
competent_authority: "#bevoegd_gezag"
articles: []
`
	law, err := FromYAMLString(doc)
	require.NoError(t, err)
	s, ok := law.CompetentAuthority.AsString()
	assert.True(t, ok)
	assert.Equal(t, "#bevoegd_gezag", s)

	doc2 := `
$id: test
regulatory_layer: WET
publication_date: "2023-01-01"
competent_authority:
  name: Belastingdienst
articles: []
`
	law2, err := FromYAMLString(doc2)
	require.NoError(t, err)
	_, ok = law2.CompetentAuthority.AsString()
	assert.False(t, ok)
	assert.Equal(t, "Belastingdienst", law2.CompetentAuthority.Name)
}
