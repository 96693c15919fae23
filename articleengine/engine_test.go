package articleengine

import (
	"testing"

	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taxLaw = `
$id: test
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '1'
    text: Calculation article
    machine_readable:
      definitions:
        TAX_RATE:
          value: 0.21
        BASE_DEDUCTION:
          value: 1000
      execution:
        parameters:
          - name: income
            type: number
            required: true
        output:
          - name: taxable_income
            type: number
          - name: tax_amount
            type: number
        actions:
          - output: taxable_income
            operation: MAX
            values:
              - 0
              - operation: SUBTRACT
                values:
                  - $income
                  - $BASE_DEDUCTION
          - output: tax_amount
            operation: MULTIPLY
            values:
              - $taxable_income
              - $TAX_RATE
`

func loadTaxLaw(t *testing.T) (*lawdoc.ArticleBasedLaw, *lawdoc.Article) {
	t.Helper()
	law, err := lawdoc.FromYAMLString(taxLaw)
	require.NoError(t, err)
	art, ok := law.FindArticleByNumber("1")
	require.True(t, ok)
	return law, art
}

func TestEvaluateComputesBothOutputs(t *testing.T) {
	law, art := loadTaxLaw(t)
	eng := New(art, law)

	result, err := eng.Evaluate(map[string]value.Value{"income": value.Float(5000)}, "2025-01-01", nil)
	require.NoError(t, err)

	taxable, _ := result.Outputs["taxable_income"].AsFloat()
	assert.Equal(t, 4000.0, taxable)

	tax, _ := result.Outputs["tax_amount"].AsFloat()
	assert.InDelta(t, 840.0, tax, 0.0001)

	assert.Equal(t, "1", result.ArticleNumber)
	assert.Equal(t, "test", result.LawID)
}

func TestEvaluateOutputFiltersToRequestedAction(t *testing.T) {
	law, art := loadTaxLaw(t)
	eng := New(art, law)

	result, err := eng.EvaluateOutput(map[string]value.Value{"income": value.Float(5000)}, "2025-01-01", "taxable_income", nil)
	require.NoError(t, err)

	_, hasTaxable := result.Outputs["taxable_income"]
	_, hasTax := result.Outputs["tax_amount"]
	assert.True(t, hasTaxable)
	assert.False(t, hasTax)
}

func TestEvaluateRejectsBadDate(t *testing.T) {
	law, art := loadTaxLaw(t)
	eng := New(art, law)
	_, err := eng.Evaluate(map[string]value.Value{"income": value.Int(1)}, "not-a-date", nil)
	assert.Error(t, err)
}

const switchLaw = `
$id: test
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        output:
          - name: bracket
            type: string
        actions:
          - output: bracket
            value:
              operation: SWITCH
              cases:
                - when:
                    operation: LESS_THAN
                    subject: $income
                    value: 1000
                  then: low
              default: high
`

func TestSwitchMustBeNestedUnderValue(t *testing.T) {
	law, err := lawdoc.FromYAMLString(switchLaw)
	require.NoError(t, err)
	art, _ := law.FindArticleByNumber("1")
	eng := New(art, law)

	result, err := eng.Evaluate(map[string]value.Value{"income": value.Int(2000)}, "2025-01-01", nil)
	require.NoError(t, err)
	s, _ := result.Outputs["bracket"].AsString()
	assert.Equal(t, "high", s)
}
