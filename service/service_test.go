package service

import (
	"context"
	"testing"

	"github.com/MinBZK/regelrecht-mvp-sub000/datasource"
	"github.com/MinBZK/regelrecht-mvp-sub000/registry"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const incomeLaw = `
$id: incomewet
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        input:
          - name: salary
            type: number
        output:
          - name: gross_income
            type: number
        actions:
          - output: gross_income
            value: $salary
`

const toeslagLaw = `
$id: toeslagwet
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        parameters:
          - name: bsn
            type: string
            required: true
        input:
          - name: gross_income
            type: number
            source:
              regulation: incomewet
              output: gross_income
              parameters:
                salary: $bsn_salary
        output:
          - name: entitlement
            type: number
        actions:
          - output: entitlement
            operation: SUBTRACT
            values:
              - 2000
              - $gross_income
`

// cyclicLawA and cyclicLawB reference each other's output, forming a
// two-hop cycle that must surface as CircularReference rather than
// recursing until the depth limit.
const cyclicLawA = `
$id: cyclic_a
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        input:
          - name: from_b
            type: number
            source:
              regulation: cyclic_b
              output: value_b
        output:
          - name: value_a
            type: number
        actions:
          - output: value_a
            value: $from_b
`

const cyclicLawB = `
$id: cyclic_b
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        input:
          - name: from_a
            type: number
            source:
              regulation: cyclic_a
              output: value_a
        output:
          - name: value_b
            type: number
        actions:
          - output: value_b
            value: $from_a
`

const delegatingLaw = `
$id: participatiewet
regulatory_layer: WET
publication_date: '2025-01-01'
articles:
  - number: '8'
    text: grants municipalities authority to set the norm amount
    machine_readable:
      legal_basis_for:
        - regulatory_layer: GEMEENTELIJKE_VERORDENING
          subject: norm_amount
          defaults:
            actions:
              - output: norm_amount
                value: 1200
  - number: '1'
    text: x
    machine_readable:
      execution:
        parameters:
          - name: gemeente_code
            type: string
            required: true
        input:
          - name: norm_amount
            type: number
            source:
              delegation:
                law_id: participatiewet
                article: '8'
                select_on:
                  - name: gemeente_code
                    value: $gemeente_code
              output: norm_amount
        output:
          - name: uitkering
            type: number
        actions:
          - output: uitkering
            value: $norm_amount
`

const verordeningAmsterdam = `
$id: verordening_ams
regulatory_layer: GEMEENTELIJKE_VERORDENING
publication_date: '2025-01-01'
gemeente_code: GM0363
legal_basis:
  - law_id: participatiewet
    article: '8'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        output:
          - name: norm_amount
            type: number
        actions:
          - output: norm_amount
            value: 1500
`

const versionedLaw2024 = `
$id: versioned
regulatory_layer: WET
publication_date: '2024-01-01'
valid_from: '2024-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        output:
          - name: rate
            type: number
        actions:
          - output: rate
            value: 10
`

const versionedLaw2025 = `
$id: versioned
regulatory_layer: WET
publication_date: '2025-01-01'
valid_from: '2025-01-01'
articles:
  - number: '1'
    text: x
    machine_readable:
      execution:
        output:
          - name: rate
            type: number
        actions:
          - output: rate
            value: 20
`

func newTestService(t *testing.T, yamlDocs ...string) *Service {
	t.Helper()
	reg := registry.New()
	svc := New(reg)
	for _, doc := range yamlDocs {
		_, err := svc.LoadLaw(doc)
		require.NoError(t, err)
	}
	return svc
}

func TestEvaluateLawOutputDirectParameter(t *testing.T) {
	svc := newTestService(t, incomeLaw)
	result, err := svc.EvaluateLawOutput(context.Background(), "incomewet", "gross_income",
		map[string]value.Value{"salary": value.Int(3000)}, "2025-06-01")
	require.NoError(t, err)
	i, _ := result.Outputs["gross_income"].AsInt()
	assert.Equal(t, int64(3000), i)
}

func TestEvaluateLawOutputResolvesCrossLawRegulation(t *testing.T) {
	svc := newTestService(t, incomeLaw, toeslagLaw)
	result, err := svc.EvaluateLawOutput(context.Background(), "toeslagwet", "entitlement",
		map[string]value.Value{"bsn": value.String("123"), "bsn_salary": value.Int(1800)}, "2025-06-01")
	require.NoError(t, err)
	i, _ := result.Outputs["entitlement"].AsInt()
	assert.Equal(t, int64(200), i)
	gross, ok := result.ResolvedInputs["gross_income"]
	require.True(t, ok)
	g, _ := gross.AsInt()
	assert.Equal(t, int64(1800), g)
}

func TestEvaluateLawOutputDetectsCircularReference(t *testing.T) {
	svc := newTestService(t, cyclicLawA, cyclicLawB)
	_, err := svc.EvaluateLawOutput(context.Background(), "cyclic_a", "value_a", map[string]value.Value{}, "2025-06-01")
	require.Error(t, err)
}

func TestEvaluateLawOutputResolvesDelegationMatch(t *testing.T) {
	svc := newTestService(t, delegatingLaw, verordeningAmsterdam)
	result, err := svc.EvaluateLawOutput(context.Background(), "participatiewet", "uitkering",
		map[string]value.Value{"gemeente_code": value.String("GM0363")}, "2025-06-01")
	require.NoError(t, err)
	i, _ := result.Outputs["uitkering"].AsInt()
	assert.Equal(t, int64(1500), i)
}

func TestEvaluateLawOutputFallsBackToLegalBasisDefaults(t *testing.T) {
	svc := newTestService(t, delegatingLaw)
	result, err := svc.EvaluateLawOutput(context.Background(), "participatiewet", "uitkering",
		map[string]value.Value{"gemeente_code": value.String("GM9999")}, "2025-06-01")
	require.NoError(t, err)
	i, _ := result.Outputs["uitkering"].AsInt()
	assert.Equal(t, int64(1200), i)
}

func TestEvaluateLawOutputVersionSelection(t *testing.T) {
	svc := newTestService(t, versionedLaw2024, versionedLaw2025)

	result, err := svc.EvaluateLawOutput(context.Background(), "versioned", "rate", map[string]value.Value{}, "2024-06-01")
	require.NoError(t, err)
	r, _ := result.Outputs["rate"].AsInt()
	assert.Equal(t, int64(10), r)

	result, err = svc.EvaluateLawOutput(context.Background(), "versioned", "rate", map[string]value.Value{}, "2025-06-01")
	require.NoError(t, err)
	r, _ = result.Outputs["rate"].AsInt()
	assert.Equal(t, int64(20), r)

	_, err = svc.EvaluateLawOutput(context.Background(), "versioned", "rate", map[string]value.Value{}, "2023-01-01")
	assert.Error(t, err)
}

func TestEvaluateLawOutputUnknownLaw(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.EvaluateLawOutput(context.Background(), "nonexistent", "x", map[string]value.Value{}, "2025-06-01")
	assert.Error(t, err)
}

func TestEvaluateLawOutputDataSourceFallback(t *testing.T) {
	svc := newTestService(t, incomeLaw)
	svc.DataSources().AddSource(datasource.NewDictSource("salaries", 10, map[string]map[string]value.Value{
		"": {"salary": value.Int(4500)},
	}))
	result, err := svc.EvaluateLawOutput(context.Background(), "incomewet", "gross_income", map[string]value.Value{}, "2025-06-01")
	require.NoError(t, err)
	i, _ := result.Outputs["gross_income"].AsInt()
	assert.Equal(t, int64(4500), i)
}

func TestEvaluateLawOutputMemoizesRepeatedCalls(t *testing.T) {
	svc := newTestService(t, incomeLaw, toeslagLaw)
	result, err := svc.EvaluateLawOutput(context.Background(), "toeslagwet", "entitlement",
		map[string]value.Value{"bsn": value.String("123"), "bsn_salary": value.Int(1000)}, "2025-06-01")
	require.NoError(t, err)
	i, _ := result.Outputs["entitlement"].AsInt()
	assert.Equal(t, int64(1000), i)
}
