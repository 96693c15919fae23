package host

import (
	"context"
	"testing"

	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLaw = `
$id: incomewet
regulatory_layer: WET
publication_date: '2025-01-01'
bwb_id: BWBR0000001
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

func TestHostLoadExecuteLifecycle(t *testing.T) {
	h := New()
	id, err := h.LoadLaw(sampleLaw)
	require.NoError(t, err)
	assert.Equal(t, "incomewet", id)
	assert.True(t, h.HasLaw(id))
	assert.Equal(t, []string{"incomewet"}, h.ListLaws())
	assert.Equal(t, 1, h.LawCount())

	info, ok := h.GetLawInfo(id)
	require.True(t, ok)
	assert.Equal(t, "WET", info.RegulatoryLayer)
	assert.Equal(t, "BWBR0000001", info.BwbID)
	assert.Equal(t, 1, info.ArticleCount)

	result, err := h.Execute(context.Background(), id, "gross_income", map[string]value.Value{"salary": value.Int(2500)}, "2025-06-01")
	require.NoError(t, err)
	got, _ := result.Outputs["gross_income"].AsInt()
	assert.Equal(t, int64(2500), got)

	assert.True(t, h.UnloadLaw(id))
	assert.False(t, h.HasLaw(id))
}

func TestHostLoadLawRejectsDuplicate(t *testing.T) {
	h := New()
	_, err := h.LoadLaw(sampleLaw)
	require.NoError(t, err)

	_, err = h.LoadLaw(sampleLaw)
	assert.Error(t, err)
}

func TestHostVersionReportsIdentity(t *testing.T) {
	h := New()
	assert.Contains(t, h.Version(), "regelrecht-engine")
}
