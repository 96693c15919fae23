package rulectx

import (
	"testing"
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkCtx() *RuleContext {
	date, _ := ParseCalculationDate("2024-03-15")
	return New(map[string]value.Value{"bsn": value.String("123456789")}, date)
}

func TestResolutionOrder(t *testing.T) {
	c := mkCtx()
	c.definitions["bsn"] = value.String("from-definitions")
	c.resolved["bsn"] = value.String("from-resolved")
	c.SetOutput("bsn", value.String("from-outputs"))
	c.SetLocal("bsn", value.String("from-local"))

	v, err := c.Resolve("bsn")
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "from-local", s)
}

func TestResolutionFallsThroughToParameters(t *testing.T) {
	c := mkCtx()
	v, err := c.Resolve("bsn")
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "123456789", s)
}

func TestResolveUnknownFails(t *testing.T) {
	c := mkCtx()
	_, err := c.Resolve("unknown")
	assert.Error(t, err)
}

func TestReferenceDateVirtualProperties(t *testing.T) {
	c := mkCtx()
	y, err := c.Resolve("referencedate.year")
	require.NoError(t, err)
	i, _ := y.AsInt()
	assert.Equal(t, int64(2024), i)

	m, err := c.Resolve("referencedate.month")
	require.NoError(t, err)
	i, _ = m.AsInt()
	assert.Equal(t, int64(3), i)
}

func TestDottedObjectNavigation(t *testing.T) {
	c := mkCtx()
	c.parameters["person"] = value.Object(map[string]value.Value{
		"address": value.Object(map[string]value.Value{
			"city": value.String("Utrecht"),
		}),
	})
	v, err := c.Resolve("person.address.city")
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "Utrecht", s)
}

func TestNavigateOnNonObjectFails(t *testing.T) {
	c := mkCtx()
	_, err := c.Resolve("bsn.nested")
	assert.Error(t, err)
}

func TestChildClearsLocalButInheritsRest(t *testing.T) {
	c := mkCtx()
	c.SetLocal("loopvar", value.Int(1))
	c.SetOutput("computed", value.Int(42))

	child := c.Child()
	_, err := child.Resolve("loopvar")
	assert.Error(t, err)

	v, err := child.Resolve("computed")
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(42), i)

	child.SetOutput("fromchild", value.Int(7))
	v, err = c.Resolve("fromchild")
	require.NoError(t, err)
	i, _ = v.AsInt()
	assert.Equal(t, int64(7), i, "outputs map is shared by reference between parent and child")
}

func TestParseCalculationDateRejectsGarbage(t *testing.T) {
	_, err := ParseCalculationDate("not-a-date")
	assert.Error(t, err)
}

func TestParseCalculationDateAccepted(t *testing.T) {
	d, err := ParseCalculationDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)
}
