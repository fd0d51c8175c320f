package rankings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/loyalty-admin/rankings"
)

func TestTemplateDefaults(t *testing.T) {
	template := rankings.Template()

	draft := template.Empty()

	require.True(t, draft.Active)
	require.Empty(t, template.ID(draft))
}

func TestTemplateApplyCoercion(t *testing.T) {
	template := rankings.Template()
	draft := template.Empty()

	require.NoError(t, template.Apply(&draft, "name", "Gold"))
	require.NoError(t, template.Apply(&draft, "pointsThreshold", "1000"))
	require.NoError(t, template.Apply(&draft, "order", "junk"))

	require.Equal(t, "Gold", draft.Name)
	require.Equal(t, 1000, draft.PointsThreshold)
	require.Zero(t, draft.Order) // unparseable input coerces to 0
}
