package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	before := testutil.ToFloat64(BookmarkOperations.WithLabelValues("create", "success"))
	BookmarkOperations.WithLabelValues("create", "success").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(BookmarkOperations.WithLabelValues("create", "success")), 0.0001)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["bookmarks_bookmark_operations_total"])
	assert.True(t, names["go_goroutines"])
}
