package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/travellermap/altroute/metrics"
)

func TestCollector_Counts(t *testing.T) {
	c := metrics.NewCollector("altroute")

	c.TreeBuilt("reference", 3)
	c.TreeRepaired("reference", 2, 5)
	c.BoundQuery("unified", 10)
	c.LandmarkPicked("triaxial", 4)
	c.SearchDone("found", time.Millisecond)

	require.Equal(t, 3.0, testutil.ToFloat64(c.TreesBuilt.WithLabelValues("reference")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.TreesRepaired.WithLabelValues("reference")))
	require.Equal(t, 5.0, testutil.ToFloat64(c.EdgesUpdated))
	require.Equal(t, 10.0, testutil.ToFloat64(c.BoundQueries.WithLabelValues("unified")))
	require.Equal(t, 4.0, testutil.ToFloat64(c.LandmarksPicked.WithLabelValues("triaxial")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.Searches.WithLabelValues("found")))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *metrics.Collector

	require.NotPanics(t, func() {
		c.TreeBuilt("reference", 1)
		c.TreeRepaired("reference", 1, 1)
		c.BoundQuery("reference", 1)
		c.LandmarkPicked("wtn", 1)
		c.SearchDone("found", time.Second)
	})
	require.Nil(t, c.Registry())

	var sb strings.Builder
	require.NoError(t, c.WriteText(&sb))
	require.Empty(t, sb.String())
}

func TestCollector_WriteText(t *testing.T) {
	c := metrics.NewCollector("altroute")
	c.TreeBuilt("unified", 2)

	var sb strings.Builder
	require.NoError(t, c.WriteText(&sb))
	require.Contains(t, sb.String(), `altroute_forest_trees_built_total{backend="unified"} 2`)
	require.Contains(t, sb.String(), "# HELP altroute_forest_trees_built_total")
}
