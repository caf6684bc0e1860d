package vissim

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksGeoJSON(t *testing.T) {
	doc := loadNetwork(t)
	b, err := NewLinks(doc).GeoJSON()
	require.NoError(t, err)

	collection, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, collection.Features, 7)

	second := collection.Features[1]
	require.True(t, second.Geometry.IsLineString())
	assert.Equal(t, 2.0, second.Properties["no"])
	assert.Equal(t, "Main", second.Properties["name"])
	assert.Equal(t, 2.0, second.Properties["lanes"])
	assert.InDelta(t, 100.0, second.Properties["length"], 1e-9)

	first := collection.Features[0].Geometry.LineString
	require.Len(t, first, 2)
	assert.InDelta(t, 0.0, first[0][0], 1e-9)
	assert.InDelta(t, 0.0, first[0][1], 1e-9)
	assert.Greater(t, first[1][0], 0.0)
}
