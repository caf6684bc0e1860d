package vissim

import (
	"context"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportOSM(t *testing.T) {
	doc := loadNetwork(t)
	links := NewLinks(doc)

	imported, err := links.ImportOSM(context.Background(), "./testdata/sample.osm", nil)
	require.NoError(t, err)
	assert.Equal(t, []ImportedLink{
		{WayID: osm.WayID(100), Direction: DIRECTION_FORWARD, LinkNo: 10003},
		{WayID: osm.WayID(101), Direction: DIRECTION_FORWARD, LinkNo: 10004},
		{WayID: osm.WayID(101), Direction: DIRECTION_BACKWARD, LinkNo: 10005},
		{WayID: osm.WayID(103), Direction: DIRECTION_BACKWARD, LinkNo: 10006},
	}, imported)

	attrs, err := links.GetLink(10003)
	require.NoError(t, err)
	assert.Equal(t, "Tverskaya", attrs["name"])
	assert.Equal(t, "80.0", attrs["mesoSpeed"])
	widths, err := links.LaneWidths(10003)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 3.5}, widths)

	for _, linkNo := range []int{10004, 10005} {
		widths, err = links.LaneWidths(linkNo)
		require.NoError(t, err)
		assert.Len(t, widths, 1)
	}
	attrs, err = links.GetLink(10004)
	require.NoError(t, err)
	assert.Equal(t, "30.0", attrs["mesoSpeed"])

	widths, err = links.LaneWidths(10006)
	require.NoError(t, err)
	assert.Len(t, widths, 4)

	// Backward link runs against node order of the way
	forward, err := links.Points(10004)
	require.NoError(t, err)
	backward, err := links.Points(10005)
	require.NoError(t, err)
	require.Len(t, forward, 2)
	require.Len(t, backward, 2)
	assert.Equal(t, forward[0], backward[1])
	assert.Equal(t, forward[1], backward[0])

	reversedWay, err := links.Points(10006)
	require.NoError(t, err)
	require.Len(t, reversedWay, 3)
	lon, lat := epsg3857To4326(reversedWay[0].X, reversedWay[0].Y)
	assert.InDelta(t, 37.6010, lon, 1e-6)
	assert.InDelta(t, 55.7510, lat, 1e-6)

	assert.Contains(t, doc.Catalogs().IDs(CATALOG_LINK), 10006)
}

func TestImportOSMConfiguration(t *testing.T) {
	doc := loadNetwork(t)
	links := NewLinks(doc)

	cfg := &OsmConfiguration{EntityName: "highway", Tags: []string{"footway"}, LaneWidth: 2.0}
	imported, err := links.ImportOSM(context.Background(), "./testdata/sample.osm", cfg)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, osm.WayID(102), imported[0].WayID)
	widths, err := links.LaneWidths(imported[0].LinkNo)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0}, widths)
}

func TestImportOSMErrors(t *testing.T) {
	doc := loadNetwork(t)
	links := NewLinks(doc)

	_, err := links.ImportOSM(context.Background(), "./testdata/network.inpx", nil)
	require.Error(t, err)
	_, err = links.ImportOSM(context.Background(), "./testdata/missing.osm", nil)
	require.Error(t, err)
	assert.Len(t, links.List(), 7)
}
