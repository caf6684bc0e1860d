package vissim

import (
	"strconv"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// GeoJSON returns FeatureCollection of link LineStrings.
// Network coordinates are treated as EPSG:3857 meters and converted to longitude/latitude.
func (links *Links) GeoJSON() ([]byte, error) {
	collection := geojson.NewFeatureCollection()
	for _, attrs := range links.List() {
		linkNo, err := strconv.Atoi(attrs["no"])
		if err != nil {
			links.doc.logger.Warn("Link skipped: identifier is not an integer", "no", attrs["no"])
			continue
		}
		line, err := links.LineString(linkNo)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't prepare geometry of link %d", linkNo)
		}
		if len(line) < 2 {
			links.doc.logger.Warn("Link skipped: less than two points", "no", linkNo)
			continue
		}
		lanes, err := links.GetLanes(linkNo)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't prepare lanes of link %d", linkNo)
		}
		spherical := lineToSpherical(line)
		coords := make([][]float64, len(spherical))
		for i, pt := range spherical {
			coords[i] = []float64{pt.Lon(), pt.Lat()}
		}
		feature := geojson.NewLineStringFeature(coords)
		feature.SetProperty("no", linkNo)
		feature.SetProperty("name", attrs["name"])
		feature.SetProperty("lanes", len(lanes))
		feature.SetProperty("length", planar.Length(line))
		collection.AddFeature(feature)
	}
	b, err := collection.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal GeoJSON")
	}
	return b, nil
}
