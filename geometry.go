package vissim

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Point3D is a vertex of link polyline. ZOffset is height above the link level.
type Point3D struct {
	X       float64
	Y       float64
	ZOffset float64
}

// pointsOf accepts []Point3D or orb.LineString (zero z offsets)
func pointsOf(value interface{}) ([]Point3D, error) {
	switch v := value.(type) {
	case []Point3D:
		return v, nil
	case orb.LineString:
		points := make([]Point3D, len(v))
		for i, pt := range v {
			points[i] = Point3D{X: pt.X(), Y: pt.Y()}
		}
		return points, nil
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "points must be []Point3D or orb.LineString, got %T", value)
	}
}

// Points returns parsed geometry of link
func (links *Links) Points(linkNo int) ([]Point3D, error) {
	children, err := links.GetGeometry(linkNo)
	if err != nil {
		return nil, err
	}
	points := make([]Point3D, len(children))
	for i, child := range children {
		x, err := parseFloatAttr(child, "x")
		if err != nil {
			return nil, errors.Wrapf(err, "link %d point %d", linkNo, i)
		}
		y, err := parseFloatAttr(child, "y")
		if err != nil {
			return nil, errors.Wrapf(err, "link %d point %d", linkNo, i)
		}
		z := 0.0
		if _, ok := child["zOffset"]; ok {
			z, err = parseFloatAttr(child, "zOffset")
			if err != nil {
				return nil, errors.Wrapf(err, "link %d point %d", linkNo, i)
			}
		}
		points[i] = Point3D{X: x, Y: y, ZOffset: z}
	}
	return points, nil
}

// LaneWidths returns parsed widths of link's lanes beginning with lane 1
func (links *Links) LaneWidths(linkNo int) ([]float64, error) {
	children, err := links.GetLanes(linkNo)
	if err != nil {
		return nil, err
	}
	widths := make([]float64, len(children))
	for i, child := range children {
		widths[i], err = parseFloatAttr(child, "width")
		if err != nil {
			return nil, errors.Wrapf(err, "link %d lane %d", linkNo, i+1)
		}
	}
	return widths, nil
}

// LineString returns link geometry projected onto the ground plane
func (links *Links) LineString(linkNo int) (orb.LineString, error) {
	points, err := links.Points(linkNo)
	if err != nil {
		return nil, err
	}
	line := make(orb.LineString, len(points))
	for i, pt := range points {
		line[i] = orb.Point{pt.X, pt.Y}
	}
	return line, nil
}

// Length returns planar length of link (network units, meters)
func (links *Links) Length(linkNo int) (float64, error) {
	line, err := links.LineString(linkNo)
	if err != nil {
		return 0, err
	}
	return planar.Length(line), nil
}

// WKT returns Well-Known Text representation of link geometry
func (links *Links) WKT(linkNo int) (string, error) {
	line, err := links.LineString(linkNo)
	if err != nil {
		return "", err
	}
	return wkt.MarshalString(line), nil
}

func parseFloatAttr(attrs Attributes, key string) (float64, error) {
	text, ok := attrs[key]
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "attribute '%s'", key)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrTypeMismatch, "attribute '%s'='%s' is not a number", key, text)
	}
	return f, nil
}
