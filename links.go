package vissim

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

var (
	linkSchema = Schema{
		"assumSpeedOncom": ATTR_FLOAT, "costPerKm": ATTR_FLOAT,
		"direction": ATTR_STRING, "displayType": ATTR_INT,
		"emergStopDist": ATTR_FLOAT, "gradient": ATTR_FLOAT,
		"hasOvtLn": ATTR_BOOL, "isPedArea": ATTR_BOOL, "level": ATTR_INT,
		"linkBehavType": ATTR_INT, "linkEvalAct": ATTR_BOOL,
		"linkEvalSegLen": ATTR_FLOAT, "lnChgDist": ATTR_FLOAT,
		"lnChgEvalAct": ATTR_BOOL, "lookAheadDistOvt": ATTR_FLOAT,
		"mesoFollowUpGap": ATTR_FLOAT, "mesoSpeed": ATTR_FLOAT,
		"mesoSpeedModel": ATTR_STRING, "name": ATTR_STRING, "no": ATTR_INT,
		"ovtOnlyPT": ATTR_BOOL, "ovtSpeedFact": ATTR_FLOAT,
		"showClsfValues": ATTR_BOOL, "showLinkBar": ATTR_BOOL,
		"showVeh": ATTR_BOOL, "surch1": ATTR_FLOAT, "surch2": ATTR_FLOAT,
		"thickness": ATTR_FLOAT, "vehRecAct": ATTR_BOOL,
		"geometry": ATTR_LIST, "lanes": ATTR_LIST,
	}

	linkDefaults = []defaultAttr{
		{key: "assumSpeedOncom", value: "60.00000"},
		{key: "costPerKm", value: "0.00000"},
		{key: "direction", value: "ALL"},
		{key: "displayType", fromCatalog: CATALOG_DISPLAY_TYPE},
		{key: "emergStopDist", value: "5.00000"},
		{key: "gradient", value: "0.00000"},
		{key: "hasOvtLn", value: "false"},
		{key: "isPedArea", value: "false"},
		{key: "level", value: "1"},
		{key: "linkBehavType", fromCatalog: CATALOG_LINK_BEHAVIOR_TYPE},
		{key: "linkEvalAct", value: "false"},
		{key: "linkEvalSegLen", value: "10.00000"},
		{key: "lnChgDist", value: "200.00000"},
		{key: "lnChgEvalAct", value: "true"},
		{key: "lookAheadDistOvt", value: "250.00000"},
		{key: "mesoFollowUpGap", value: "0.00000"},
		{key: "mesoSpeed", value: "50.00000"},
		{key: "mesoSpeedModel", value: "VEHICLEBASED"},
		{key: "name", value: ""},
		{key: "no", allocate: true},
		{key: "ovtOnlyPT", value: "false"},
		{key: "ovtSpeedFact", value: "1.300000"},
		{key: "showClsfValues", value: "true"},
		{key: "showLinkBar", value: "true"},
		{key: "showVeh", value: "true"},
		{key: "surch1", value: "0.00000"},
		{key: "surch2", value: "0.00000"},
		{key: "thickness", value: "0.00000"},
		{key: "vehRecAct", value: "true"},
	}

	defaultLinkGeometry = []Point3D{{X: 0, Y: 0, ZOffset: 0}, {X: 1, Y: 1, ZOffset: 0}}
	defaultLaneWidths   = []float64{3.5}
)

// Links gives access to <links> collection
type Links struct {
	doc  *Document
	path Path
}

// NewLinks returns view over links of the document
func NewLinks(doc *Document) *Links {
	return &Links{
		doc:  doc,
		path: NewPath("links"),
	}
}

func (links *Links) linkPath(linkNo int) Path {
	return links.path.Child("link").Where("no", linkNo)
}

// GetLink returns attributes of link
func (links *Links) GetLink(linkNo int) (Attributes, error) {
	return links.doc.GetAttributes(links.linkPath(linkNo))
}

// FindLink returns attributes of the single link which attribute equals the value
func (links *Links) FindLink(attr string, value interface{}) (Attributes, error) {
	if t, ok := linkSchema[attr]; !ok || t == ATTR_LIST {
		return nil, errors.Wrapf(ErrInvalidAttribute, "'%s'", attr)
	}
	return links.doc.GetAttributes(links.path.Child("link").Where(attr, value))
}

// List returns attributes of every link in document order
func (links *Links) List() []Attributes {
	return links.doc.GetChildren(links.path.Child("link"))
}

// SetLink overwrites attribute of link
func (links *Links) SetLink(linkNo int, attr string, value interface{}) error {
	if _, ok := linkSchema[attr]; ok {
		if err := linkSchema.check(attr, value); err != nil {
			return err
		}
	}
	return links.doc.SetAttribute(links.linkPath(linkNo), attr, value)
}

// GetGeometry returns attributes of link's <point3D> elements in order along the link
func (links *Links) GetGeometry(linkNo int) ([]Attributes, error) {
	return links.children(linkNo, "geometry", "points3D", "point3D")
}

// SetGeometry appends points to link's <points3D> element
func (links *Links) SetGeometry(linkNo int, points []Point3D) error {
	container, err := links.doc.selectOne(links.linkPath(linkNo).Child("geometry").Child("points3D"))
	if err != nil {
		return err
	}
	appendPoints(container, points)
	return nil
}

// GetLanes returns attributes of link's lanes beginning with lane 1
func (links *Links) GetLanes(linkNo int) ([]Attributes, error) {
	return links.children(linkNo, "lanes", "lane")
}

// SetLanes appends lanes of given widths (meters) to link's <lanes> element
func (links *Links) SetLanes(linkNo int, widths []float64) error {
	container, err := links.doc.selectOne(links.linkPath(linkNo).Child("lanes"))
	if err != nil {
		return err
	}
	appendLanes(container, widths)
	return nil
}

// CreateLink adds new link and returns its number.
//
// Overrides may carry any link attribute from the defaults table, "geometry"
// ([]Point3D or orb.LineString) and "lanes" ([]float64 widths).
// Without overrides link gets geometry (0,0,0)-(1,1,0) and one 3.5 m lane.
func (links *Links) CreateLink(overrides Values) (int, error) {
	nested, rest := splitValues(overrides, "geometry", "lanes")
	points := defaultLinkGeometry
	if v, ok := nested["geometry"]; ok {
		var err error
		points, err = pointsOf(v)
		if err != nil {
			return 0, errors.Wrap(err, "geometry")
		}
	}
	widths := defaultLaneWidths
	if v, ok := nested["lanes"]; ok {
		w, ok := v.([]float64)
		if !ok {
			return 0, errors.Wrapf(ErrTypeMismatch, "lanes must be []float64, got %T", v)
		}
		widths = w
	}
	attrs, linkNo, err := links.doc.mergeDefaults(linkDefaults, linkSchema, rest, func() int {
		return links.doc.catalogs.NextID(CATALOG_LINK)
	})
	if err != nil {
		return 0, err
	}
	parent, err := links.doc.selectOne(links.path)
	if err != nil {
		return 0, err
	}

	link := appendChild(parent, "link", attrs)
	points3D := appendChild(appendChild(link, "geometry", nil), "points3D", nil)
	appendPoints(points3D, points)
	appendLanes(appendChild(link, "lanes", nil), widths)

	links.doc.catalogs.record(CATALOG_LINK, linkNo)
	links.doc.logger.Debug("Link created", "no", linkNo, "points", len(points), "lanes", len(widths))
	return linkNo, nil
}

// RemoveLink detaches link from <links>
func (links *Links) RemoveLink(linkNo int) error {
	return links.doc.RemoveChild(links.path, links.linkPath(linkNo))
}

// children returns attributes of elements under the link, link itself must exist
func (links *Links) children(linkNo int, tags ...string) ([]Attributes, error) {
	link, err := links.doc.selectOne(links.linkPath(linkNo))
	if err != nil {
		return nil, err
	}
	return childrenOf(link, tags...), nil
}

func appendPoints(container *etree.Element, points []Point3D) {
	for _, pt := range points {
		appendChild(container, "point3D", []Attr{
			{Key: "x", Value: pt.X},
			{Key: "y", Value: pt.Y},
			{Key: "zOffset", Value: pt.ZOffset},
		})
	}
}

func appendLanes(container *etree.Element, widths []float64) {
	for _, width := range widths {
		appendChild(container, "lane", []Attr{{Key: "width", Value: width}})
	}
}
