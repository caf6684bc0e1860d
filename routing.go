package vissim

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

var (
	routingSchema = Schema{
		"allVehTypes": ATTR_BOOL, "anmFlag": ATTR_BOOL,
		"combineStaRoutDec": ATTR_BOOL, "link": ATTR_INT, "name": ATTR_STRING,
		"no": ATTR_INT, "pos": ATTR_FLOAT, "vehClasses": ATTR_LIST,
	}
	routingDefaults = []defaultAttr{
		{key: "allVehTypes", value: "false"},
		{key: "anmFlag", value: "false"},
		{key: "combineStaRoutDec", value: "false"},
		{key: "link"},
		{key: "name", value: ""},
		{key: "no", allocate: true},
		{key: "pos", value: "0.0000"},
	}

	routeSchema = Schema{
		"destLink": ATTR_INT, "destPos": ATTR_FLOAT, "name": ATTR_STRING,
		"no": ATTR_INT, "relFlow": ATTR_STRING, "linkSeq": ATTR_LIST,
	}
	routeDefaults = []defaultAttr{
		{key: "destLink"},
		{key: "destPos", value: "0.000"},
		{key: "name", value: ""},
		{key: "no", allocate: true},
		{key: "relFlow", value: ""},
	}
)

// StaticRouting gives access to <vehicleRoutingDecisionsStatic> collection,
// its routes (<vehRoutSta>) and routes' link sequences (<linkSeq>)
type StaticRouting struct {
	doc   *Document
	path  Path
	links *Links
}

// NewStaticRouting returns view over static routing decisions of the document
func NewStaticRouting(doc *Document) *StaticRouting {
	return &StaticRouting{
		doc:   doc,
		path:  NewPath("vehicleRoutingDecisionsStatic"),
		links: NewLinks(doc),
	}
}

func (routing *StaticRouting) routingPath(routingNo int) Path {
	return routing.path.Child("vehicleRoutingDecisionStatic").Where("no", routingNo)
}

func (routing *StaticRouting) routesPath(routingNo int) Path {
	return routing.routingPath(routingNo).Child("vehRoutSta").Child("vehicleRouteStatic")
}

func (routing *StaticRouting) routePath(routingNo, routeNo int) Path {
	return routing.routesPath(routingNo).Where("no", routeNo)
}

// GetRouting returns attributes of the single routing decision which attribute equals the value
func (routing *StaticRouting) GetRouting(attr string, value interface{}) (Attributes, error) {
	if t, ok := routingSchema[attr]; !ok || t == ATTR_LIST {
		return nil, errors.Wrapf(ErrInvalidAttribute, "'%s'", attr)
	}
	return routing.doc.GetAttributes(routing.path.Child("vehicleRoutingDecisionStatic").Where(attr, value))
}

// List returns attributes of every routing decision in document order
func (routing *StaticRouting) List() []Attributes {
	return routing.doc.GetChildren(routing.path.Child("vehicleRoutingDecisionStatic"))
}

// SetRouting overwrites attribute of routing decision
func (routing *StaticRouting) SetRouting(routingNo int, attr string, value interface{}) error {
	if _, ok := routingSchema[attr]; ok {
		if err := routingSchema.check(attr, value); err != nil {
			return err
		}
	}
	return routing.doc.SetAttribute(routing.routingPath(routingNo), attr, value)
}

// GetVehicleClasses returns <intObjectRef> attributes of decision's vehicle classes
func (routing *StaticRouting) GetVehicleClasses(routingNo int) ([]Attributes, error) {
	decision, err := routing.doc.selectOne(routing.routingPath(routingNo))
	if err != nil {
		return nil, err
	}
	return childrenOf(decision, "vehClasses", "intObjectRef"), nil
}

// SetVehicleClasses appends vehicle class references to decision's <vehClasses>
func (routing *StaticRouting) SetVehicleClasses(routingNo int, classes []int) error {
	container, err := routing.doc.selectOne(routing.routingPath(routingNo).Child("vehClasses"))
	if err != nil {
		return err
	}
	appendRefs(container, classes)
	return nil
}

// CreateRouting adds new static routing decision on the link and returns its number.
//
// Overrides may carry decision attributes and "vehClasses" ([]int). When vehicle classes
// are not given they default to the first vehicle class of the network, unless "allVehTypes" is true.
func (routing *StaticRouting) CreateRouting(linkNo int, overrides Values) (int, error) {
	nested, rest := splitValues(overrides, "vehClasses")
	var classes []int
	if v, ok := nested["vehClasses"]; ok {
		c, ok := v.([]int)
		if !ok {
			return 0, errors.Wrapf(ErrTypeMismatch, "vehClasses must be []int, got %T", v)
		}
		classes = c
	} else if !isTrue(rest["allVehTypes"]) {
		class, err := routing.doc.catalogs.DefaultID(CATALOG_VEHICLE_CLASS)
		if err != nil {
			return 0, errors.Wrap(err, "no default for 'vehClasses'")
		}
		classes = []int{class}
	}
	rest["link"] = linkNo
	attrs, routingNo, err := routing.doc.mergeDefaults(routingDefaults, routingSchema, rest, func() int {
		return routing.doc.catalogs.NextID(CATALOG_ROUTING_STATIC)
	})
	if err != nil {
		return 0, err
	}
	parent, err := routing.doc.selectOne(routing.path)
	if err != nil {
		return 0, err
	}

	decision := appendChild(parent, "vehicleRoutingDecisionStatic", attrs)
	appendRefs(appendChild(decision, "vehClasses", nil), classes)
	appendChild(decision, "vehRoutSta", nil)

	routing.doc.catalogs.record(CATALOG_ROUTING_STATIC, routingNo)
	routing.doc.logger.Debug("Static routing decision created", "no", routingNo, "link", linkNo)
	return routingNo, nil
}

// RemoveRouting detaches routing decision with all its routes
func (routing *StaticRouting) RemoveRouting(routingNo int) error {
	return routing.doc.RemoveChild(routing.path, routing.routingPath(routingNo))
}

// GetRoute returns attributes of the single route of decision which attribute equals the value
func (routing *StaticRouting) GetRoute(routingNo int, attr string, value interface{}) (Attributes, error) {
	if t, ok := routeSchema[attr]; !ok || t == ATTR_LIST {
		return nil, errors.Wrapf(ErrInvalidAttribute, "'%s'", attr)
	}
	return routing.doc.GetAttributes(routing.routesPath(routingNo).Where(attr, value))
}

// GetRoutes returns attributes of every route of decision
func (routing *StaticRouting) GetRoutes(routingNo int) ([]Attributes, error) {
	decision, err := routing.doc.selectOne(routing.routingPath(routingNo))
	if err != nil {
		return nil, err
	}
	return childrenOf(decision, "vehRoutSta", "vehicleRouteStatic"), nil
}

// SetRoute overwrites attribute of route
func (routing *StaticRouting) SetRoute(routingNo, routeNo int, attr string, value interface{}) error {
	if _, ok := routeSchema[attr]; ok {
		if err := routeSchema.check(attr, value); err != nil {
			return err
		}
	}
	return routing.doc.SetAttribute(routing.routePath(routingNo, routeNo), attr, value)
}

// GetRouteSeq returns <intObjectRef> attributes of links the route traverses, in order
func (routing *StaticRouting) GetRouteSeq(routingNo, routeNo int) ([]Attributes, error) {
	route, err := routing.doc.selectOne(routing.routePath(routingNo, routeNo))
	if err != nil {
		return nil, err
	}
	return childrenOf(route, "linkSeq", "intObjectRef"), nil
}

// SetRouteSeq appends links to route's <linkSeq>
func (routing *StaticRouting) SetRouteSeq(routingNo, routeNo int, links []int) error {
	container, err := routing.doc.selectOne(routing.routePath(routingNo, routeNo).Child("linkSeq"))
	if err != nil {
		return err
	}
	appendRefs(container, links)
	return nil
}

// CreateRoute adds new route to the decision and returns its number.
// Route numbers are allocated among routes of the same decision.
// Overrides may carry route attributes and "linkSeq" ([]int).
func (routing *StaticRouting) CreateRoute(routingNo, destLink int, overrides Values) (int, error) {
	nested, rest := splitValues(overrides, "linkSeq")
	var seq []int
	if v, ok := nested["linkSeq"]; ok {
		s, ok := v.([]int)
		if !ok {
			return 0, errors.Wrapf(ErrTypeMismatch, "linkSeq must be []int, got %T", v)
		}
		seq = s
	}
	decision, err := routing.doc.selectOne(routing.routingPath(routingNo))
	if err != nil {
		return 0, err
	}
	routes := NewPath("vehRoutSta").resolve(decision)
	if len(routes) != 1 {
		if len(routes) == 0 {
			return 0, errors.Wrapf(ErrNotFound, "%s", routing.routingPath(routingNo).Child("vehRoutSta"))
		}
		return 0, errors.Wrapf(ErrAmbiguous, "%s", routing.routingPath(routingNo).Child("vehRoutSta"))
	}
	rest["destLink"] = destLink
	attrs, routeNo, err := routing.doc.mergeDefaults(routeDefaults, routeSchema, rest, func() int {
		return NextID(intsOf(childrenOf(routes[0], "vehicleRouteStatic"), "no"))
	})
	if err != nil {
		return 0, err
	}

	route := appendChild(routes[0], "vehicleRouteStatic", attrs)
	appendRefs(appendChild(route, "linkSeq", nil), seq)

	routing.doc.logger.Debug("Static route created", "routing", routingNo, "no", routeNo, "dest", destLink)
	return routeNo, nil
}

// RemoveRoute detaches route from the decision
func (routing *StaticRouting) RemoveRoute(routingNo, routeNo int) error {
	return routing.doc.RemoveChild(routing.routingPath(routingNo).Child("vehRoutSta"), routing.routePath(routingNo, routeNo))
}

func childrenOf(el *etree.Element, tags ...string) []Attributes {
	found := NewPath(tags...).resolve(el)
	ans := make([]Attributes, 0, len(found))
	for _, child := range found {
		ans = append(ans, attributesOf(child))
	}
	return ans
}

func appendRefs(container *etree.Element, keys []int) {
	for _, key := range keys {
		appendChild(container, "intObjectRef", []Attr{{Key: "key", Value: key}})
	}
}

func isTrue(value interface{}) bool {
	return value != nil && formatValue(value) == "true"
}
