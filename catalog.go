package vissim

import (
	"log/slog"
	"strconv"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// CatalogKind enumerates top-level collections which identifiers are cached
type CatalogKind uint16

const (
	CATALOG_COLOR_DISTRIBUTION = CatalogKind(iota + 1)
	CATALOG_CONFLICT_AREA
	CATALOG_DES_ACCELERATION
	CATALOG_DES_DECELERATION
	CATALOG_DES_SPEED_DISTRIBUTION
	CATALOG_DISPLAY_TYPE
	CATALOG_DRIVING_BEHAVIOR
	CATALOG_LINK_BEHAVIOR_TYPE
	CATALOG_LINK
	CATALOG_LOCATION_DISTRIBUTION
	CATALOG_MAX_ACCELERATION
	CATALOG_MAX_DECELERATION
	CATALOG_MODEL_DISTRIBUTION
	CATALOG_MODEL
	CATALOG_OCCUPANCY_DISTRIBUTION
	CATALOG_PEDESTRIAN_CLASS
	CATALOG_PEDESTRIAN_COMPOSITION
	CATALOG_PEDESTRIAN_TYPE
	CATALOG_POWER_DISTRIBUTION
	CATALOG_TIME_DISTRIBUTION
	CATALOG_VEHICLE_CLASS
	CATALOG_VEHICLE_COMPOSITION
	CATALOG_VEHICLE_INPUT
	CATALOG_VEHICLE_TYPE
	CATALOG_WALKING_BEHAVIOR
	CATALOG_WEIGHT_DISTRIBUTION
	CATALOG_ROUTING_STATIC
)

type collectionName struct {
	collection string
	child      string
}

var catalogCollections = [...]collectionName{
	{"colorDistributions", "colorDistribution"},
	{"conflictAreas", "conflictArea"},
	{"desAccelerationFunctions", "desAccelerationFunction"},
	{"desDecelerationFunctions", "desDecelerationFunction"},
	{"desSpeedDistributions", "desSpeedDistribution"},
	{"displayTypes", "displayType"},
	{"drivingBehaviors", "drivingBehavior"},
	{"linkBehaviorTypes", "linkBehaviorType"},
	{"links", "link"},
	{"locationDistributions", "locationDistribution"},
	{"maxAccelerationFunctions", "maxAccelerationFunction"},
	{"maxDecelerationFunctions", "maxDecelerationFunction"},
	{"model2D3DDistributions", "model2D3DDistribution"},
	{"models2D3D", "model2D3D"},
	{"occupancyDistributions", "occupancyDistribution"},
	{"pedestrianClasses", "pedestrianClass"},
	{"pedestrianCompositions", "pedestrianComposition"},
	{"pedestrianTypes", "pedestrianType"},
	{"powerDistributions", "powerDistribution"},
	{"timeDistributions", "timeDistribution"},
	{"vehicleClasses", "vehicleClass"},
	{"vehicleCompositions", "vehicleComposition"},
	{"vehicleInputs", "vehicleInput"},
	{"vehicleTypes", "vehicleType"},
	{"walkingBehaviors", "walkingBehavior"},
	{"weightDistributions", "weightDistribution"},
	{"vehicleRoutingDecisionsStatic", "vehicleRoutingDecisionStatic"},
}

func (iotaIdx CatalogKind) String() string {
	return catalogCollections[iotaIdx-1].collection
}

// Path returns path to entities of the collection
func (iotaIdx CatalogKind) Path() Path {
	names := catalogCollections[iotaIdx-1]
	return NewPath(names.collection, names.child)
}

// Catalogs holds identifiers of every known collection.
//
// Catalogs are a snapshot: removals and elements appended through the generic
// accessor are not reflected until Document.Refresh. Identifiers allocated by
// entity views are recorded, so consecutive creates never share a number.
type Catalogs struct {
	ids map[CatalogKind][]int
}

func scanCatalogs(root *etree.Element, logger *slog.Logger) *Catalogs {
	catalogs := &Catalogs{
		ids: make(map[CatalogKind][]int, len(catalogCollections)),
	}
	for i := range catalogCollections {
		kind := CatalogKind(i + 1)
		found := kind.Path().resolve(root)
		ids := make([]int, 0, len(found))
		for _, el := range found {
			text := el.SelectAttrValue("no", "")
			id, err := strconv.Atoi(text)
			if err != nil {
				logger.Warn("Identifier is not an integer", "collection", kind.String(), "no", text)
				continue
			}
			ids = append(ids, id)
		}
		catalogs.ids[kind] = ids
	}
	logger.Debug("Catalogs scanned", "links", len(catalogs.ids[CATALOG_LINK]), "inputs", len(catalogs.ids[CATALOG_VEHICLE_INPUT]), "routing", len(catalogs.ids[CATALOG_ROUTING_STATIC]))
	return catalogs
}

// IDs returns copy of cached identifiers for the collection
func (catalogs *Catalogs) IDs(kind CatalogKind) []int {
	ids := catalogs.ids[kind]
	ans := make([]int, len(ids))
	copy(ans, ids)
	return ans
}

// NextID returns identifier a new entity of the collection should get
func (catalogs *Catalogs) NextID(kind CatalogKind) int {
	return NextID(catalogs.ids[kind])
}

// DefaultID returns the first cached identifier of the collection
func (catalogs *Catalogs) DefaultID(kind CatalogKind) (int, error) {
	id, err := DefaultID(catalogs.ids[kind])
	if err != nil {
		return 0, errors.Wrapf(err, "'%s'", kind)
	}
	return id, nil
}

func (catalogs *Catalogs) record(kind CatalogKind, id int) {
	catalogs.ids[kind] = append(catalogs.ids[kind], id)
}
