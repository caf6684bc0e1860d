package vissim

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

var (
	inputSchema = Schema{
		"anmFlag": ATTR_BOOL, "link": ATTR_INT, "name": ATTR_STRING, "no": ATTR_INT,
	}
	inputDefaults = []defaultAttr{
		{key: "anmFlag", value: "false"},
		{key: "link"},
		{key: "name", value: ""},
		{key: "no", allocate: true},
	}

	volumeSchema = Schema{
		"cont": ATTR_BOOL, "timeInt": ATTR_STRING, "vehComp": ATTR_INT,
		"volType": ATTR_STRING, "volume": ATTR_FLOAT,
	}
	volumeDefaults = []defaultAttr{
		{key: "cont", value: "false"},
		{key: "timeInt", value: "1 0"},
		{key: "vehComp", fromCatalog: CATALOG_VEHICLE_COMPOSITION},
		{key: "volType", value: "EXACT"},
	}
	volumeKeys = []string{"cont", "timeInt", "vehComp", "volType"}
)

// Inputs gives access to <vehicleInputs> collection
type Inputs struct {
	doc  *Document
	path Path
}

// NewInputs returns view over vehicle inputs of the document
func NewInputs(doc *Document) *Inputs {
	return &Inputs{
		doc:  doc,
		path: NewPath("vehicleInputs"),
	}
}

func (inputs *Inputs) inputPath(inputNo int) Path {
	return inputs.path.Child("vehicleInput").Where("no", inputNo)
}

// GetInput returns attributes of the single input which attribute equals the value
func (inputs *Inputs) GetInput(attr string, value interface{}) (Attributes, error) {
	if _, ok := inputSchema[attr]; !ok {
		return nil, errors.Wrapf(ErrInvalidAttribute, "'%s'", attr)
	}
	return inputs.doc.GetAttributes(inputs.path.Child("vehicleInput").Where(attr, value))
}

// List returns attributes of every input in document order
func (inputs *Inputs) List() []Attributes {
	return inputs.doc.GetChildren(inputs.path.Child("vehicleInput"))
}

// SetInput overwrites attribute of input
func (inputs *Inputs) SetInput(inputNo int, attr string, value interface{}) error {
	if _, ok := inputSchema[attr]; ok {
		if err := inputSchema.check(attr, value); err != nil {
			return err
		}
	}
	return inputs.doc.SetAttribute(inputs.inputPath(inputNo), attr, value)
}

// GetVols returns attributes of input's <timeIntervalVehVolume> elements
func (inputs *Inputs) GetVols(inputNo int) ([]Attributes, error) {
	input, err := inputs.doc.selectOne(inputs.inputPath(inputNo))
	if err != nil {
		return nil, err
	}
	return childrenOf(input, "timeIntVehVols", "timeIntervalVehVolume"), nil
}

// SetVols appends one <timeIntervalVehVolume> per volume (veh/h).
// Overrides may carry "cont", "timeInt", "vehComp" and "volType" and apply to every appended volume.
func (inputs *Inputs) SetVols(inputNo int, volumes []float64, overrides Values) error {
	attrs, err := inputs.volumeAttrs(overrides)
	if err != nil {
		return err
	}
	container, err := inputs.doc.selectOne(inputs.inputPath(inputNo).Child("timeIntVehVols"))
	if err != nil {
		return err
	}
	appendVolumes(container, attrs, volumes)
	return nil
}

// CreateInput adds new vehicle input on the link with a single volume and returns its number.
// Overrides may carry input attributes ("anmFlag", "name", "no") and volume attributes.
func (inputs *Inputs) CreateInput(linkNo int, volume float64, overrides Values) (int, error) {
	volOverrides, rest := splitValues(overrides, volumeKeys...)
	volAttrs, err := inputs.volumeAttrs(volOverrides)
	if err != nil {
		return 0, err
	}
	rest["link"] = linkNo
	attrs, inputNo, err := inputs.doc.mergeDefaults(inputDefaults, inputSchema, rest, func() int {
		return inputs.doc.catalogs.NextID(CATALOG_VEHICLE_INPUT)
	})
	if err != nil {
		return 0, err
	}
	parent, err := inputs.doc.selectOne(inputs.path)
	if err != nil {
		return 0, err
	}

	input := appendChild(parent, "vehicleInput", attrs)
	appendVolumes(appendChild(input, "timeIntVehVols", nil), volAttrs, []float64{volume})

	inputs.doc.catalogs.record(CATALOG_VEHICLE_INPUT, inputNo)
	inputs.doc.logger.Debug("Vehicle input created", "no", inputNo, "link", linkNo, "volume", volume)
	return inputNo, nil
}

// RemoveInput detaches input from <vehicleInputs>
func (inputs *Inputs) RemoveInput(inputNo int) error {
	return inputs.doc.RemoveChild(inputs.path, inputs.inputPath(inputNo))
}

func (inputs *Inputs) volumeAttrs(overrides Values) ([]Attr, error) {
	attrs, _, err := inputs.doc.mergeDefaults(volumeDefaults, volumeSchema, overrides, nil)
	if err != nil {
		return nil, errors.Wrap(err, "volume")
	}
	return attrs, nil
}

func appendVolumes(container *etree.Element, attrs []Attr, volumes []float64) {
	for _, volume := range volumes {
		volAttrs := make([]Attr, len(attrs), len(attrs)+1)
		copy(volAttrs, attrs)
		volAttrs = append(volAttrs, Attr{Key: "volume", Value: volume})
		appendChild(container, "timeIntervalVehVolume", volAttrs)
	}
}
