package vissim

// OsmConfiguration allows to filter ways by certain tags from OSM data and tune created links
type OsmConfiguration struct {
	EntityName string // Currently we support 'highway' only
	Tags       []string
	// LaneWidth is width of every created lane (meters)
	LaneWidth float64
}

// DefaultOsmConfiguration returns configuration for common motorized road network
func DefaultOsmConfiguration() *OsmConfiguration {
	return &OsmConfiguration{
		EntityName: "highway",
		Tags: []string{
			"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
			"secondary", "secondary_link", "tertiary", "tertiary_link", "residential",
			"living_street", "service", "unclassified",
		},
		LaneWidth: 3.5,
	}
}

// CheckTag checks if incoming tag is represented in configuration
func (cfg *OsmConfiguration) CheckTag(tag string) bool {
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}
