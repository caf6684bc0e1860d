package vissim

import (
	"log/slog"
	"strconv"

	"github.com/paulmach/osm"
)

// wayData is OSM way prepared for conversion into links
type wayData struct {
	ID            osm.WayID
	Nodes         []osm.NodeID
	name          string
	highway       string
	linkType      LinkType
	lanes         int
	lanesForward  int
	lanesBackward int
	Oneway        bool
	IsReversed    bool
}

func newWayData(way *osm.Way, logger *slog.Logger) *wayData {
	prepared := &wayData{
		ID:            way.ID,
		Nodes:         make([]osm.NodeID, 0, len(way.Nodes)),
		name:          way.Tags.Find("name"),
		highway:       way.Tags.Find("highway"),
		lanes:         -1,
		lanesForward:  -1,
		lanesBackward: -1,
	}
	for _, node := range way.Nodes {
		prepared.Nodes = append(prepared.Nodes, node.ID)
	}
	prepared.linkType = getLinkType(prepared.highway)
	prepared.lanes = intTag(way, "lanes", logger)
	prepared.lanesForward = intTag(way, "lanes:forward", logger)
	prepared.lanesBackward = intTag(way, "lanes:backward", logger)

	onewayText := way.Tags.Find("oneway")
	switch onewayText {
	case "yes", "1":
		prepared.Oneway = true
	case "no", "0":
		prepared.Oneway = false
	case "-1":
		prepared.Oneway = true
		prepared.IsReversed = true
	case "":
		if _, ok := junctionTypes[way.Tags.Find("junction")]; ok {
			prepared.Oneway = true
		} else {
			prepared.Oneway = onewayDefaultByLink[prepared.linkType]
		}
	default:
		// Reversible or alternating: depends on time conditions, so treat as two-way
		if _, found := onewayReversible[onewayText]; !found {
			logger.Warn("Unhandled `oneway` tag value", "value", onewayText, "way", way.ID)
		}
	}
	return prepared
}

func intTag(way *osm.Way, key string, logger *slog.Logger) int {
	text := way.Tags.Find(key)
	if text == "" {
		return -1
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		logger.Warn("Tag value should be an integer", "tag", key, "value", text, "way", way.ID)
		return -1
	}
	return value
}
