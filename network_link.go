package vissim

import (
	"math"
)

type DirectionType uint16

const (
	DIRECTION_FORWARD = DirectionType(iota + 1)
	DIRECTION_BACKWARD
)

func (iotaIdx DirectionType) String() string {
	return [...]string{"forward", "backward"}[iotaIdx-1]
}

// lanesNum returns number of lanes for the way in given direction
func (way *wayData) lanesNum(direction DirectionType) int {
	lanes := -1
	if way.Oneway {
		lanes = way.lanes
	} else {
		directed := way.lanesForward
		if direction == DIRECTION_BACKWARD {
			directed = way.lanesBackward
		}
		switch {
		case directed > 0:
			lanes = directed
		case way.lanes > 0:
			lanes = int(math.Ceil(float64(way.lanes) / 2.0))
		}
	}
	if lanes <= 0 {
		lanes = defaultLanesByLinkType[way.linkType]
	}
	if lanes <= 0 {
		lanes = 1
	}
	return lanes
}

// directions returns directions links should be created for
func (way *wayData) directions() []DirectionType {
	if !way.Oneway {
		return []DirectionType{DIRECTION_FORWARD, DIRECTION_BACKWARD}
	}
	if way.IsReversed {
		return []DirectionType{DIRECTION_BACKWARD}
	}
	return []DirectionType{DIRECTION_FORWARD}
}
