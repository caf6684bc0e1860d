package vissim

var (
	linkTypeByHighway = map[string]LinkType{
		"motorway":         LINK_MOTORWAY,
		"motorway_link":    LINK_MOTORWAY,
		"trunk":            LINK_TRUNK,
		"trunk_link":       LINK_TRUNK,
		"primary":          LINK_PRIMARY,
		"primary_link":     LINK_PRIMARY,
		"secondary":        LINK_SECONDARY,
		"secondary_link":   LINK_SECONDARY,
		"tertiary":         LINK_TERTIARY,
		"tertiary_link":    LINK_TERTIARY,
		"residential":      LINK_RESIDENTIAL,
		"residential_link": LINK_RESIDENTIAL,
		"living_street":    LINK_LIVING_STREET,
		"service":          LINK_SERVICE,
		"services":         LINK_SERVICE,
		"cycleway":         LINK_CYCLEWAY,
		"footway":          LINK_FOOTWAY,
		"pedestrian":       LINK_FOOTWAY,
		"steps":            LINK_FOOTWAY,
		"track":            LINK_TRACK,
		"unclassified":     LINK_UNCLASSIFIED,
	}

	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}

	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}
)

func getLinkType(highway string) LinkType {
	if found, ok := linkTypeByHighway[highway]; ok {
		return found
	}
	return 0
}
