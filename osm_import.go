package vissim

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// ImportedLink binds created link to its source OSM way
type ImportedLink struct {
	WayID     osm.WayID
	Direction DirectionType
	LinkNo    int
}

func newOSMScanner(ctx context.Context, filename string, file io.Reader) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ImportOSM creates a link for every direction of every OSM way matching configuration.
// Node coordinates are projected into EPSG:3857 meters.
func (links *Links) ImportOSM(ctx context.Context, filename string, cfg *OsmConfiguration) ([]ImportedLink, error) {
	if cfg == nil {
		cfg = DefaultOsmConfiguration()
	}
	logger := links.doc.logger
	logger.Info("Opening OSM file", "file", filename)
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open file '%s'", filename)
	}
	defer file.Close()

	/* Process ways */
	st := time.Now()
	ways := []*wayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(ctx, filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			way, ok := scannerWays.Object().(*osm.Way)
			if !ok {
				continue
			}
			if !cfg.CheckTag(way.Tags.Find("highway")) {
				continue
			}
			prepared := newWayData(way, logger)
			for _, nodeID := range prepared.Nodes {
				nodesSeen[nodeID] = struct{}{}
			}
			ways = append(ways, prepared)
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "Can't scan ways")
		}
	}
	logger.Info("Ways processed", "ways", len(ways), "elapsed", time.Since(st))

	// Seek file to start
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	nodes := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	{
		scannerNodes, err := newOSMScanner(ctx, filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			node, ok := scannerNodes.Object().(*osm.Node)
			if !ok {
				continue
			}
			if _, ok := nodesSeen[node.ID]; ok {
				nodes[node.ID] = pointToEuclidean(orb.Point{node.Lon, node.Lat})
			}
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "Can't scan nodes")
		}
	}
	logger.Info("Nodes processed", "nodes", len(nodes), "elapsed", time.Since(st))

	laneWidth := cfg.LaneWidth
	if laneWidth <= 0 {
		laneWidth = defaultLaneWidths[0]
	}
	imported := make([]ImportedLink, 0, len(ways))
	for _, way := range ways {
		line := make(orb.LineString, 0, len(way.Nodes))
		for _, nodeID := range way.Nodes {
			pt, ok := nodes[nodeID]
			if !ok {
				logger.Warn("Node of way not found", "way", way.ID, "node", nodeID)
				continue
			}
			line = append(line, pt)
		}
		if len(line) < 2 {
			logger.Warn("Way skipped: less than two nodes", "way", way.ID, "nodes", len(line))
			continue
		}
		for _, direction := range way.directions() {
			geom := line
			if direction == DIRECTION_BACKWARD {
				geom = reversed(line)
			}
			widths := make([]float64, way.lanesNum(direction))
			for i := range widths {
				widths[i] = laneWidth
			}
			overrides := Values{
				"name":     way.name,
				"geometry": geom,
				"lanes":    widths,
			}
			if speed, ok := defaultSpeedByLinkType[way.linkType]; ok {
				overrides["mesoSpeed"] = speed
			}
			linkNo, err := links.CreateLink(overrides)
			if err != nil {
				return imported, errors.Wrapf(err, "Can't create link for way %d (%s)", way.ID, direction)
			}
			imported = append(imported, ImportedLink{WayID: way.ID, Direction: direction, LinkNo: linkNo})
		}
	}
	logger.Info("OSM import done", "links", len(imported))
	return imported, nil
}

func reversed(line orb.LineString) orb.LineString {
	ans := make(orb.LineString, len(line))
	for i := range line {
		ans[i] = line[len(line)-1-i]
	}
	return ans
}
