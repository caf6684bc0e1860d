package vissim

import (
	"strconv"
	"strings"

	"github.com/LdDl/ch"
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// minEdgeWeight keeps zero-length links from producing zero-cost edges
const minEdgeWeight = 1e-3

// LinkGraph is a graph of links where connectors join end of one link with start of another.
// Vertices are link numbers.
type LinkGraph struct {
	graph    ch.Graph
	vertices map[int64]struct{}
	edges    int
}

// connectorEnds returns links joined by connector. Plain links have neither end point.
func connectorEnds(link *etree.Element) (from int, to int, ok bool) {
	fromEl := link.SelectElement("fromLinkEndPt")
	toEl := link.SelectElement("toLinkEndPt")
	if fromEl == nil || toEl == nil {
		return 0, 0, false
	}
	from, errFrom := laneLink(fromEl.SelectAttrValue("lane", ""))
	to, errTo := laneLink(toEl.SelectAttrValue("lane", ""))
	if errFrom != nil || errTo != nil {
		return 0, 0, false
	}
	return from, to, true
}

// laneLink extracts link number from lane reference "<link> <lane>"
func laneLink(lane string) (int, error) {
	fields := strings.Fields(lane)
	if len(fields) == 0 {
		return 0, errors.Wrapf(ErrTypeMismatch, "lane reference '%s'", lane)
	}
	return strconv.Atoi(fields[0])
}

// Graph builds link graph and prepares contraction hierarchies for it
func (links *Links) Graph() (*LinkGraph, error) {
	linkGraph := &LinkGraph{
		graph:    ch.Graph{},
		vertices: make(map[int64]struct{}),
	}
	lengths := make(map[int]float64)
	length := func(linkNo int) (float64, error) {
		if l, ok := lengths[linkNo]; ok {
			return l, nil
		}
		l, err := links.Length(linkNo)
		if err != nil {
			return 0, err
		}
		if l < minEdgeWeight {
			l = minEdgeWeight
		}
		lengths[linkNo] = l
		return l, nil
	}

	for _, link := range links.path.Child("link").resolve(links.doc.root()) {
		connectorNo, err := strconv.Atoi(link.SelectAttrValue("no", ""))
		if err != nil {
			continue
		}
		from, to, ok := connectorEnds(link)
		if !ok {
			continue
		}
		connectorLength, err := length(connectorNo)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't evaluate length of connector %d", connectorNo)
		}
		toLength, err := length(to)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't evaluate length of link %d", to)
		}
		if err := linkGraph.addEdge(int64(from), int64(connectorNo), connectorLength); err != nil {
			return nil, err
		}
		if err := linkGraph.addEdge(int64(connectorNo), int64(to), toLength); err != nil {
			return nil, err
		}
	}
	if linkGraph.edges > 0 {
		linkGraph.graph.PrepareContractionHierarchies()
	}
	links.doc.logger.Debug("Link graph prepared", "vertices", len(linkGraph.vertices), "edges", linkGraph.edges)
	return linkGraph, nil
}

func (linkGraph *LinkGraph) addEdge(source, target int64, weight float64) error {
	for _, vertex := range []int64{source, target} {
		if _, ok := linkGraph.vertices[vertex]; ok {
			continue
		}
		if err := linkGraph.graph.CreateVertex(vertex); err != nil {
			return errors.Wrapf(err, "Can't create vertex %d", vertex)
		}
		linkGraph.vertices[vertex] = struct{}{}
	}
	if err := linkGraph.graph.AddEdge(source, target, weight); err != nil {
		return errors.Wrapf(err, "Can't add edge %d -> %d", source, target)
	}
	linkGraph.edges++
	return nil
}

// LinkSeq returns links between origin and destination (both excluded) on the shortest path
// and path cost: lengths of every traversed link after the origin, destination included.
func (linkGraph *LinkGraph) LinkSeq(from, to int) ([]int, float64, error) {
	if from == to {
		return []int{}, 0, nil
	}
	_, okFrom := linkGraph.vertices[int64(from)]
	_, okTo := linkGraph.vertices[int64(to)]
	if !okFrom || !okTo {
		return nil, -1, errors.Wrapf(ErrNoRoute, "%d -> %d", from, to)
	}
	cost, path := linkGraph.graph.ShortestPath(int64(from), int64(to))
	if cost < 0 || len(path) < 2 {
		return nil, -1, errors.Wrapf(ErrNoRoute, "%d -> %d", from, to)
	}
	seq := make([]int, 0, len(path)-2)
	for _, vertex := range path[1 : len(path)-1] {
		seq = append(seq, int(vertex))
	}
	return seq, cost, nil
}

// SuggestRouteSeq returns link sequence of the shortest path from decision's link to destination link
func (routing *StaticRouting) SuggestRouteSeq(routingNo, destLink int) ([]int, error) {
	decision, err := routing.doc.GetAttributes(routing.routingPath(routingNo))
	if err != nil {
		return nil, err
	}
	origin, err := strconv.Atoi(decision["link"])
	if err != nil {
		return nil, errors.Wrapf(ErrTypeMismatch, "link of routing decision %d is '%s'", routingNo, decision["link"])
	}
	linkGraph, err := routing.links.Graph()
	if err != nil {
		return nil, err
	}
	seq, _, err := linkGraph.LinkSeq(origin, destLink)
	return seq, err
}
