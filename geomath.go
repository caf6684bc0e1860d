package vissim

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Check if two segments intersects and returns intersections Point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, errors.New("The lines are parallel")
	}

	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// offsetCurve shifts line by distance: positive values go to the left of travel direction.
// Zero-length segments are skipped.
func offsetCurve(line orb.LineString, distance float64) orb.LineString {
	var segments [][2]orb.Point
	for i := 1; i < len(line); i++ {
		p1 := line[i-1]
		p2 := line[i]
		vec := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}
		vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
		if vecLen == 0 {
			continue
		}
		vec = [2]float64{vec[0] / vecLen, vec[1] / vecLen}
		// Rotate the vector by 90 degrees and scale it
		offset := [2]float64{-vec[1] * distance, vec[0] * distance}
		op1 := orb.Point{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := orb.Point{p2[0] + offset[0], p2[1] + offset[1]}
		segments = append(segments, [2]orb.Point{op1, op2})
	}
	if len(segments) == 0 {
		return line.Clone()
	}

	result := orb.LineString{segments[0][0]}
	for i := 1; i < len(segments); i++ {
		intersection, err := intersect(segments[i-1][0], segments[i-1][1], segments[i][0], segments[i][1])
		if err != nil {
			continue
		}
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}

// LaneCenterlines returns center line of every lane of the link beginning with lane 1 (rightmost).
// Link geometry is treated as the middle of the carriageway.
func (links *Links) LaneCenterlines(linkNo int) ([]orb.LineString, error) {
	line, err := links.LineString(linkNo)
	if err != nil {
		return nil, err
	}
	widths, err := links.LaneWidths(linkNo)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	ans := make([]orb.LineString, len(widths))
	right := -total / 2.0
	for i, w := range widths {
		ans[i] = offsetCurve(line, right+w/2.0)
		right += w
	}
	return ans, nil
}
