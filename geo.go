package vissim

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthR = 20037508.34
)

// epsg3857To4326 converts Web Mercator meters into longitude and latitude
func epsg3857To4326(x, y float64) (float64, float64) {
	lon := x * 180 / earthR
	lat := math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}

// epsg4326To3857 converts longitude and latitude into Web Mercator meters
func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func pointToEuclidean(pt orb.Point) orb.Point {
	x, y := epsg4326To3857(pt.Lon(), pt.Lat())
	return orb.Point{x, y}
}

func lineToSpherical(line orb.LineString) orb.LineString {
	ans := make(orb.LineString, len(line))
	for i, pt := range line {
		lon, lat := epsg3857To4326(pt.X(), pt.Y())
		ans[i] = orb.Point{lon, lat}
	}
	return ans
}
