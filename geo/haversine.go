package geo

import (
	"math"
)

// earthRadiusM is the spherical Earth approximation used for
// great-circle distances. Accurate to well under 1% at city scale.
const earthRadiusM = 6371000.0

// Distance returns the haversine great-circle distance in meters
// between two coordinate pairs.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}
