package eta

import (
	"fmt"
	"math"

	"github.com/example/campus-shuttle/internal/models"
)

// Naive ETA: distance / speed_mps. Good enough for a campus-scale
// shuttle; a routing engine would be overkill here.
func EstimateSeconds(from, to models.Coord, speedMps float64) float64 {
	if speedMps <= 0 {
		speedMps = 4.0 // slow campus buggy
	}
	d := Haversine(from.Lat, from.Lon, to.Lat, to.Lon)
	return d / speedMps
}

// Label renders an estimate as the "N min" text shown next to a
// vehicle, never below one minute.
func Label(seconds float64) string {
	mins := int(math.Ceil(seconds / 60))
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d min", mins)
}

// Haversine distance in meters
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
