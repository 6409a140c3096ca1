package utils

import (
	"time"
	_ "time/tzdata"

	"github.com/bradfitz/latlong"
	"github.com/umahmood/haversine"
)

// DistanceMiles returns the great-circle distance between two points.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := haversine.Coord{Lat: lat1, Lon: lon1}
	p2 := haversine.Coord{Lat: lat2, Lon: lon2}
	mi, _ := haversine.Distance(p1, p2)
	return mi
}

// LocationAt resolves the time zone covering a coordinate, falling back to UTC.
func LocationAt(lat, lng float64) *time.Location {
	tzName := latlong.LookupZoneName(lat, lng)
	if tzName == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.UTC
	}
	return loc
}
