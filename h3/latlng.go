package h3

import (
	"math"

	"github.com/golang/geo/s1"

	"github.com/hexatiles/hexgrid/internal/faceijk"
)

// LatLng is a point on the sphere in radians.
type LatLng = faceijk.LatLng

// EarthRadiusKm is the authalic radius of the earth.
const EarthRadiusKm = 6371.007180918475

// NewLatLng returns a point from a latitude and longitude in degrees.
func NewLatLng(latDeg, lngDeg float64) LatLng {
	return LatLng{
		Lat: (s1.Angle(latDeg) * s1.Degree).Radians(),
		Lng: (s1.Angle(lngDeg) * s1.Degree).Radians(),
	}
}

// Degrees returns the latitude and longitude of g in degrees.
func Degrees(g LatLng) (lat, lng float64) {
	return s1.Angle(g.Lat).Degrees(), s1.Angle(g.Lng).Degrees()
}

func finite(g LatLng) bool {
	return !math.IsNaN(g.Lat) && !math.IsNaN(g.Lng) && !math.IsInf(g.Lat, 0) && !math.IsInf(g.Lng, 0)
}

// GreatCircleAngle returns the central angle between a and b.
func GreatCircleAngle(a, b LatLng) s1.Angle {
	return s1.Angle(faceijk.GreatCircleDistance(a, b))
}

// GreatCircleDistanceRads returns the angle between a and b in radians.
func GreatCircleDistanceRads(a, b LatLng) float64 {
	return GreatCircleAngle(a, b).Radians()
}

// GreatCircleDistanceKm returns the surface distance between a and b.
func GreatCircleDistanceKm(a, b LatLng) float64 {
	return GreatCircleAngle(a, b).Radians() * EarthRadiusKm
}

// GreatCircleDistanceM is GreatCircleDistanceKm in meters.
func GreatCircleDistanceM(a, b LatLng) float64 {
	return GreatCircleDistanceKm(a, b) * 1000
}
