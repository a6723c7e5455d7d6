package faceijk

import "math"

const epsilon = 1e-16

// LatLng is a point on the unit sphere, in radians.
type LatLng struct {
	Lat float64
	Lng float64
}

type vec3 struct {
	x, y, z float64
}

func toVec3(g LatLng) vec3 {
	r := math.Cos(g.Lat)
	return vec3{
		x: math.Cos(g.Lng) * r,
		y: math.Sin(g.Lng) * r,
		z: math.Sin(g.Lat),
	}
}

func squareDistance(a, b vec3) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	dz := a.z - b.z
	return dx*dx + dy*dy + dz*dz
}

// PosAngle normalizes an angle to [0, 2π).
func PosAngle(rads float64) float64 {
	tmp := rads
	if rads < 0.0 {
		tmp = rads + 2*math.Pi
	}
	if rads >= 2*math.Pi {
		tmp -= 2 * math.Pi
	}
	return tmp
}

// ConstrainLng wraps a longitude into [-π, π].
func ConstrainLng(lng float64) float64 {
	for lng > math.Pi {
		lng -= 2 * math.Pi
	}
	for lng < -math.Pi {
		lng += 2 * math.Pi
	}
	return lng
}

// ConstrainLat folds a latitude into [-π/2, π/2].
func ConstrainLat(lat float64) float64 {
	for lat > math.Pi/2 {
		lat -= math.Pi
	}
	for lat < -math.Pi/2 {
		lat += math.Pi
	}
	return lat
}

// Normalize returns g with its latitude and longitude constrained to their
// canonical ranges.
func (g LatLng) Normalize() LatLng {
	return LatLng{Lat: ConstrainLat(g.Lat), Lng: ConstrainLng(g.Lng)}
}

// AlmostEqual reports whether a and b are within threshold radians on both
// axes.
func (g LatLng) AlmostEqual(o LatLng, threshold float64) bool {
	return math.Abs(g.Lat-o.Lat) < threshold && math.Abs(g.Lng-o.Lng) < threshold
}

// GreatCircleDistance returns the haversine distance between a and b in
// radians.
func GreatCircleDistance(a, b LatLng) float64 {
	sinLat := math.Sin((b.Lat - a.Lat) * 0.5)
	sinLng := math.Sin((b.Lng - a.Lng) * 0.5)

	h := sinLat*sinLat + math.Cos(a.Lat)*math.Cos(b.Lat)*sinLng*sinLng
	if h > 1 {
		h = 1
	}
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Azimuth returns the initial bearing from a to b in radians.
func Azimuth(a, b LatLng) float64 {
	return math.Atan2(
		math.Cos(b.Lat)*math.Sin(b.Lng-a.Lng),
		math.Cos(a.Lat)*math.Sin(b.Lat)-math.Sin(a.Lat)*math.Cos(b.Lat)*math.Cos(b.Lng-a.Lng),
	)
}

// AzDistance returns the point reached by travelling distance radians from
// origin along azimuth az.
func AzDistance(origin LatLng, az, distance float64) LatLng {
	if distance < epsilon {
		return origin
	}

	var out LatLng
	az = PosAngle(az)

	// due north or south
	if az < epsilon || math.Abs(az-math.Pi) < epsilon {
		if az < epsilon {
			out.Lat = origin.Lat + distance
		} else {
			out.Lat = origin.Lat - distance
		}

		switch {
		case math.Abs(out.Lat-math.Pi/2) < epsilon:
			out.Lat = math.Pi / 2
			out.Lng = 0
		case math.Abs(out.Lat+math.Pi/2) < epsilon:
			out.Lat = -math.Pi / 2
			out.Lng = 0
		default:
			out.Lng = ConstrainLng(origin.Lng)
		}
		return out
	}

	sinLat := math.Sin(origin.Lat)*math.Cos(distance) + math.Cos(origin.Lat)*math.Sin(distance)*math.Cos(az)
	sinLat = clamp(sinLat)
	out.Lat = math.Asin(sinLat)

	switch {
	case math.Abs(out.Lat-math.Pi/2) < epsilon:
		out.Lat = math.Pi / 2
		out.Lng = 0
	case math.Abs(out.Lat+math.Pi/2) < epsilon:
		out.Lat = -math.Pi / 2
		out.Lng = 0
	default:
		invCosLat := 1.0 / math.Cos(out.Lat)
		sinLng := clamp(math.Sin(az) * math.Sin(distance) * invCosLat)
		cosLng := clamp((math.Cos(distance) - math.Sin(origin.Lat)*math.Sin(out.Lat)) / math.Cos(origin.Lat) * invCosLat)
		out.Lng = ConstrainLng(origin.Lng + math.Atan2(sinLng, cosLng))
	}
	return out
}

func clamp(x float64) float64 {
	if x > 1.0 {
		return 1.0
	}
	if x < -1.0 {
		return -1.0
	}
	return x
}
