package props

import (
	"fmt"

	"github.com/hexatiles/hexgrid/h3"
)

// Computed attribute keys.
const (
	KeyCell       = "h3"
	KeyResolution = "resolution"
	KeyBaseCell   = "base_cell"
	KeyPentagon   = "pentagon"
	KeyAreaKm2    = "area_km2"
	KeyCenterLat  = "center_lat"
	KeyCenterLng  = "center_lng"
	KeyFaces      = "faces"
)

// ComputedKeys lists every attribute CellAttributes can produce.
var ComputedKeys = []string{
	KeyCell, KeyResolution, KeyBaseCell, KeyPentagon,
	KeyAreaKm2, KeyCenterLat, KeyCenterLng, KeyFaces,
}

// CellAttributes returns the computed attributes of c that pass f. A nil
// filter keeps them all.
func CellAttributes(c h3.Cell, f *Filter) (map[string]any, error) {
	want := func(key string) bool { return f == nil || f.Keep(key) }
	out := make(map[string]any, len(ComputedKeys))

	if want(KeyCell) {
		out[KeyCell] = c.String()
	}
	if want(KeyResolution) {
		out[KeyResolution] = c.Resolution()
	}
	if want(KeyBaseCell) {
		out[KeyBaseCell] = c.BaseCell()
	}
	if want(KeyPentagon) {
		out[KeyPentagon] = c.IsPentagon()
	}
	if want(KeyAreaKm2) {
		area, err := h3.CellAreaKm2(c)
		if err != nil {
			return nil, fmt.Errorf("cell area: %w", err)
		}
		out[KeyAreaKm2] = area
	}
	if want(KeyCenterLat) || want(KeyCenterLng) {
		center, err := c.LatLng()
		if err != nil {
			return nil, fmt.Errorf("cell center: %w", err)
		}
		lat, lng := h3.Degrees(center)
		if want(KeyCenterLat) {
			out[KeyCenterLat] = lat
		}
		if want(KeyCenterLng) {
			out[KeyCenterLng] = lng
		}
	}
	if want(KeyFaces) {
		faces, err := h3.GetIcosahedronFaces(c)
		if err != nil {
			return nil, fmt.Errorf("cell faces: %w", err)
		}
		out[KeyFaces] = faces
	}
	return out, nil
}
