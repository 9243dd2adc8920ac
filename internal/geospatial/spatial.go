// Package geospatial answers bounding-box and radius queries over a ramp
// collection loaded in memory.
package geospatial

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/boatramps/internal/feature"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// BBox represents a geographic bounding box.
type BBox struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// Validate rejects boxes with inverted edges or out-of-range values.
func (b BBox) Validate() error {
	if b.MinLat > b.MaxLat {
		return eris.Errorf("geo: south %v is north of north %v", b.MinLat, b.MaxLat)
	}
	if b.MinLng > b.MaxLng {
		return eris.Errorf("geo: west %v is east of east %v", b.MinLng, b.MaxLng)
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		return eris.Errorf("geo: latitude out of range [%v, %v]", b.MinLat, b.MaxLat)
	}
	if b.MinLng < -180 || b.MaxLng > 180 {
		return eris.Errorf("geo: longitude out of range [%v, %v]", b.MinLng, b.MaxLng)
	}
	return nil
}

// Contains reports whether the point lies inside the box, edges included.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// QueryBBox returns the features inside bbox in collection order.
func QueryBBox(fc *feature.Collection, bbox BBox) []*feature.Feature {
	var result []*feature.Feature
	for _, f := range fc.Features {
		if bbox.Contains(f.Lat(), f.Lng()) {
			result = append(result, f)
		}
	}
	return result
}

// QueryWithinDistance returns the features at most km kilometres from
// (lat, lng) in collection order.
func QueryWithinDistance(fc *feature.Collection, lat, lng, km float64) []*feature.Feature {
	var result []*feature.Feature
	for _, f := range fc.Features {
		if Distance(lat, lng, f.Lat(), f.Lng()) <= km {
			result = append(result, f)
		}
	}
	return result
}

// Distance returns the great-circle distance in kilometres between two
// latitude/longitude pairs.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
