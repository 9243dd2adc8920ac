// Package feature turns decoded boat ramp records into GeoJSON point features.
package feature

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/boatramps/internal/extract"
)

const (
	typeFeature           = "Feature"
	typeFeatureCollection = "FeatureCollection"
)

// Properties is the property bag of a ramp feature.
type Properties struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Feature is a boat ramp point. Geometry coordinates are (longitude, latitude).
type Feature struct {
	Properties Properties
	Geometry   *geom.Point
}

// Collection is an ordered GeoJSON FeatureCollection of ramps.
type Collection struct {
	Features []*Feature
}

type featureJSON struct {
	Type       string            `json:"type"`
	Properties Properties        `json:"properties"`
	Geometry   *geojson.Geometry `json:"geometry"`
}

type collectionJSON struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// New builds the feature for a record, swapping to longitude-first order.
func New(r extract.Record) *Feature {
	return &Feature{
		Properties: Properties{
			ID:   r.ID,
			Name: r.Name,
			URL:  r.URL,
		},
		Geometry: geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}),
	}
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{Features: []*Feature{}}
}

// Build wraps records into a collection in the order they are yielded.
// Duplicate identifiers are kept.
func Build(records iter.Seq[extract.Record]) *Collection {
	fc := NewCollection()
	for r := range records {
		fc.Features = append(fc.Features, New(r))
	}
	return fc
}

// Len returns the number of features.
func (c *Collection) Len() int { return len(c.Features) }

// Lng returns the feature longitude.
func (f *Feature) Lng() float64 { return f.Geometry.X() }

// Lat returns the feature latitude.
func (f *Feature) Lat() float64 { return f.Geometry.Y() }

// MarshalJSON encodes the feature as a GeoJSON Feature. Names are not HTML
// escaped here, so an encoder with SetEscapeHTML(false) writes them verbatim.
func (f *Feature) MarshalJSON() ([]byte, error) {
	if f.Geometry == nil {
		return nil, eris.Errorf("feature: %q has no geometry", f.Properties.ID)
	}
	g, err := geojson.Encode(f.Geometry)
	if err != nil {
		return nil, eris.Wrapf(err, "feature: encode geometry for %q", f.Properties.ID)
	}
	return marshalNoEscape(featureJSON{
		Type:       typeFeature,
		Properties: f.Properties,
		Geometry:   g,
	})
}

// UnmarshalJSON decodes a GeoJSON Feature with a Point geometry.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw featureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "feature: decode")
	}
	if raw.Type != typeFeature {
		return eris.Errorf("feature: unexpected type %q", raw.Type)
	}
	if raw.Geometry == nil {
		return eris.Errorf("feature: %q has no geometry", raw.Properties.ID)
	}
	g, err := raw.Geometry.Decode()
	if err != nil {
		return eris.Wrapf(err, "feature: decode geometry for %q", raw.Properties.ID)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return eris.Errorf("feature: %q geometry is %s, want Point", raw.Properties.ID, raw.Geometry.Type)
	}
	if p.Empty() {
		return eris.Errorf("feature: %q has an empty point", raw.Properties.ID)
	}
	f.Properties = raw.Properties
	f.Geometry = p
	return nil
}

// MarshalJSON encodes the collection envelope. An empty collection encodes
// its features as [].
func (c *Collection) MarshalJSON() ([]byte, error) {
	features := c.Features
	if features == nil {
		features = []*Feature{}
	}
	return marshalNoEscape(collectionJSON{
		Type:     typeFeatureCollection,
		Features: features,
	})
}

// UnmarshalJSON decodes a GeoJSON FeatureCollection of ramp points.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "feature: decode collection")
	}
	if raw.Type != typeFeatureCollection {
		return eris.Errorf("feature: unexpected collection type %q", raw.Type)
	}
	for i, f := range raw.Features {
		if f == nil {
			return eris.Errorf("feature: collection entry %d is null", i)
		}
	}
	c.Features = raw.Features
	if c.Features == nil {
		c.Features = []*Feature{}
	}
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
