package domain

const (
	GeoJSONFeatureCollection = "FeatureCollection"
	GeoJSONFeature           = "Feature"
	GeometryPoint            = "Point"
	GeometryLineString       = "LineString"
	GeometryPolygon          = "Polygon"
)

// Geometry - GeoJSON геометрия; Coordinates это Position, LineString или Polygon
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func PointGeometry(p Position) Geometry {
	return Geometry{Type: GeometryPoint, Coordinates: p}
}

func LineGeometry(l LineString) Geometry {
	return Geometry{Type: GeometryLineString, Coordinates: l}
}

func PolygonGeometry(p Polygon) Geometry {
	return Geometry{Type: GeometryPolygon, Coordinates: p}
}

type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection(features []Feature) *FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return &FeatureCollection{Type: GeoJSONFeatureCollection, Features: features}
}
