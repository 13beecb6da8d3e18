package entities

// GeoJSON object types
const (
	GeoJSONFeatureCollection = "FeatureCollection"
	GeoJSONFeature           = "Feature"
	GeoJSONPoint             = "Point"
)

// PointGeometry is a GeoJSON point; coordinates are [longitude, latitude]
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Feature is a GeoJSON feature
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   PointGeometry          `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// MapView is one map on the map page
type MapView struct {
	Title    string              `json:"title"`
	Selected *RecommendationCard `json:"selected,omitempty"`
	Points   FeatureCollection   `json:"points"`
}

// NewPointFeature builds a point feature at the given coordinates
func NewPointFeature(lat, lon float64, properties map[string]interface{}) Feature {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	return Feature{
		Type: GeoJSONFeature,
		Geometry: PointGeometry{
			Type:        GeoJSONPoint,
			Coordinates: [2]float64{lon, lat},
		},
		Properties: properties,
	}
}
