package entities

// ModelArtifact is an opaque serialized model read from disk. Its bytes are
// held but never interpreted.
type ModelArtifact struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
	Data   []byte `json:"-"`
}

// ModelArtifacts groups the clustering model and its categorical encoder
type ModelArtifacts struct {
	ClusterModel ModelArtifact `json:"cluster_model"`
	Encoder      ModelArtifact `json:"encoder"`
}
