package manifest

// Fields are declared in alphabetical order of their JSON keys so the encoded
// document has sorted keys at every level.

// UpdateDescriptor describes the release update artifact.
type UpdateDescriptor struct {
	// SHA256 is the lowercase hex digest of the artifact bytes.
	SHA256 string `json:"sha256"`
	// Size is the artifact length in bytes.
	Size int64 `json:"size"`
	// Tag is the release tag the artifact is attached to.
	Tag string `json:"tag"`
	// URL is the release asset download location.
	URL string `json:"url"`
}

// ModelDescriptor describes one model file published on the pages site.
type ModelDescriptor struct {
	// Name is the base name of the model file.
	Name string `json:"name"`
	// SHA256 is the lowercase hex digest of the file bytes.
	SHA256 string `json:"sha256"`
	// Size is the file length in bytes.
	Size int64 `json:"size"`
	// URL is the pages download location.
	URL string `json:"url"`
}

// Manifest is the document consumed by clients to discover a release.
type Manifest struct {
	// GeneratedAt is the ISO-8601 UTC generation timestamp.
	GeneratedAt string `json:"generated_at"`
	// Models is ordered by Name.
	Models []ModelDescriptor `json:"models"`
	// Repo is the "owner/name" repository identifier.
	Repo string `json:"repo"`
	// Update describes the release artifact.
	Update UpdateDescriptor `json:"update"`
}

// FindModel returns the model entry with the provided name.
func (m *Manifest) FindModel(name string) (ModelDescriptor, bool) {
	for _, model := range m.Models {
		if model.Name == name {
			return model, true
		}
	}

	return ModelDescriptor{}, false
}
