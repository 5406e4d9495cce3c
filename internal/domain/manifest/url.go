package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRepo is returned when a repository identifier has no owner separator.
var ErrMalformedRepo = errors.New("repository must be in owner/name form")

const (
	// releaseDownloadBase is the GitHub host serving release assets.
	releaseDownloadBase = "https://github.com"

	// modelsPathSegment is the pages folder holding published models.
	modelsPathSegment = "models"
)

// PagesBase derives the GitHub Pages root URL from an "owner/name" identifier.
// Only the first separator is significant: the name keeps any further slashes.
func PagesBase(repo string) (string, error) {
	owner, name, found := strings.Cut(repo, "/")
	if !found {
		return "", fmt.Errorf("%q: %w", repo, ErrMalformedRepo)
	}

	return "https://" + owner + ".github.io/" + name, nil
}

// ReleaseAssetURL returns the download URL of a file attached to a release tag.
func ReleaseAssetURL(repo, tag, filename string) string {
	return releaseDownloadBase + "/" + repo + "/releases/download/" + tag + "/" + filename
}

// ModelURL returns the pages download URL of a model file.
func ModelURL(pagesBase, filename string) string {
	return pagesBase + "/" + modelsPathSegment + "/" + filename
}
