// Package release builds download URLs for assets published on seaside's
// GitHub Releases page.
package release

import (
	"errors"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultRepoURL is the seaside GitHub repository.
const DefaultRepoURL = "https://github.com/RosieTheGhostie/seaside"

// ErrEmptyAsset indicates an asset name was not supplied.
var ErrEmptyAsset = errors.New("release asset name is empty")

// Resolver maps a version and asset name to a download URL.
type Resolver struct {
	// BaseURL is the repository URL; DefaultRepoURL when empty.
	BaseURL string
}

// NewResolver returns a Resolver rooted at baseURL.
func NewResolver(baseURL string) Resolver {
	return Resolver{BaseURL: baseURL}
}

// URL returns <repo>/releases/download/v<version>/<asset>.
// The version is formatted without a leading "v"; the template supplies it.
func (r Resolver) URL(version *semver.Version, asset string) (string, error) {
	if asset == "" {
		return "", ErrEmptyAsset
	}
	if version == nil {
		return "", errors.New("release version is nil")
	}

	base := r.BaseURL
	if base == "" {
		base = DefaultRepoURL
	}
	base = strings.TrimSuffix(base, "/")

	return base + "/releases/download/v" + version.String() + "/" + asset, nil
}
