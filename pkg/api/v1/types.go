package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

type ConfigSpec struct {
	// Root is the filesystem root that packages are installed into.
	// Defaults to "/".
	Root string `json:"root,omitempty"`
	// Repositories are tried in order when fetching the index or
	// package payloads. URLs may reference environment variables
	// (e.g. "https://${MPKG_MIRROR}/packages").
	Repositories []Repository `json:"repositories,omitempty"`
	// CacheDir overrides the download cache location. Defaults to the
	// user cache dir.
	CacheDir string `json:"cacheDir,omitempty"`
	// OSRelease overrides the detected platform release tag.
	OSRelease string `json:"osRelease,omitempty"`
}

type Repository struct {
	URL string `json:"url"`
}

type Config struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ConfigSpec `json:"spec"`
}
