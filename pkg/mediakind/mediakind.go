package mediakind

import (
	"errors"
	"strings"
)

// Kind is the derived media composition of a post's attached files.
type Kind string

const (
	SingleImage    Kind = "SINGLE_IMAGE"
	SingleVideo    Kind = "SINGLE_VIDEO"
	MultipleImages Kind = "MULTIPLE_IMAGES"
)

const MaxFiles = 10

// Resource types reported by the blob storage uploader.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

var (
	ErrNoFiles        = errors.New("at least one file is required")
	ErrTooManyFiles   = errors.New("maximum 10 files allowed")
	ErrMixedMedia     = errors.New("mixed media is not allowed")
	ErrMultipleVideos = errors.New("only one video per post is allowed")
)

// File describes one uploaded file as seen by the classifier. ResourceType
// is the uploader's declared type ("image" or "video") when known.
type File struct {
	URL          string
	ResourceType string
	Caption      string
}

// Classifier decides the media composition of a file set. It exists as an
// interface so the URL-sniffing fallback can be swapped for declared MIME
// detection without touching callers.
type Classifier interface {
	Classify(files []File) (Kind, error)
}

var videoMarkers = []string{".mp4", ".mov", ".avi", ".webm", "video"}

// URLClassifier classifies by the declared resource type when present and
// otherwise falls back to inspecting the URL for known video extensions or
// the substring "video". The fallback is kept for compatibility with
// existing stored URLs even though it is knowingly brittle.
type URLClassifier struct{}

func (URLClassifier) Classify(files []File) (Kind, error) {
	if len(files) == 0 {
		return "", ErrNoFiles
	}
	if len(files) > MaxFiles {
		return "", ErrTooManyFiles
	}

	videos := 0
	for _, f := range files {
		if isVideo(f) {
			videos++
		}
	}

	switch {
	case videos > 0 && videos < len(files):
		return "", ErrMixedMedia
	case videos > 0 && len(files) > 1:
		return "", ErrMultipleVideos
	case videos == 1:
		return SingleVideo, nil
	case len(files) == 1:
		return SingleImage, nil
	default:
		return MultipleImages, nil
	}
}

func isVideo(f File) bool {
	switch f.ResourceType {
	case ResourceVideo:
		return true
	case ResourceImage:
		return false
	}

	url := strings.ToLower(f.URL)
	for _, marker := range videoMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
