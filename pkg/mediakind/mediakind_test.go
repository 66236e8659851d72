package mediakind_test

import (
	"errors"
	"testing"

	"anoa.com/postpilot/pkg/mediakind"
)

func TestClassifySingleImage(t *testing.T) {
	kind, err := mediakind.URLClassifier{}.Classify([]mediakind.File{
		{URL: "https://res.example.com/upload/abc.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != mediakind.SingleImage {
		t.Fatalf("expected SINGLE_IMAGE got %s", kind)
	}
}

func TestClassifySingleVideoByExtension(t *testing.T) {
	for _, url := range []string{
		"https://res.example.com/upload/clip.mp4",
		"https://res.example.com/upload/clip.mov",
		"https://res.example.com/upload/clip.avi",
		"https://res.example.com/upload/clip.webm",
		"https://res.example.com/video/upload/clip",
	} {
		kind, err := mediakind.URLClassifier{}.Classify([]mediakind.File{{URL: url}})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", url, err)
		}
		if kind != mediakind.SingleVideo {
			t.Fatalf("%s: expected SINGLE_VIDEO got %s", url, kind)
		}
	}
}

func TestClassifyMultipleImages(t *testing.T) {
	kind, err := mediakind.URLClassifier{}.Classify([]mediakind.File{
		{URL: "https://res.example.com/upload/a.jpg"},
		{URL: "https://res.example.com/upload/b.png"},
		{URL: "https://res.example.com/upload/c.webp"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != mediakind.MultipleImages {
		t.Fatalf("expected MULTIPLE_IMAGES got %s", kind)
	}
}

func TestClassifyRejectsMixedMedia(t *testing.T) {
	_, err := mediakind.URLClassifier{}.Classify([]mediakind.File{
		{URL: "https://res.example.com/upload/a.jpg"},
		{URL: "https://res.example.com/upload/clip.mp4"},
	})
	if !errors.Is(err, mediakind.ErrMixedMedia) {
		t.Fatalf("expected ErrMixedMedia got %v", err)
	}
}

func TestClassifyRejectsMultipleVideos(t *testing.T) {
	_, err := mediakind.URLClassifier{}.Classify([]mediakind.File{
		{URL: "https://res.example.com/upload/a.mp4"},
		{URL: "https://res.example.com/upload/b.mov"},
	})
	if !errors.Is(err, mediakind.ErrMultipleVideos) {
		t.Fatalf("expected ErrMultipleVideos got %v", err)
	}
}

func TestClassifyDeclaredTypeWinsOverURL(t *testing.T) {
	// URL says nothing, uploader tagged it as video.
	kind, err := mediakind.URLClassifier{}.Classify([]mediakind.File{
		{URL: "https://res.example.com/upload/opaque-id", ResourceType: mediakind.ResourceVideo},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != mediakind.SingleVideo {
		t.Fatalf("expected SINGLE_VIDEO got %s", kind)
	}

	// URL contains "video" but uploader tagged it as image.
	kind, err = mediakind.URLClassifier{}.Classify([]mediakind.File{
		{URL: "https://res.example.com/my-video-thumbnail.jpg", ResourceType: mediakind.ResourceImage},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != mediakind.SingleImage {
		t.Fatalf("expected SINGLE_IMAGE got %s", kind)
	}
}

func TestClassifyRejectsEmptyAndOversized(t *testing.T) {
	if _, err := (mediakind.URLClassifier{}).Classify(nil); !errors.Is(err, mediakind.ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles got %v", err)
	}

	files := make([]mediakind.File, mediakind.MaxFiles+1)
	for i := range files {
		files[i] = mediakind.File{URL: "https://res.example.com/upload/a.jpg"}
	}
	if _, err := (mediakind.URLClassifier{}).Classify(files); !errors.Is(err, mediakind.ErrTooManyFiles) {
		t.Fatalf("expected ErrTooManyFiles got %v", err)
	}
}
