package tools

import (
	"path/filepath"
	"strings"
)

// PersistedMedia is returned by media tools when a destination was given.
// It references the written files and never carries the media itself.
type PersistedMedia struct {
	Success bool     `json:"success"`
	Path    string   `json:"path,omitempty"`
	Paths   []string `json:"paths"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
}

func persisted(paths []string, message string) PersistedMedia {
	if paths == nil {
		paths = []string{}
	}
	return PersistedMedia{Success: true, Paths: paths, Count: len(paths), Message: message}
}

// persistedFile is a PersistedMedia for a single derived output path.
func persistedFile(path, message string) PersistedMedia {
	out := persisted([]string{path}, message)
	out.Path = path
	return out
}

type InlineImages struct {
	Images []string `json:"images"`
	Count  int      `json:"count"`
}

type InlineAudio struct {
	Audio      string `json:"audio"`
	Format     string `json:"format"`
	SampleRate int    `json:"sampleRate,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
}

type VideoPaths struct {
	Success bool     `json:"success"`
	Videos  []string `json:"videos"`
	GCSURIs []string `json:"gcsUris"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
}

// OperationResult is returned by the media processing tools.
type OperationResult struct {
	Success    bool   `json:"success"`
	OutputPath string `json:"outputPath"`
	Message    string `json:"message"`
}

// joinDestination appends name to a local directory or a gs:// URI.
func joinDestination(dest, name string) string {
	if strings.HasPrefix(dest, "gs://") {
		return strings.TrimRight(dest, "/") + "/" + name
	}
	return filepath.Join(dest, name)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func nonEmptyOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
