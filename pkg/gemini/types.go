// Package gemini holds the request and result types shared by the Gemini
// backends, along with the parsers for the text the backends return.
package gemini

import "strings"

const (
	DefaultModel       = "gemini-2.0-flash-thinking-exp-1219"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 8192

	ImagenDefaultModel = "imagen-3.0-generate-002"
	VeoDefaultModel    = "veo-2.0-generate-001"
	ChirpDefaultVoice  = "en-US-Chirp3-HD-Zephyr"
	LyriaDefaultModel  = "lyria-002"
)

// GenerationOptions is a single text generation request. Nil fields fall back
// to the backend's configured defaults.
type GenerationOptions struct {
	Prompt       string
	SystemPrompt string
	Temperature  *float64
	MaxTokens    *int
	Images       [][]byte
	Documents    []Document
}

type DocumentType string

const (
	DocumentTypeText  DocumentType = "text"
	DocumentTypeImage DocumentType = "image"
	DocumentTypePDF   DocumentType = "pdf"
)

// Document is an attachment to a generation request.
type Document struct {
	Type     DocumentType
	Content  []byte
	MIMEType string
}

// DocumentTypeFor classifies a MIME type. Anything that is neither an image nor
// a PDF is treated as text.
func DocumentTypeFor(mimeType string) DocumentType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return DocumentTypeImage
	case mimeType == "application/pdf":
		return DocumentTypePDF
	default:
		return DocumentTypeText
	}
}

// Extension returns the file extension used when the document is written to disk.
func (d Document) Extension() string {
	switch d.Type {
	case DocumentTypePDF:
		return ".pdf"
	case DocumentTypeImage:
		return ".png"
	default:
		return ".txt"
	}
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type ChirpVoice struct {
	Name         string `json:"name"`
	LanguageCode string `json:"languageCode"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description,omitempty"`
}

// MediaInfo is the probe result of an audio or video file. Streams and Format
// keep every key the CLI reports.
type MediaInfo struct {
	Streams []map[string]any `json:"streams"`
	Format  map[string]any   `json:"format"`
}
