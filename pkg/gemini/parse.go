package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
)

const SearchFallbackTitle = "Search Results"

// ParseSearchResults decodes a JSON array of results. Output that is not such an
// array, including plain text, is wrapped into a single result whose snippet is
// the raw output. It never fails.
func ParseSearchResults(raw string) []SearchResult {
	var results []SearchResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &results); err == nil && results != nil {
		return results
	}

	return []SearchResult{
		{
			Title:   SearchFallbackTitle,
			URL:     "",
			Snippet: raw,
		},
	}
}

var voiceLine = regexp.MustCompile(`Voice: (.+) \((.+)\)`)

// ParseChirpVoices decodes a JSON voice list, falling back to scanning
// "Voice: <name> (<language>)" lines.
func ParseChirpVoices(raw string) []ChirpVoice {
	var voices []ChirpVoice
	if err := json.Unmarshal([]byte(raw), &voices); err == nil && voices != nil {
		return voices
	}

	voices = []ChirpVoice{}
	for _, line := range strings.Split(raw, "\n") {
		m := voiceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		voices = append(voices, ChirpVoice{
			Name:         m[1],
			LanguageCode: m[2],
			DisplayName:  m[1],
		})
	}
	return voices
}

// ParseMediaInfo decodes a probe result. Unlike search output there is no text
// form, so anything else is malformed.
func ParseMediaInfo(raw string) (*MediaInfo, error) {
	var info MediaInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, &invocation.MalformedOutputError{Reason: "media info is not valid JSON", Err: err}
	}
	if info.Format == nil {
		return nil, &invocation.MalformedOutputError{Reason: "media info has no format section"}
	}
	if info.Streams == nil {
		info.Streams = []map[string]any{}
	}
	return &info, nil
}

var gcsURI = regexp.MustCompile(`gs://\S+`)

// GCSURIs returns every gs:// token in output, in order of appearance.
func GCSURIs(output string) []string {
	uris := gcsURI.FindAllString(output, -1)
	if uris == nil {
		return []string{}
	}
	return uris
}

// SavedPaths returns the text following "Saved to: " on each line that has it.
func SavedPaths(output string) []string {
	paths := []string{}
	for _, line := range strings.Split(output, "\n") {
		if _, after, ok := strings.Cut(line, "Saved to: "); ok {
			paths = append(paths, strings.TrimSpace(after))
		}
	}
	return paths
}

// PersistedImagePaths extracts the locations reported for saved images. A line
// qualifies when it mentions "Saved" or a gs:// URI; the URI itself, or the text
// after the last ": ", is taken as the location.
func PersistedImagePaths(output string) []string {
	paths := []string{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "Saved") && !strings.Contains(line, "gs://") {
			continue
		}
		if uri := gcsURI.FindString(line); uri != "" {
			paths = append(paths, uri)
			continue
		}
		if idx := strings.LastIndex(line, ": "); idx >= 0 {
			paths = append(paths, strings.TrimSpace(line[idx+2:]))
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

// InlineImages decodes each "data:image/...;base64,..." line of output.
func InlineImages(output string) ([][]byte, error) {
	images := [][]byte{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:image") {
			continue
		}
		data, err := DecodeDataURI(line)
		if err != nil {
			return nil, &invocation.MalformedOutputError{Reason: "inline image is not valid base64", Err: err}
		}
		images = append(images, data)
	}
	return images, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// DataURI renders data as a base64 data URI of the given MIME type.
func DataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encode(data))
}
