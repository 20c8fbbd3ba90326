package gemini

type ImageOptions struct {
	Prompt string
	Size   *string
}

type LegacyVideoOptions struct {
	Prompt   string
	Duration *int
}

type PDFOptions struct {
	Content  string
	Template *string
}

type ImagenOptions struct {
	Prompt          string
	Model           *string
	NumImages       *int
	AspectRatio     *string
	GCSBucketURI    *string
	OutputDirectory *string
}

// HasDestination reports whether the images are persisted rather than returned inline.
func (o ImagenOptions) HasDestination() bool {
	return isSet(o.GCSBucketURI) || isSet(o.OutputDirectory)
}

// ImagenResult holds either inline images or persisted paths, never both.
type ImagenResult struct {
	Images [][]byte
	Paths  []string
}

type VideoOptions struct {
	Prompt          string
	Bucket          string
	Model           *string
	NumVideos       *int
	AspectRatio     *string
	Duration        *int
	OutputDirectory *string
}

type ImageToVideoOptions struct {
	ImageURI        string
	Bucket          string
	Prompt          *string
	MIMEType        *string
	Model           *string
	NumVideos       *int
	AspectRatio     *string
	Duration        *int
	OutputDirectory *string
}

type VideoResult struct {
	Paths   []string
	GCSURIs []string
}

type SpeechOptions struct {
	Text                  string
	VoiceName             *string
	OutputFilenamePrefix  *string
	OutputDirectory       *string
	Pronunciations        []string
	PronunciationEncoding *string
}

func (o SpeechOptions) HasDestination() bool {
	return isSet(o.OutputDirectory)
}

type MusicOptions struct {
	Prompt          string
	NegativePrompt  *string
	Seed            *int
	SampleCount     *int
	OutputGCSBucket *string
	FileName        *string
	LocalPath       *string
	ModelID         *string
}

func (o MusicOptions) HasDestination() bool {
	return isSet(o.OutputGCSBucket) || isSet(o.LocalPath)
}

type ConvertOptions struct {
	InputPath  string
	OutputPath string
}

type VideoToGIFOptions struct {
	InputPath        string
	OutputPath       string
	ScaleWidthFactor *float64
	FPS              *int
}

type CombineOptions struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
}

type OverlayOptions struct {
	VideoPath   string
	ImagePath   string
	OutputPath  string
	XCoordinate float64
	YCoordinate float64
}

type MergeOptions struct {
	InputPaths []string
	OutputPath string
}

type VolumeOptions struct {
	InputPath  string
	OutputPath string
	VolumeDB   float64
}

func isSet(s *string) bool {
	return s != nil && *s != ""
}
