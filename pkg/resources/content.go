package resources

import (
	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
)

const capabilitiesText = `GEMINI CAPABILITIES:

1. CONTEXT WINDOW: 1M tokens (5x larger than a 200K window)
2. MULTIMODAL GENERATION: a complete media suite
   • Imagen 3: State-of-the-art image generation
   • Veo 2: High-quality video generation (text & image to video)
   • Chirp 3 HD: Ultra-realistic speech synthesis (27+ languages)
   • Lyria: Professional music generation
3. GOOGLE SEARCH: Direct integration with Google Search
4. DOCUMENT ANALYSIS: Strong at PDFs, tables, and scanned documents
5. REASONING: Latest thinking models with advanced reasoning
6. MATH & CODE: Strong performance on technical tasks
7. MEDIA MANIPULATION: Complete FFmpeg toolkit for audio/video editing

USE GEMINI WHEN:
- Processing documents larger than 200K tokens
- Needing ANY media generation (images, videos, audio, music)
- Requiring up-to-date web search results
- Analyzing complex PDFs or scanned documents
- Working on advanced math or coding problems
- Creating multimedia content or productions
- Processing, converting, or editing media files`

const mediaCapabilitiesText = `# Complete Media Generation Suite

## Image Generation (Imagen 3)
- **Model**: ` + gemini.ImagenDefaultModel + `
- **Features**: Photorealistic quality, multiple aspect ratios, batch generation
- **Use Cases**: Illustrations, product images, concept art, visual content

## Video Generation (Veo 2)
- **Model**: ` + gemini.VeoDefaultModel + ` (Veo 3.0 preview available)
- **Text-to-Video**: Create videos from descriptions
- **Image-to-Video**: Animate static images
- **Duration**: 5-8 seconds per generation
- **Aspects**: 16:9, 9:16, widescreen, portrait

## Audio Synthesis (Chirp 3 HD)
- **Languages**: 27+ including English, Spanish, French, German, Japanese
- **Voices**: Multiple natural voices per language
- **Features**: Custom pronunciation (IPA/X-SAMPA), natural prosody
- **Quality**: 24kHz WAV, broadcast quality

## Music Generation (Lyria)
- **Model**: ` + gemini.LyriaDefaultModel + `
- **Styles**: Any genre or mood from text description
- **Control**: Negative prompts, seed values for consistency
- **Output**: High-quality WAV audio

## Media Manipulation (AVTool/FFmpeg)
- **Audio**: Convert formats, adjust volume, layer tracks, concatenate
- **Video**: Create GIFs, overlay images, combine with audio
- **Analysis**: Extract metadata, codec info, duration, resolution
- **Production**: Complete post-production workflows

## Workflow Examples
1. **Video Production**: Generate video → Add music → Overlay logo → Export
2. **Podcast Creation**: Generate music → Synthesize speech → Layer & mix
3. **Content Creation**: Generate images → Create video → Add narration
4. **Localization**: Original video → Extract → New narration → Recombine`

const usageTipsText = `# When to Use Gemini

## Media Generation
- **Images**: generate with Imagen 3
- **Videos**: generate or animate with Veo 2
- **Music**: compose with Lyria
- **Speech**: synthesize with Chirp 3 HD
- **Audio Editing**: process files with the AVTool/FFmpeg tools

## Large Context Processing
- **Use Gemini** when dealing with codebases, documents, or data exceeding 200K tokens
- Gemini's 1M token window handles entire repositories or book-length documents

## Web Search & Research
- **Use Gemini** for up-to-date information via Google Search integration
- Better for current events, latest documentation, or real-time data

## Document Analysis
- **Use Gemini** for complex PDFs, especially with tables or scanned content
- Strong OCR and layout understanding capabilities

## Technical Tasks
- **Use Gemini** for advanced mathematics or complex coding challenges
- Often performs well on algorithmic problems and mathematical proofs

## Multimedia Projects
- **Use Gemini** for ANY project involving:
  - Creating visual content
  - Producing videos or animations
  - Generating or editing audio
  - Building interactive media

## Keep Using Your Primary Assistant For
- General conversation and writing
- Tasks within a 200K token limit that don't need media
- Pure text analysis without media requirements`

// ModelInfo is the document served at gemini://model-info.
type ModelInfo struct {
	TextGeneration  TextModelInfo  `json:"textGeneration"`
	ImageGeneration MediaModelInfo `json:"imageGeneration"`
	VideoGeneration MediaModelInfo `json:"videoGeneration"`
	AudioSynthesis  AudioModelInfo `json:"audioSynthesis"`
	MusicGeneration MusicModelInfo `json:"musicGeneration"`
	ConfiguredVia   string         `json:"configuredVia"`
}

type TextModelInfo struct {
	Model         string `json:"model"`
	DefaultModel  string `json:"defaultModel"`
	ContextWindow string `json:"contextWindow"`
}

type MediaModelInfo struct {
	Model        string   `json:"model"`
	Capabilities []string `json:"capabilities"`
	Preview      string   `json:"preview,omitempty"`
}

type AudioModelInfo struct {
	Model        string   `json:"model"`
	DefaultVoice string   `json:"defaultVoice"`
	Languages    string   `json:"languages"`
	Features     []string `json:"features"`
}

type MusicModelInfo struct {
	Model    string   `json:"model"`
	Output   string   `json:"output"`
	Features []string `json:"features"`
}

func modelInfo(model, configuredVia string) ModelInfo {
	if model == "" {
		model = gemini.DefaultModel
	}
	return ModelInfo{
		TextGeneration: TextModelInfo{
			Model:         model,
			DefaultModel:  gemini.DefaultModel,
			ContextWindow: "1M tokens",
		},
		ImageGeneration: MediaModelInfo{
			Model:        gemini.ImagenDefaultModel,
			Capabilities: []string{"text-to-image", "multiple-aspects", "batch-generation"},
		},
		VideoGeneration: MediaModelInfo{
			Model:        gemini.VeoDefaultModel,
			Capabilities: []string{"text-to-video", "image-to-video", "5-8 seconds", "multiple-aspects"},
			Preview:      "veo-3.0-generate-preview available",
		},
		AudioSynthesis: AudioModelInfo{
			Model:        "Chirp 3 HD",
			DefaultVoice: gemini.ChirpDefaultVoice,
			Languages:    "27+",
			Features:     []string{"custom-pronunciation", "IPA/X-SAMPA support"},
		},
		MusicGeneration: MusicModelInfo{
			Model:    gemini.LyriaDefaultModel,
			Output:   "WAV audio",
			Features: []string{"text-to-music", "negative-prompts", "seed-control"},
		},
		ConfiguredVia: configuredVia,
	}
}
