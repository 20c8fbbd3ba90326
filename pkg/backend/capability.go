package backend

// Capability is a group of tools that is always served by the same backend.
type Capability string

const (
	CapabilityText     Capability = "text generation"
	CapabilitySearch   Capability = "web search"
	CapabilityDocument Capability = "document analysis"
	CapabilityImage    Capability = "image generation"
	CapabilityVideo    Capability = "video generation"
	CapabilityPDF      Capability = "PDF generation"
	CapabilitySpeech   Capability = "speech synthesis"
	CapabilityMusic    Capability = "music generation"
	CapabilityMedia    Capability = "media processing"
)

// AllCapabilities lists every capability in display order.
var AllCapabilities = []Capability{
	CapabilityText,
	CapabilitySearch,
	CapabilityDocument,
	CapabilityImage,
	CapabilityVideo,
	CapabilityPDF,
	CapabilitySpeech,
	CapabilityMusic,
	CapabilityMedia,
}

// APICapabilities is what the API client implements, and the default set the
// API backend declares.
var APICapabilities = []Capability{
	CapabilityText,
	CapabilitySearch,
	CapabilityDocument,
}

// Kind tags which backend serves a capability.
type Kind int

const (
	KindNone Kind = iota
	KindAPI
	KindProcess
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "API"
	case KindProcess:
		return "CLI"
	default:
		return "none"
	}
}
