package tools

// Catalog returns every tool the server exposes, in listing order.
func Catalog() []*Tool {
	return []*Tool{
		generateTextTool(),
		searchWebTool(),
		analyzeDocumentTool(),
		generateImageTool(),
		generateVideoTool(),
		generatePDFTool(),
		imagenTool(),
		veoTextToVideoTool(),
		veoImageToVideoTool(),
		chirpTool(),
		listVoicesTool(),
		lyriaTool(),
		mediaInfoTool(),
		convertAudioTool(),
		videoToGIFTool(),
		combineTool(),
		overlayTool(),
		concatenateTool(),
		adjustVolumeTool(),
		layerAudioTool(),
	}
}
