package mime

var Extension = map[string]MIME{
	".html":  HTML,
	".htm":   HTML,
	".css":   CSS,
	".js":    JS,
	".mjs":   JS,
	".json":  JSON,
	".xml":   XML,
	".txt":   Plain,
	".pdf":   PDF,
	".zip":   ZIP,
	".gz":    GZIP,
	".wasm":  WASM,
	".png":   PNG,
	".jpg":   JPEG,
	".jpeg":  JPEG,
	".gif":   GIF,
	".svg":   SVG,
	".ico":   ICO,
	".webp":  WEBP,
	".avif":  AVIF,
	".woff":  WOFF,
	".woff2": WOFF2,
	".mp4":   MP4,
	".mp3":   MP3,
}

var textual = map[MIME]struct{}{
	HTML:  {},
	CSS:   {},
	JS:    {},
	JSON:  {},
	XML:   {},
	Plain: {},
	SVG:   {},
}
