package mime

import (
	"path/filepath"
	"strings"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JS          MIME = "application/javascript"
	JSON        MIME = "application/json"
	XML         MIME = "application/xml"
	PDF         MIME = "application/pdf"
	ZIP         MIME = "application/zip"
	GZIP        MIME = "application/gzip"
	WASM        MIME = "application/wasm"
	PNG         MIME = "image/png"
	JPEG        MIME = "image/jpeg"
	GIF         MIME = "image/gif"
	SVG         MIME = "image/svg+xml"
	ICO         MIME = "image/x-icon"
	WEBP        MIME = "image/webp"
	AVIF        MIME = "image/avif"
	WOFF        MIME = "font/woff"
	WOFF2       MIME = "font/woff2"
	MP4         MIME = "video/mp4"
	MP3         MIME = "audio/mpeg"
)

// UTF8 is appended to textual MIMEs as a charset parameter.
const UTF8 = "utf-8"

// ByExtension returns the MIME registered for the extension of the file. The lookup is
// case-insensitive. Unknown or missing extensions result in OctetStream.
func ByExtension(filename string) MIME {
	ext := strings.ToLower(filepath.Ext(filename))
	if m, found := Extension[ext]; found {
		return m
	}

	return OctetStream
}

// WithCharset returns the Content-Type value for the MIME, carrying the charset parameter
// if the MIME is textual.
func WithCharset(m MIME) string {
	if _, textual := textual[m]; textual {
		return m + "; charset=" + UTF8
	}

	return m
}
