package normalisers

import (
	"mime"
	"path/filepath"
	"strings"
)

// MIME types of the supported input formats.
const (
	MIMEMarkdown  = "text/markdown"
	MIMEPlainText = "text/plain"
	MIMEHTML      = "text/html"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEUnknown   = "application/octet-stream"
)

var extensionTypes = map[string]string{
	".md":       MIMEMarkdown,
	".markdown": MIMEMarkdown,
	".mdown":    MIMEMarkdown,
	".txt":      MIMEPlainText,
	".text":     MIMEPlainText,
	".html":     MIMEHTML,
	".htm":      MIMEHTML,
	".xhtml":    "application/xhtml+xml",
	".docx":     MIMEDocx,
}

// MIMETypeForPath guesses the MIME type of a file from its extension.
// Unknown extensions map to application/octet-stream.
func MIMETypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return baseMIMEType(t)
	}
	return MIMEUnknown
}
