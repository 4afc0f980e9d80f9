package extract

import (
	"path/filepath"
	"strings"

	"refinery/internal/domain"
)

// DetectKind maps a filename and declared media type to a content kind.
// Declared media type wins over the extension; unmatched inputs map to
// KindUnknown. Total, no side effects.
func DetectKind(filename, mediaType string) domain.ContentKind {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.HasPrefix(mediaType, "text/"),
		ext == ".txt", ext == ".md", ext == ".json":
		return domain.KindText
	case strings.HasPrefix(mediaType, "image/"),
		ext == ".png", ext == ".jpg", ext == ".jpeg", ext == ".gif", ext == ".bmp":
		return domain.KindImage
	case mediaType == "application/pdf", ext == ".pdf":
		return domain.KindPDF
	case mediaType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		ext == ".docx":
		return domain.KindDocx
	case strings.HasPrefix(mediaType, "video/"),
		ext == ".mp4", ext == ".avi", ext == ".mov", ext == ".mkv":
		return domain.KindVideo
	default:
		return domain.KindUnknown
	}
}
