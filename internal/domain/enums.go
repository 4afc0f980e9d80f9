package domain

import (
	"path/filepath"
	"strings"
)

// ContentKind is the closed set of content categories a submission can
// resolve to. It is derived once per submission and selects the extraction
// strategy.
type ContentKind string

const (
	KindText    ContentKind = "text"
	KindImage   ContentKind = "image"
	KindPDF     ContentKind = "pdf"
	KindDocx    ContentKind = "docx"
	KindVideo   ContentKind = "video"
	KindUnknown ContentKind = "unknown"
)

// InputType is the source category recorded on a refinement.
type InputType string

const (
	InputText     InputType = "text"
	InputImage    InputType = "image"
	InputDocument InputType = "document"
	InputVideo    InputType = "video"
)

// ParseInputType validates a source_type hint, defaulting to text.
func ParseInputType(s string) InputType {
	switch InputType(s) {
	case InputImage, InputDocument, InputVideo:
		return InputType(s)
	default:
		return InputText
	}
}

// SchemaType maps a content kind to the input type stored on the record.
// PDF and DOCX both collapse to "document".
func (k ContentKind) SchemaType() InputType {
	switch k {
	case KindImage:
		return InputImage
	case KindPDF, KindDocx:
		return InputDocument
	case KindVideo:
		return InputVideo
	default:
		return InputText
	}
}

// AllowedUploadExtensions is the set of file extensions (without dot) the
// refine endpoint accepts.
var AllowedUploadExtensions = map[string]struct{}{
	"txt": {}, "md": {}, "pdf": {}, "docx": {},
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {},
	"mp4": {}, "avi": {}, "mov": {},
}

// AllowedUploadMediaTypes is the set of declared media types the refine
// endpoint accepts.
var AllowedUploadMediaTypes = map[string]struct{}{
	"text/plain":      {},
	"text/markdown":   {},
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/jpeg": {}, "image/png": {}, "image/gif": {}, "image/bmp": {},
	"video/mp4": {}, "video/avi": {}, "video/quicktime": {},
}

// UploadAllowed reports whether an upload passes the accept filter, by
// declared media type or by filename extension.
func UploadAllowed(filename, mediaType string) bool {
	if _, ok := AllowedUploadMediaTypes[mediaType]; ok {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	_, ok := AllowedUploadExtensions[ext]
	return ok
}
