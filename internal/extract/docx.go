package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"strings"

	"refinery/internal/domain"
)

// extractDocx reads word/document.xml from the DOCX ZIP archive and returns
// the raw text, one paragraph per line, formatting discarded.
func (e *Engine) extractDocx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", e.wrap(domain.KindDocx, err, "DOCX file appears to be corrupted or invalid")
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", e.wrap(domain.KindDocx,
			errors.New("word/document.xml not found in archive"),
			"DOCX file appears to be corrupted or invalid")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", e.wrap(domain.KindDocx, err, "DOCX file appears to be corrupted or invalid")
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	var para strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(para.String()); text != "" {
					if sb.Len() > 0 {
						sb.WriteByte('\n')
					}
					sb.WriteString(text)
				}
				para.Reset()
			}
		}
	}

	return sb.String(), nil
}
