package extract

import (
	"context"

	"refinery/internal/domain"
)

// extractImage runs tesseract over the image and returns the recognized
// text. An empty result is valid: non-textual images simply recognize
// nothing.
func (e *Engine) extractImage(ctx context.Context, path string) (string, error) {
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", e.wrap(domain.KindImage, err,
			"image file could not be processed; ensure it contains readable text")
	}
	return string(out), nil
}
