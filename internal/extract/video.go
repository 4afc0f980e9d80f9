package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"refinery/internal/domain"
)

// PlaceholderTranscription is returned for video submissions until a real
// speech-to-text backend exists. The audio transcode still runs so the
// temp-file lifecycle matches the eventual implementation.
const PlaceholderTranscription = "Mock transcription: This is a sample transcription from the video file. " +
	"In production, implement proper audio transcription service."

// extractVideo transcodes the video's audio track to a mono 16kHz PCM wav
// next to the source, then returns the placeholder transcription. The wav
// is deleted on every exit path.
func (e *Engine) extractVideo(ctx context.Context, path string) (string, error) {
	audioPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	defer func() {
		_ = os.Remove(audioPath)
	}()

	_, _, err := e.runner.Run(ctx, e.cfg.FFmpeg,
		"-y", "-i", path,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		audioPath,
	)
	if err != nil {
		return "", e.wrap(domain.KindVideo, err,
			"video file could not be processed; audio track extraction failed")
	}

	return PlaceholderTranscription, nil
}
