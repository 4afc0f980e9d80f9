package extract_test

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/extract"
)

// stubRunner records invocations and returns canned output.
type stubRunner struct {
	stdout []byte
	err    error
	name   string
	args   []string
	onRun  func(name string, args []string)
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	if s.onRun != nil {
		s.onRun(name, args)
	}
	return s.stdout, nil, s.err
}

func newEngine(runner *stubRunner) *extract.Engine {
	return extract.NewEngineWithRunner(config.ExtractConfig{TimeoutSecs: 5}, runner)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtract_MissingFile(t *testing.T) {
	e := newEngine(&stubRunner{})
	_, err := e.Extract(context.Background(), "/nonexistent/file.txt", domain.KindText)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestExtract_EmptyFile(t *testing.T) {
	e := newEngine(&stubRunner{})
	path := writeFile(t, "empty.txt", "")
	_, err := e.Extract(context.Background(), path, domain.KindText)
	assert.ErrorIs(t, err, domain.ErrSourceEmpty)
}

func TestExtract_UnknownKind(t *testing.T) {
	e := newEngine(&stubRunner{})
	path := writeFile(t, "blob.bin", "data")
	_, err := e.Extract(context.Background(), path, domain.KindUnknown)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtract_Text(t *testing.T) {
	e := newEngine(&stubRunner{})
	path := writeFile(t, "req.txt", "Build a todo app\nwith reminders")
	text, err := e.Extract(context.Background(), path, domain.KindText)
	require.NoError(t, err)
	assert.Equal(t, "Build a todo app\nwith reminders", text)
}

func TestExtract_Image(t *testing.T) {
	runner := &stubRunner{stdout: []byte("recognized text")}
	e := newEngine(runner)
	path := writeFile(t, "scan.png", "fake-png-bytes")

	text, err := e.Extract(context.Background(), path, domain.KindImage)
	require.NoError(t, err)
	assert.Equal(t, "recognized text", text)
	assert.Equal(t, "tesseract", runner.name)
	assert.Equal(t, []string{path, "stdout", "-l", "eng"}, runner.args)
}

func TestExtract_ImageEmptyOutputIsValid(t *testing.T) {
	e := newEngine(&stubRunner{stdout: []byte("")})
	path := writeFile(t, "blank.png", "fake-png-bytes")

	text, err := e.Extract(context.Background(), path, domain.KindImage)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_ImageOCRFailure(t *testing.T) {
	e := newEngine(&stubRunner{err: errors.New("tesseract: not a supported image")})
	path := writeFile(t, "bad.png", "not really a png")

	_, err := e.Extract(context.Background(), path, domain.KindImage)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "readable text")
	assert.NotContains(t, err.Error(), "tesseract")
}

func TestExtract_Docx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
    <w:p></w:p>
  </w:body>
</w:document>`)

	e := newEngine(&stubRunner{})
	text, err := e.Extract(context.Background(), path, domain.KindDocx)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtract_DocxCorrupt(t *testing.T) {
	e := newEngine(&stubRunner{})
	path := writeFile(t, "broken.docx", "this is not a zip archive")

	_, err := e.Extract(context.Background(), path, domain.KindDocx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "corrupted or invalid")
}

func TestExtract_DocxMissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	e := newEngine(&stubRunner{})
	_, err = e.Extract(context.Background(), path, domain.KindDocx)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_VideoReturnsPlaceholder(t *testing.T) {
	var wavCreated string
	runner := &stubRunner{}
	runner.onRun = func(name string, args []string) {
		// ffmpeg writes the output path given as the last argument.
		wavCreated = args[len(args)-1]
		require.NoError(t, os.WriteFile(wavCreated, []byte("RIFF"), 0o644))
	}

	e := newEngine(runner)
	path := writeFile(t, "demo.mp4", "fake-video-bytes")

	text, err := e.Extract(context.Background(), path, domain.KindVideo)
	require.NoError(t, err)
	assert.Equal(t, extract.PlaceholderTranscription, text)

	assert.Equal(t, "ffmpeg", runner.name)
	assert.Equal(t, []string{
		"-y", "-i", path,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		wavCreated,
	}, runner.args)

	// The transcoded wav must not outlive the call.
	_, statErr := os.Stat(wavCreated)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtract_VideoTranscodeFailure(t *testing.T) {
	e := newEngine(&stubRunner{err: errors.New("ffmpeg: no audio stream")})
	path := writeFile(t, "silent.mp4", "fake-video-bytes")

	_, err := e.Extract(context.Background(), path, domain.KindVideo)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "audio track")
}

// writeDocx creates a minimal DOCX archive with the given document.xml body.
func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}
