package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFStreamText(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 720 Td
(Build a todo app) Tj
T*
(with reminders) Tj
ET`)
	assert.Equal(t, "Build a todo app with reminders", pdfStreamText(stream))
}

func TestPDFStreamText_TJArray(t *testing.T) {
	stream := []byte(`BT
[(Hel)-20(lo) 5( world)] TJ
ET`)
	assert.Equal(t, "Hello world", pdfStreamText(stream))
}

func TestPDFStreamText_NoTextOperators(t *testing.T) {
	stream := []byte(`q
1 0 0 1 0 0 cm
/Im0 Do
Q`)
	assert.Empty(t, pdfStreamText(stream))
}

func TestDecodePDFString(t *testing.T) {
	assert.Equal(t, "a(b)c", decodePDFString([]byte(`a\(b\)c`)))
	assert.Equal(t, "line\nbreak", decodePDFString([]byte(`line\nbreak`)))
	assert.Equal(t, `back\slash`, decodePDFString([]byte(`back\\slash`)))
	// Octal escape: \101 is 'A'.
	assert.Equal(t, "A", decodePDFString([]byte(`\101`)))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \n\n b\t\tc  "))
	assert.Empty(t, collapseWhitespace("   \n\t "))
}
