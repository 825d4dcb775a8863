package mimetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// pngHeader is the PNG magic plus enough structure for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
		ok   bool
	}{
		{".png", "image/png", true},
		{"png", "image/png", true},
		{".JPG", "image/jpeg", true},
		{".jpeg", "image/jpeg", true},
		{".svg", "image/svg+xml", true},
		{".ico", "image/vnd.microsoft.icon", true},
		{".pdf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := FromExtension(tt.ext)
		assert.Equal(t, tt.ok, ok, "ext %q", tt.ext)
		assert.Equal(t, tt.want, got, "ext %q", tt.ext)
	}
}

func TestFromBytesSniffsPNG(t *testing.T) {
	got, ok := FromBytes(pngHeader)
	assert.True(t, ok)
	assert.Equal(t, "image/png", got)
}

func TestFromBytesEmpty(t *testing.T) {
	_, ok := FromBytes(nil)
	assert.False(t, ok)
}

func TestResolvePrefersExtension(t *testing.T) {
	assert.Equal(t, "image/gif", Resolve("/tmp/pic.gif", pngHeader))
}

func TestResolveFallsBackToSniffing(t *testing.T) {
	assert.Equal(t, "image/png", Resolve("/tmp/pic.unknownext", pngHeader))
	assert.Equal(t, "image/png", Resolve("", pngHeader))
}

func TestResolveGenericFallback(t *testing.T) {
	assert.Equal(t, Fallback, Resolve("", nil))
}
