// Package format renders clipboard events for terminal display.
package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pasteworks/clipstream/pkg/types"
)

// Size formats a byte count as a human-readable string
func Size(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Truncate truncates text to maxLen runes with ellipsis
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}

	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	runes := []rune(text)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}

// Body renders a clipboard body as a single display line.
func Body(body types.Body) string {
	switch b := body.(type) {
	case types.PlainText:
		return fmt.Sprintf("text: %s", Truncate(b.Text, 120))
	case types.HTML:
		return fmt.Sprintf("html: %s", Size(int64(len(b.Text))))
	case types.RichText:
		return fmt.Sprintf("rtf: %s", Size(int64(len(b.Text))))
	case types.Image:
		if b.HasPath() {
			return fmt.Sprintf("image: %s (%s, %s)", b.Path, Size(int64(len(b.Bytes))), b.MIME)
		}
		return fmt.Sprintf("image: %s, %s", Size(int64(len(b.Bytes))), b.MIME)
	case types.FileList:
		return fmt.Sprintf("files: %s", strings.Join(b.Paths, ", "))
	case types.Custom:
		return fmt.Sprintf("custom %q: %s", b.Name, Size(int64(len(b.Data))))
	default:
		return fmt.Sprintf("%s event", body.Kind())
	}
}
