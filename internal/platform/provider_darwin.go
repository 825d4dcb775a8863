//go:build darwin
// +build darwin

package platform

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// AppleScript pasteboard classes for the formats we understand.
const (
	classText = "string"
	classUTF8 = "«class utf8»"
	classHTML = "«class HTML»"
	classRTF  = "«class RTF »"
	classPNG  = "«class PNGf»"
	classFURL = "«class furl»"
)

// darwinProvider drives NSPasteboard through pbpaste and osascript, the
// no-CGO route. Change detection compares the pasteboard's advertised
// flavor list, which is cheap relative to transferring payloads.
type darwinProvider struct {
	logger   *zap.Logger
	lastInfo string
	primed   bool
}

// New returns the macOS pasteboard provider.
func New(logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &darwinProvider{logger: logger}
}

func (p *darwinProvider) Name() string { return "darwin" }

func (p *darwinProvider) RegisterCustomFormat(name string) bool {
	// NSPasteboard custom types are not reachable through osascript.
	p.logger.Warn("custom clipboard formats are unsupported on darwin",
		zap.String("format", name))
	return false
}

func (p *darwinProvider) WaitForChange() (Change, error) {
	info, err := pasteboardInfo()
	if err != nil {
		return NoChange, fmt.Errorf("pasteboard info query failed: %w", err)
	}
	if !p.primed {
		// First poll establishes the baseline; pre-existing content is
		// not an event.
		p.primed = true
		p.lastInfo = info
		return NoChange, nil
	}
	if info == p.lastInfo {
		return NoChange, nil
	}
	p.lastInfo = info
	return Changed, nil
}

func (p *darwinProvider) Open() (Session, error) {
	info, err := pasteboardInfo()
	if err != nil {
		return nil, err
	}
	return &darwinSession{p: p, sizes: parsePasteboardInfo(info)}, nil
}

// pasteboardInfo returns the raw `clipboard info` listing: flavor classes
// with their byte sizes, no payload transfer.
func pasteboardInfo() (string, error) {
	out, err := exec.Command("osascript", "-e", "clipboard info").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// parsePasteboardInfo turns "«class PNGf», 68938, string, 24" into a
// class-to-size map.
func parsePasteboardInfo(info string) map[string]int64 {
	sizes := make(map[string]int64)
	fields := strings.Split(info, ", ")
	for i := 0; i+1 < len(fields); i += 2 {
		size, err := strconv.ParseInt(strings.TrimSpace(fields[i+1]), 10, 64)
		if err != nil {
			continue
		}
		sizes[strings.TrimSpace(fields[i])] = size
	}
	return sizes
}

type darwinSession struct {
	p     *darwinProvider
	sizes map[string]int64
}

func (s *darwinSession) classFor(format string) (string, bool) {
	switch format {
	case FormatText:
		if _, ok := s.sizes[classText]; ok {
			return classText, true
		}
		return classUTF8, true
	case FormatHTML:
		return classHTML, true
	case FormatRichText:
		return classRTF, true
	case FormatPNG:
		return classPNG, true
	case FormatFileList:
		return classFURL, true
	}
	// DIB and custom formats have no pasteboard flavor here.
	return "", false
}

func (s *darwinSession) AdvertiseSize(format string) (int64, bool) {
	class, ok := s.classFor(format)
	if !ok {
		return 0, false
	}
	size, ok := s.sizes[class]
	return size, ok
}

func (s *darwinSession) Read(format string) ([]byte, error) {
	if format == FormatText {
		out, err := exec.Command("pbpaste").Output()
		if err != nil {
			return nil, fmt.Errorf("pbpaste: %w", err)
		}
		return out, nil
	}

	class, ok := s.classFor(format)
	if !ok {
		return nil, fmt.Errorf("unknown clipboard format %q", format)
	}

	script := fmt.Sprintf("the clipboard as %s", class)
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return nil, fmt.Errorf("osascript read of %s: %w", class, err)
	}
	return decodeOSAData(out)
}

func (s *darwinSession) FileList() ([]string, error) {
	if _, ok := s.sizes[classFURL]; !ok {
		return nil, nil
	}
	script := fmt.Sprintf("POSIX path of (the clipboard as %s)", classFURL)
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return nil, fmt.Errorf("osascript file list: %w", err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return nil, nil
	}
	return []string{path}, nil
}

func (s *darwinSession) Close() error { return nil }

// decodeOSAData unwraps osascript's «data XXXX<hex>» literal into raw bytes.
// Plain (non-data) output is returned verbatim.
func decodeOSAData(out []byte) ([]byte, error) {
	raw := bytes.TrimSpace(out)
	str := string(raw)
	if !strings.HasPrefix(str, "«data ") || !strings.HasSuffix(str, "»") {
		return raw, nil
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(str, "«data "), "»")
	if len(inner) < 4 {
		return nil, fmt.Errorf("malformed osascript data literal")
	}
	// The first four characters are the flavor code, the rest is hex.
	decoded, err := hex.DecodeString(inner[4:])
	if err != nil {
		return nil, fmt.Errorf("malformed osascript data literal: %w", err)
	}
	return decoded, nil
}
