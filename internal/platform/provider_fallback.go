//go:build !windows && !darwin
// +build !windows,!darwin

package platform

import (
	"crypto/sha256"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// fallbackProvider is the portable text-only binding used where no native
// implementation exists. Change detection hashes the current text content.
type fallbackProvider struct {
	logger   *zap.Logger
	lastHash [sha256.Size]byte
	primed   bool
}

// New returns the portable text-only clipboard provider.
func New(logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fallbackProvider{logger: logger}
}

func (p *fallbackProvider) Name() string { return "fallback" }

func (p *fallbackProvider) RegisterCustomFormat(name string) bool {
	p.logger.Warn("custom clipboard formats are unsupported by the portable provider",
		zap.String("format", name))
	return false
}

func (p *fallbackProvider) WaitForChange() (Change, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		// The portable binding shells out to platform tools; a missing
		// tool means monitoring cannot work at all.
		return NoChange, fmt.Errorf("portable clipboard read: %w", err)
	}

	hash := sha256.Sum256([]byte(text))
	if !p.primed {
		p.primed = true
		p.lastHash = hash
		return NoChange, nil
	}
	if hash == p.lastHash {
		return NoChange, nil
	}
	p.lastHash = hash
	return Changed, nil
}

func (p *fallbackProvider) Open() (Session, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, err
	}
	return &fallbackSession{text: text}, nil
}

type fallbackSession struct {
	text string
}

func (s *fallbackSession) AdvertiseSize(format string) (int64, bool) {
	if format != FormatText || s.text == "" {
		return 0, false
	}
	return int64(len(s.text)), true
}

func (s *fallbackSession) Read(format string) ([]byte, error) {
	if format != FormatText {
		return nil, fmt.Errorf("unknown clipboard format %q", format)
	}
	return []byte(s.text), nil
}

func (s *fallbackSession) FileList() ([]string, error) { return nil, nil }

func (s *fallbackSession) Close() error { return nil }
