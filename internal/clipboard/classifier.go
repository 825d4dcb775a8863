// Package clipboard contains the platform-agnostic monitoring core: content
// classification, the subscriber registry, and the observer loop.
package clipboard

import (
	"os"

	"go.uber.org/zap"

	"github.com/pasteworks/clipstream/internal/imaging"
	"github.com/pasteworks/clipstream/internal/mimetype"
	"github.com/pasteworks/clipstream/internal/platform"
	"github.com/pasteworks/clipstream/pkg/types"
)

// ClassifierOptions bound what the classifier will read from the clipboard.
type ClassifierOptions struct {
	// CustomFormats are application-registered format names, checked in
	// registration order ahead of everything else.
	CustomFormats []string

	// MaxBytes caps every raw read; payloads advertising a larger size are
	// treated as absent. Zero means unlimited.
	MaxBytes int64

	// MaxImageBytes caps image payloads independently. Zero inherits
	// MaxBytes.
	MaxImageBytes int64
}

func (o ClassifierOptions) imageCeiling() int64 {
	if o.MaxImageBytes > 0 {
		return o.MaxImageBytes
	}
	return o.MaxBytes
}

// Classifier turns one open clipboard session into exactly one Body.
// Classification is deterministic for a given snapshot and options.
type Classifier struct {
	opts   ClassifierOptions
	logger *zap.Logger
}

func NewClassifier(opts ClassifierOptions, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{opts: opts, logger: logger}
}

// Classify picks the single semantic interpretation of the current snapshot
// under a strict priority order: custom formats, image, file list, HTML,
// rich text, plain text. The first matching tier wins.
func (c *Classifier) Classify(sess platform.Session) (types.Body, error) {
	for _, name := range c.opts.CustomFormats {
		if !c.withinCeiling(sess, name, c.opts.MaxBytes) {
			continue
		}
		data, err := sess.Read(name)
		if err != nil {
			return nil, &types.ReadError{Err: err}
		}
		return types.Custom{Name: name, Data: data}, nil
	}

	imgBytes := c.extractImage(sess)

	files, err := sess.FileList()
	if err != nil {
		// A broken file-list transfer does not doom the event; the
		// remaining tiers still apply.
		c.logger.Debug("file list read failed", zap.Error(err))
		files = nil
	}

	if imgBytes != nil {
		img := types.Image{Bytes: imgBytes, MIME: mimetype.PNG}
		if len(files) == 1 {
			// A lone accompanying path enriches the image without
			// changing its classification.
			img.Path = files[0]
		}
		return img, nil
	}

	if len(files) > 0 {
		if len(files) == 1 && imaging.IsImagePath(files[0]) {
			if body, ok := c.promoteImageFile(files[0]); ok {
				return body, nil
			}
		}
		return types.FileList{Paths: files}, nil
	}

	if body, ok := c.readText(sess); ok {
		return body, nil
	}

	return nil, types.ErrUnknownDataType
}

// extractImage reads a clipboard-native image payload: PNG directly when
// available, otherwise a device-independent bitmap converted to PNG. A
// failed conversion falls through rather than erroring the event.
func (c *Classifier) extractImage(sess platform.Session) []byte {
	ceiling := c.opts.imageCeiling()

	if c.withinCeiling(sess, platform.FormatPNG, ceiling) {
		if data, err := sess.Read(platform.FormatPNG); err == nil {
			return data
		}
	}

	if c.withinCeiling(sess, platform.FormatDIB, ceiling) {
		dib, err := sess.Read(platform.FormatDIB)
		if err != nil {
			return nil
		}
		data, err := imaging.DIBToPNG(dib)
		if err != nil {
			c.logger.Debug("DIB to PNG conversion failed", zap.Error(err))
			return nil
		}
		return data
	}

	return nil
}

// promoteImageFile re-classifies a single copied image file as an Image,
// reading its bytes from disk. Oversize or unreadable files stay a FileList.
func (c *Classifier) promoteImageFile(path string) (types.Body, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, false
	}
	if ceiling := c.opts.imageCeiling(); ceiling > 0 && info.Size() > ceiling {
		c.logger.Debug("copied image file exceeds size ceiling",
			zap.String("path", path),
			zap.Int64("size_bytes", info.Size()),
			zap.Int64("ceiling_bytes", ceiling))
		return nil, false
	}

	if data, err := imaging.FileToPNG(path); err == nil {
		return types.Image{Bytes: data, Path: path, MIME: mimetype.PNG}, true
	}

	// Not decodable to pixels (e.g. SVG): carry the raw bytes with the
	// best MIME type we can resolve.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return types.Image{Bytes: raw, Path: path, MIME: mimetype.Resolve(path, raw)}, true
}

// readText tries the textual formats in priority order and returns the
// first one the provider can supply.
func (c *Classifier) readText(sess platform.Session) (types.Body, bool) {
	tiers := []struct {
		format string
		wrap   func(string) types.Body
	}{
		{platform.FormatHTML, func(s string) types.Body { return types.HTML{Text: s} }},
		{platform.FormatRichText, func(s string) types.Body { return types.RichText{Text: s} }},
		{platform.FormatText, func(s string) types.Body { return types.PlainText{Text: s} }},
	}

	for _, tier := range tiers {
		if !c.withinCeiling(sess, tier.format, c.opts.MaxBytes) {
			continue
		}
		data, err := sess.Read(tier.format)
		if err != nil {
			c.logger.Debug("text format read failed",
				zap.String("format", tier.format), zap.Error(err))
			continue
		}
		return tier.wrap(string(data)), true
	}
	return nil, false
}

// withinCeiling reports whether the format is present and its advertised
// size fits the ceiling. Oversize payloads are treated as absent, never as
// errors, and are never partially read.
func (c *Classifier) withinCeiling(sess platform.Session, format string, ceiling int64) bool {
	size, ok := sess.AdvertiseSize(format)
	if !ok {
		return false
	}
	if ceiling > 0 && size > ceiling {
		c.logger.Debug("clipboard payload exceeds size ceiling",
			zap.String("format", format),
			zap.Int64("size_bytes", size),
			zap.Int64("ceiling_bytes", ceiling))
		return false
	}
	return true
}
