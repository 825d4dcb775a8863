// Package imaging normalizes clipboard image payloads to PNG.
package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageExtensions is the closed set of file extensions treated as images
// when a copied file list is considered for image promotion.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
}

// IsImagePath reports whether the path has a recognized image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

const (
	bmpFileHeaderSize = 14
	biBitfields       = 3
)

// DIBToPNG converts a Windows device-independent bitmap (CF_DIB payload,
// a BITMAPINFOHEADER without the BMP file header) to PNG.
func DIBToPNG(dib []byte) ([]byte, error) {
	withHeader, err := prependBMPHeader(dib)
	if err != nil {
		return nil, err
	}

	img, err := bmp.Decode(bytes.NewReader(withHeader))
	if err != nil {
		return nil, fmt.Errorf("decode DIB: %w", err)
	}
	return encodePNG(img)
}

// prependBMPHeader synthesizes the 14-byte BITMAPFILEHEADER a CF_DIB
// payload lacks, so a standard BMP decoder can read it.
func prependBMPHeader(dib []byte) ([]byte, error) {
	if len(dib) < 40 {
		return nil, fmt.Errorf("DIB payload too short: %d bytes", len(dib))
	}

	infoSize := binary.LittleEndian.Uint32(dib[0:4])
	bitCount := binary.LittleEndian.Uint16(dib[14:16])
	compression := binary.LittleEndian.Uint32(dib[16:20])
	clrUsed := binary.LittleEndian.Uint32(dib[32:36])

	// Pixel data sits after the info header, any color masks, and the
	// palette.
	offset := uint32(bmpFileHeaderSize) + infoSize
	if compression == biBitfields && infoSize == 40 {
		offset += 12
	}
	if bitCount <= 8 {
		entries := clrUsed
		if entries == 0 {
			entries = 1 << bitCount
		}
		offset += entries * 4
	}

	out := make([]byte, bmpFileHeaderSize+len(dib))
	out[0] = 'B'
	out[1] = 'M'
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:14], offset)
	copy(out[bmpFileHeaderSize:], dib)
	return out, nil
}

// FileToPNG reads an image file from disk and re-encodes it as PNG.
func FileToPNG(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
