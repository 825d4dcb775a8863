// Package platform provides the native clipboard bindings behind a small
// provider interface. Everything above this package is platform-agnostic;
// each OS variant is selected by build tag.
package platform

// Format identifies a clipboard data format in a platform-neutral way.
// Custom application formats use their registered name directly.
const (
	FormatText     = "text"
	FormatHTML     = "html"
	FormatRichText = "rtf"
	FormatPNG      = "png"
	FormatDIB      = "dib"
	FormatFileList = "files"
)

// Change is the outcome of one change-detection poll.
type Change int

const (
	NoChange Change = iota
	Changed
)

// Session is one exclusive open of the native clipboard. It must be closed
// before the next change-detection wait; the underlying handle is exclusively
// owned for the duration of one classification attempt.
type Session interface {
	// AdvertiseSize reports whether the format is present on the clipboard
	// and, if so, its size in bytes without transferring the payload.
	AdvertiseSize(format string) (int64, bool)

	// Read transfers the raw bytes for the format.
	Read(format string) ([]byte, error)

	// FileList returns the clipboard's file paths in OS order, or an empty
	// slice when no file list is present.
	FileList() ([]string, error)

	Close() error
}

// Provider is the per-platform clipboard binding consumed by the observer
// and classifier.
type Provider interface {
	Name() string

	// RegisterCustomFormat makes a named application format readable through
	// sessions. It reports whether the platform accepted the registration.
	RegisterCustomFormat(name string) bool

	// WaitForChange performs one non-blocking change check. A returned error
	// is fatal to monitoring: the notification primitive itself is broken.
	WaitForChange() (Change, error)

	// Open acquires exclusive clipboard access for one classification
	// attempt.
	Open() (Session, error)
}
