// Package types defines the clipboard event data model shared between the
// monitoring core and its consumers.
package types

// Kind identifies which Body variant was selected for a clipboard change.
type Kind string

const (
	KindHTML      Kind = "html"
	KindPlainText Kind = "text"
	KindRichText  Kind = "rtf"
	KindImage     Kind = "image"
	KindFileList  Kind = "files"
	KindCustom    Kind = "custom"
)

// Body is the single semantic interpretation chosen for one clipboard change.
// The variant set is closed: exactly one of the types below is emitted per
// change event. Values are shared across subscribers and must be treated as
// immutable once broadcast.
type Body interface {
	Kind() Kind
}

// HTML is a decoded HTML fragment from the clipboard.
type HTML struct {
	Text string
}

func (HTML) Kind() Kind { return KindHTML }

// PlainText is best-effort Unicode text.
type PlainText struct {
	Text string
}

func (PlainText) Kind() Kind { return KindPlainText }

// RichText is an RTF payload decoded as text.
type RichText struct {
	Text string
}

func (RichText) Kind() Kind { return KindRichText }

// Image is pixel data normalized to PNG. Path is set when the image
// originated from (or is accompanied by) a single file on disk. MIME is the
// resolved source type, falling back to application/octet-stream when
// undetermined.
type Image struct {
	Bytes []byte
	Path  string
	MIME  string
}

func (Image) Kind() Kind { return KindImage }

// HasPath reports whether the image carries an originating file path.
func (i Image) HasPath() bool { return i.Path != "" }

// FileList is an ordered list of filesystem paths, preserved exactly as the
// OS provided them.
type FileList struct {
	Paths []string
}

func (FileList) Kind() Kind { return KindFileList }

// Custom is an application-registered clipboard format matched by name,
// carrying opaque bytes.
type Custom struct {
	Name string
	Data []byte
}

func (Custom) Kind() Kind { return KindCustom }

// Result is one delivered clipboard event: either a Body or the error that
// prevented classification. Per-event errors travel the same channel as
// successes so every subscriber observes them in event order.
type Result struct {
	Body Body
	Err  error
}

// StreamID is an opaque, process-unique subscriber identity. It is only ever
// used as a registry map key and carries no ownership semantics.
type StreamID uint64
