//go:build windows
// +build windows

package platform

import (
	"fmt"
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	cfUnicodeText = 13
	cfDIB         = 8
	cfHDrop       = 15

	openAttempts   = 10
	openRetryDelay = 5 * time.Millisecond
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procGetClipboardSequenceNumber = user32.NewProc("GetClipboardSequenceNumber")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procRegisterClipboardFormatW   = user32.NewProc("RegisterClipboardFormatW")
	procGlobalLock                 = kernel32.NewProc("GlobalLock")
	procGlobalUnlock               = kernel32.NewProc("GlobalUnlock")
	procGlobalSize                 = kernel32.NewProc("GlobalSize")
	procDragQueryFileW             = shell32.NewProc("DragQueryFileW")
)

// windowsProvider reads the Win32 clipboard directly. Change detection uses
// the clipboard sequence number, which increments on every clipboard update.
type windowsProvider struct {
	logger     *zap.Logger
	lastSeq    uint32
	registered map[string]uint32
}

// New returns the Win32 clipboard provider.
func New(logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &windowsProvider{
		logger:     logger,
		registered: make(map[string]uint32),
	}

	// Named standard formats are registered lazily by Windows; the id is
	// stable for the session lifetime.
	p.registerNamed(FormatHTML, "HTML Format")
	p.registerNamed(FormatRichText, "Rich Text Format")
	p.registerNamed(FormatPNG, "PNG")

	// Start from the current sequence number so pre-existing clipboard
	// content does not fire a synthetic first event.
	seq, _, _ := procGetClipboardSequenceNumber.Call()
	p.lastSeq = uint32(seq)

	return p
}

func (p *windowsProvider) Name() string { return "windows" }

func (p *windowsProvider) registerNamed(format, windowsName string) {
	namePtr, err := windows.UTF16PtrFromString(windowsName)
	if err != nil {
		return
	}
	id, _, _ := procRegisterClipboardFormatW.Call(uintptr(unsafe.Pointer(namePtr)))
	if id == 0 {
		p.logger.Warn("RegisterClipboardFormat failed", zap.String("format", windowsName))
		return
	}
	p.registered[format] = uint32(id)
}

func (p *windowsProvider) RegisterCustomFormat(name string) bool {
	p.registerNamed(name, name)
	_, ok := p.registered[name]
	return ok
}

func (p *windowsProvider) WaitForChange() (Change, error) {
	seq, _, _ := procGetClipboardSequenceNumber.Call()
	if uint32(seq) == p.lastSeq {
		return NoChange, nil
	}
	p.lastSeq = uint32(seq)
	return Changed, nil
}

func (p *windowsProvider) Open() (Session, error) {
	// Another process may hold the clipboard; retry briefly before giving
	// up on this event.
	for i := 0; i < openAttempts; i++ {
		r, _, _ := procOpenClipboard.Call(0)
		if r != 0 {
			return &windowsSession{p: p}, nil
		}
		time.Sleep(openRetryDelay)
	}
	return nil, fmt.Errorf("OpenClipboard: clipboard busy after %d attempts", openAttempts)
}

func (p *windowsProvider) formatID(format string) (uint32, bool) {
	switch format {
	case FormatText:
		return cfUnicodeText, true
	case FormatDIB:
		return cfDIB, true
	case FormatFileList:
		return cfHDrop, true
	}
	id, ok := p.registered[format]
	return id, ok
}

type windowsSession struct {
	p *windowsProvider
}

func (s *windowsSession) AdvertiseSize(format string) (int64, bool) {
	id, ok := s.p.formatID(format)
	if !ok {
		return 0, false
	}
	if avail, _, _ := procIsClipboardFormatAvailable.Call(uintptr(id)); avail == 0 {
		return 0, false
	}
	h, _, _ := procGetClipboardData.Call(uintptr(id))
	if h == 0 {
		return 0, false
	}
	size, _, _ := procGlobalSize.Call(h)
	return int64(size), true
}

func (s *windowsSession) Read(format string) ([]byte, error) {
	id, ok := s.p.formatID(format)
	if !ok {
		return nil, fmt.Errorf("unknown clipboard format %q", format)
	}
	raw, err := readGlobal(uintptr(id))
	if err != nil {
		return nil, err
	}
	if id == cfUnicodeText {
		return decodeUTF16(raw), nil
	}
	return raw, nil
}

func (s *windowsSession) FileList() ([]string, error) {
	h, _, _ := procGetClipboardData.Call(uintptr(cfHDrop))
	if h == 0 {
		return nil, nil
	}

	const allFiles = 0xFFFFFFFF
	count, _, _ := procDragQueryFileW.Call(h, allFiles, 0, 0)

	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		length, _, _ := procDragQueryFileW.Call(h, i, 0, 0)
		if length == 0 {
			continue
		}
		buf := make([]uint16, length+1)
		procDragQueryFileW.Call(h, i, uintptr(unsafe.Pointer(&buf[0])), length+1)
		paths = append(paths, syscall.UTF16ToString(buf))
	}
	return paths, nil
}

func (s *windowsSession) Close() error {
	r, _, err := procCloseClipboard.Call()
	if r == 0 {
		return fmt.Errorf("CloseClipboard: %v", err)
	}
	return nil
}

// readGlobal copies the contents of a global-memory clipboard handle.
func readGlobal(formatID uintptr) ([]byte, error) {
	h, _, _ := procGetClipboardData.Call(formatID)
	if h == 0 {
		return nil, fmt.Errorf("GetClipboardData: format %d unavailable", formatID)
	}

	ptr, _, _ := procGlobalLock.Call(h)
	if ptr == 0 {
		return nil, fmt.Errorf("GlobalLock failed for format %d", formatID)
	}
	defer procGlobalUnlock.Call(h)

	size, _, _ := procGlobalSize.Call(h)
	if size == 0 {
		return nil, nil
	}

	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size))
	return out, nil
}

// decodeUTF16 converts NUL-terminated UTF-16LE clipboard text to UTF-8.
func decodeUTF16(raw []byte) []byte {
	u16 := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		v := uint16(raw[i]) | uint16(raw[i+1])<<8
		if v == 0 {
			break
		}
		u16 = append(u16, v)
	}
	return []byte(string(utf16.Decode(u16)))
}
