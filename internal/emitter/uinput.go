// Package emitter drives the synthetic keyboard: a uinput device that
// replays forwarded events and types arbitrary Unicode text through the
// Ctrl+Shift+U hex-entry convention, optionally mirrored into a TTY.
package emitter

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/sys/unix"

	"hanip/internal/evdev"
)

const deviceName = "hanfe-fallback"

const absCount = 0x3f + 1

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputUserDev mirrors struct uinput_user_dev.
type uinputUserDev struct {
	Name         [evdev.UinputMaxNameSize]byte
	ID           inputID
	FFEffectsMax int32
	Absmax       [absCount]int32
	Absmin       [absCount]int32
	Absfuzz      [absCount]int32
	Absflat      [absCount]int32
}

// FallbackEmitter owns the uinput fd and the optional TTY mirror for the
// lifetime of the engine.
type FallbackEmitter struct {
	uinputFD int
	tty      *TTY
	hexKeys  [16]int
	closed   bool
}

// Open creates the virtual device. hexMap supplies the keycode for each
// lowercase hex digit (see layout.HexKeycodes); ttyPath may be empty.
func Open(hexMap map[rune]uint16, ttyPath string) (*FallbackEmitter, error) {
	e := &FallbackEmitter{uinputFD: -1}
	for i := range e.hexKeys {
		e.hexKeys[i] = -1
	}
	for ch, code := range hexMap {
		if idx := hexIndex(ch); idx >= 0 {
			e.hexKeys[idx] = int(code)
		}
	}

	fd, err := unix.Open("/dev/uinput", unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}
	e.uinputFD = fd

	if err := configure(fd); err != nil {
		unix.Close(fd)
		return nil, err
	}

	if ttyPath != "" {
		tty, err := OpenTTY(ttyPath)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.tty = tty
	}

	return e, nil
}

func configure(fd int) error {
	if err := evdev.IoctlSetInt(fd, evdev.ReqUISetEvbit, int(evdev.EvSyn)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT(EV_SYN): %w", err)
	}
	if err := evdev.IoctlSetInt(fd, evdev.ReqUISetEvbit, int(evdev.EvKey)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT(EV_KEY): %w", err)
	}
	for code := 0; code <= evdev.KeyMax; code++ {
		_ = evdev.IoctlSetInt(fd, evdev.ReqUISetKeybit, code)
	}

	var setup uinputUserDev
	copy(setup.Name[:], deviceName)
	setup.ID.Bustype = evdev.BusUSB
	setup.ID.Vendor = 0x1
	setup.ID.Product = 0x1
	setup.ID.Version = 1

	buf := unsafe.Slice((*byte)(unsafe.Pointer(&setup)), unsafe.Sizeof(setup))
	if err := writeFull(fd, buf); err != nil {
		return fmt.Errorf("write uinput descriptor: %w", err)
	}

	if err := evdev.IoctlSetInt(fd, evdev.ReqUIDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

// Close destroys the virtual device and releases both fds. Safe to call
// more than once.
func (e *FallbackEmitter) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.uinputFD >= 0 {
		_ = evdev.IoctlSetInt(e.uinputFD, evdev.ReqUIDevDestroy, 0)
		unix.Close(e.uinputFD)
		e.uinputFD = -1
	}
	if e.tty != nil {
		_ = e.tty.Close()
		e.tty = nil
	}
	return nil
}

// ForwardEvent replays a source event verbatim.
func (e *FallbackEmitter) ForwardEvent(ev *evdev.InputEvent) error {
	if ev == nil {
		return nil
	}
	if err := writeFull(e.uinputFD, ev.Bytes()); err != nil {
		return err
	}
	return e.sync()
}

func (e *FallbackEmitter) SendKeyState(code uint16, pressed bool) error {
	value := int32(evdev.ValueRelease)
	if pressed {
		value = evdev.ValuePress
	}
	ev := evdev.InputEvent{Type: evdev.EvKey, Code: code, Value: value}
	if err := writeFull(e.uinputFD, ev.Bytes()); err != nil {
		return err
	}
	return e.sync()
}

func (e *FallbackEmitter) TapKey(code uint16) error {
	if err := e.SendKeyState(code, true); err != nil {
		return err
	}
	return e.SendKeyState(code, false)
}

func (e *FallbackEmitter) sync() error {
	syn := evdev.InputEvent{Type: evdev.EvSyn, Code: evdev.SynReport}
	return writeFull(e.uinputFD, syn.Bytes())
}

// SendBackspace erases count grapheme positions downstream and mirrors the
// erasure to the TTY.
func (e *FallbackEmitter) SendBackspace(count int) error {
	for i := 0; i < count; i++ {
		if err := e.TapKey(evdev.KeyBackspace); err != nil {
			return err
		}
		if err := e.tty.Backspace(1); err != nil {
			return err
		}
	}
	return nil
}

// SendText types text code point by code point. Each point is emitted
// atomically before the engine reads its next source event.
func (e *FallbackEmitter) SendText(text string) error {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("invalid utf-8 in %q", text)
	}
	for _, r := range text {
		if err := e.typeUnicode(r); err != nil {
			return err
		}
	}
	return nil
}

// typeUnicode emits the Ctrl+Shift+U prefix, then either the hex digits and
// the Ctrl+Shift+Enter terminator (no TTY: an IME downstream resolves the
// hex), or the raw UTF-8 into the TTY (hex would show up twice there).
func (e *FallbackEmitter) typeUnicode(r rune) error {
	if err := e.chord(evdev.KeyU); err != nil {
		return err
	}

	if e.tty != nil {
		return e.tty.InjectString(string(r))
	}

	for _, ch := range fmt.Sprintf("%x", r) {
		idx := hexIndex(ch)
		if idx < 0 || e.hexKeys[idx] < 0 {
			continue
		}
		if err := e.TapKey(uint16(e.hexKeys[idx])); err != nil {
			return err
		}
	}

	return e.chord(evdev.KeyEnter)
}

// chord taps code while LeftCtrl+LeftShift are held.
func (e *FallbackEmitter) chord(code uint16) error {
	if err := e.SendKeyState(evdev.KeyLeftCtrl, true); err != nil {
		return err
	}
	if err := e.SendKeyState(evdev.KeyLeftShift, true); err != nil {
		return err
	}
	if err := e.TapKey(code); err != nil {
		return err
	}
	if err := e.SendKeyState(evdev.KeyLeftShift, false); err != nil {
		return err
	}
	return e.SendKeyState(evdev.KeyLeftCtrl, false)
}

// writeFull treats a short write as an I/O failure: uinput consumes whole
// events or nothing.
func writeFull(fd int, buf []byte) error {
	if fd < 0 {
		return fmt.Errorf("emitter closed")
	}
	n, err := unix.Write(fd, buf)
	if err != nil {
		return fmt.Errorf("uinput write: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("uinput short write: %d of %d bytes", n, len(buf))
	}
	return nil
}

func hexIndex(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return 10 + int(ch-'a')
	case ch >= 'A' && ch <= 'F':
		return 10 + int(ch-'A')
	default:
		return -1
	}
}
