package evdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// InputEvent mirrors struct input_event: the kernel's timestamped
// (type, code, value) triple read from /dev/input/eventN and written to
// /dev/uinput.
type InputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

func EventSize() int {
	return int(unsafe.Sizeof(InputEvent{}))
}

// Bytes exposes the event's in-memory representation for raw reads and
// writes. The slice aliases the event; it is only valid while ev is live.
func (ev *InputEvent) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(ev)), EventSize())
}

func IsPress(ev *InputEvent) bool {
	return ev.Value == ValuePress || ev.Value == ValueRepeat
}

func IsRelease(ev *InputEvent) bool {
	return ev.Value == ValueRelease
}
