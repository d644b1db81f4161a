package emitter

import "hanip/internal/evdev"

// Output is the slice of the emitter the engine drives. FallbackEmitter is
// the real implementation; tests substitute an in-memory fake.
type Output interface {
	Close() error
	ForwardEvent(*evdev.InputEvent) error
	SendKeyState(code uint16, pressed bool) error
	TapKey(code uint16) error
	SendBackspace(count int) error
	SendText(text string) error
}

var _ Output = (*FallbackEmitter)(nil)
