package emitter

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// TTY is the optional mirror: committed text is pushed into a terminal's
// input queue so the interceptor remains usable on the console. Injection
// prefers TIOCSTI; when the kernel refuses it (dev.tty.legacy_tiocsti=0)
// the bytes are written to the terminal output instead, which is
// best-effort visibility rather than true input.
type TTY struct {
	fd int
}

func OpenTTY(path string) (*TTY, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open tty %s: %w", path, err)
	}
	return &TTY{fd: fd}, nil
}

func (t *TTY) Close() error {
	if t == nil || t.fd < 0 {
		return nil
	}
	err := unix.Close(t.fd)
	t.fd = -1
	return err
}

// InjectString pushes each byte of s into the terminal.
func (t *TTY) InjectString(s string) error {
	if t == nil || t.fd < 0 {
		return nil
	}
	for i := 0; i < len(s); i++ {
		if err := t.pushByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *TTY) Backspace(count int) error {
	if t == nil || t.fd < 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		if err := t.pushByte('\b'); err != nil {
			return err
		}
	}
	return nil
}

func (t *TTY) pushByte(b byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(t.fd), unix.TIOCSTI, uintptr(unsafe.Pointer(&b)))
	if errno == 0 {
		return nil
	}
	for {
		n, err := unix.Write(t.fd, []byte{b})
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("tty write: %w", err)
		}
		if n == 1 {
			return nil
		}
	}
}
