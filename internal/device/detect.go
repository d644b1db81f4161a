// Package device discovers keyboard-like evdev nodes when the user does not
// name one explicitly.
package device

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"

	"hanip/internal/evdev"
)

type Keyboard struct {
	Path string
	Name string
}

type DetectionError struct {
	Message string
}

func (e DetectionError) Error() string { return e.Message }

// requiredKeys must all be present in a device's EV_KEY capability mask for
// it to count as a keyboard; this filters out lid switches, consumer-control
// devices, and mice with a couple of key bits.
var requiredKeys = []uint16{evdev.KeyA, evdev.KeyZ, evdev.KeySpace, evdev.KeyEnter, evdev.KeyLeftShift}

func bitsToBytes(bits int) int {
	return (bits + 7) / 8
}

func testBit(bits []byte, bit int) bool {
	idx := bit / 8
	if idx < 0 || idx >= len(bits) {
		return false
	}
	return bits[idx]&(1<<uint(bit%8)) != 0
}

func isKeyboardFD(fd int) bool {
	evBits := make([]byte, bitsToBytes(evdev.EvMax+1))
	if err := evdev.IoctlReadBytes(fd, evdev.ReqCapabilityBits(0, len(evBits)), evBits); err != nil {
		return false
	}
	if !testBit(evBits, int(evdev.EvKey)) {
		return false
	}

	keyBits := make([]byte, bitsToBytes(evdev.KeyMax+1))
	if err := evdev.IoctlReadBytes(fd, evdev.ReqCapabilityBits(int(evdev.EvKey), len(keyBits)), keyBits); err != nil {
		return false
	}
	for _, code := range requiredKeys {
		if !testBit(keyBits, int(code)) {
			return false
		}
	}
	return true
}

func readName(fd int) string {
	buf := make([]byte, 256)
	if err := evdev.IoctlReadBytes(fd, evdev.ReqDeviceName(len(buf)), buf); err != nil {
		return ""
	}
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func keyboardSymlinks(dir string) []string {
	var entries []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		lower := strings.ToLower(d.Name())
		if strings.Contains(lower, "kbd") || strings.Contains(lower, "keyboard") {
			entries = append(entries, path)
		}
		return nil
	})
	sort.Strings(entries)
	return entries
}

func eventNodes() []string {
	var entries []string
	dirEntries, err := os.ReadDir("/dev/input")
	if err != nil {
		return entries
	}
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), "event") {
			entries = append(entries, filepath.Join("/dev/input", entry.Name()))
		}
	}
	sort.Strings(entries)
	return entries
}

func candidates() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(paths []string) {
		for _, p := range paths {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	add(keyboardSymlinks("/dev/input/by-id"))
	add(keyboardSymlinks("/dev/input/by-path"))
	add(eventNodes())
	return out
}

// List probes every candidate node and returns those that look like real
// keyboards, sorted by path.
func List() ([]Keyboard, error) {
	paths := candidates()
	var devices []Keyboard
	permissionDenied := false
	var lastErr error

	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			if errors.Is(err, os.ErrPermission) || err == unix.EACCES || err == unix.EPERM {
				permissionDenied = true
			}
			lastErr = fmt.Errorf("%s: %w", path, err)
			continue
		}
		if isKeyboardFD(fd) {
			devices = append(devices, Keyboard{Path: path, Name: readName(fd)})
		}
		unix.Close(fd)
	}

	if len(devices) == 0 {
		switch {
		case permissionDenied:
			return nil, DetectionError{Message: "permission denied probing input devices; run as root or fix udev permissions"}
		case len(paths) == 0:
			return nil, DetectionError{Message: "no evdev devices found under /dev/input"}
		case lastErr != nil:
			return nil, DetectionError{Message: fmt.Sprintf("no keyboard-like device found (last error: %v)", lastErr)}
		default:
			return nil, DetectionError{Message: "no keyboard-like device found"}
		}
	}

	sort.SliceStable(devices, func(i, j int) bool { return devices[i].Path < devices[j].Path })
	return devices, nil
}

// Detect picks the first keyboard List finds.
func Detect() (Keyboard, error) {
	devices, err := List()
	if err != nil {
		return Keyboard{}, err
	}
	return devices[0], nil
}
