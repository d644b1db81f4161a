package evdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// x/sys/unix covers the ioctl syscall but not the evdev/uinput request
// numbers, so they are assembled here from the _IOC encoding.
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	sizeofInt = 4
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNrShift) | (size << iocSizeShift)
}

func iow(typ byte, nr, size uintptr) uintptr {
	return ioc(iocWrite, uintptr(typ), nr, size)
}

func io(typ byte, nr uintptr) uintptr {
	return ioc(iocNone, uintptr(typ), nr, 0)
}

var (
	ReqGrab         = iow('E', 0x90, sizeofInt)
	ReqUISetEvbit   = iow('U', 100, sizeofInt)
	ReqUISetKeybit  = iow('U', 101, sizeofInt)
	ReqUIDevCreate  = io('U', 1)
	ReqUIDevDestroy = io('U', 2)
)

// ReqCapabilityBits is EVIOCGBIT(ev, len): read the capability bitmask for
// one event type (ev==0 queries the supported types themselves).
func ReqCapabilityBits(ev int, length int) uintptr {
	return ioc(iocRead, 'E', uintptr(0x20+ev), uintptr(length))
}

// ReqDeviceName is EVIOCGNAME(len).
func ReqDeviceName(length int) uintptr {
	return ioc(iocRead, 'E', 0x06, uintptr(length))
}

func IoctlSetInt(fd int, req uintptr, value int) error {
	return unix.IoctlSetInt(fd, uint(req), value)
}

func IoctlReadBytes(fd int, req uintptr, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// Grab toggles EVIOCGRAB on an input device fd. While grabbed, no other
// reader (the compositor included) sees the device's events.
func Grab(fd int, exclusive bool) error {
	value := 0
	if exclusive {
		value = 1
	}
	return IoctlSetInt(fd, ReqGrab, value)
}
