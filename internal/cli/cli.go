// Package cli scans the daemon's argument list. Values may follow the flag
// as a separate argument or be joined with '='.
package cli

import (
	"fmt"
	"strings"
)

type Options struct {
	ShowHelp         bool
	ListLayouts      bool
	ListDevices      bool
	Verbose          bool
	DevicePath       string
	LayoutName       string
	ToggleConfigPath string
	TTYPath          string
}

func Parse(args []string) (Options, error) {
	var opts Options
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			opts.ShowHelp = true
		case arg == "--list-layouts":
			opts.ListLayouts = true
		case arg == "--list-devices":
			opts.ListDevices = true
		case arg == "--verbose" || arg == "-v":
			opts.Verbose = true
		case arg == "--device" || strings.HasPrefix(arg, "--device="):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.DevicePath = value
			i = next
		case arg == "--layout" || strings.HasPrefix(arg, "--layout="):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.LayoutName = value
			i = next
		case arg == "--toggle-config" || strings.HasPrefix(arg, "--toggle-config="):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ToggleConfigPath = value
			i = next
		case arg == "--tty" || strings.HasPrefix(arg, "--tty="):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.TTYPath = value
			i = next
		default:
			return Options{}, fmt.Errorf("unknown option: %s", arg)
		}
	}
	return opts, nil
}

func extractValue(current string, index int, args []string) (string, int, error) {
	if eq := strings.IndexRune(current, '='); eq >= 0 {
		return current[eq+1:], index, nil
	}
	if index+1 >= len(args) {
		return "", index, fmt.Errorf("option %s requires a value", current)
	}
	return args[index+1], index + 1, nil
}

func Usage() string {
	return `hanip - Hangul IME interceptor
Usage: hanip [--device /dev/input/eventX] [options]

Options:
  --device PATH         evdev keyboard device (auto-detected if omitted)
  --layout NAME         keyboard layout (default: dubeolsik)
  --toggle-config PATH  toggle INI file (default: ./toggle.ini if present)
  --tty PATH            TTY to mirror composed text into
  --list-layouts        list built-in layouts
  --list-devices        list detected keyboards
  -v, --verbose         debug logging
  -h, --help            show this help`
}
