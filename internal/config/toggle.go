// Package config loads the [toggle] INI file that selects the mode-switch
// keys and the startup mode.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"hanip/internal/evdev"
	"hanip/internal/types"
)

// Error marks a configuration problem; main maps it to exit code 2.
type Error struct {
	msg string
}

func (e Error) Error() string { return e.msg }

func errorf(format string, args ...any) Error {
	return Error{msg: fmt.Sprintf(format, args...)}
}

type Toggle struct {
	Keys        []uint16
	DefaultMode types.Mode
}

func Default() Toggle {
	return Toggle{
		Keys:        []uint16{evdev.KeyRightAlt, evdev.KeyHangeul},
		DefaultMode: types.ModeHangul,
	}
}

// Load parses a toggle INI file. The only recognized section is [toggle]
// with `keys` (required) and `default_mode` (optional, default hangul).
func Load(path string) (Toggle, error) {
	file, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return Toggle{}, errorf("toggle config %s: %v", path, err)
	}

	section := file.Section("toggle")

	keysLine := strings.TrimSpace(section.Key("keys").String())
	if keysLine == "" {
		return Toggle{}, errorf("no toggle keys defined in %s", path)
	}

	cfg := Toggle{DefaultMode: types.ModeHangul}
	for _, name := range strings.Split(keysLine, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		code, err := KeycodeByName(name)
		if err != nil {
			return Toggle{}, err
		}
		cfg.Keys = append(cfg.Keys, code)
	}
	if len(cfg.Keys) == 0 {
		return Toggle{}, errorf("no toggle keys defined in %s", path)
	}

	if modeLine := strings.TrimSpace(section.Key("default_mode").String()); modeLine != "" {
		mode, err := types.ParseMode(strings.ToLower(modeLine))
		if err != nil {
			return Toggle{}, errorf("invalid default_mode %q in %s", modeLine, path)
		}
		cfg.DefaultMode = mode
	}

	return cfg, nil
}

// Resolve applies the lookup order: an explicit path, then ./toggle.ini
// when it exists, then the built-in defaults.
func Resolve(cliPath string) (Toggle, error) {
	if cliPath != "" {
		return Load(cliPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	path := filepath.Join(cwd, "toggle.ini")
	if _, statErr := os.Stat(path); statErr == nil {
		return Load(path)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return Default(), nil
	}
	return Default(), nil
}
