package config

import (
	"fmt"
	"strings"

	"hanip/internal/evdev"
)

var keyAliases = map[string]string{
	"ALT_R":   "KEY_RIGHTALT",
	"ALT_L":   "KEY_LEFTALT",
	"CTRL_L":  "KEY_LEFTCTRL",
	"CTRL_R":  "KEY_RIGHTCTRL",
	"SHIFT_L": "KEY_LEFTSHIFT",
	"SHIFT_R": "KEY_RIGHTSHIFT",
	"HANGUL":  "KEY_HANGEUL",
	"HANGEUL": "KEY_HANGEUL",
}

// KeycodeByName resolves an evdev key name. Accepted spellings: KEY_* names,
// bare names (ENTER, F5, A), and the historical toggle aliases (alt_r, ...).
func KeycodeByName(name string) (uint16, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" {
		return 0, errorf("empty key name")
	}
	if alias, ok := keyAliases[normalized]; ok {
		normalized = alias
	}
	if !strings.HasPrefix(normalized, "KEY_") {
		normalized = "KEY_" + normalized
	}
	code, ok := keycodeTable[normalized]
	if !ok {
		return 0, errorf("unknown key name %q", name)
	}
	return code, nil
}

var keycodeTable = buildKeycodeTable()

func buildKeycodeTable() map[string]uint16 {
	table := make(map[string]uint16)
	for ch := 'A'; ch <= 'Z'; ch++ {
		table[fmt.Sprintf("KEY_%c", ch)] = evdev.KeyA + uint16(ch-'A')
	}
	for ch := '1'; ch <= '9'; ch++ {
		table[fmt.Sprintf("KEY_%c", ch)] = evdev.Key1 + uint16(ch-'1')
	}
	table["KEY_0"] = evdev.Key0

	named := map[string]uint16{
		"KEY_MINUS":      evdev.KeyMinus,
		"KEY_EQUAL":      evdev.KeyEqual,
		"KEY_LEFTBRACE":  evdev.KeyLeftBrace,
		"KEY_RIGHTBRACE": evdev.KeyRightBrace,
		"KEY_BACKSLASH":  evdev.KeyBackslash,
		"KEY_SEMICOLON":  evdev.KeySemicolon,
		"KEY_APOSTROPHE": evdev.KeyApostrophe,
		"KEY_GRAVE":      evdev.KeyGrave,
		"KEY_COMMA":      evdev.KeyComma,
		"KEY_DOT":        evdev.KeyDot,
		"KEY_SLASH":      evdev.KeySlash,
		"KEY_SPACE":      evdev.KeySpace,
		"KEY_TAB":        evdev.KeyTab,
		"KEY_ENTER":      evdev.KeyEnter,
		"KEY_ESC":        evdev.KeyEsc,
		"KEY_BACKSPACE":  evdev.KeyBackspace,
		"KEY_LEFTSHIFT":  evdev.KeyLeftShift,
		"KEY_RIGHTSHIFT": evdev.KeyRightShift,
		"KEY_LEFTCTRL":   evdev.KeyLeftCtrl,
		"KEY_RIGHTCTRL":  evdev.KeyRightCtrl,
		"KEY_LEFTALT":    evdev.KeyLeftAlt,
		"KEY_RIGHTALT":   evdev.KeyRightAlt,
		"KEY_LEFTMETA":   evdev.KeyLeftMeta,
		"KEY_RIGHTMETA":  evdev.KeyRightMeta,
		"KEY_HANGUL":     evdev.KeyHangeul,
		"KEY_HANGEUL":    evdev.KeyHangeul,
		"KEY_HANJA":      evdev.KeyHanja,
		"KEY_CAPSLOCK":   evdev.KeyCapsLock,
		"KEY_F1":         evdev.KeyF1,
		"KEY_F2":         evdev.KeyF2,
		"KEY_F3":         evdev.KeyF3,
		"KEY_F4":         evdev.KeyF4,
		"KEY_F5":         evdev.KeyF5,
		"KEY_F6":         evdev.KeyF6,
		"KEY_F7":         evdev.KeyF7,
		"KEY_F8":         evdev.KeyF8,
		"KEY_F9":         evdev.KeyF9,
		"KEY_F10":        evdev.KeyF10,
		"KEY_F11":        evdev.KeyF11,
		"KEY_F12":        evdev.KeyF12,
	}
	for name, code := range named {
		table[name] = code
	}
	return table
}
