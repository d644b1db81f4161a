// Package layout maps evdev keycodes to the symbols a keyboard layout
// produces: jamo for the composer, literal text, or a passthrough marker.
package layout

import (
	"fmt"
	"sort"

	"hanip/internal/compose"
	"hanip/internal/evdev"
)

type SymbolKind int

const (
	SymbolPassthrough SymbolKind = iota
	SymbolText
	SymbolJamo
)

// Symbol is one layout output. CommitBefore asks the engine to commit any
// pending preedit before the symbol is processed; Text and Passthrough
// default to true, Jamo to false.
type Symbol struct {
	Kind         SymbolKind
	Text         string
	Jamo         rune
	Role         compose.Role
	CommitBefore bool
}

type Entry struct {
	Normal  *Symbol
	Shifted *Symbol
}

type Layout struct {
	name    string
	mapping map[uint16]Entry
}

func (l *Layout) Name() string { return l.name }

// Translate resolves a keycode under the current shift state. The preferred
// variant falls back to the other when absent; nil means unmapped.
func (l *Layout) Translate(code uint16, shift bool) *Symbol {
	if l == nil {
		return nil
	}
	entry, ok := l.mapping[code]
	if !ok {
		return nil
	}
	if shift && entry.Shifted != nil {
		return entry.Shifted
	}
	if entry.Normal != nil {
		return entry.Normal
	}
	return entry.Shifted
}

func textSym(value string) *Symbol {
	return &Symbol{Kind: SymbolText, Text: value, CommitBefore: true}
}

func jamoSym(value rune) *Symbol {
	return &Symbol{Kind: SymbolJamo, Jamo: value, Role: compose.RoleAuto}
}

func trailingSym(value rune) *Symbol {
	return &Symbol{Kind: SymbolJamo, Jamo: value, Role: compose.RoleTrailing}
}

func passSym() *Symbol {
	return &Symbol{Kind: SymbolPassthrough, CommitBefore: true}
}

type builder map[uint16]Entry

func (b builder) add(code uint16, normal, shifted *Symbol) {
	b[code] = Entry{Normal: normal, Shifted: shifted}
}

func (b builder) addText(code uint16, normal, shifted string) {
	b.add(code, textSym(normal), textSym(shifted))
}

// Names lists the built-in layouts.
func Names() []string {
	names := []string{"dubeolsik", "sebeolsik-390"}
	sort.Strings(names)
	return names
}

func Load(name string) (*Layout, error) {
	switch name {
	case "", "dubeolsik":
		return buildDubeolsik(), nil
	case "sebeolsik-390":
		return buildSebeolsik390(), nil
	default:
		return nil, fmt.Errorf("unknown layout: %s", name)
	}
}

// HexKeycodes is the digit→keycode table the emitter uses to type Unicode
// code points as lowercase hex.
func HexKeycodes() map[rune]uint16 {
	return map[rune]uint16{
		'0': evdev.Key0, '1': evdev.Key1, '2': evdev.Key2, '3': evdev.Key3,
		'4': evdev.Key4, '5': evdev.Key5, '6': evdev.Key6, '7': evdev.Key7,
		'8': evdev.Key8, '9': evdev.Key9,
		'a': evdev.KeyA, 'b': evdev.KeyB, 'c': evdev.KeyC, 'd': evdev.KeyD,
		'e': evdev.KeyE, 'f': evdev.KeyF,
	}
}
