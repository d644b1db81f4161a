// Package engine runs the interception loop: it owns the grabbed source
// device, feeds the composer through the layout, and keeps the downstream
// preedit consistent through the emitter.
package engine

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	"hanip/internal/compose"
	"hanip/internal/config"
	"hanip/internal/emitter"
	"hanip/internal/evdev"
	"hanip/internal/layout"
	"hanip/internal/types"
)

var (
	shiftKeys = []uint16{evdev.KeyLeftShift, evdev.KeyRightShift}

	// Ctrl/Alt/Meta are forwarded even in Hangul mode so accelerators keep
	// working; only Shift is withheld while composing.
	alwaysForward = []uint16{
		evdev.KeyLeftCtrl, evdev.KeyRightCtrl,
		evdev.KeyLeftAlt, evdev.KeyRightAlt,
		evdev.KeyLeftMeta, evdev.KeyRightMeta,
	}

	modifierKeys = append(append([]uint16{}, shiftKeys...), alwaysForward...)
)

type Engine struct {
	sourceFD int
	out      emitter.Output
	lay      *layout.Layout
	composer *compose.Composer
	log      *slog.Logger

	mode       types.Mode
	toggleKeys map[uint16]struct{}

	// modifierState tracks the physical keyboard; forwardedModifiers tracks
	// what the virtual device currently holds. They diverge whenever the
	// engine swallows Shift or suspends modifiers around synthetic typing.
	modifierState      map[uint16]bool
	forwardedModifiers map[uint16]bool
	forwardedKeys      map[uint16]struct{}

	// preedit mirrors the provisional text already typed downstream; the
	// composer is the authority, this is what may need erasing.
	preedit string
}

func New(sourceFD int, lay *layout.Layout, toggle config.Toggle, out emitter.Output, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		sourceFD:           sourceFD,
		out:                out,
		lay:                lay,
		composer:           compose.New(),
		log:                log,
		mode:               toggle.DefaultMode,
		toggleKeys:         make(map[uint16]struct{}, len(toggle.Keys)),
		modifierState:      make(map[uint16]bool, len(modifierKeys)),
		forwardedModifiers: make(map[uint16]bool, len(modifierKeys)),
		forwardedKeys:      make(map[uint16]struct{}),
	}
	for _, code := range toggle.Keys {
		e.toggleKeys[code] = struct{}{}
	}
	for _, code := range modifierKeys {
		e.modifierState[code] = false
		e.forwardedModifiers[code] = false
	}
	return e
}

// Run grabs the source device and processes events until EOF or a fatal
// error. The grab is released on every exit path; the emitter is closed.
func (e *Engine) Run() error {
	if err := evdev.Grab(e.sourceFD, true); err != nil {
		return fmt.Errorf("grab device: %w", err)
	}
	defer func() {
		_ = evdev.Grab(e.sourceFD, false)
		_ = e.out.Close()
	}()

	e.log.Info("device grabbed", "mode", e.mode.String())

	size := evdev.EventSize()
	for {
		var ev evdev.InputEvent
		n, err := unix.Read(e.sourceFD, ev.Bytes())
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return fmt.Errorf("read input event: %w", err)
		}
		if n == 0 {
			return nil
		}
		if n != size {
			continue
		}
		if err := e.process(&ev); err != nil {
			return err
		}
	}
}

func (e *Engine) process(ev *evdev.InputEvent) error {
	if ev.Type != evdev.EvKey {
		// While a preedit is live no stray SYN_REPORTs may leak; the
		// emitter syncs after its own writes.
		if e.mode == types.ModeLatin {
			return e.out.ForwardEvent(ev)
		}
		return nil
	}

	if _, ok := e.toggleKeys[ev.Code]; ok {
		if ev.Value == evdev.ValuePress {
			return e.toggleMode()
		}
		return nil
	}

	if isModifier(ev.Code) {
		return e.handleModifier(ev)
	}

	if e.mode == types.ModeLatin {
		return e.forwardTracked(ev)
	}

	if ev.Code == evdev.KeyBackspace {
		return e.handleBackspace(ev)
	}

	if evdev.IsRelease(ev) {
		return e.handleRelease(ev)
	}

	return e.handlePress(ev)
}

func (e *Engine) handleModifier(ev *evdev.InputEvent) error {
	code := ev.Code
	press := evdev.IsPress(ev)
	release := evdev.IsRelease(ev)

	if press {
		e.modifierState[code] = true
	} else if release {
		e.modifierState[code] = false
	}

	if e.mode == types.ModeLatin || contains(alwaysForward, code) {
		if err := e.out.ForwardEvent(ev); err != nil {
			return err
		}
		e.forwardedModifiers[code] = press
		return nil
	}

	// Hangul-mode Shift: withheld on press so it cannot distort synthetic
	// typing; a release only propagates if the press was forwarded earlier.
	if release && e.forwardedModifiers[code] {
		return e.setForwardedModifier(code, false)
	}
	return nil
}

func (e *Engine) handleBackspace(ev *evdev.InputEvent) error {
	if evdev.IsRelease(ev) {
		return e.handleRelease(ev)
	}
	if e.modifiersActive(alwaysForward) {
		// Ctrl/Alt/Meta+Backspace is a shortcut and bypasses the composer.
		return e.handlePress(ev)
	}
	if preedit, ok := e.composer.Backspace(); ok {
		return e.replacePreedit(preedit)
	}
	if err := e.commitPreedit(); err != nil {
		return err
	}
	return e.forwardTracked(ev)
}

func (e *Engine) handleRelease(ev *evdev.InputEvent) error {
	if _, ok := e.forwardedKeys[ev.Code]; ok {
		return e.forwardTracked(ev)
	}
	return nil
}

func (e *Engine) handlePress(ev *evdev.InputEvent) error {
	if e.modifiersActive(alwaysForward) {
		// Shortcut: commit, then hand the chord through untouched.
		if err := e.commitPreedit(); err != nil {
			return err
		}
		if err := e.ensureShiftForwarded(); err != nil {
			return err
		}
		return e.forwardTracked(ev)
	}

	symbol := e.lay.Translate(ev.Code, e.shiftActive())
	if symbol == nil {
		if err := e.commitPreedit(); err != nil {
			return err
		}
		if err := e.ensureShiftForwarded(); err != nil {
			return err
		}
		return e.forwardTracked(ev)
	}

	switch symbol.Kind {
	case layout.SymbolPassthrough:
		if symbol.CommitBefore {
			if err := e.commitPreedit(); err != nil {
				return err
			}
		}
		if err := e.ensureShiftForwarded(); err != nil {
			return err
		}
		return e.forwardTracked(ev)
	case layout.SymbolText:
		if symbol.CommitBefore {
			if err := e.commitPreedit(); err != nil {
				return err
			}
		}
		return e.sendText(symbol.Text)
	case layout.SymbolJamo:
		result := e.composer.Feed(symbol.Jamo, symbol.Role)
		if result.Commit != "" {
			if err := e.commitText(result.Commit); err != nil {
				return err
			}
		}
		if result.Preedit != e.preedit {
			return e.replacePreedit(result.Preedit)
		}
		return nil
	default:
		return nil
	}
}

// forwardTracked forwards a key event and records press/release pairing so
// orphaned releases are not synthesized later.
func (e *Engine) forwardTracked(ev *evdev.InputEvent) error {
	if err := e.out.ForwardEvent(ev); err != nil {
		return err
	}
	if evdev.IsPress(ev) {
		e.forwardedKeys[ev.Code] = struct{}{}
	} else if evdev.IsRelease(ev) {
		delete(e.forwardedKeys, ev.Code)
	}
	return nil
}

func (e *Engine) toggleMode() error {
	if err := e.commitPreedit(); err != nil {
		return err
	}
	if e.mode == types.ModeHangul {
		e.mode = types.ModeLatin
	} else {
		e.mode = types.ModeHangul
	}
	e.log.Debug("mode toggled", "mode", e.mode.String())
	return nil
}

func (e *Engine) commitText(text string) error {
	if text == "" {
		return nil
	}
	if err := e.replacePreedit(""); err != nil {
		return err
	}
	return e.sendText(text)
}

func (e *Engine) commitPreedit() error {
	commit := e.composer.Flush()
	if commit == "" && e.preedit == "" {
		return nil
	}
	if err := e.replacePreedit(""); err != nil {
		return err
	}
	if commit != "" {
		return e.sendText(commit)
	}
	return nil
}

// replacePreedit reconciles the downstream preedit region: erase the old
// text by scalar count, type the new one, all with held modifiers suspended
// so they cannot corrupt the hex sequence.
func (e *Engine) replacePreedit(text string) error {
	if text == e.preedit {
		return nil
	}
	suspended, err := e.suspendForwardedModifiers()
	if err != nil {
		return err
	}
	if e.preedit != "" {
		if err := e.out.SendBackspace(countRunes(e.preedit)); err != nil {
			e.restoreForwardedModifiers(suspended)
			return err
		}
	}
	if text != "" {
		if err := e.out.SendText(text); err != nil {
			e.restoreForwardedModifiers(suspended)
			return err
		}
	}
	e.preedit = text
	e.restoreForwardedModifiers(suspended)
	return nil
}

func (e *Engine) sendText(text string) error {
	if text == "" {
		return nil
	}
	suspended, err := e.suspendForwardedModifiers()
	if err != nil {
		return err
	}
	err = e.out.SendText(text)
	e.restoreForwardedModifiers(suspended)
	return err
}

// ensureShiftForwarded re-presses Shift on the virtual device when it is
// physically held but currently withheld, so passthroughs stay shifted.
func (e *Engine) ensureShiftForwarded() error {
	for _, code := range shiftKeys {
		if e.modifierState[code] && !e.forwardedModifiers[code] {
			if err := e.setForwardedModifier(code, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) setForwardedModifier(code uint16, pressed bool) error {
	if e.forwardedModifiers[code] == pressed {
		return nil
	}
	if err := e.out.SendKeyState(code, pressed); err != nil {
		return err
	}
	e.forwardedModifiers[code] = pressed
	return nil
}

func (e *Engine) suspendForwardedModifiers() ([]uint16, error) {
	var suspended []uint16
	for _, code := range modifierKeys {
		if e.forwardedModifiers[code] {
			if err := e.setForwardedModifier(code, false); err != nil {
				return suspended, err
			}
			suspended = append(suspended, code)
		}
	}
	return suspended, nil
}

// restoreForwardedModifiers re-presses only what is still physically held.
func (e *Engine) restoreForwardedModifiers(codes []uint16) {
	for _, code := range codes {
		if e.modifierState[code] {
			_ = e.setForwardedModifier(code, true)
		}
	}
}

func (e *Engine) modifiersActive(codes []uint16) bool {
	for _, code := range codes {
		if e.modifierState[code] {
			return true
		}
	}
	return false
}

func (e *Engine) shiftActive() bool {
	return e.modifiersActive(shiftKeys)
}

func isModifier(code uint16) bool {
	return contains(modifierKeys, code)
}

func contains(list []uint16, code uint16) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}
	return false
}

func countRunes(s string) int {
	count := 0
	for range s {
		count++
	}
	return count
}
