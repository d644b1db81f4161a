package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanip/internal/config"
	"hanip/internal/evdev"
	"hanip/internal/layout"
	"hanip/internal/types"
)

type op struct {
	kind    string // forward | key | bs | text
	code    uint16
	value   int32
	pressed bool
	count   int
	text    string
}

type fakeOutput struct {
	ops    []op
	buffer []rune
}

func (f *fakeOutput) Close() error { return nil }

func (f *fakeOutput) ForwardEvent(ev *evdev.InputEvent) error {
	f.ops = append(f.ops, op{kind: "forward", code: ev.Code, value: ev.Value})
	return nil
}

func (f *fakeOutput) SendKeyState(code uint16, pressed bool) error {
	f.ops = append(f.ops, op{kind: "key", code: code, pressed: pressed})
	return nil
}

func (f *fakeOutput) TapKey(code uint16) error {
	if err := f.SendKeyState(code, true); err != nil {
		return err
	}
	return f.SendKeyState(code, false)
}

func (f *fakeOutput) SendBackspace(count int) error {
	f.ops = append(f.ops, op{kind: "bs", count: count})
	if count >= len(f.buffer) {
		f.buffer = nil
	} else {
		f.buffer = f.buffer[:len(f.buffer)-count]
	}
	return nil
}

func (f *fakeOutput) SendText(text string) error {
	f.ops = append(f.ops, op{kind: "text", text: text})
	f.buffer = append(f.buffer, []rune(text)...)
	return nil
}

func (f *fakeOutput) String() string { return string(f.buffer) }

func (f *fakeOutput) forwarded() []op {
	var out []op
	for _, o := range f.ops {
		if o.kind == "forward" {
			out = append(out, o)
		}
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, mode types.Mode) (*Engine, *fakeOutput) {
	t.Helper()
	lay, err := layout.Load("dubeolsik")
	require.NoError(t, err)
	toggle := config.Default()
	toggle.DefaultMode = mode
	out := &fakeOutput{}
	return New(0, lay, toggle, out, quietLogger()), out
}

func key(code uint16, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EvKey, Code: code, Value: value}
}

func tap(t *testing.T, e *Engine, code uint16) {
	t.Helper()
	require.NoError(t, e.process(key(code, evdev.ValuePress)))
	require.NoError(t, e.process(key(code, evdev.ValueRelease)))
}

func hold(t *testing.T, e *Engine, code uint16) {
	t.Helper()
	require.NoError(t, e.process(key(code, evdev.ValuePress)))
}

func unhold(t *testing.T, e *Engine, code uint16) {
	t.Helper()
	require.NoError(t, e.process(key(code, evdev.ValueRelease)))
}

func TestScenarioGan(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyK)
	tap(t, e, evdev.KeyS)

	assert.Equal(t, "간", out.String())
	assert.Equal(t, "간", e.preedit)
}

func TestScenarioGanGa(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	for _, code := range []uint16{evdev.KeyR, evdev.KeyK, evdev.KeyS, evdev.KeyR, evdev.KeyK} {
		tap(t, e, code)
	}

	assert.Equal(t, "간가", out.String())
	assert.Equal(t, "가", e.preedit)
}

func TestScenarioGanSa(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	for _, code := range []uint16{evdev.KeyR, evdev.KeyK, evdev.KeyS, evdev.KeyT, evdev.KeyK} {
		tap(t, e, code)
	}

	assert.Equal(t, "간사", out.String())
	assert.Equal(t, "사", e.preedit)
}

func TestScenarioDoubleInitialPlain(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyK)

	assert.Equal(t, "까", out.String())
	assert.Equal(t, "까", e.preedit)
}

func TestScenarioTensedAfterPlainCommits(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	hold(t, e, evdev.KeyLeftShift)
	tap(t, e, evdev.KeyR)
	unhold(t, e, evdev.KeyLeftShift)
	tap(t, e, evdev.KeyK)

	assert.Equal(t, "ㄱ까", out.String())
	assert.Equal(t, "까", e.preedit)
}

func TestScenarioBackspaceIntoEmpty(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyD)
	tap(t, e, evdev.KeyK)
	assert.Equal(t, "아", e.preedit)

	tap(t, e, evdev.KeyBackspace)
	assert.Equal(t, "", e.preedit)
	assert.Equal(t, "", out.String())
	assert.Empty(t, out.forwarded(), "first backspace must be swallowed")

	// Composer is empty now: the next backspace goes through raw.
	tap(t, e, evdev.KeyBackspace)
	fwd := out.forwarded()
	require.Len(t, fwd, 2)
	assert.Equal(t, evdev.KeyBackspace, fwd[0].code)
	assert.Equal(t, int32(evdev.ValuePress), fwd[0].value)
	assert.Equal(t, int32(evdev.ValueRelease), fwd[1].value)
}

func TestScenarioCtrlShortcutBypassesComposer(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	hold(t, e, evdev.KeyLeftCtrl)
	tap(t, e, evdev.KeyR)
	unhold(t, e, evdev.KeyLeftCtrl)

	assert.Equal(t, "", e.preedit)
	assert.True(t, e.composer.Empty())

	fwd := out.forwarded()
	require.Len(t, fwd, 4) // ctrl down, R down, R up, ctrl up
	assert.Equal(t, evdev.KeyLeftCtrl, fwd[0].code)
	assert.Equal(t, evdev.KeyR, fwd[1].code)
	assert.Equal(t, evdev.KeyR, fwd[2].code)
	assert.Equal(t, evdev.KeyLeftCtrl, fwd[3].code)
}

func TestShortcutCommitsPendingPreedit(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyK)
	require.Equal(t, "가", e.preedit)

	hold(t, e, evdev.KeyLeftCtrl)
	tap(t, e, evdev.KeyS)
	unhold(t, e, evdev.KeyLeftCtrl)

	assert.Equal(t, "", e.preedit)
	assert.Equal(t, "가", out.String())
	assert.True(t, e.composer.Empty())
}

func TestLatinModeIsIdentityPassthrough(t *testing.T) {
	e, out := newTestEngine(t, types.ModeLatin)

	events := []*evdev.InputEvent{
		key(evdev.KeyA, evdev.ValuePress),
		key(evdev.KeyA, evdev.ValueRelease),
		{Type: evdev.EvSyn, Code: evdev.SynReport},
		key(evdev.KeyLeftShift, evdev.ValuePress),
		key(evdev.KeyB, evdev.ValuePress),
		key(evdev.KeyB, evdev.ValueRepeat),
		key(evdev.KeyB, evdev.ValueRelease),
		key(evdev.KeyLeftShift, evdev.ValueRelease),
	}
	for _, ev := range events {
		require.NoError(t, e.process(ev))
	}

	require.Len(t, out.ops, len(events))
	for i, ev := range events {
		assert.Equal(t, "forward", out.ops[i].kind)
		assert.Equal(t, ev.Code, out.ops[i].code)
		assert.Equal(t, ev.Value, out.ops[i].value)
	}
}

func TestNonKeyEventsDroppedInHangulMode(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	require.NoError(t, e.process(&evdev.InputEvent{Type: evdev.EvSyn, Code: evdev.SynReport}))
	assert.Empty(t, out.ops)
}

func TestBackspaceCountMatchesScalarCount(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyK)
	tap(t, e, evdev.KeyS)

	out.ops = nil
	// Feeding ㄱ flushes 간 and restarts: the one-syllable preedit must be
	// erased by exactly one backspace.
	tap(t, e, evdev.KeyR)

	var counts []int
	for _, o := range out.ops {
		if o.kind == "bs" {
			counts = append(counts, o.count)
		}
	}
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, "ㄱ", e.preedit)
}

func TestModifierSuspendAroundSyntheticText(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	// Shift+Tab forwards the shift press onto the virtual device.
	hold(t, e, evdev.KeyLeftShift)
	tap(t, e, evdev.KeyTab)
	require.True(t, e.forwardedModifiers[evdev.KeyLeftShift])

	// Still holding Shift, type a tensed jamo: the synthetic preedit write
	// must be bracketed by a shift release and a shift re-press.
	out.ops = nil
	hold(t, e, evdev.KeyR)

	var saw []string
	for _, o := range out.ops {
		switch {
		case o.kind == "key" && o.code == evdev.KeyLeftShift && !o.pressed:
			saw = append(saw, "shift-up")
		case o.kind == "key" && o.code == evdev.KeyLeftShift && o.pressed:
			saw = append(saw, "shift-down")
		case o.kind == "text":
			saw = append(saw, "text")
		}
	}
	assert.Equal(t, []string{"shift-up", "text", "shift-down"}, saw)
	assert.Equal(t, "ㄲ", e.preedit)
}

func TestSuspendedModifierNotRestoredWhenReleased(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	hold(t, e, evdev.KeyLeftShift)
	tap(t, e, evdev.KeyTab)
	require.True(t, e.forwardedModifiers[evdev.KeyLeftShift])
	unhold(t, e, evdev.KeyLeftShift)
	require.False(t, e.forwardedModifiers[evdev.KeyLeftShift])

	out.ops = nil
	tap(t, e, evdev.KeyR)
	for _, o := range out.ops {
		if o.kind == "key" && o.code == evdev.KeyLeftShift {
			t.Fatalf("released shift must not reappear, got %+v", o)
		}
	}
}

func TestToggleCommitsPreeditAndFlipsMode(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyK)
	require.Equal(t, "가", e.preedit)

	tap(t, e, evdev.KeyRightAlt)
	assert.Equal(t, types.ModeLatin, e.mode)
	assert.Equal(t, "가", out.String())
	assert.Equal(t, "", e.preedit)
	assert.Empty(t, out.forwarded(), "toggle key itself must be swallowed")

	tap(t, e, evdev.KeyRightAlt)
	assert.Equal(t, types.ModeHangul, e.mode)
}

func TestToggleRepeatAndReleaseSwallowed(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	require.NoError(t, e.process(key(evdev.KeyRightAlt, evdev.ValuePress)))
	require.Equal(t, types.ModeLatin, e.mode)
	require.NoError(t, e.process(key(evdev.KeyRightAlt, evdev.ValueRepeat)))
	require.NoError(t, e.process(key(evdev.KeyRightAlt, evdev.ValueRelease)))

	assert.Equal(t, types.ModeLatin, e.mode)
	assert.Empty(t, out.forwarded())
}

func TestAutorepeatFeedsComposer(t *testing.T) {
	e, _ := newTestEngine(t, types.ModeHangul)

	require.NoError(t, e.process(key(evdev.KeyR, evdev.ValuePress)))
	require.NoError(t, e.process(key(evdev.KeyR, evdev.ValueRepeat)))

	// Press then repeat composes the double initial exactly like two
	// presses would.
	assert.Equal(t, "ㄲ", e.preedit)
}

func TestTextSymbolCommitsThenTypes(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyR)
	tap(t, e, evdev.KeyK)
	tap(t, e, evdev.Key1)

	assert.Equal(t, "가1", out.String())
	assert.Equal(t, "", e.preedit)
	assert.True(t, e.composer.Empty())
}

func TestSpaceCommitsPreedit(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyG)
	tap(t, e, evdev.KeyK)
	tap(t, e, evdev.KeyS)
	tap(t, e, evdev.KeySpace)

	assert.Equal(t, "한 ", out.String())
	assert.Equal(t, "", e.preedit)
}

func TestUnmappedKeyForwards(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	tap(t, e, evdev.KeyF5)
	fwd := out.forwarded()
	require.Len(t, fwd, 2)
	assert.Equal(t, evdev.KeyF5, fwd[0].code)
}

func TestReleaseWithoutForwardedPressSwallowed(t *testing.T) {
	e, out := newTestEngine(t, types.ModeHangul)

	// The press fed the composer, so its release must not leak downstream.
	require.NoError(t, e.process(key(evdev.KeyR, evdev.ValuePress)))
	require.NoError(t, e.process(key(evdev.KeyR, evdev.ValueRelease)))
	assert.Empty(t, out.forwarded())
}

func TestSebeolsikTrailingRoleEndToEnd(t *testing.T) {
	lay, err := layout.Load("sebeolsik-390")
	require.NoError(t, err)
	out := &fakeOutput{}
	toggle := config.Default()
	e := New(0, lay, toggle, out, quietLogger())

	// ㅂ ㅏ, then Shift+H = forced-trailing ㄱ: 박.
	tap(t, e, evdev.KeyQ)
	tap(t, e, evdev.KeyK)
	hold(t, e, evdev.KeyLeftShift)
	tap(t, e, evdev.KeyH)
	unhold(t, e, evdev.KeyLeftShift)

	assert.Equal(t, "박", e.preedit)
	assert.Equal(t, "박", out.String())
}
