package layout

import "hanip/internal/evdev"

// Three-set 390 layout. The shift level of the right half carries explicit
// coda jamo so the composer never has to guess batchim placement; the left
// hand keeps its tense onsets.
func buildSebeolsik390() *Layout {
	m := builder{}

	m.addText(evdev.KeyGrave, "`", "~")
	m.addText(evdev.Key1, "1", "!")
	m.addText(evdev.Key2, "2", "@")
	m.addText(evdev.Key3, "3", "#")
	m.addText(evdev.Key4, "4", "$")
	m.addText(evdev.Key5, "5", "%")
	m.addText(evdev.Key6, "6", "^")
	m.addText(evdev.Key7, "7", "&")
	m.addText(evdev.Key8, "8", "*")
	m.addText(evdev.Key9, "9", "(")
	m.addText(evdev.Key0, "0", ")")
	m.addText(evdev.KeyMinus, "-", "_")
	m.addText(evdev.KeyEqual, "=", "+")

	m.add(evdev.KeyQ, jamoSym('ㅂ'), jamoSym('ㅃ'))
	m.add(evdev.KeyW, jamoSym('ㅈ'), jamoSym('ㅉ'))
	m.add(evdev.KeyE, jamoSym('ㄷ'), jamoSym('ㄸ'))
	m.add(evdev.KeyR, jamoSym('ㄱ'), jamoSym('ㄲ'))
	m.add(evdev.KeyT, jamoSym('ㅅ'), jamoSym('ㅆ'))
	m.add(evdev.KeyY, jamoSym('ㅛ'), trailingSym('ㅅ'))
	m.add(evdev.KeyU, jamoSym('ㅕ'), trailingSym('ㅈ'))
	m.add(evdev.KeyI, jamoSym('ㅑ'), trailingSym('ㅊ'))
	m.add(evdev.KeyO, jamoSym('ㅐ'), trailingSym('ㅋ'))
	m.add(evdev.KeyP, jamoSym('ㅔ'), trailingSym('ㅌ'))
	m.add(evdev.KeyLeftBrace, jamoSym('ㅒ'), trailingSym('ㅍ'))
	m.add(evdev.KeyRightBrace, jamoSym('ㅖ'), trailingSym('ㅎ'))
	m.add(evdev.KeyBackslash, jamoSym('ㅢ'), textSym("|"))

	m.add(evdev.KeyA, jamoSym('ㅁ'), jamoSym('ㅁ'))
	m.add(evdev.KeyS, jamoSym('ㄴ'), jamoSym('ㄴ'))
	m.add(evdev.KeyD, jamoSym('ㅇ'), jamoSym('ㅇ'))
	m.add(evdev.KeyF, jamoSym('ㄹ'), jamoSym('ㄹ'))
	m.add(evdev.KeyG, jamoSym('ㅎ'), jamoSym('ㅎ'))
	m.add(evdev.KeyH, jamoSym('ㅗ'), trailingSym('ㄱ'))
	m.add(evdev.KeyJ, jamoSym('ㅓ'), trailingSym('ㄴ'))
	m.add(evdev.KeyK, jamoSym('ㅏ'), trailingSym('ㄷ'))
	m.add(evdev.KeyL, jamoSym('ㅣ'), trailingSym('ㄹ'))
	m.add(evdev.KeySemicolon, jamoSym('ㅠ'), trailingSym('ㅁ'))
	m.add(evdev.KeyApostrophe, jamoSym('ㅜ'), trailingSym('ㅂ'))

	m.add(evdev.KeyZ, jamoSym('ㅋ'), jamoSym('ㅋ'))
	m.add(evdev.KeyX, jamoSym('ㅌ'), jamoSym('ㅌ'))
	m.add(evdev.KeyC, jamoSym('ㅊ'), jamoSym('ㅊ'))
	m.add(evdev.KeyV, jamoSym('ㅍ'), jamoSym('ㅍ'))
	m.add(evdev.KeyB, jamoSym('ㅠ'), trailingSym('ㅇ'))
	m.add(evdev.KeyN, jamoSym('ㅜ'), trailingSym('ㅅ'))
	m.add(evdev.KeyM, jamoSym('ㅡ'), trailingSym('ㅎ'))

	m.add(evdev.KeyComma, jamoSym('ㅘ'), jamoSym('ㅙ'))
	m.add(evdev.KeyDot, jamoSym('ㅝ'), jamoSym('ㅞ'))
	m.add(evdev.KeySlash, jamoSym('ㅟ'), passSym())

	m.add(evdev.KeySpace, textSym(" "), nil)

	for _, code := range []uint16{evdev.KeyTab, evdev.KeyEnter, evdev.KeyEsc, evdev.KeyBackspace} {
		m.add(code, passSym(), nil)
	}

	return &Layout{name: "sebeolsik-390", mapping: m}
}
