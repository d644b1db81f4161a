package layout

import "hanip/internal/evdev"

// Two-set standard layout: consonants on the left hand, vowels on the
// right, tensed consonants on the shift level.
func buildDubeolsik() *Layout {
	m := builder{}

	m.add(evdev.KeyQ, jamoSym('ㅂ'), jamoSym('ㅃ'))
	m.add(evdev.KeyW, jamoSym('ㅈ'), jamoSym('ㅉ'))
	m.add(evdev.KeyE, jamoSym('ㄷ'), jamoSym('ㄸ'))
	m.add(evdev.KeyR, jamoSym('ㄱ'), jamoSym('ㄲ'))
	m.add(evdev.KeyT, jamoSym('ㅅ'), jamoSym('ㅆ'))
	m.add(evdev.KeyY, jamoSym('ㅛ'), nil)
	m.add(evdev.KeyU, jamoSym('ㅕ'), nil)
	m.add(evdev.KeyI, jamoSym('ㅑ'), nil)
	m.add(evdev.KeyO, jamoSym('ㅐ'), jamoSym('ㅒ'))
	m.add(evdev.KeyP, jamoSym('ㅔ'), jamoSym('ㅖ'))

	m.add(evdev.KeyA, jamoSym('ㅁ'), nil)
	m.add(evdev.KeyS, jamoSym('ㄴ'), nil)
	m.add(evdev.KeyD, jamoSym('ㅇ'), nil)
	m.add(evdev.KeyF, jamoSym('ㄹ'), nil)
	m.add(evdev.KeyG, jamoSym('ㅎ'), nil)
	m.add(evdev.KeyH, jamoSym('ㅗ'), nil)
	m.add(evdev.KeyJ, jamoSym('ㅓ'), nil)
	m.add(evdev.KeyK, jamoSym('ㅏ'), nil)
	m.add(evdev.KeyL, jamoSym('ㅣ'), nil)

	m.add(evdev.KeyZ, jamoSym('ㅋ'), nil)
	m.add(evdev.KeyX, jamoSym('ㅌ'), nil)
	m.add(evdev.KeyC, jamoSym('ㅊ'), nil)
	m.add(evdev.KeyV, jamoSym('ㅍ'), nil)
	m.add(evdev.KeyB, jamoSym('ㅠ'), nil)
	m.add(evdev.KeyN, jamoSym('ㅜ'), nil)
	m.add(evdev.KeyM, jamoSym('ㅡ'), nil)

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
	m.addText(evdev.KeyLeftBrace, "[", "{")
	m.addText(evdev.KeyRightBrace, "]", "}")
	m.addText(evdev.KeyBackslash, "\\", "|")
	m.addText(evdev.KeyGrave, "`", "~")
	m.addText(evdev.KeySemicolon, ";", ":")
	m.addText(evdev.KeyApostrophe, "'", "\"")
	m.addText(evdev.KeyComma, ",", "<")
	m.addText(evdev.KeyDot, ".", ">")
	m.addText(evdev.KeySlash, "/", "?")

	m.add(evdev.KeySpace, textSym(" "), nil)

	for _, code := range []uint16{evdev.KeyTab, evdev.KeyEnter, evdev.KeyEsc, evdev.KeyBackspace} {
		m.add(code, passSym(), nil)
	}

	return &Layout{name: "dubeolsik", mapping: m}
}
