package layout

// Charmap gives the dubeolsik jamo for an ASCII key character, shift
// expressed as the upper-case letter. It backs the terminal tryout tool,
// which has no keycodes to translate. Characters without a jamo (digits,
// punctuation) are absent and should be taken literally.
func Charmap() map[rune]rune {
	return map[rune]rune{
		'q': 'ㅂ', 'Q': 'ㅃ',
		'w': 'ㅈ', 'W': 'ㅉ',
		'e': 'ㄷ', 'E': 'ㄸ',
		'r': 'ㄱ', 'R': 'ㄲ',
		't': 'ㅅ', 'T': 'ㅆ',
		'y': 'ㅛ', 'Y': 'ㅛ',
		'u': 'ㅕ', 'U': 'ㅕ',
		'i': 'ㅑ', 'I': 'ㅑ',
		'o': 'ㅐ', 'O': 'ㅒ',
		'p': 'ㅔ', 'P': 'ㅖ',
		'a': 'ㅁ', 'A': 'ㅁ',
		's': 'ㄴ', 'S': 'ㄴ',
		'd': 'ㅇ', 'D': 'ㅇ',
		'f': 'ㄹ', 'F': 'ㄹ',
		'g': 'ㅎ', 'G': 'ㅎ',
		'h': 'ㅗ', 'H': 'ㅗ',
		'j': 'ㅓ', 'J': 'ㅓ',
		'k': 'ㅏ', 'K': 'ㅏ',
		'l': 'ㅣ', 'L': 'ㅣ',
		'z': 'ㅋ', 'Z': 'ㅋ',
		'x': 'ㅌ', 'X': 'ㅌ',
		'c': 'ㅊ', 'C': 'ㅊ',
		'v': 'ㅍ', 'V': 'ㅍ',
		'b': 'ㅠ', 'B': 'ㅠ',
		'n': 'ㅜ', 'N': 'ㅜ',
		'm': 'ㅡ', 'M': 'ㅡ',
	}
}
