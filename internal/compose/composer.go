// Package compose implements the incremental Hangul syllable automaton: one
// leading consonant, one medial vowel, one optional trailing consonant, with
// double-jamo composition and stepwise decomposition on backspace.
package compose

import (
	hangul "github.com/suapapa/go_hangul"
)

// Role is the positional hint a layout attaches to a jamo. Auto lets the
// composer decide from its state; Leading and Trailing force the onset or
// coda slot (three-set layouts use these).
type Role int

const (
	RoleAuto Role = iota
	RoleLeading
	RoleTrailing
)

// Result is one step's outcome. Commit is text finalized by the step and no
// longer part of the preedit; Preedit is the full preedit content after it.
type Result struct {
	Commit  string
	Preedit string
}

// Composer holds the three slots of the syllable under construction. The
// zero rune marks an empty slot; trailing is never set while vowel is empty.
type Composer struct {
	leading  rune
	vowel    rune
	trailing rune
}

func New() *Composer {
	return &Composer{}
}

// Feed consumes a single jamo. Input that is neither jaeum nor moeum leaves
// the state untouched; the composer itself never fails.
func (c *Composer) Feed(ch rune, role Role) Result {
	var commit []rune
	switch {
	case hangul.IsMoeum(ch):
		commit = c.feedVowel(ch)
	case hangul.IsJaeum(ch):
		commit = c.feedConsonant(ch, role)
	}
	return Result{Commit: string(commit), Preedit: string(c.current())}
}

// Backspace peels the state back one step, decomposing compound jamo before
// clearing a slot. The second result is false when there was nothing to
// peel, signalling the caller to let the real Backspace through.
func (c *Composer) Backspace() (string, bool) {
	switch {
	case c.trailing != 0:
		if pair, ok := finalDecompose[c.trailing]; ok {
			c.trailing = pair[0]
		} else {
			c.trailing = 0
		}
	case c.vowel != 0:
		if pair, ok := medialDecompose[c.vowel]; ok {
			c.vowel = pair[0]
		} else {
			c.vowel = 0
			if c.leading == nullInitial {
				c.leading = 0
			}
		}
	case c.leading != 0:
		if pair, ok := initialDecompose[c.leading]; ok {
			c.leading = pair[0]
		} else {
			c.leading = 0
		}
	default:
		return "", false
	}
	return string(c.current()), true
}

// Flush commits whatever the state represents and clears it.
func (c *Composer) Flush() string {
	commit := string(c.current())
	c.reset(0, 0, 0)
	return commit
}

func (c *Composer) Empty() bool {
	return c.leading == 0 && c.vowel == 0 && c.trailing == 0
}

func (c *Composer) feedConsonant(ch rune, role Role) []rune {
	if c.leading == 0 {
		c.leading = ch
		c.trailing = 0
		return nil
	}

	if role == RoleLeading {
		commit := c.current()
		c.reset(ch, 0, 0)
		return commit
	}

	if c.vowel == 0 {
		if combined, ok := doubleInitial[[2]rune{c.leading, ch}]; ok {
			c.leading = combined
			return nil
		}
		commit := []rune{c.leading}
		c.leading = ch
		return commit
	}

	if role == RoleTrailing {
		return c.attachTrailing(ch)
	}

	if c.trailing == 0 {
		if isCoda(ch) {
			c.trailing = ch
			return nil
		}
		commit := c.current()
		c.reset(ch, 0, 0)
		return commit
	}

	if combined, ok := doubleFinal[[2]rune{c.trailing, ch}]; ok {
		c.trailing = combined
		return nil
	}
	commit := c.current()
	c.reset(ch, 0, 0)
	return commit
}

func (c *Composer) feedVowel(ch rune) []rune {
	if c.leading == 0 {
		c.leading = nullInitial
	}

	if c.vowel == 0 {
		c.vowel = ch
		return nil
	}

	if combined, ok := doubleMedial[[2]rune{c.vowel, ch}]; ok {
		c.vowel = combined
		return nil
	}

	// Batchim migration: a compound coda splits, its second half becoming
	// the onset of the next syllable. A simple coda stays with the
	// committed syllable.
	if c.trailing != 0 {
		if pair, ok := finalDecompose[c.trailing]; ok {
			c.trailing = pair[0]
			commit := c.current()
			c.reset(pair[1], ch, 0)
			return commit
		}
	}

	commit := c.current()
	c.reset(nullInitial, ch, 0)
	return commit
}

func (c *Composer) attachTrailing(ch rune) []rune {
	if c.trailing == 0 {
		if isCoda(ch) {
			c.trailing = ch
			return nil
		}
		commit := c.current()
		c.reset(ch, 0, 0)
		return commit
	}

	if combined, ok := doubleFinal[[2]rune{c.trailing, ch}]; ok {
		c.trailing = combined
		return nil
	}
	commit := c.current()
	c.reset(ch, 0, 0)
	return commit
}

func (c *Composer) reset(leading, vowel, trailing rune) {
	c.leading = leading
	c.vowel = vowel
	c.trailing = trailing
}

// current renders the state: a full syllable when leading+vowel are set, a
// lone jamo otherwise, nothing when empty.
func (c *Composer) current() []rune {
	switch {
	case c.leading != 0 && c.vowel != 0:
		tail := 0
		if c.trailing != 0 {
			tail = jongIndex[c.trailing]
		}
		cp := rune(syllableBase + ((choIndex[c.leading]*jungCount)+jungIndex[c.vowel])*jongCount + tail)
		return []rune{cp}
	case c.leading != 0:
		return []rune{c.leading}
	case c.vowel != 0:
		return []rune{c.vowel}
	default:
		return nil
	}
}
