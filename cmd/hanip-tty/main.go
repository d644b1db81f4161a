// hanip-tty exercises the dubeolsik composer inside a terminal, without
// root or a grabbed device: ASCII keys map to jamo, Backspace edits the
// syllable, Enter finishes the line.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/eiannone/keyboard"

	"hanip/internal/compose"
	"hanip/internal/layout"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hanip-tty: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	fmt.Println("dubeolsik tryout - type to compose, Enter ends the line, Esc quits")

	charmap := layout.Charmap()
	composer := compose.New()
	var line strings.Builder

	redraw := func(preedit string) {
		fmt.Printf("\r\x1b[K%s%s", line.String(), preedit)
	}
	redraw("")

	for {
		ch, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		switch key {
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			line.WriteString(composer.Flush())
			fmt.Printf("\r\x1b[K%s\n", line.String())
			return nil
		case keyboard.KeyEnter:
			line.WriteString(composer.Flush())
			fmt.Printf("\r\x1b[K%s\n", line.String())
			line.Reset()
			redraw("")
			continue
		case keyboard.KeySpace:
			line.WriteString(composer.Flush())
			line.WriteByte(' ')
			redraw("")
			continue
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			if preedit, ok := composer.Backspace(); ok {
				redraw(preedit)
				continue
			}
			trimLastRune(&line)
			redraw("")
			continue
		}

		if ch == 0 {
			continue
		}
		if jamo, ok := charmap[ch]; ok {
			result := composer.Feed(jamo, compose.RoleAuto)
			line.WriteString(result.Commit)
			redraw(result.Preedit)
			continue
		}
		line.WriteString(composer.Flush())
		line.WriteRune(ch)
		redraw("")
	}
}

func trimLastRune(line *strings.Builder) {
	s := line.String()
	if s == "" {
		return
	}
	runes := []rune(s)
	line.Reset()
	line.WriteString(string(runes[:len(runes)-1]))
}
