package board

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/designboard/internal/scene"
	"github.com/example/designboard/internal/tool"
)

// KeyShortcut identifies a key press. Runes are matched lower-cased.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func shortcutOf(e key.Event) KeyShortcut {
	return KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
}

var toolKeys = map[tool.Tool]rune{
	tool.Select:      'v',
	tool.Draw:        'b',
	tool.Erase:       'e',
	tool.Rectangle:   'x',
	tool.Circle:      'o',
	tool.Line:        'l',
	tool.Arrow:       'a',
	tool.Text:        't',
	tool.IconPlacing: 'i',
}

// registerKeys binds the board shortcuts to named actions.
func (b *Board) registerKeys() {
	bind := func(action string, shortcuts ...KeyShortcut) {
		for _, ks := range shortcuts {
			b.keys[ks] = action
		}
	}
	for t, r := range toolKeys {
		bind("tool:"+t.String(), KeyShortcut{Rune: r})
	}
	digits := []rune("1234567890")
	for i, ic := range scene.IconCategories {
		if i >= len(digits) {
			break
		}
		bind("icon:"+ic.Name, KeyShortcut{Rune: digits[i]})
	}
	ctrl := func(r rune, code key.Code, mods key.Modifiers) []KeyShortcut {
		return []KeyShortcut{{Rune: r, Modifiers: mods}, {Code: code, Modifiers: mods}}
	}
	bind("undo", ctrl('z', key.CodeZ, key.ModControl)...)
	bind("redo", ctrl('y', key.CodeY, key.ModControl)...)
	bind("redo", ctrl('z', key.CodeZ, key.ModControl|key.ModShift)...)
	bind("export", ctrl('s', key.CodeS, key.ModControl)...)
	bind("copy", ctrl('c', key.CodeC, key.ModControl)...)
	bind("delete",
		KeyShortcut{Code: key.CodeDeleteForward},
		KeyShortcut{Code: key.CodeDeleteBackspace},
	)
	bind("quit", KeyShortcut{Rune: 'q'})
}

// lookupKey resolves e against the keymap. Drivers attach both a rune and a
// code to most presses, so the rune-only and code-only forms are tried too.
func (b *Board) lookupKey(e key.Event) (string, bool) {
	ks := shortcutOf(e)
	for _, cand := range []KeyShortcut{
		ks,
		{Rune: ks.Rune, Modifiers: ks.Modifiers},
		{Code: ks.Code, Modifiers: ks.Modifiers},
	} {
		if cand.Rune <= 0 && cand.Code == key.CodeUnknown {
			continue
		}
		if action, ok := b.keys[cand]; ok {
			return action, true
		}
	}
	return "", false
}
