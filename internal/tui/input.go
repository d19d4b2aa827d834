package tui

import "unicode/utf8"

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// maskPassword renders one bullet per rune.
func maskPassword(s string) string {
	runes := utf8.RuneCountInString(s)
	out := make([]byte, 0, runes)
	for i := 0; i < runes; i++ {
		out = append(out, '*')
	}
	return string(out)
}

// renderField renders a labelled form field with a block cursor when focused.
func renderField(label, value, placeholder string, focused bool) string {
	line := " " + fieldLabelStyle.Render(label)
	switch {
	case focused && value == "":
		line += accentStyle.Render("█")
	case focused:
		line += normalStyle.Render(value) + accentStyle.Render("█")
	case value == "":
		line += inputPlaceholderStyle.Render(placeholder)
	default:
		line += dimStyle.Render(value)
	}
	return line
}
