package input

import "strings"

// ChordSeparator joins tokens in the stored chord representation.
const ChordSeparator = "+"

// ParseChord splits a stored chord string into its canonical token
// sequence. Tokens are lowercased and deduplicated, order preserved, so
// re-parsing a display-cased string like "Ctrl+Shift+A" recovers
// ["ctrl", "shift", "a"].
func ParseChord(s string) []string {
	parts := strings.Split(s, ChordSeparator)
	tokens := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	return tokens
}

// ComposeChord joins tokens into the stored chord representation.
// Order is capture order; no escaping, no sorting.
func ComposeChord(tokens []string) string {
	return strings.Join(tokens, ChordSeparator)
}

// ChordContainsMouse reports whether any token of the chord is a mouse
// button. Such chords cannot be registered as plain keyboard hotkeys.
func ChordContainsMouse(s string) bool {
	for _, t := range ParseChord(s) {
		if IsMouseButton(t) {
			return true
		}
	}
	return false
}

// FormatInputDisplay renders one token for the UI: mouse tokens through
// the friendly-name table, keyboard tokens title-cased word by word.
func FormatInputDisplay(token string) string {
	if name, ok := mouseNames[token]; ok {
		return name
	}
	lower := strings.ToLower(token)
	if rest, ok := strings.CutPrefix(lower, "mouse"); ok && isDigits(rest) {
		return "Mouse " + rest
	}
	words := strings.Split(token, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// FormatChordDisplay renders a stored chord for the UI, one formatted
// token per part joined with " + ". Applying it to its own output is a
// no-op.
func FormatChordDisplay(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, ChordSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, FormatInputDisplay(p))
	}
	return strings.Join(out, " + ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
