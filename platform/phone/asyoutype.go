package phone

import "unicode/utf8"

// LiveResult is the outcome of reformatting a value while it is being typed.
type LiveResult struct {
	ViewValue   string `json:"viewValue"`
	CaretIndex  int    `json:"caretIndex"`
	Reformatted bool   `json:"reformatted"`
}

// LiveFormatter reformats input on every insertion.
type LiveFormatter struct {
	h         Handle
	formatter *Formatter
}

// NewLiveFormatter creates a live formatter that finishes through formatter.
func NewLiveFormatter(h Handle, formatter *Formatter) *LiveFormatter {
	return &LiveFormatter{h: h, formatter: formatter}
}

// Format reformats viewValue after a keystroke. Only net insertions are
// reformatted; deletions and same-length replacements pass through unchanged
// so the user can edit separators away.
//
// Caret indexes count characters, not bytes. See alignCaret for how the caret
// moves when the value is rewritten.
func (l *LiveFormatter) Format(viewValue, prevViewValue string, caretIndex int, region RegionCode, strategy FormatStrategy) LiveResult {
	passthrough := LiveResult{ViewValue: viewValue, CaretIndex: caretIndex}
	if utf8.RuneCountInString(viewValue) <= utf8.RuneCountInString(prevViewValue) {
		return passthrough
	}
	lib, ok := l.h.Library()
	if !ok {
		return passthrough
	}

	ayt := lib.AsYouType(region)
	var typed string
	seenDialable := false
	for _, r := range viewValue {
		if !isDialable(r) || (r == '+' && seenDialable) {
			continue
		}
		seenDialable = true
		typed = ayt.InputDigit(r)
	}
	if typed == "" {
		return passthrough
	}

	formatted := l.formatter.Format(typed, region, strategy)
	return LiveResult{
		ViewValue:   formatted,
		CaretIndex:  alignCaret(viewValue, caretIndex, formatted),
		Reformatted: formatted != viewValue,
	}
}

func isDialable(r rune) bool {
	return (r >= '0' && r <= '9') || r == '+'
}

// alignCaret maps caret in from to a position in to. A caret at the end stays
// at the end. When from and to carry the same dialable characters (digits and
// '+') the caret follows the same number of dialables; when formatting changed
// them, as with a national prefix turned into a calling code, the caret keeps
// the same number of dialables behind it.
func alignCaret(from string, caret int, to string) int {
	fromRunes := []rune(from)
	toRunes := []rune(to)
	if caret >= len(fromRunes) {
		return len(toRunes)
	}
	if caret <= 0 {
		return 0
	}

	want := countDialable(fromRunes[:caret])
	if dialables(fromRunes) != dialables(toRunes) {
		want = countDialable(toRunes) - countDialable(fromRunes[caret:])
	}
	if want <= 0 {
		return 0
	}

	seen := 0
	for i, r := range toRunes {
		if isDialable(r) {
			seen++
			if seen == want {
				return i + 1
			}
		}
	}
	return len(toRunes)
}

func countDialable(runes []rune) int {
	n := 0
	for _, r := range runes {
		if isDialable(r) {
			n++
		}
	}
	return n
}

func dialables(runes []rune) string {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if isDialable(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
