package phone

import "unicode/utf8"

// Values outside this length window are treated as incomplete input.
const (
	minCompleteLength = 4
	maxCompleteLength = 16
)

func withinLengthGate(value string) bool {
	n := utf8.RuneCountInString(value)
	return n >= minCompleteLength && n <= maxCompleteLength
}

// Formatter renders canonical values for display.
type Formatter struct {
	h Handle
}

// NewFormatter creates a formatter reading the library from h.
func NewFormatter(h Handle) *Formatter {
	return &Formatter{h: h}
}

// Format renders value in strategy for region. The value is returned unchanged
// when the library is not loaded, the value is not a complete valid number, or
// the strategy is unknown. An empty strategy means national.
func (f *Formatter) Format(value string, region RegionCode, strategy FormatStrategy) string {
	lib, ok := f.h.Library()
	if !ok {
		return value
	}
	if !withinLengthGate(value) {
		return value
	}

	num, ok := lib.Parse(value, region)
	if !ok || !num.IsValid() {
		return value
	}

	if strategy == "" {
		strategy = StrategyNational
	}
	formatted, ok := num.Render(strategy)
	if !ok {
		return value
	}
	return formatted
}
