package phone

// Parser turns typed input into the canonical E.164 model value.
type Parser struct {
	h Handle
}

// NewParser creates a parser reading the library from h.
func NewParser(h Handle) *Parser {
	return &Parser{h: h}
}

// ParseE164 returns the E.164 rendering of viewValue and true, or viewValue
// and false when the library is not loaded or the input cannot be parsed.
func (p *Parser) ParseE164(viewValue string, region RegionCode) (string, bool) {
	lib, ok := p.h.Library()
	if !ok {
		return viewValue, false
	}

	num, ok := lib.Parse(viewValue, region)
	if !ok {
		return viewValue, false
	}

	e164, ok := num.Render(StrategyE164)
	if !ok || e164 == "" {
		return viewValue, false
	}
	return e164, true
}

// Parse is ParseE164 without the success flag.
func (p *Parser) Parse(viewValue string, region RegionCode) string {
	out, _ := p.ParseE164(viewValue, region)
	return out
}

// RegionOf returns the region a canonical value belongs to, or "" when the
// library is not loaded or the value carries no recognizable calling code.
func (p *Parser) RegionOf(value string) RegionCode {
	if value == "" {
		return ""
	}
	lib, ok := p.h.Library()
	if !ok {
		return ""
	}
	num, ok := lib.Parse(value, "")
	if !ok {
		return ""
	}
	return num.RegionCode()
}
