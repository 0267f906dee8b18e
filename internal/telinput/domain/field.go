// Package domain holds the state of a single telephone input field.
package domain

import (
	"strconv"

	"golang.org/x/text/language"

	"telinput/platform/phone"
)

// ModelValue is the committed value of a field: an E.164 number, or the raw
// text the user typed when it could not be parsed.
type ModelValue struct {
	Value       string `json:"value"`
	Unparseable bool   `json:"unparseable"`
}

// Unparseable wraps raw text that is not a phone number (yet).
func Unparseable(text string) ModelValue {
	return ModelValue{Value: text, Unparseable: true}
}

// IsEmpty reports whether nothing was entered.
func (m ModelValue) IsEmpty() bool {
	return m.Value == ""
}

// Field tracks the region and model value of one telephone field. It is not
// safe for concurrent use; create one per form or request.
type Field struct {
	p        *phone.Pipeline
	locale   language.Tag
	strategy phone.FormatStrategy
	explicit phone.RegionCode
	model    ModelValue
}

// NewField creates an empty field. An empty strategy formats nationally.
func NewField(p *phone.Pipeline, locale language.Tag, strategy phone.FormatStrategy) *Field {
	if strategy == "" {
		strategy = phone.StrategyNational
	}
	return &Field{p: p, locale: locale, strategy: strategy}
}

// Locale returns the locale used for the default region and region names.
func (f *Field) Locale() language.Tag { return f.locale }

// Strategy returns the format strategy of the field.
func (f *Field) Strategy() phone.FormatStrategy { return f.strategy }

// SetRegionCode sets the explicit region. An empty code clears it.
func (f *Field) SetRegionCode(code phone.RegionCode) {
	f.explicit = code
}

// RegionCode resolves the active region: the explicit region, else the region
// of the committed number, else the region of the locale.
func (f *Field) RegionCode() phone.RegionCode {
	if f.explicit != "" {
		return f.explicit
	}
	if derived := f.derivedRegionCode(); derived != "" {
		return derived
	}
	return phone.LocaleRegion(f.locale)
}

func (f *Field) derivedRegionCode() phone.RegionCode {
	if f.model.Unparseable || f.model.IsEmpty() {
		return ""
	}
	return f.p.Parser.RegionOf(f.model.Value)
}

// ModelValue returns the committed value.
func (f *Field) ModelValue() ModelValue { return f.model }

// SetModelValue replaces the committed value without parsing it.
func (f *Field) SetModelValue(m ModelValue) {
	f.model = m
}

// Commit parses viewValue against the active region and stores the result.
func (f *Field) Commit(viewValue string) ModelValue {
	if viewValue == "" {
		f.model = ModelValue{}
		return f.model
	}
	if e164, ok := f.p.Parser.ParseE164(viewValue, f.RegionCode()); ok {
		f.model = ModelValue{Value: e164}
	} else {
		f.model = Unparseable(viewValue)
	}
	return f.model
}

// FormattedValue renders the committed value for display. Unparseable text is
// shown as typed.
func (f *Field) FormattedValue() string {
	if f.model.Unparseable {
		return f.model.Value
	}
	return f.p.Formatter.Format(f.model.Value, f.RegionCode(), f.strategy)
}

// Validate checks the committed value against the active region.
func (f *Field) Validate() phone.Verdict {
	return f.p.Validator.Validate(f.model.Value, f.RegionCode())
}

// SelectRegion makes code the explicit region. When this changes the active
// region while the field is not focused, the model value is prefilled with
// the region's calling code so the user can continue typing after it.
func (f *Field) SelectRegion(code phone.RegionCode, focused bool) {
	prev := f.RegionCode()
	f.explicit = code
	if prev == code || focused {
		return
	}
	lib, ok := f.p.Handle.Library()
	if !ok {
		return
	}
	if cc := lib.CallingCode(code); cc > 0 {
		f.model = Unparseable("+" + strconv.Itoa(cc))
	}
}

// RegionOptions derives the dropdown options for the field's locale. An empty
// codes list means every supported region.
func (f *Field) RegionOptions(codes, preferred []phone.RegionCode) (preferredMeta, remaining []phone.RegionMeta) {
	return f.p.Catalog.Derive(f.p.Catalog.RegionCodes(codes), preferred, f.locale)
}
