// Package phone provides telephone number parsing, formatting, validation and
// region metadata on top of libphonenumber.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"errors"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// RegionCode is a two-letter uppercase region identifier such as "NL".
type RegionCode string

// unknownRegion is what libphonenumber reports for numbers it cannot place.
const unknownRegion RegionCode = "ZZ"

// NormalizeRegion trims and uppercases a region code.
func NormalizeRegion(s string) RegionCode {
	return RegionCode(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid reports whether r consists of exactly two ASCII letters A-Z.
func (r RegionCode) Valid() bool {
	if len(r) != 2 {
		return false
	}
	for i := 0; i < len(r); i++ {
		if r[i] < 'A' || r[i] > 'Z' {
			return false
		}
	}
	return true
}

// FormatStrategy selects how a number is rendered for display.
type FormatStrategy string

const (
	StrategyNational      FormatStrategy = "national"
	StrategyInternational FormatStrategy = "international"
	StrategyE164          FormatStrategy = "e164"
	StrategyRFC3966       FormatStrategy = "rfc3966"
	StrategySignificant   FormatStrategy = "significant"
)

// ErrUnknownStrategy is returned by ParseFormatStrategy for unsupported names.
var ErrUnknownStrategy = errors.New("unknown format strategy")

// Strategies lists every supported format strategy.
func Strategies() []FormatStrategy {
	return []FormatStrategy{
		StrategyNational,
		StrategyInternational,
		StrategyE164,
		StrategyRFC3966,
		StrategySignificant,
	}
}

// ParseFormatStrategy resolves a strategy name. An empty name means national.
func ParseFormatStrategy(s string) (FormatStrategy, error) {
	name := FormatStrategy(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return StrategyNational, nil
	}
	for _, strategy := range Strategies() {
		if strategy == name {
			return strategy, nil
		}
	}
	return "", ErrUnknownStrategy
}

// Number is a successfully parsed telephone number.
type Number interface {
	// IsValid reports whether the number is a valid number in any region.
	IsValid() bool
	// IsValidForRegion reports whether the number is valid for the given region.
	IsValidForRegion(region RegionCode) bool
	// Render returns the number in the given strategy; false for unknown strategies.
	Render(strategy FormatStrategy) (string, bool)
	// RegionCode returns the region the number belongs to, or "" when unknown.
	RegionCode() RegionCode
}

// AsYouTyper accumulates digits one at a time and returns the formatted result so far.
type AsYouTyper interface {
	InputDigit(r rune) string
	Clear()
}

// Library is the handle through which all components reach the phone number library.
// Implementations must be safe for concurrent use.
type Library interface {
	// Parse parses value in the context of region. The boolean is false when the
	// input cannot be parsed at all.
	Parse(value string, region RegionCode) (Number, bool)
	// CallingCode returns the international calling code of region, or 0.
	CallingCode(region RegionCode) int
	// SupportedRegions returns every region code the library knows, sorted.
	SupportedRegions() []RegionCode
	// AsYouType returns a fresh as-you-type accumulator for region.
	AsYouType(region RegionCode) AsYouTyper
}

type libPhoneNumber struct{}

// NewLibrary returns the Library backed by github.com/nyaruka/phonenumbers.
func NewLibrary() Library {
	return libPhoneNumber{}
}

func (libPhoneNumber) Parse(value string, region RegionCode) (Number, bool) {
	num, err := phonenumbers.Parse(value, string(region))
	if err != nil || num == nil {
		return nil, false
	}
	return parsedNumber{num: num}, true
}

func (libPhoneNumber) CallingCode(region RegionCode) int {
	if !region.Valid() {
		return 0
	}
	return phonenumbers.GetCountryCodeForRegion(string(region))
}

func (libPhoneNumber) SupportedRegions() []RegionCode {
	supported := phonenumbers.GetSupportedRegions()
	regions := make([]RegionCode, 0, len(supported))
	for code := range supported {
		regions = append(regions, RegionCode(code))
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	return regions
}

func (libPhoneNumber) AsYouType(region RegionCode) AsYouTyper {
	return &digitAccumulator{region: string(region)}
}

// digitAccumulator re-parses everything typed so far on each digit. Until the
// digits form a valid number they are returned as typed; a valid number is
// rendered nationally, or internationally when it was entered with '+'.
type digitAccumulator struct {
	region string
	digits []rune
}

func (a *digitAccumulator) InputDigit(r rune) string {
	a.digits = append(a.digits, r)
	raw := string(a.digits)

	num, err := phonenumbers.Parse(raw, a.region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	if a.digits[0] == '+' {
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}

func (a *digitAccumulator) Clear() {
	a.digits = a.digits[:0]
}

type parsedNumber struct {
	num *phonenumbers.PhoneNumber
}

func (p parsedNumber) IsValid() bool {
	return phonenumbers.IsValidNumber(p.num)
}

func (p parsedNumber) IsValidForRegion(region RegionCode) bool {
	return phonenumbers.IsValidNumberForRegion(p.num, string(region))
}

func (p parsedNumber) Render(strategy FormatStrategy) (string, bool) {
	switch strategy {
	case StrategyE164:
		return phonenumbers.Format(p.num, phonenumbers.E164), true
	case StrategyInternational:
		return phonenumbers.Format(p.num, phonenumbers.INTERNATIONAL), true
	case StrategyNational:
		return phonenumbers.Format(p.num, phonenumbers.NATIONAL), true
	case StrategyRFC3966:
		return phonenumbers.Format(p.num, phonenumbers.RFC3966), true
	case StrategySignificant:
		return phonenumbers.GetNationalSignificantNumber(p.num), true
	default:
		return "", false
	}
}

func (p parsedNumber) RegionCode() RegionCode {
	region := RegionCode(phonenumbers.GetRegionCodeForNumber(p.num))
	if region == unknownRegion {
		return ""
	}
	return region
}
