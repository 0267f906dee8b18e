// Package phonetest provides an in-memory phone.Library and loader helpers
// for tests that must not depend on libphonenumber metadata or load timing.
package phonetest

import (
	"context"
	"strings"
	"sync"

	"telinput/platform/phone"
)

// Number is a canned parse result.
type Number struct {
	E164          string
	National      string
	International string
	RFC3966       string
	Significant   string
	Region        phone.RegionCode
	Valid         bool
}

func (n Number) IsValid() bool { return n.Valid }

func (n Number) IsValidForRegion(region phone.RegionCode) bool {
	return n.Valid && n.Region == region
}

func (n Number) Render(strategy phone.FormatStrategy) (string, bool) {
	switch strategy {
	case phone.StrategyE164:
		return n.E164, true
	case phone.StrategyNational:
		return n.National, true
	case phone.StrategyInternational:
		return n.International, true
	case phone.StrategyRFC3966:
		return n.RFC3966, true
	case phone.StrategySignificant:
		return n.Significant, true
	default:
		return "", false
	}
}

func (n Number) RegionCode() phone.RegionCode { return n.Region }

// ParseCall records one Library.Parse invocation.
type ParseCall struct {
	Value  string
	Region phone.RegionCode
}

// Library answers Parse from a fixed table keyed by input value.
type Library struct {
	Numbers      map[string]Number
	CallingCodes map[phone.RegionCode]int
	Regions      []phone.RegionCode
	// GroupEvery makes the as-you-type accumulator insert a space after every
	// GroupEvery characters. Zero disables grouping.
	GroupEvery int

	mu    sync.Mutex
	calls []ParseCall
}

func (l *Library) Parse(value string, region phone.RegionCode) (phone.Number, bool) {
	l.mu.Lock()
	l.calls = append(l.calls, ParseCall{Value: value, Region: region})
	l.mu.Unlock()

	n, ok := l.Numbers[value]
	if !ok {
		return nil, false
	}
	return n, true
}

func (l *Library) CallingCode(region phone.RegionCode) int {
	return l.CallingCodes[region]
}

func (l *Library) SupportedRegions() []phone.RegionCode {
	return append([]phone.RegionCode(nil), l.Regions...)
}

func (l *Library) AsYouType(phone.RegionCode) phone.AsYouTyper {
	return &groupingTyper{every: l.GroupEvery}
}

// ParseCalls returns every Parse invocation so far.
func (l *Library) ParseCalls() []ParseCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ParseCall(nil), l.calls...)
}

type groupingTyper struct {
	every  int
	digits []rune
}

func (t *groupingTyper) InputDigit(r rune) string {
	t.digits = append(t.digits, r)
	if t.every <= 0 {
		return string(t.digits)
	}
	var b strings.Builder
	for i, d := range t.digits {
		if i > 0 && i%t.every == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}

func (t *groupingTyper) Clear() {
	t.digits = nil
}

// Dutch returns a library that knows one Dutch mobile number in its common spellings.
func Dutch() *Library {
	nl := Number{
		E164:          "+31612345678",
		National:      "06 12345678",
		International: "+31 6 12345678",
		RFC3966:       "tel:+31-6-12345678",
		Significant:   "612345678",
		Region:        "NL",
		Valid:         true,
	}
	return &Library{
		Numbers: map[string]Number{
			"+31612345678":   nl,
			"0612345678":     nl,
			"06 12345678":    nl,
			"612345678":      nl,
			"+31 6 12345678": nl,
			"061234":         {E164: "+3161234", Region: "NL"},
		},
		CallingCodes: map[phone.RegionCode]int{"NL": 31, "BE": 32, "DE": 49, "GB": 44},
		Regions:      []phone.RegionCode{"BE", "DE", "GB", "NL"},
	}
}

// BlockingLoader returns a started loader that stays unloaded until release is
// called. release returns once the loader reports loaded.
func BlockingLoader(lib phone.Library) (loader *phone.Loader, release func()) {
	gate := make(chan struct{})
	loader = phone.NewLoader(func(ctx context.Context) (phone.Library, error) {
		select {
		case <-gate:
			return lib, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	loader.Load()

	var once sync.Once
	release = func() {
		once.Do(func() { close(gate) })
		<-loader.Ready()
	}
	return loader, release
}
