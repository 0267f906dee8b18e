package phone

import "context"

// Verdict is the outcome of a phone number validation. It is either resolved
// or pending on the library load.
type Verdict struct {
	valid bool
	wait  func(ctx context.Context) (bool, error)
}

func resolved(valid bool) Verdict {
	return Verdict{valid: valid}
}

// Pending reports whether the verdict still waits on the library.
func (v Verdict) Pending() bool {
	return v.wait != nil
}

// Valid returns the resolved verdict. A pending verdict reports false.
func (v Verdict) Valid() bool {
	return v.wait == nil && v.valid
}

// Wait returns the verdict, blocking on the library load if it is pending.
func (v Verdict) Wait(ctx context.Context) (bool, error) {
	if v.wait == nil {
		return v.valid, nil
	}
	return v.wait(ctx)
}

// Validator checks canonical values against a region.
type Validator struct {
	h Handle
}

// NewValidator creates a validator reading the library from h.
func NewValidator(h Handle) *Validator {
	return &Validator{h: h}
}

// Async reports whether Validate currently returns pending verdicts. It flips
// to false exactly once, when the library finishes loading.
func (v *Validator) Async() bool {
	_, ok := v.h.Library()
	return !ok
}

// Validate checks value for region.
//
// An empty value is valid; presence is a separate concern. A missing region,
// a value outside the completeness length window, unparseable input, or a
// number that is not valid for the region are all invalid.
func (v *Validator) Validate(value string, region RegionCode) Verdict {
	if value == "" {
		return resolved(true)
	}
	if lib, ok := v.h.Library(); ok {
		return resolved(isValidForRegion(lib, value, region))
	}

	return Verdict{wait: func(ctx context.Context) (bool, error) {
		select {
		case <-v.h.Ready():
		case <-ctx.Done():
			return false, ctx.Err()
		}
		lib, ok := v.h.Library()
		if !ok {
			return false, ErrNotLoaded
		}
		return isValidForRegion(lib, value, region), nil
	}}
}

func isValidForRegion(lib Library, value string, region RegionCode) bool {
	if region == "" || !withinLengthGate(value) {
		return false
	}
	num, ok := lib.Parse(value, region)
	if !ok {
		return false
	}
	return num.IsValidForRegion(region)
}
