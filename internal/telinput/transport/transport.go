// Package transport defines the request and response bodies of the phone API.
package transport

import "telinput/platform/phone"

// ParseRequest asks for the canonical value of typed input.
type ParseRequest struct {
	Value      string `json:"value" validate:"max=64"`
	RegionCode string `json:"regionCode" validate:"omitempty,regioncode"`
	Locale     string `json:"locale" validate:"max=35"`
}

// ParseResponse carries the model value. Unparseable is true when the value
// is the typed text returned unchanged.
type ParseResponse struct {
	ModelValue  string           `json:"modelValue"`
	Unparseable bool             `json:"unparseable"`
	RegionCode  phone.RegionCode `json:"regionCode"`
}

// FormatRequest asks for the display form of a value.
type FormatRequest struct {
	Value          string `json:"value" validate:"max=64"`
	RegionCode     string `json:"regionCode" validate:"omitempty,regioncode"`
	FormatStrategy string `json:"formatStrategy" validate:"omitempty,formatstrategy"`
	Locale         string `json:"locale" validate:"max=35"`
}

type FormatResponse struct {
	FormattedValue string `json:"formattedValue"`
}

// ValidateRequest asks whether a value is a valid number for a region.
type ValidateRequest struct {
	Value      string `json:"value" validate:"max=64"`
	RegionCode string `json:"regionCode" validate:"omitempty,regioncode"`
	Locale     string `json:"locale" validate:"max=35"`
}

type ValidateResponse struct {
	Valid      bool             `json:"valid"`
	RegionCode phone.RegionCode `json:"regionCode"`
}

// LiveFormatRequest carries one keystroke of an as-you-type session.
type LiveFormatRequest struct {
	ViewValue      string `json:"viewValue" validate:"max=64"`
	PrevViewValue  string `json:"prevViewValue" validate:"max=64"`
	CaretIndex     int    `json:"caretIndex" validate:"min=0"`
	RegionCode     string `json:"regionCode" validate:"omitempty,regioncode"`
	FormatStrategy string `json:"formatStrategy" validate:"omitempty,formatstrategy"`
	Locale         string `json:"locale" validate:"max=35"`
}

type LiveFormatResponse struct {
	ViewValue   string `json:"viewValue"`
	CaretIndex  int    `json:"caretIndex"`
	Reformatted bool   `json:"reformatted"`
}

// RegionsRequest is bound from the query string.
type RegionsRequest struct {
	Regions   string `form:"regions" validate:"omitempty,regioncodes"`
	Preferred string `form:"preferred" validate:"omitempty,regioncodes"`
	Locale    string `form:"locale" validate:"max=35"`
}

type RegionsResponse struct {
	Preferred []phone.RegionMeta `json:"preferred"`
	Regions   []phone.RegionMeta `json:"regions"`
}

// FieldRequest runs the full field lifecycle for one committed value.
type FieldRequest struct {
	Value          string `json:"value" validate:"max=64"`
	RegionCode     string `json:"regionCode" validate:"omitempty,regioncode"`
	Locale         string `json:"locale" validate:"max=35"`
	FormatStrategy string `json:"formatStrategy" validate:"omitempty,formatstrategy"`
	// Focused and SelectedRegion model a dropdown change before the commit.
	SelectedRegion string `json:"selectedRegion" validate:"omitempty,regioncode"`
	Focused        bool   `json:"focused"`
}

type FieldResponse struct {
	ModelValue     string           `json:"modelValue"`
	Unparseable    bool             `json:"unparseable"`
	FormattedValue string           `json:"formattedValue"`
	RegionCode     phone.RegionCode `json:"regionCode"`
	Valid          bool             `json:"valid"`
}
