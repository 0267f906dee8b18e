package phone

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ParseLocale parses a BCP 47 locale such as "nl-NL". Unparseable input yields English.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// LocaleRegion returns the region implied by locale, e.g. "GB" for "en-GB" and
// "NL" for "nl". It returns "" when no region can be inferred.
func LocaleRegion(locale language.Tag) RegionCode {
	region, confidence := locale.Region()
	if confidence == language.No {
		return ""
	}
	code := RegionCode(region.String())
	if code == unknownRegion || !code.Valid() {
		return ""
	}
	return code
}

// RegionName returns the display name of code in the given locale, or the code
// itself when there is no name.
func RegionName(code RegionCode, in language.Tag) string {
	region, err := language.ParseRegion(string(code))
	if err != nil {
		return string(code)
	}
	namer := display.Regions(in)
	if namer == nil {
		return string(code)
	}
	if name := namer.Name(region); name != "" {
		return name
	}
	return string(code)
}

// RegionEndonym returns the name of code in the region's most likely language,
// e.g. "Nederland" for NL and "Deutschland" for DE.
func RegionEndonym(code RegionCode) string {
	region, err := language.ParseRegion(string(code))
	if err != nil {
		return string(code)
	}
	base, _ := language.Make("und-" + string(code)).Base()
	tag, err := language.Compose(base, region)
	if err != nil {
		return RegionName(code, language.English)
	}
	return RegionName(code, tag)
}
