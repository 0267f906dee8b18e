package phone

import "golang.org/x/text/language"

// regionalIndicatorA is the code point of REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorA = 0x1F1E6

// RegionMeta is everything a region selection control needs to render one option.
type RegionMeta struct {
	RegionCode    RegionCode `json:"regionCode"`
	CallingCode   int        `json:"callingCode,omitempty"`
	FlagSymbol    string     `json:"flagSymbol"`
	NameForLocale string     `json:"nameForLocale"`
	NameForRegion string     `json:"nameForRegion"`
}

// FlagSymbol returns the emoji flag for a two-letter code, or "" for anything else.
func FlagSymbol(code RegionCode) string {
	if !code.Valid() {
		return ""
	}
	return string([]rune{
		rune(regionalIndicatorA + int(code[0]-'A')),
		rune(regionalIndicatorA + int(code[1]-'A')),
	})
}

// Catalog derives region metadata. It holds no state beyond the handle; every
// call recomputes from its inputs.
type Catalog struct {
	h Handle
}

// NewCatalog creates a catalog reading the library from h.
func NewCatalog(h Handle) *Catalog {
	return &Catalog{h: h}
}

// RegionCodes returns codes, or every supported region when codes is empty
// and the library is loaded.
func (c *Catalog) RegionCodes(codes []RegionCode) []RegionCode {
	if len(codes) > 0 {
		return codes
	}
	lib, ok := c.h.Library()
	if !ok {
		return nil
	}
	return lib.SupportedRegions()
}

// Derive builds metadata for codes and partitions it into the codes listed in
// preferred and the rest. Both lists keep the input order.
func (c *Catalog) Derive(codes, preferred []RegionCode, locale language.Tag) ([]RegionMeta, []RegionMeta) {
	lib, loaded := c.h.Library()

	isPreferred := make(map[RegionCode]struct{}, len(preferred))
	for _, code := range preferred {
		isPreferred[code] = struct{}{}
	}

	preferredMeta := make([]RegionMeta, 0, len(preferred))
	remaining := make([]RegionMeta, 0, len(codes))
	for _, code := range codes {
		meta := RegionMeta{
			RegionCode:    code,
			FlagSymbol:    FlagSymbol(code),
			NameForLocale: RegionName(code, locale),
			NameForRegion: RegionEndonym(code),
		}
		if loaded {
			meta.CallingCode = lib.CallingCode(code)
		}

		if _, ok := isPreferred[code]; ok {
			preferredMeta = append(preferredMeta, meta)
		} else {
			remaining = append(remaining, meta)
		}
	}
	return preferredMeta, remaining
}
