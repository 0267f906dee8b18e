package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"telinput/internal/telinput/domain"
	"telinput/platform/phone"
	"telinput/platform/phone/phonetest"
)

func dutchField(locale string) *domain.Field {
	p := phone.NewPipeline(phone.Preloaded(phonetest.Dutch()))
	return domain.NewField(p, language.MustParse(locale), "")
}

func TestRegionCodePrecedence(t *testing.T) {
	f := dutchField("en-GB")
	require.Equal(t, phone.RegionCode("GB"), f.RegionCode())

	f.SetModelValue(domain.ModelValue{Value: "+31612345678"})
	require.Equal(t, phone.RegionCode("NL"), f.RegionCode(), "committed number wins over locale")

	f.SetRegionCode("BE")
	require.Equal(t, phone.RegionCode("BE"), f.RegionCode(), "explicit region wins")

	f.SetRegionCode("")
	require.Equal(t, phone.RegionCode("NL"), f.RegionCode())
}

func TestRegionCode_UnparseableIsNotDerived(t *testing.T) {
	f := dutchField("en-GB")
	f.SetModelValue(domain.Unparseable("+31612345678"))
	require.Equal(t, phone.RegionCode("GB"), f.RegionCode())
}

func TestRegionCode_NotLoadedFallsBackToLocale(t *testing.T) {
	loader, release := phonetest.BlockingLoader(phonetest.Dutch())
	t.Cleanup(release)

	f := domain.NewField(phone.NewPipeline(loader), language.MustParse("en-GB"), "")
	f.SetModelValue(domain.ModelValue{Value: "+31612345678"})
	require.Equal(t, phone.RegionCode("GB"), f.RegionCode())
}

func TestCommit(t *testing.T) {
	f := dutchField("nl-NL")

	require.Equal(t, domain.ModelValue{Value: "+31612345678"}, f.Commit("0612345678"))
	require.Equal(t, "06 12345678", f.FormattedValue())
	require.True(t, f.Validate().Valid())

	require.Equal(t, domain.Unparseable("hello"), f.Commit("hello"))
	require.Equal(t, "hello", f.FormattedValue())
	verdict := f.Validate()
	require.False(t, verdict.Pending())
	require.False(t, verdict.Valid())

	require.Equal(t, domain.ModelValue{}, f.Commit(""))
	require.True(t, f.ModelValue().IsEmpty())
	require.True(t, f.Validate().Valid())
}

func TestCommit_InternationalStrategy(t *testing.T) {
	p := phone.NewPipeline(phone.Preloaded(phonetest.Dutch()))
	f := domain.NewField(p, language.MustParse("nl-NL"), phone.StrategyInternational)

	f.Commit("06 12345678")
	require.Equal(t, "+31 6 12345678", f.FormattedValue())
	require.Equal(t, phone.StrategyInternational, f.Strategy())
}

func TestSelectRegion(t *testing.T) {
	f := dutchField("nl-NL")

	f.SelectRegion("BE", false)
	require.Equal(t, phone.RegionCode("BE"), f.RegionCode())
	require.Equal(t, domain.Unparseable("+32"), f.ModelValue())
	require.Equal(t, "+32", f.FormattedValue())

	f.Commit("hello")
	f.SelectRegion("BE", false)
	require.Equal(t, domain.Unparseable("hello"), f.ModelValue(), "same region keeps the value")

	f.SelectRegion("DE", true)
	require.Equal(t, phone.RegionCode("DE"), f.RegionCode())
	require.Equal(t, domain.Unparseable("hello"), f.ModelValue(), "focused field keeps the value")
}

func TestSelectRegion_NotLoaded(t *testing.T) {
	loader, release := phonetest.BlockingLoader(phonetest.Dutch())
	t.Cleanup(release)

	f := domain.NewField(phone.NewPipeline(loader), language.MustParse("nl-NL"), "")
	f.SelectRegion("BE", false)
	require.Equal(t, phone.RegionCode("BE"), f.RegionCode())
	require.True(t, f.ModelValue().IsEmpty())
}

func TestRegionOptions(t *testing.T) {
	f := dutchField("nl-NL")

	preferred, rest := f.RegionOptions(nil, []phone.RegionCode{"NL"})
	require.Len(t, preferred, 1)
	require.Equal(t, phone.RegionCode("NL"), preferred[0].RegionCode)
	require.Equal(t, 31, preferred[0].CallingCode)
	require.Equal(t, "Nederland", preferred[0].NameForLocale)

	codes := make([]phone.RegionCode, 0, len(rest))
	for _, meta := range rest {
		codes = append(codes, meta.RegionCode)
	}
	require.Equal(t, []phone.RegionCode{"BE", "DE", "GB"}, codes)
}
