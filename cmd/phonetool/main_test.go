package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"telinput/platform/phone"
	"telinput/platform/phone/phonetest"
)

type testPhoneConfig struct{}

func (testPhoneConfig) GetDefaultLocale() string                       { return "nl-NL" }
func (testPhoneConfig) GetDefaultFormatStrategy() phone.FormatStrategy { return phone.StrategyNational }
func (testPhoneConfig) GetRegionCodes() []phone.RegionCode             { return nil }
func (testPhoneConfig) GetPreferredRegions() []phone.RegionCode        { return []phone.RegionCode{"NL"} }
func (testPhoneConfig) GetValidateTimeout() time.Duration              { return time.Second }

func run(t *testing.T, lib *phonetest.Library, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(phone.Preloaded(lib), testPhoneConfig{})
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestParseCmd(t *testing.T) {
	out := run(t, phonetest.Dutch(), "parse", "--region", "NL", "0612345678", "hello")
	require.Equal(t, "0612345678\t+31612345678\tNL\nhello\tunparseable\n", out)
}

func TestFormatCmd(t *testing.T) {
	out := run(t, phonetest.Dutch(), "format", "-s", "international", "+31612345678")
	require.Equal(t, "+31612345678\t+31 6 12345678\n", out)
}

func TestValidateCmd(t *testing.T) {
	out := run(t, phonetest.Dutch(), "validate", "+31612345678", "123")
	require.Equal(t, "+31612345678\tNL\tvalid\n123\tNL\tinvalid\n", out)
}

func TestRegionsCmd(t *testing.T) {
	out := run(t, phonetest.Dutch(), "regions", "--regions", "NL,BE", "--locale", "en")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "NL  +31")
	require.Contains(t, lines[0], "Netherlands (Nederland)")
	require.Contains(t, lines[2], "BE  +32")
}

func TestLiveCmd(t *testing.T) {
	lib := phonetest.Dutch()
	lib.GroupEvery = 2
	out := run(t, lib, "live", "0612")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "\"1\"\t06 1|", lines[2])
	require.Equal(t, "\"2\"\t06 12|", lines[3])
}

func TestInvalidFlags(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(phone.Preloaded(phonetest.Dutch()), testPhoneConfig{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cmd.SetArgs([]string{"format", "--strategy", "fancy", "0612345678"})
	require.ErrorIs(t, cmd.Execute(), phone.ErrUnknownStrategy)
}

func TestLibraryUnavailable(t *testing.T) {
	loader := phone.NewLoader(func(context.Context) (phone.Library, error) {
		return nil, errors.New("metadata missing")
	})
	loader.Load()

	var out bytes.Buffer
	cmd := newRootCmd(loader, testPhoneConfig{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"parse", "0612345678"})
	require.ErrorIs(t, cmd.Execute(), phone.ErrNotLoaded)
}
