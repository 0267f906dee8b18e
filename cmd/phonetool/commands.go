package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"telinput/internal/telinput/domain"
	"telinput/platform/config"
	"telinput/platform/phone"

	"github.com/spf13/cobra"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	region    string
	strategy  string
	locale    string
	preferred string
	regions   string
	timeout   time.Duration
}

// cli carries the state a subcommand needs once the library has loaded.
type cli struct {
	loader *phone.Loader
	cfg    config.PhoneConfig
	opts   cliOptions
	p      *phone.Pipeline
}

func newRootCmd(loader *phone.Loader, cfg config.PhoneConfig) *cobra.Command {
	c := &cli{loader: loader, cfg: cfg}

	rootCmd := &cobra.Command{
		Use:          "phonetool",
		Short:        "Parse, format and validate phone numbers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), c.opts.timeout)
			defer cancel()
			if _, err := c.loader.Wait(ctx); err != nil {
				return fmt.Errorf("phone number library: %w", err)
			}
			c.p = phone.NewPipeline(c.loader)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.region, "region", "r", "", "Region code, e.g. NL (default: from the number or locale)")
	flags.StringVarP(&c.opts.strategy, "strategy", "s", "", "Format strategy: national, international, e164, rfc3966, significant")
	flags.StringVarP(&c.opts.locale, "locale", "l", "", "Locale for region names and the default region, e.g. nl-NL")
	flags.DurationVar(&c.opts.timeout, "timeout", 10*time.Second, "How long to wait for the phone number library")

	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "List region options with calling codes and names",
		Args:  cobra.NoArgs,
		RunE:  c.runRegions,
	}
	regionsCmd.Flags().StringVar(&c.opts.regions, "regions", "", "Comma separated region codes (default: all supported)")
	regionsCmd.Flags().StringVar(&c.opts.preferred, "preferred", "", "Comma separated region codes listed first")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "parse <value>...",
			Short: "Print the E.164 form of each value",
			Args:  cobra.MinimumNArgs(1),
			RunE:  c.runParse,
		},
		&cobra.Command{
			Use:   "format <value>...",
			Short: "Print each value in the chosen format strategy",
			Args:  cobra.MinimumNArgs(1),
			RunE:  c.runFormat,
		},
		&cobra.Command{
			Use:   "validate <value>...",
			Short: "Report whether each value is valid for the region",
			Args:  cobra.MinimumNArgs(1),
			RunE:  c.runValidate,
		},
		&cobra.Command{
			Use:   "live <keystrokes>",
			Short: "Replay typing keystroke by keystroke and show the live formatting",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runLive,
		},
		regionsCmd,
	)

	return rootCmd
}

func (c *cli) field() (*domain.Field, error) {
	locale := c.opts.locale
	if locale == "" {
		locale = c.cfg.GetDefaultLocale()
	}

	strategy := c.cfg.GetDefaultFormatStrategy()
	if c.opts.strategy != "" {
		parsed, err := phone.ParseFormatStrategy(c.opts.strategy)
		if err != nil {
			return nil, err
		}
		strategy = parsed
	}

	region := phone.NormalizeRegion(c.opts.region)
	if region != "" && !region.Valid() {
		return nil, fmt.Errorf("invalid region code %q", c.opts.region)
	}

	f := domain.NewField(c.p, phone.ParseLocale(locale), strategy)
	f.SetRegionCode(region)
	return f, nil
}

func (c *cli) runParse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		f, err := c.field()
		if err != nil {
			return err
		}
		model := f.Commit(arg)
		if model.Unparseable {
			fmt.Fprintf(out, "%s\tunparseable\n", arg)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", arg, model.Value, f.RegionCode())
	}
	return nil
}

func (c *cli) runFormat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		f, err := c.field()
		if err != nil {
			return err
		}
		f.SetModelValue(domain.ModelValue{Value: arg})
		fmt.Fprintf(out, "%s\t%s\n", arg, f.FormattedValue())
	}
	return nil
}

func (c *cli) runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		f, err := c.field()
		if err != nil {
			return err
		}
		f.SetModelValue(domain.ModelValue{Value: arg})
		valid, err := f.Validate().Wait(cmd.Context())
		if err != nil {
			return err
		}
		verdict := "invalid"
		if valid {
			verdict = "valid"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", arg, f.RegionCode(), verdict)
	}
	return nil
}

// runLive types the argument one character at a time, the way a user would.
func (c *cli) runLive(cmd *cobra.Command, args []string) error {
	f, err := c.field()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	view := ""
	for _, r := range args[0] {
		prev := view
		typed := prev + string(r)
		result := c.p.Live.Format(typed, prev, utf8.RuneCountInString(typed), f.RegionCode(), f.Strategy())
		view = result.ViewValue
		fmt.Fprintf(out, "%q\t%s\n", string(r), withCaret(view, result.CaretIndex))
	}
	return nil
}

func withCaret(value string, caret int) string {
	runes := []rune(value)
	if caret > len(runes) {
		caret = len(runes)
	}
	return string(runes[:caret]) + "|" + string(runes[caret:])
}

func (c *cli) runRegions(cmd *cobra.Command, args []string) error {
	f, err := c.field()
	if err != nil {
		return err
	}

	codes := splitRegions(c.opts.regions)
	if len(codes) == 0 {
		codes = c.cfg.GetRegionCodes()
	}
	preferred := splitRegions(c.opts.preferred)
	if c.opts.preferred == "" {
		preferred = c.cfg.GetPreferredRegions()
	}

	preferredMeta, remaining := f.RegionOptions(codes, preferred)
	out := cmd.OutOrStdout()
	for _, meta := range preferredMeta {
		fmt.Fprintln(out, regionLine(meta))
	}
	if len(preferredMeta) > 0 && len(remaining) > 0 {
		fmt.Fprintln(out, strings.Repeat("─", 40))
	}
	for _, meta := range remaining {
		fmt.Fprintln(out, regionLine(meta))
	}
	return nil
}

func regionLine(meta phone.RegionMeta) string {
	return fmt.Sprintf("%s %s  +%-4d %s (%s)", meta.FlagSymbol, meta.RegionCode, meta.CallingCode, meta.NameForLocale, meta.NameForRegion)
}

func splitRegions(value string) []phone.RegionCode {
	var codes []phone.RegionCode
	for _, part := range strings.Split(value, ",") {
		if code := phone.NormalizeRegion(part); code.Valid() {
			codes = append(codes, code)
		}
	}
	return codes
}
