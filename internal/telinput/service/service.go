package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"telinput/internal/telinput/domain"
	"telinput/internal/telinput/transport"
	"telinput/platform/apperr"
	"telinput/platform/config"
	"telinput/platform/logger"
	"telinput/platform/phone"
	"telinput/platform/sanitize"
)

// Service runs the telephone field pipeline for API requests.
type Service struct {
	p   *phone.Pipeline
	cfg config.PhoneConfig
	log *logger.Logger

	// regionCodes is the default dropdown list. It is the configured list, or
	// every supported region once the library has loaded.
	regionCodes atomic.Pointer[[]phone.RegionCode]
}

// New creates a new telinput service.
func New(p *phone.Pipeline, cfg config.PhoneConfig, log *logger.Logger) *Service {
	s := &Service{p: p, cfg: cfg, log: log}
	s.RefreshDefaults(context.Background())
	return s
}

// RefreshDefaults recomputes the default region list from config and the library.
func (s *Service) RefreshDefaults(ctx context.Context) {
	codes := s.p.Catalog.RegionCodes(s.cfg.GetRegionCodes())
	s.regionCodes.Store(&codes)
	s.log.WithContext(ctx).Debug("default regions refreshed", "regions", len(codes))
}

func (s *Service) defaultRegionCodes() []phone.RegionCode {
	if codes := s.regionCodes.Load(); codes != nil && len(*codes) > 0 {
		return *codes
	}
	return s.p.Catalog.RegionCodes(s.cfg.GetRegionCodes())
}

// field builds a field for one request. Empty arguments fall back to the configured defaults.
func (s *Service) field(regionCode, locale, strategy string) *domain.Field {
	if locale == "" {
		locale = s.cfg.GetDefaultLocale()
	}
	formatStrategy, err := phone.ParseFormatStrategy(strategy)
	if strategy == "" || err != nil {
		formatStrategy = s.cfg.GetDefaultFormatStrategy()
	}

	f := domain.NewField(s.p, phone.ParseLocale(locale), formatStrategy)
	f.SetRegionCode(phone.NormalizeRegion(regionCode))
	return f
}

// Parse returns the canonical model value of typed input.
func (s *Service) Parse(_ context.Context, req transport.ParseRequest) (transport.ParseResponse, error) {
	f := s.field(req.RegionCode, req.Locale, "")
	model := f.Commit(sanitize.ViewValue(req.Value))
	return transport.ParseResponse{
		ModelValue:  model.Value,
		Unparseable: model.Unparseable,
		RegionCode:  f.RegionCode(),
	}, nil
}

// Format renders a value for display.
func (s *Service) Format(_ context.Context, req transport.FormatRequest) (transport.FormatResponse, error) {
	f := s.field(req.RegionCode, req.Locale, req.FormatStrategy)
	f.SetModelValue(domain.ModelValue{Value: sanitize.ViewValue(req.Value)})
	return transport.FormatResponse{FormattedValue: f.FormattedValue()}, nil
}

// Validate checks a value for its region, waiting for the library when it is still loading.
func (s *Service) Validate(ctx context.Context, req transport.ValidateRequest) (transport.ValidateResponse, error) {
	f := s.field(req.RegionCode, req.Locale, "")
	f.SetModelValue(domain.ModelValue{Value: sanitize.ViewValue(req.Value)})

	valid, err := s.await(ctx, f.Validate())
	if err != nil {
		return transport.ValidateResponse{}, err
	}
	return transport.ValidateResponse{Valid: valid, RegionCode: f.RegionCode()}, nil
}

// LiveFormat reformats the view value after a keystroke and places the caret.
func (s *Service) LiveFormat(_ context.Context, req transport.LiveFormatRequest) (transport.LiveFormatResponse, error) {
	viewValue := sanitize.ViewValue(req.ViewValue)
	if req.CaretIndex > utf8.RuneCountInString(viewValue) {
		return transport.LiveFormatResponse{}, apperr.Validation("caretIndex is beyond the end of viewValue").WithOp("telinput.LiveFormat")
	}

	f := s.field(req.RegionCode, req.Locale, req.FormatStrategy)
	result := s.p.Live.Format(viewValue, sanitize.ViewValue(req.PrevViewValue), req.CaretIndex, f.RegionCode(), f.Strategy())
	return transport.LiveFormatResponse{
		ViewValue:   result.ViewValue,
		CaretIndex:  result.CaretIndex,
		Reformatted: result.Reformatted,
	}, nil
}

// Regions derives the region dropdown options.
func (s *Service) Regions(_ context.Context, req transport.RegionsRequest) (transport.RegionsResponse, error) {
	codes := splitRegions(req.Regions)
	if len(codes) == 0 {
		codes = s.defaultRegionCodes()
	}
	preferred := splitRegions(req.Preferred)
	if req.Preferred == "" {
		preferred = s.cfg.GetPreferredRegions()
	}

	f := s.field("", req.Locale, "")
	preferredMeta, remaining := f.RegionOptions(codes, preferred)
	return transport.RegionsResponse{Preferred: preferredMeta, Regions: remaining}, nil
}

// Field runs an optional dropdown selection followed by a commit, and reports
// the resulting field state.
func (s *Service) Field(ctx context.Context, req transport.FieldRequest) (transport.FieldResponse, error) {
	f := s.field(req.RegionCode, req.Locale, req.FormatStrategy)

	value := sanitize.ViewValue(req.Value)
	if req.SelectedRegion != "" {
		f.SelectRegion(phone.NormalizeRegion(req.SelectedRegion), req.Focused)
	}
	if value != "" || req.SelectedRegion == "" {
		f.Commit(value)
	}

	valid, err := s.await(ctx, f.Validate())
	if err != nil {
		return transport.FieldResponse{}, err
	}

	model := f.ModelValue()
	return transport.FieldResponse{
		ModelValue:     model.Value,
		Unparseable:    model.Unparseable,
		FormattedValue: f.FormattedValue(),
		RegionCode:     f.RegionCode(),
		Valid:          valid,
	}, nil
}

func (s *Service) await(ctx context.Context, verdict phone.Verdict) (bool, error) {
	if !verdict.Pending() {
		return verdict.Valid(), nil
	}

	if timeout := s.cfg.GetValidateTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	valid, err := verdict.Wait(ctx)
	switch {
	case err == nil:
		return valid, nil
	case errors.Is(err, phone.ErrNotLoaded):
		return false, apperr.Wrap(apperr.KindUnavailable, "phone number library unavailable", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return false, apperr.Wrap(apperr.KindTimeout, "phone number library is still loading", err)
	default:
		s.log.WithContext(ctx).Error("validation failed", "error", err)
		return false, apperr.Wrap(apperr.KindInternal, "validation failed", err)
	}
}

func splitRegions(value string) []phone.RegionCode {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	codes := make([]phone.RegionCode, 0, len(parts))
	for _, part := range parts {
		if code := phone.NormalizeRegion(part); code.Valid() {
			codes = append(codes, code)
		}
	}
	return codes
}
