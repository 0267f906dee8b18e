package telinput_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apphttp "telinput/internal/http"
	"telinput/internal/http/router"
	"telinput/internal/telinput"
	"telinput/internal/telinput/transport"
	"telinput/platform/config"
	"telinput/platform/events"
	"telinput/platform/logger"
	"telinput/platform/phone"
	"telinput/platform/phone/phonetest"
	"telinput/platform/validator"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                   "test",
		CORSAllowAll:          true,
		RateLimitRPS:          1000,
		RateLimitBurst:        1000,
		DefaultLocale:         "nl-NL",
		DefaultFormatStrategy: phone.StrategyNational,
		PreferredRegions:      []phone.RegionCode{"NL"},
		ValidateTimeout:       time.Second,
	}
}

func newEngine(t *testing.T, loader *phone.Loader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	log := logger.Discard()
	module := telinput.NewModule(loader, cfg, validator.New(), log)
	return router.New(&apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  loader,
		Modules: []apphttp.Module{module},
	})
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestParseEndpoint(t *testing.T) {
	engine := newEngine(t, phone.Preloaded(phonetest.Dutch()))

	rec := do(engine, http.MethodPost, "/api/v1/phone/parse", `{"value":"0612345678","regionCode":"NL"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	got := decode[transport.ParseResponse](t, rec)
	require.Equal(t, "+31612345678", got.ModelValue)
	require.False(t, got.Unparseable)
}

func TestEndpoints_RejectInvalidInput(t *testing.T) {
	engine := newEngine(t, phone.Preloaded(phonetest.Dutch()))

	rec := do(engine, http.MethodPost, "/api/v1/phone/parse", `{"value":"0612345678","regionCode":"nl"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "validation failed")

	rec = do(engine, http.MethodPost, "/api/v1/phone/format", `{"value":"0612345678","formatStrategy":"fancy"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(engine, http.MethodPost, "/api/v1/phone/validate", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid request")

	rec = do(engine, http.MethodPost, "/api/v1/phone/live-format", `{"viewValue":"06","caretIndex":9}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormatAndValidateEndpoints(t *testing.T) {
	engine := newEngine(t, phone.Preloaded(phonetest.Dutch()))

	rec := do(engine, http.MethodPost, "/api/v1/phone/format", `{"value":"+31612345678","formatStrategy":"rfc3966"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "tel:+31-6-12345678", decode[transport.FormatResponse](t, rec).FormattedValue)

	rec = do(engine, http.MethodPost, "/api/v1/phone/validate", `{"value":"+31612345678","regionCode":"NL"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[transport.ValidateResponse](t, rec).Valid)
}

func TestRegionsEndpoint(t *testing.T) {
	engine := newEngine(t, phone.Preloaded(phonetest.Dutch()))

	rec := do(engine, http.MethodGet, "/api/v1/phone/regions?regions=NL,BE&preferred=NL&locale=en", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[transport.RegionsResponse](t, rec)
	require.Len(t, got.Preferred, 1)
	require.Equal(t, "Netherlands", got.Preferred[0].NameForLocale)
	require.Equal(t, 31, got.Preferred[0].CallingCode)
	require.Equal(t, "🇳🇱", got.Preferred[0].FlagSymbol)
	require.Len(t, got.Regions, 1)
	require.Equal(t, phone.RegionCode("BE"), got.Regions[0].RegionCode)

	rec = do(engine, http.MethodGet, "/api/v1/phone/regions?regions=NLD", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFieldEndpoint(t *testing.T) {
	engine := newEngine(t, phone.Preloaded(phonetest.Dutch()))

	rec := do(engine, http.MethodPost, "/api/v1/phone/field", `{"selectedRegion":"DE"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[transport.FieldResponse](t, rec)
	require.Equal(t, "+49", got.ModelValue)
	require.True(t, got.Unparseable)
	require.Equal(t, phone.RegionCode("DE"), got.RegionCode)
}

func TestReadiness(t *testing.T) {
	loader, release := phonetest.BlockingLoader(phonetest.Dutch())
	t.Cleanup(release)
	engine := newEngine(t, loader)

	require.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/api/health", "").Code)
	require.Equal(t, http.StatusServiceUnavailable, do(engine, http.MethodGet, "/api/ready", "").Code)

	// Formatting falls back to the input while the library loads.
	rec := do(engine, http.MethodPost, "/api/v1/phone/format", `{"value":"0612345678"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0612345678", decode[transport.FormatResponse](t, rec).FormattedValue)

	release()
	require.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/api/ready", "").Code)
}

func TestValidateEndpoint_LibraryUnavailable(t *testing.T) {
	loader := phone.NewLoader(func(context.Context) (phone.Library, error) {
		return nil, errors.New("metadata missing")
	})
	loader.Load()
	<-loader.Ready()
	engine := newEngine(t, loader)

	rec := do(engine, http.MethodPost, "/api/v1/phone/validate", `{"value":"+31612345678","regionCode":"NL"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, http.StatusServiceUnavailable, do(engine, http.MethodGet, "/api/ready", "").Code)
}

func TestLibraryLoadedRefreshesDefaults(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	gate := make(chan struct{})
	loader := phone.NewLoader(func(context.Context) (phone.Library, error) {
		<-gate
		return phonetest.Dutch(), nil
	}, phone.WithBus(bus))

	cfg := testConfig()
	module := telinput.NewModule(loader, cfg, validator.New(), logger.Discard())
	module.RegisterHandlers(bus)

	loader.Load()
	close(gate)
	<-loader.Ready()
	bus.Wait()

	got, err := module.Service().Regions(context.Background(), transport.RegionsRequest{})
	require.NoError(t, err)
	require.Len(t, got.Preferred, 1)
	require.Len(t, got.Regions, 3)

	require.NoError(t, module.Handle(context.Background(), phone.LibraryLoaded{}))
}
