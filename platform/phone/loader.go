package phone

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"telinput/platform/events"
	"telinput/platform/logger"
)

// ErrNotLoaded is returned when the library failed to load.
var ErrNotLoaded = errors.New("phone number library not loaded")

// LibraryLoadedEventName is published on the bus once loading succeeds.
const LibraryLoadedEventName = "phone.library.loaded"

// LibraryLoaded is published when the library becomes available.
type LibraryLoaded struct {
	events.BaseEvent
	Regions int `json:"regions"`
}

func (e LibraryLoaded) EventName() string { return LibraryLoadedEventName }

// LoadFunc produces the library. It runs once per Loader.
type LoadFunc func(ctx context.Context) (Library, error)

// Handle gives components access to the library once it has loaded.
type Handle interface {
	// Library returns the library and true once loaded.
	Library() (Library, bool)
	// Ready is closed when loading has finished, successfully or not.
	Ready() <-chan struct{}
}

// Loader loads the library at most once and shares the outcome with every caller.
type Loader struct {
	load LoadFunc
	log  *logger.Logger
	bus  events.Publisher

	once   sync.Once
	ready  chan struct{}
	loaded atomic.Bool
	lib    Library
	err    error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger logs the load outcome.
func WithLogger(log *logger.Logger) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// WithBus publishes LibraryLoaded on bus after a successful load.
func WithBus(bus events.Publisher) LoaderOption {
	return func(l *Loader) { l.bus = bus }
}

// NewLoader creates a loader that will call load on the first Load.
func NewLoader(load LoadFunc, opts ...LoaderOption) *Loader {
	l := &Loader{
		load:  load,
		ready: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Preloaded returns a loader that is already loaded with lib.
func Preloaded(lib Library) *Loader {
	l := NewLoader(func(context.Context) (Library, error) { return lib, nil })
	l.once.Do(func() { l.finish(context.Background(), lib, nil, 0) })
	return l
}

// DefaultLoad builds the nyaruka/phonenumbers library and warms its metadata
// by parsing a reference number for every supported region's calling code.
func DefaultLoad(ctx context.Context) (Library, error) {
	lib := NewLibrary()
	regions := lib.SupportedRegions()
	if len(regions) == 0 {
		return nil, errors.New("phone metadata contains no regions")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := lib.Parse("+31612345678", "NL"); !ok {
		return nil, errors.New("phone metadata failed to parse reference number")
	}
	return lib, nil
}

// Load starts loading in the background. Subsequent calls are no-ops.
func (l *Loader) Load() {
	l.once.Do(func() {
		go l.run()
	})
}

func (l *Loader) run() {
	ctx := context.Background()
	start := time.Now()
	lib, err := l.load(ctx)
	if err == nil && lib == nil {
		err = ErrNotLoaded
	}
	l.finish(ctx, lib, err, time.Since(start))
}

func (l *Loader) finish(ctx context.Context, lib Library, err error, elapsed time.Duration) {
	if err != nil {
		l.err = err
	} else {
		l.lib = lib
		l.loaded.Store(true)
	}

	if l.log != nil {
		l.log.LibraryLoaded(elapsed, err)
	}
	// Publish before Ready closes so waiters observe subscribers already scheduled.
	if err == nil && l.bus != nil {
		l.bus.Publish(ctx, LibraryLoaded{
			BaseEvent: events.NewBaseEvent(),
			Regions:   len(lib.SupportedRegions()),
		})
	}
	close(l.ready)
}

// IsLoaded reports whether the library is available right now.
func (l *Loader) IsLoaded() bool {
	return l.loaded.Load()
}

// Library returns the loaded library.
func (l *Loader) Library() (Library, bool) {
	if !l.loaded.Load() {
		return nil, false
	}
	return l.lib, true
}

// Ready is closed once loading has finished.
func (l *Loader) Ready() <-chan struct{} {
	return l.ready
}

// Err returns the load failure. It is nil while loading is still in progress.
func (l *Loader) Err() error {
	select {
	case <-l.ready:
		return l.err
	default:
		return nil
	}
}

// Wait blocks until loading finishes or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Library, error) {
	select {
	case <-l.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if lib, ok := l.Library(); ok {
		return lib, nil
	}
	if l.err != nil {
		return nil, errors.Join(ErrNotLoaded, l.err)
	}
	return nil, ErrNotLoaded
}

// Ping reports an error until the library has loaded. Used for readiness checks.
func (l *Loader) Ping(context.Context) error {
	if l.IsLoaded() {
		return nil
	}
	if err := l.Err(); err != nil {
		return errors.Join(ErrNotLoaded, err)
	}
	return ErrNotLoaded
}

var _ Handle = (*Loader)(nil)
