package livetune

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/phobologic/livetune/internal/typed"
)

// DefaultMarker is the token that flags the following literal as live.
// It matches the method name of Site.Live.
const DefaultMarker = "Live"

// EnvRelease names the environment variable that disables live lookups at
// startup. It accepts the same spellings as a live bool (true/1/yes/on...).
const EnvRelease = "LIVETUNE_RELEASE"

// FileSystem is the file access a Registry needs. Paths are passed through
// unchanged, absolute or relative to the working directory.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 -- tracked source paths come from the embedding program
}

// OS is the FileSystem backed by package os.
var OS FileSystem = osFS{}

type options struct {
	marker      string
	release     bool
	fsys        FileSystem
	logger      *slog.Logger
	minInterval time.Duration
	now         func() time.Time
}

// Option configures a Registry.
type Option func(*options)

// WithMarker sets the token the extractor looks for. Empty values are ignored.
func WithMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.marker = marker
		}
	}
}

// WithRelease disables (true) or enables (false) live lookups, overriding
// EnvRelease. Binaries built with the livetune_release tag are always
// disabled.
func WithRelease(release bool) Option {
	return func(o *options) { o.release = release }
}

// WithFileSystem replaces the filesystem used to stat and read sources.
func WithFileSystem(fsys FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithLogger sets the logger for extraction faults and parse failures.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMinInterval limits how often a settled file is stat'ed. Zero, the
// default, stats on every lookup.
func WithMinInterval(d time.Duration) Option {
	return func(o *options) { o.minInterval = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func defaultOptions() options {
	o := options{
		marker: DefaultMarker,
		fsys:   OS,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	if v, ok := os.LookupEnv(EnvRelease); ok {
		o.release, _ = typed.ParseBool(v)
	}
	return o
}
