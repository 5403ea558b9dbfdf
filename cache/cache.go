// Package cache provides a read-through cache in front of a hierarchical
// parameter store.
//
// Parameters are addressed by a local key relative to a path prefix; the
// store-side name is prefix + localKey. A cache can be filled eagerly for a
// whole prefix with Load, or lazily one parameter at a time with Get, which
// falls back to a point query on a miss. Parameters the store does not know
// are reported as nil and are never remembered, so every miss asks the store
// again.
//
// A ParameterCache is meant to be owned by a single goroutine. It does no
// locking and does not de-duplicate overlapping misses.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/manju-lilly/regintel-processbatch/store"
)

const (
	// DefaultPrefix is used when no prefix is configured.
	DefaultPrefix = "/"

	pathSeparator = "/"
)

// ErrOperationNotSupported is returned by Set. The cache never writes to the
// parameter store.
var ErrOperationNotSupported = errors.New("operation not supported")

// ParameterCache memoizes parameters read from a store.Store.
type ParameterCache struct {
	store   store.Store
	entries *KV[string, store.Parameter]

	prefix  string
	logger  *slog.Logger
	metrics Metrics
}

// Option configures a ParameterCache.
type Option func(*ParameterCache)

// WithPrefix sets the default prefix for operations called without one.
func WithPrefix(prefix string) Option {
	return func(c *ParameterCache) {
		if prefix != "" {
			c.prefix = normalizePrefix(prefix)
		}
	}
}

// WithLogger sets the logger used for cache debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ParameterCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the receiver of cache hit, miss and load events.
func WithMetrics(metrics Metrics) Option {
	return func(c *ParameterCache) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// New creates an empty cache reading from s.
func New(s store.Store, opts ...Option) *ParameterCache {
	c := &ParameterCache{
		store:   s,
		entries: NewKV[string, store.Parameter](),
		prefix:  DefaultPrefix,
		logger:  slog.Default(),
		metrics: NoopMetrics{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Prefix returns the configured default prefix.
func (c *ParameterCache) Prefix() string {
	return c.prefix
}

// Load reads every parameter under prefix, decrypted and recursively, and
// caches them by full name. All pages are read before anything is cached,
// so a failed page leaves the cache as it was. It returns the number of
// parameters cached.
func (c *ParameterCache) Load(ctx context.Context, prefix ...string) (int, error) {
	p := c.resolvePrefix(prefix)

	var (
		params []store.Parameter
		token  string
		pages  int
	)

	for {
		page, err := c.store.GetParametersByPath(ctx, store.PathQuery{
			Path:           p,
			Recursive:      true,
			WithDecryption: true,
			NextToken:      token,
		})
		if err != nil {
			return 0, err
		}

		pages++
		params = append(params, page.Parameters...)

		if page.NextToken == "" {
			break
		}

		token = page.NextToken
	}

	for _, param := range params {
		c.entries.Set(param.Name, param)
	}

	c.metrics.Loaded(pages, len(params))
	c.logger.DebugContext(ctx, "loaded parameters", "prefix", p, "pages", pages, "count", len(params))

	return len(params), nil
}

// Get returns the parameter prefix + localKey, asking the store on a miss.
// A parameter the store does not have yields (nil, nil); any other store
// error is returned as is.
func (c *ParameterCache) Get(ctx context.Context, localKey string, prefix ...string) (*store.Parameter, error) {
	name := c.name(localKey, prefix)

	if param, ok := c.entries.Get(name); ok {
		c.metrics.Hit()
		return &param, nil
	}

	c.metrics.Miss()
	c.logger.DebugContext(ctx, "cache miss", "name", name)

	param, err := c.store.GetParameter(ctx, name, true)
	if err != nil {
		if errors.Is(err, store.ErrParameterNotFound) {
			c.metrics.NotFound()
			return nil, nil
		}

		return nil, err
	}

	c.entries.Set(name, param)

	return &param, nil
}

// GetValue is Get projected onto the parameter value.
func (c *ParameterCache) GetValue(ctx context.Context, localKey string, prefix ...string) (*string, error) {
	param, err := c.Get(ctx, localKey, prefix...)
	if err != nil || param == nil {
		return nil, err
	}

	return &param.Value, nil
}

// Has reports whether the parameter exists. It fetches and caches the
// parameter exactly like Get.
func (c *ParameterCache) Has(ctx context.Context, localKey string, prefix ...string) (bool, error) {
	param, err := c.Get(ctx, localKey, prefix...)
	if err != nil {
		return false, err
	}

	return param != nil, nil
}

// Delete drops the cached parameter and reports whether one was cached.
// The store is not contacted.
func (c *ParameterCache) Delete(localKey string, prefix ...string) bool {
	return c.entries.Delete(c.name(localKey, prefix))
}

// Refresh re-reads one parameter from the store, ignoring any cached copy.
func (c *ParameterCache) Refresh(ctx context.Context, localKey string, prefix ...string) (*store.Parameter, error) {
	c.Delete(localKey, prefix...)
	return c.Get(ctx, localKey, prefix...)
}

// RefreshAll empties the whole cache, not only prefix, and loads prefix
// again.
func (c *ParameterCache) RefreshAll(ctx context.Context, prefix ...string) (int, error) {
	c.ClearAll()
	return c.Load(ctx, prefix...)
}

// ClearAll drops every cached parameter without contacting the store.
func (c *ParameterCache) ClearAll() {
	c.entries.Clear()
}

// Set always fails with ErrOperationNotSupported and leaves the cache
// untouched.
func (c *ParameterCache) Set(localKey string, value string, prefix ...string) error {
	return ErrOperationNotSupported
}

// Len returns the number of cached parameters.
func (c *ParameterCache) Len() int {
	return c.entries.Len()
}

// Parameters returns the cached parameters under prefix sorted by name,
// without contacting the store.
func (c *ParameterCache) Parameters(prefix ...string) []store.Parameter {
	p := c.resolvePrefix(prefix)

	params := []store.Parameter{}

	c.entries.Range(func(name string, param store.Parameter) bool {
		if strings.HasPrefix(name, p) {
			params = append(params, param)
		}
		return true
	})

	sort.Slice(params, func(i, j int) bool {
		return params[i].Name < params[j].Name
	})

	return params
}

// List loads prefix and returns what is cached under it afterwards.
func (c *ParameterCache) List(ctx context.Context, prefix ...string) ([]store.Parameter, error) {
	if _, err := c.Load(ctx, prefix...); err != nil {
		return nil, err
	}

	return c.Parameters(prefix...), nil
}

func (c *ParameterCache) resolvePrefix(prefix []string) string {
	if len(prefix) > 0 && prefix[0] != "" {
		return normalizePrefix(prefix[0])
	}

	return c.prefix
}

func (c *ParameterCache) name(localKey string, prefix []string) string {
	return c.resolvePrefix(prefix) + localKey
}

// normalizePrefix makes sure prefix ends with the path separator.
func normalizePrefix(prefix string) string {
	if !strings.HasSuffix(prefix, pathSeparator) {
		return prefix + pathSeparator
	}

	return prefix
}
