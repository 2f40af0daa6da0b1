// Package batch identifies many part numbers concurrently, memoising results
// per normalized MPN.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/coolbeans/mpnclass/pkg/manufacturer"
	"github.com/coolbeans/mpnclass/pkg/mpn"
)

const (
	DefaultWorkers         = 8
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Options configures Run.
type Options struct {
	// Workers bounds the number of concurrent identifications.
	Workers int
	// Cache is shared across runs when set; otherwise Run creates one with
	// CacheTTL.
	Cache    *Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Workers:  DefaultWorkers,
		CacheTTL: DefaultCacheTTL,
	}
}

// Result is the identification of one input, at position Index.
type Result struct {
	Index int `json:"index"`
	manufacturer.Identification
	Cached bool `json:"cached"`
}

// Cache memoises identifications by normalized MPN.
type Cache struct {
	cache *gocache.Cache
}

// NewCache returns a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{cache: gocache.New(ttl, DefaultCleanupInterval)}
}

func (c *Cache) get(key string) (manufacturer.Identification, bool) {
	v, found := c.cache.Get(key)
	if !found {
		return manufacturer.Identification{}, false
	}
	id, ok := v.(manufacturer.Identification)
	return id, ok
}

func (c *Cache) set(key string, id manufacturer.Identification) {
	c.cache.Set(key, id, gocache.DefaultExpiration)
}

// Len returns the number of cached identifications, expired ones included
// until the next cleanup.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// Run identifies every MPN with dir. Results keep the input order. Run stops
// early and returns ctx's error when ctx is cancelled.
func Run(ctx context.Context, dir *manufacturer.Directory, mpns []string, opts Options) ([]Result, error) {
	if dir == nil {
		dir = manufacturer.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Cache == nil {
		opts.Cache = NewCache(opts.CacheTTL)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result, len(mpns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	start := time.Now()
	for i, part := range mpns {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key := mpn.Normalize(part)
			id, cached := opts.Cache.get(key)
			if !cached {
				id = dir.Identify(part)
				if key != "" {
					opts.Cache.set(key, id)
				}
			}
			id.MPN = part
			results[i] = Result{Index: i, Identification: id, Cached: cached}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	logger.Debug("batch complete",
		"count", len(mpns),
		"workers", opts.Workers,
		"cached", opts.Cache.Len(),
		"elapsed", time.Since(start))
	return results, nil
}

// ReadMPNs reads one part number per line. Blank lines and lines starting
// with '#' are skipped.
func ReadMPNs(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading part numbers: %w", err)
	}
	return out, nil
}
