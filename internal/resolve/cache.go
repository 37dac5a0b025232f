package resolve

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/tinytelemetry/faina/internal/model"
)

// Config holds tunable parameters for the caching resolver.
type Config struct {
	CacheSize int
	Timeout   time.Duration // per lookup; 0 = no deadline beyond ctx
}

// CacheStats reports resolver activity for a run.
type CacheStats struct {
	Lookups  int64
	Hits     int64
	Failures int64
}

// CachingResolver memoizes reverse lookups per address for the lifetime of
// the resolver. Concurrent lookups of the same address share one query.
type CachingResolver struct {
	base    Resolver
	timeout time.Duration
	cache   *lru.Cache[string, string]
	group   singleflight.Group

	lookups  atomic.Int64
	hits     atomic.Int64
	failures atomic.Int64
}

// NewCachingResolver wraps base with a bounded address cache.
func NewCachingResolver(base Resolver, conf ...Config) (*CachingResolver, error) {
	size := model.DefaultResolveCacheSize
	var timeout time.Duration
	if len(conf) > 0 {
		if conf[0].CacheSize > 0 {
			size = conf[0].CacheSize
		}
		timeout = conf[0].Timeout
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create host cache: %w", err)
	}
	return &CachingResolver{
		base:    base,
		timeout: timeout,
		cache:   cache,
	}, nil
}

// Attribute returns the host name for ip, or ip itself when the lookup fails.
// The lookup is shared by concurrent callers and cached, so it runs detached
// from ctx's cancellation and is bounded by the configured timeout instead.
func (r *CachingResolver) Attribute(ctx context.Context, ip string) string {
	if host, ok := r.cache.Get(ip); ok {
		r.hits.Add(1)
		return host
	}
	v, _, _ := r.group.Do(ip, func() (any, error) {
		if host, ok := r.cache.Get(ip); ok {
			r.hits.Add(1)
			return host, nil
		}
		host := r.lookup(context.WithoutCancel(ctx), ip)
		r.cache.Add(ip, host)
		return host, nil
	})
	return v.(string)
}

func (r *CachingResolver) lookup(ctx context.Context, ip string) string {
	r.lookups.Add(1)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	names, err := r.base.LookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		r.failures.Add(1)
		if err != nil {
			log.Printf("resolve: reverse lookup for %s failed, using address: %v", ip, err)
		}
		return ip
	}
	host := strings.TrimSuffix(names[0], ".")
	if host == "" {
		r.failures.Add(1)
		return ip
	}
	return host
}

// Stats returns lookup counters.
func (r *CachingResolver) Stats() CacheStats {
	return CacheStats{
		Lookups:  r.lookups.Load(),
		Hits:     r.hits.Load(),
		Failures: r.failures.Load(),
	}
}
