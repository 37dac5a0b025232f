package resolve

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingResolver struct {
	calls atomic.Int64
	names map[string][]string
	err   error
	delay time.Duration
}

func (c *countingResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	names, ok := c.names[addr]
	if !ok {
		return nil, errors.New("not found")
	}
	return names, nil
}

func TestCachingResolver_ResolvesAndTrimsRootDot(t *testing.T) {
	t.Parallel()

	base := &countingResolver{names: map[string][]string{"10.0.0.1": {"cache-1.internal.", "alias."}}}
	r, err := NewCachingResolver(base)
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}

	if got := r.Attribute(context.Background(), "10.0.0.1"); got != "cache-1.internal" {
		t.Fatalf("Attribute = %q, want %q", got, "cache-1.internal")
	}
}

func TestCachingResolver_FallsBackToAddress(t *testing.T) {
	t.Parallel()

	r, err := NewCachingResolver(StaticResolver{})
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}

	if got := r.Attribute(context.Background(), "192.0.2.9"); got != "192.0.2.9" {
		t.Fatalf("Attribute = %q, want raw address", got)
	}
	if s := r.Stats(); s.Failures != 1 {
		t.Errorf("failures = %d, want 1", s.Failures)
	}
}

func TestCachingResolver_EmptyAnswerFallsBack(t *testing.T) {
	t.Parallel()

	base := &countingResolver{names: map[string][]string{"10.0.0.3": {}}}
	r, err := NewCachingResolver(base)
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}
	if got := r.Attribute(context.Background(), "10.0.0.3"); got != "10.0.0.3" {
		t.Fatalf("Attribute = %q, want raw address", got)
	}
}

func TestCachingResolver_MemoizesPerAddress(t *testing.T) {
	t.Parallel()

	base := &countingResolver{names: map[string][]string{"127.0.0.1": {"localhost"}}}
	r, err := NewCachingResolver(base)
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}

	for i := 0; i < 100; i++ {
		r.Attribute(context.Background(), "127.0.0.1")
		r.Attribute(context.Background(), "10.9.9.9")
	}

	if got := base.calls.Load(); got != 2 {
		t.Fatalf("base lookups = %d, want 2", got)
	}
	s := r.Stats()
	if s.Lookups != 2 || s.Hits != 198 {
		t.Errorf("stats = %+v, want 2 lookups and 198 hits", s)
	}
}

func TestCachingResolver_ConcurrentLookupsShareQuery(t *testing.T) {
	t.Parallel()

	base := &countingResolver{
		names: map[string][]string{"10.0.0.2": {"db-2"}},
		delay: 50 * time.Millisecond,
	}
	r, err := NewCachingResolver(base)
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := r.Attribute(context.Background(), "10.0.0.2"); got != "db-2" {
				t.Errorf("Attribute = %q, want db-2", got)
			}
		}()
	}
	wg.Wait()

	if got := base.calls.Load(); got != 1 {
		t.Fatalf("base lookups = %d, want 1", got)
	}
}

func TestCachingResolver_Timeout(t *testing.T) {
	t.Parallel()

	base := &countingResolver{
		names: map[string][]string{"10.0.0.4": {"slow"}},
		delay: time.Second,
	}
	r, err := NewCachingResolver(base, Config{Timeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}

	if got := r.Attribute(context.Background(), "10.0.0.4"); got != "10.0.0.4" {
		t.Fatalf("Attribute = %q, want raw address after timeout", got)
	}
}

func TestCachingResolver_CallerCancellationDoesNotPoisonCache(t *testing.T) {
	t.Parallel()

	base := &countingResolver{
		names: map[string][]string{"10.0.0.5": {"db5.example."}},
		delay: 20 * time.Millisecond,
	}
	r, err := NewCachingResolver(base, Config{Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := r.Attribute(ctx, "10.0.0.5"); got != "db5.example" {
		t.Fatalf("Attribute with cancelled ctx = %q, want db5.example", got)
	}
	if got := r.Attribute(context.Background(), "10.0.0.5"); got != "db5.example" {
		t.Fatalf("cached Attribute = %q, want db5.example", got)
	}
	if got := base.calls.Load(); got != 1 {
		t.Fatalf("base lookups = %d, want 1", got)
	}
}

func TestRawIP(t *testing.T) {
	t.Parallel()

	if got := (RawIP{}).Attribute(context.Background(), "127.0.0.1"); got != "127.0.0.1" {
		t.Fatalf("Attribute = %q", got)
	}
}
