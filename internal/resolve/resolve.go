package resolve

import (
	"context"
	"net"
)

// Resolver performs reverse lookups. *net.Resolver satisfies it.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Attributor maps a client address to the name keys are attributed to.
// It never fails: an unresolvable address is returned unchanged.
type Attributor interface {
	Attribute(ctx context.Context, ip string) string
}

// RawIP attributes every key to the client address itself, without DNS.
type RawIP struct{}

func (RawIP) Attribute(_ context.Context, ip string) string { return ip }

// StaticResolver answers reverse lookups from a fixed address-to-host table.
type StaticResolver map[string]string

func (s StaticResolver) LookupAddr(_ context.Context, addr string) ([]string, error) {
	host, ok := s[addr]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
	}
	return []string{host}, nil
}
