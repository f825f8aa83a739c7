package enrich

import (
	"context"
	"net"
	"strings"
	"time"
)

// DefaultHostnameTimeout bounds a single reverse-DNS lookup.
const DefaultHostnameTimeout = 5 * time.Second

// HostnameResolver maps an IP address to a hostname via reverse DNS.
type HostnameResolver struct {
	timeout    time.Duration
	lookupAddr func(ctx context.Context, addr string) ([]string, error)
}

// NewHostnameResolver creates a resolver backed by the system resolver.
func NewHostnameResolver(timeout time.Duration) *HostnameResolver {
	if timeout <= 0 {
		timeout = DefaultHostnameTimeout
	}
	return &HostnameResolver{
		timeout:    timeout,
		lookupAddr: net.DefaultResolver.LookupAddr,
	}
}

// Resolve performs a reverse lookup of ip. Any failure (no PTR record,
// timeout, malformed address) yields ("", false) rather than an error;
// the caller substitutes Unknown.
func (r *HostnameResolver) Resolve(ctx context.Context, ip string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names, err := r.lookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		return "", false
	}
	return strings.TrimSuffix(names[0], "."), true
}
