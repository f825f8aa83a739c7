// Package enrich resolves the hostname and hardware vendor of discovered
// devices. Both lookups degrade to the literal Unknown instead of
// surfacing errors, so one unreachable service never breaks a scan cycle.
package enrich

import (
	"context"
	"time"

	"github.com/projectdiscovery/gcache"

	"github.com/bmavalos/netlog-agent/pkg/types"
)

var (
	hostnameCacheTTL = 30 * time.Minute
	vendorCacheTTL   = 24 * time.Hour
)

// Enricher composes the hostname and vendor lookups behind TTL caches,
// so a short scan interval does not repeat identical remote lookups
// every cycle. Failed lookups are not cached.
type Enricher struct {
	hostnames *HostnameResolver
	vendors   *VendorClient

	hostnameCache gcache.Cache[string, string]
	vendorCache   gcache.Cache[string, string]
}

// NewEnricher creates an Enricher over the given resolvers.
func NewEnricher(hostnames *HostnameResolver, vendors *VendorClient) *Enricher {
	return &Enricher{
		hostnames: hostnames,
		vendors:   vendors,
		hostnameCache: gcache.New[string, string](512).
			LRU().
			Expiration(hostnameCacheTTL).
			Build(),
		vendorCache: gcache.New[string, string](512).
			LRU().
			Expiration(vendorCacheTTL).
			Build(),
	}
}

// Hostname resolves ip to a hostname, or Unknown.
func (e *Enricher) Hostname(ctx context.Context, ip string) string {
	if cached, err := e.hostnameCache.Get(ip); err == nil {
		return cached
	}
	hostname, ok := e.hostnames.Resolve(ctx, ip)
	if !ok {
		return types.Unknown
	}
	_ = e.hostnameCache.Set(ip, hostname)
	return hostname
}

// Vendor resolves mac to a manufacturer name, or Unknown.
func (e *Enricher) Vendor(ctx context.Context, mac string) string {
	if cached, err := e.vendorCache.Get(mac); err == nil {
		return cached
	}
	vendor := e.vendors.Lookup(ctx, mac)
	if vendor != types.Unknown {
		_ = e.vendorCache.Set(mac, vendor)
	}
	return vendor
}
