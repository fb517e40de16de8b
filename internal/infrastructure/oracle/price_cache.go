package oracle

import (
	"fmt"
	"strings"
	"time"

	"wallet_scanner/internal/app/port"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// ttlPriceCache implements port.PriceCache on patrickmn/go-cache. It is
// an explicit component handed to its consumers by reference, with a
// defined TTL, rather than process-wide ambient state.
type ttlPriceCache struct {
	c *cache.Cache
}

// NewTTLPriceCache creates the price cache.
func NewTTLPriceCache(ttl, cleanupInterval time.Duration) port.PriceCache {
	return &ttlPriceCache{c: cache.New(ttl, cleanupInterval)}
}

func priceKey(chain, address string) string {
	return fmt.Sprintf("%s_%s", strings.ToLower(chain), strings.ToLower(address))
}

func (p *ttlPriceCache) Get(chain, address string) (decimal.Decimal, bool) {
	v, ok := p.c.Get(priceKey(chain, address))
	if !ok {
		return decimal.Zero, false
	}
	price, ok := v.(decimal.Decimal)
	return price, ok
}

func (p *ttlPriceCache) Set(chain, address string, price decimal.Decimal) {
	p.c.SetDefault(priceKey(chain, address), price)
}

func (p *ttlPriceCache) Invalidate(chain, address string) {
	p.c.Delete(priceKey(chain, address))
}
