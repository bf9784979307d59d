package cache

import (
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
)

// InstrumentIds caches symbol -> instrument id for symbols that resolved.
// Misses are never stored, a symbol registered later is picked up on the next lookup.
type InstrumentIds struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func NewInstrumentIds(maxEntries int64, ttl time.Duration) (*InstrumentIds, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &InstrumentIds{c: c, ttl: ttl}, nil
}

func (ic *InstrumentIds) Get(symbol string) (int32, bool) {
	if ic == nil {
		return 0, false
	}
	v, ok := ic.c.Get(key(symbol))
	if !ok {
		return 0, false
	}
	id, ok := v.(int32)
	return id, ok
}

func (ic *InstrumentIds) Set(symbol string, id int32) {
	if ic == nil {
		return
	}
	ic.c.SetWithTTL(key(symbol), id, 1, ic.ttl)
}

func (ic *InstrumentIds) Del(symbol string) {
	if ic == nil {
		return
	}
	ic.c.Del(key(symbol))
}

// Wait blocks until buffered writes are applied.
func (ic *InstrumentIds) Wait() {
	if ic == nil {
		return
	}
	ic.c.Wait()
}

func (ic *InstrumentIds) Close() {
	if ic == nil {
		return
	}
	ic.c.Close()
}

// symbols are matched exactly by the store, the key only namespaces them
func key(symbol string) string {
	return "instrument:" + strings.TrimSpace(symbol)
}
