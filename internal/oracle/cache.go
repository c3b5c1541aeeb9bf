package oracle

import (
	"container/list"
	"math/rand/v2"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// distCache holds cumulative distributions keyed by the parameters that
// produced them, evicting the least recently used entry once full.
//
// Concurrent misses on one key share a single computation, which runs outside
// the cache lock so other keys stay readable meanwhile.
type distCache struct {
	capacity int

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	group singleflight.Group
}

type cdfEntry struct {
	key string
	cdf []float64
}

func newDistCache(capacity int) *distCache {
	if capacity < 1 {
		capacity = 1
	}
	return &distCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the cumulative form of the distribution stored under key,
// calling compute on a miss.
func (c *distCache) get(key string, compute func() ([]float64, error)) ([]float64, error) {
	if cdf, ok := c.lookup(key); ok {
		return cdf, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if cdf, ok := c.lookup(key); ok {
			return cdf, nil
		}
		probs, err := compute()
		if err != nil {
			return nil, err
		}
		cdf := cumulative(probs)
		c.store(key, cdf)
		return cdf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]float64), nil
}

func (c *distCache) lookup(key string) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cdfEntry).cdf, true
}

func (c *distCache) store(key string, cdf []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cdfEntry).cdf = cdf
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&cdfEntry{key: key, cdf: cdf})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cdfEntry).key)
	}
}

// Len reports the number of cached distributions.
func (c *distCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func cumulative(probs []float64) []float64 {
	cdf := make([]float64, len(probs))
	acc := 0.0
	for i, p := range probs {
		acc += p
		cdf[i] = acc
	}
	return cdf
}

// sampleCDF draws an index from a cumulative distribution with one rng draw.
func sampleCDF(cdf []float64, rng *rand.Rand) int {
	n := len(cdf)
	if n == 0 {
		return 0
	}
	total := cdf[n-1]
	u := rng.Float64() * total
	i := sort.Search(n, func(i int) bool { return cdf[i] > u })
	if i == n {
		// rounding left u at the total; take the last positive entry
		i = sort.Search(n, func(i int) bool { return cdf[i] >= total })
	}
	return i
}
