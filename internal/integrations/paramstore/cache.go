package paramstore

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes secret lookups for the lifetime of the process. Secret
// values are treated as immutable once fetched; failed lookups are not
// remembered and will be retried by the next caller.
type Cache struct {
	getter Getter
	group  singleflight.Group

	mu     sync.RWMutex
	values map[string]string
}

func NewCache(getter Getter) (*Cache, error) {
	if getter == nil {
		return nil, errors.New("paramstore: getter must not be nil")
	}
	return &Cache{getter: getter, values: make(map[string]string)}, nil
}

func (c *Cache) GetParameter(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	v, ok := c.values[name]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	// Concurrent misses for the same name share one upstream call.
	res, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.RLock()
		v, ok := c.values[name]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := c.getter.GetParameter(ctx, name)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.values[name] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
