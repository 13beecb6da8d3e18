package handlers_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
)

func coord(v float64) *float64 { return &v }

func testDataset() *entities.Dataset {
	columns := append(append([]string{}, entities.RequiredColumns...), entities.LocationColumns...)
	return entities.NewDataset(columns, []entities.Restaurant{
		{Name: "Karim's", City: "Delhi", Cuisines: "North Indian, Mughlai", AggregateRating: 4.2, AverageCostForTwo: 800, Currency: "Indian Rupees(Rs.)", Latitude: coord(28.6507), Longitude: coord(77.2334)},
		{Name: "Golden Dragon", City: "Delhi", Cuisines: "Chinese", AggregateRating: 3.5, AverageCostForTwo: 1200, Currency: "Indian Rupees(Rs.)", Latitude: coord(28.5355), Longitude: coord(77.391)},
		{Name: "Trishna", City: "Mumbai", Cuisines: "Seafood", AggregateRating: 4.6, AverageCostForTwo: 2500, Currency: "Indian Rupees(Rs.)"},
	})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
