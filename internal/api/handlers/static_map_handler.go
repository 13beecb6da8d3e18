package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

const (
	staticMapURL          = "https://maps.googleapis.com/maps/api/staticmap"
	defaultStaticMapZoom  = "15"
	defaultStaticMapSize  = "640x360"
	defaultStaticMapScale = "1"
	staticMapCacheTTL     = 7 * 24 * time.Hour
	maxStaticMapBytes     = 5 << 20
)

// RestaurantLocator resolves a restaurant that can be placed on a map
type RestaurantLocator interface {
	Locate(ctx context.Context, id string) (entities.Restaurant, error)
}

// StaticMapHandler proxies Google Static Maps for one restaurant and caches
// the image.
type StaticMapHandler struct {
	locator RestaurantLocator
	apiKey  string
	cache   providers.CacheProvider
	client  *http.Client
	baseURL string
}

// NewStaticMapHandler creates a new static map handler
func NewStaticMapHandler(locator RestaurantLocator, apiKey string, cache providers.CacheProvider) *StaticMapHandler {
	return NewStaticMapHandlerWithOptions(locator, apiKey, cache, staticMapURL, nil)
}

// NewStaticMapHandlerWithOptions allows overriding base URL and HTTP client (used for tests).
func NewStaticMapHandlerWithOptions(locator RestaurantLocator, apiKey string, cache providers.CacheProvider, baseURL string, client *http.Client) *StaticMapHandler {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = staticMapURL
	}
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	return &StaticMapHandler{
		locator: locator,
		apiKey:  apiKey,
		cache:   cache,
		client:  client,
		baseURL: baseURL,
	}
}

// GetStaticMap handles GET /api/map/static?id=&zoom=&size=&scale=
func (h *StaticMapHandler) GetStaticMap(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		respondWithError(w, http.StatusServiceUnavailable, "maps api key not configured")
		return
	}

	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "restaurant id is required")
		return
	}

	restaurant, err := h.locator.Locate(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	center := formatCoordinates(*restaurant.Latitude, *restaurant.Longitude)
	zoom := queryOrDefault(query, "zoom", defaultStaticMapZoom)
	size := queryOrDefault(query, "size", defaultStaticMapSize)
	scale := queryOrDefault(query, "scale", defaultStaticMapScale)
	marker := "color:red|" + center

	cacheKey := buildStaticMapCacheKey(center, zoom, size, scale, marker)
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil && len(cached) > 0 {
			writeImage(w, "image/png", cached)
			return
		}
	}

	values := url.Values{}
	values.Set("center", center)
	values.Set("zoom", zoom)
	values.Set("size", size)
	values.Set("scale", scale)
	values.Add("markers", marker)
	values.Set("key", h.apiKey)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to build map request")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		// the request URL carries the key; do not log err
		log.Warn().Str("restaurant_id", id).Msg("Static map request failed")
		respondWithError(w, http.StatusBadGateway, "failed to fetch map image")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respondWithAppError(w, r, apperrors.NewExternalError("map provider returned an error", fmt.Errorf("status %d", resp.StatusCode)))
		return
	}

	imageBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxStaticMapBytes))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to read map image")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), cacheKey, imageBytes, staticMapCacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache static map")
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	writeImage(w, contentType, imageBytes)
}

func writeImage(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func queryOrDefault(query url.Values, key, fallback string) string {
	if v := strings.TrimSpace(query.Get(key)); v != "" {
		return v
	}
	return fallback
}

func formatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%s,%s", strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))
}

func buildStaticMapCacheKey(center, zoom, size, scale, marker string) string {
	values := url.Values{}
	values.Set("center", center)
	values.Set("zoom", zoom)
	values.Set("size", size)
	values.Set("scale", scale)
	values.Add("markers", marker)
	return "maps:static:" + hashString(values.Encode())
}

func hashString(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
