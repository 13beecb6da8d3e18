package handlers

import (
	"net/http"
)

// Page is one view of the dashboard and the routes that back it
type Page struct {
	Name   string   `json:"name"`
	Routes []string `json:"routes"`
}

// Pages lists the dashboard views in navigation order
var Pages = []Page{
	{Name: "Recommendations", Routes: []string{"GET /api/cities", "GET /api/recommendations"}},
	{Name: "Map", Routes: []string{"GET /api/restaurants", "GET /api/restaurants/suggest", "GET /api/map", "GET /api/map/restaurants/{id}", "GET /api/map/static"}},
	{Name: "Chatbot", Routes: []string{"POST /api/chat"}},
}

// ListPages handles GET /api/pages
func ListPages(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pages":   Pages,
		"default": Pages[0].Name,
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
