package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/chefmate/backend/internal/api/handlers"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

func TestListPages(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.ListPages(w, httptest.NewRequest(http.MethodGet, "/api/pages", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Pages   []handlers.Page `json:"pages"`
		Default string          `json:"default"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "Recommendations", body.Default)
	assert.Len(t, body.Pages, 3)
	assert.Equal(t, "Chatbot", body.Pages[2].Name)
}

func TestArtifactHandler(t *testing.T) {
	artifacts := &entities.ModelArtifacts{
		ClusterModel: entities.ModelArtifact{Name: "kmeans_model.pkl", Size: 3, SHA256: "abc", Data: []byte("raw")},
		Encoder:      entities.ModelArtifact{Name: "onehot_encoder.pkl", Size: 4},
	}
	w := httptest.NewRecorder()

	handlers.NewArtifactHandler(artifacts).GetArtifacts(w, httptest.NewRequest(http.MethodGet, "/api/artifacts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kmeans_model.pkl"`)
	assert.NotContains(t, w.Body.String(), "raw")

	w = httptest.NewRecorder()
	handlers.NewArtifactHandler(nil).GetArtifacts(w, httptest.NewRequest(http.MethodGet, "/api/artifacts", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
