package docs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL(t *testing.T) {
	assert.Equal(t, "http://localhost:4000", ServerURL("localhost", "4000"))
	assert.Equal(t, "http://api.example.com", ServerURL("api.example.com", "80"))
	assert.Equal(t, "https://api.example.com", ServerURL("https://api.example.com/", "4000"))
	assert.Equal(t, "http://localhost:4000", ServerURL("", "4000"))
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(context.Background(), "http://api.example.com:4000")
	require.NoError(t, err)

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "http://api.example.com:4000", doc.Servers[0].URL)

	for _, path := range []string{"/api/subscribers", "/api/subscribers/names", "/api/subscribers/{id}"} {
		assert.NotNil(t, doc.Paths.Find(path), "path %s", path)
	}

	item := doc.Paths.Find("/api/subscribers")
	require.NotNil(t, item.Post)
	assert.NotNil(t, item.Post.Responses.Status(http.StatusCreated))
	assert.NotNil(t, item.Post.Responses.Status(http.StatusBadRequest))
	assert.NotNil(t, item.Post.Responses.Status(http.StatusInternalServerError))

	get := doc.Paths.Find("/api/subscribers/{id}").Get
	require.NotNil(t, get)
	assert.NotNil(t, get.Responses.Status(http.StatusNotFound))
}

func TestNewDocument_WithoutServer(t *testing.T) {
	doc, err := NewDocument(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, doc.Servers)
}

func TestHandler(t *testing.T) {
	doc, err := NewDocument(context.Background(), "http://localhost:4000")
	require.NoError(t, err)

	h, err := NewHandler(doc, SpecPath)
	require.NoError(t, err)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, SpecPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec["openapi"])
	assert.Contains(t, spec["paths"], "/api/subscribers/{id}")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, UIPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
	assert.Contains(t, rec.Body.String(), "openapi.json")
}
