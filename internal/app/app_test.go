package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bissquit/subscribers-api/internal/config"
	"github.com/bissquit/subscribers-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisConfig(addr string) *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Server.MetricsPort = "0"
	cfg.Database.Driver = config.DriverRedis
	cfg.Database.ConnectTimeout = 5 * time.Second
	cfg.Redis.URL = "redis://" + addr + "/0"
	cfg.Log.Level = "error"
	return cfg
}

func setupTestApp(t *testing.T) (*testutil.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	application, err := New(newRedisConfig(mr.Addr()))
	require.NoError(t, err)

	server := httptest.NewServer(application.Router())
	t.Cleanup(func() {
		server.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	})

	return testutil.NewClientWithValidation(t, server.URL), mr
}

func TestApp_SubscriberLifecycle(t *testing.T) {
	client, _ := setupTestApp(t)

	resp, err := client.GET("/api/subscribers/names")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, testutil.ReadBody(t, resp))

	resp, err = client.POST("/api/subscribers", map[string]string{
		"name":              "Ana",
		"subscribedChannel": "X",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID                string `json:"_id"`
		Name              string `json:"name"`
		SubscribedChannel string `json:"subscribedChannel"`
	}
	testutil.DecodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, "X", created.SubscribedChannel)

	resp, err = client.GET("/api/subscribers/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched struct {
		ID                string `json:"_id"`
		Name              string `json:"name"`
		SubscribedChannel string `json:"subscribedChannel"`
	}
	testutil.DecodeJSON(t, resp, &fetched)
	assert.Equal(t, created, fetched)

	resp, err = client.GET("/api/subscribers")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]string
	testutil.DecodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0]["_id"])
}

func TestApp_CreateMissingChannel(t *testing.T) {
	client, mr := setupTestApp(t)

	resp, err := client.POST("/api/subscribers", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, map[string]string{"message": "Name and subscribedChannel are required"}, body)
	assert.Empty(t, mr.Keys(), "nothing may be persisted")
}

func TestApp_GetUnknownSubscriber(t *testing.T) {
	client, _ := setupTestApp(t)

	resp, err := client.GET("/api/subscribers/1b4e28ba-2fa1-41d2-883f-0016d3cca427")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, map[string]string{"message": "Subscriber not found"}, body)
}

func TestApp_StoreUnavailable(t *testing.T) {
	client, mr := setupTestApp(t)
	mr.Close()

	resp, err := client.GET("/api/subscribers")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, "Error retrieving subscribers", body["message"])
	assert.NotEmpty(t, body["error"])

	resp, err = client.GET("/readyz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestApp_OperationalEndpoints(t *testing.T) {
	client, _ := setupTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := client.GET(path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "OK", testutil.ReadBody(t, resp))
	}

	resp, err := client.GET("/version")
	require.NoError(t, err)
	var info map[string]string
	testutil.DecodeJSON(t, resp, &info)
	assert.Contains(t, info, "version")

	resp, err = client.GET("/api/openapi.json")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadBody(t, resp)), &spec))
	servers := spec["servers"].([]interface{})
	assert.Equal(t, "http://localhost:0", servers[0].(map[string]interface{})["url"])

	resp, err = client.GET("/docs")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, testutil.ReadBody(t, resp), "swagger-ui")
}

func TestApp_CORS(t *testing.T) {
	client, _ := setupTestApp(t)

	req, err := http.NewRequest(http.MethodOptions, client.BaseURL+"/api/subscribers", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestOpenStore_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "mongo"

	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}
