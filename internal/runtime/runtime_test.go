package runtime

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"scriptgen/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.SystemConfig {
	cfg := &config.SystemConfig{}
	cfg.Server.Port = "0"
	cfg.Server.GinMode = gin.TestMode
	cfg.Server.MaxPromptLength = 100
	cfg.Upstream.Provider = "gemini"
	cfg.Upstream.APIKey = "key"
	cfg.Upstream.Model = "gemini-3-pro-preview"
	cfg.Upstream.BaseURL = baseURL
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

func TestNew_MissingConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_MissingAPIKey(t *testing.T) {
	cfg := testConfig("")
	cfg.Upstream.APIKey = ""

	_, err := New(Options{Config: cfg})
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestRuntime_GenerateRecordsStats(t *testing.T) {
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"print(1)"}]}}]}`)
	}))
	defer upstreamSrv.Close()

	rt, err := New(Options{Config: testConfig(upstreamSrv.URL), HTTPClient: upstreamSrv.Client()})
	require.NoError(t, err)

	code, err := rt.Generator().Submit(context.Background(), "print one")
	require.NoError(t, err)
	assert.Equal(t, "print(1)", code)

	summary := rt.Stats().Summary()
	assert.Equal(t, 1, summary.SuccessCount)
	assert.NotNil(t, rt.Server().Handler())
}
