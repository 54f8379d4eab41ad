package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"scriptgen/internal/adapter/httpapi/middleware"
	"scriptgen/internal/generator"
	"scriptgen/internal/stats"
	"scriptgen/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	code    string
	err     error
	calls   atomic.Int32
	prompts []string
}

func (f *fakeGenerator) Submit(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.code, nil
}

func (f *fakeGenerator) Model() string {
	return "gemini-3-pro-preview"
}

func newTestEngine(t *testing.T, gen Generator, collector *stats.Collector) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h, err := New(Options{
		Generator:       gen,
		Stats:           collector,
		Provider:        "gemini",
		MaxPromptLength: 50,
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	h.Register(r)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path, prompt string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(url.Values{"prompt": {prompt}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNew_RequiresGenerator(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHandleGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{code: "print('hi')"}
	r := newTestEngine(t, gen, nil)

	w := postJSON(r, "/api/generate", `{"prompt":"say hi"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "print('hi')", resp.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "gemini-3-pro-preview", resp.Model)
	assert.Equal(t, w.Header().Get("X-Request-ID"), resp.RequestID)
	assert.Equal(t, []string{"say hi"}, gen.prompts)
}

func TestHandleGenerate_BlankPrompt(t *testing.T) {
	gen := &fakeGenerator{code: "x"}
	r := newTestEngine(t, gen, nil)

	w := postJSON(r, "/api/generate", `{"prompt":"  \n "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, gen.calls.Load(), "空提示词不应触发上游请求")
}

func TestHandleGenerate_PromptTooLong(t *testing.T) {
	gen := &fakeGenerator{code: "x"}
	r := newTestEngine(t, gen, nil)

	w := postJSON(r, "/api/generate", `{"prompt":"`+strings.Repeat("a", 51)+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, gen.calls.Load())
}

func TestHandleGenerate_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.Join(generator.ErrGenerationFailed, errors.New("quota exceeded"))}
	r := newTestEngine(t, gen, nil)

	w := postJSON(r, "/api/generate", `{"prompt":"say hi"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "generation_failed", resp.Error.Code)
	assert.Equal(t, "Failed to generate script. Please try again.", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), "quota")
}

func TestHandleIndex(t *testing.T) {
	r := newTestEngine(t, &fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ready to Code")
	assert.Contains(t, body, "Generate Script")
	assert.Contains(t, body, "Ctrl + Enter to run")
	assert.Contains(t, body, "Generated scripts should be reviewed before use in production.")
	assert.Contains(t, body, `data-status="idle"`)
	assert.Regexp(t, `id="generate-button"[^>]*disabled`, body)
	assert.Regexp(t, `id="output-panel"[^>]*hidden`, body)
}

func TestHandleFormGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{code: "local a = 1 < 2"}
	r := newTestEngine(t, gen, nil)

	w := postForm(r, "/generate", "compare numbers")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-status="success"`)
	assert.Contains(t, body, "local a = 1 &lt; 2")
	assert.Contains(t, body, "compare numbers")
	assert.Regexp(t, `id="placeholder-panel"[^>]*hidden`, body)
	assert.Regexp(t, `id="error-message"[^>]*hidden`, body)
}

func TestHandleFormGenerate_Failure(t *testing.T) {
	gen := &fakeGenerator{err: generator.ErrGenerationFailed}
	r := newTestEngine(t, gen, nil)

	w := postForm(r, "/generate", "do something")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-status="error"`)
	assert.Contains(t, body, "Failed to generate script. Ensure your API key is valid or try a different prompt.")
	assert.Contains(t, body, "Ready to Code")
	assert.Regexp(t, `id="output-panel"[^>]*hidden`, body)
}

func TestHandleFormGenerate_BlankPrompt(t *testing.T) {
	gen := &fakeGenerator{code: "x"}
	r := newTestEngine(t, gen, nil)

	w := postForm(r, "/generate", "   ")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `data-status="idle"`)
	assert.Zero(t, gen.calls.Load())
}

func TestHandleGetStats(t *testing.T) {
	collector := stats.NewCollector(24)
	collector.Record(true, 100*time.Millisecond, "gemini-3-pro-preview")
	collector.Record(false, 300*time.Millisecond, "gemini-3-pro-preview")
	r := newTestEngine(t, &fakeGenerator{}, collector)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats?hours=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		HourlyStats []stats.HourlyStats `json:"hourly_stats"`
		Summary     stats.Summary       `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.HourlyStats, 2)
	assert.Equal(t, 2, resp.Summary.RequestCount)
	assert.Equal(t, 1, resp.Summary.FailureCount)
}

func TestHandleGetStats_WithoutCollector(t *testing.T) {
	r := newTestEngine(t, &fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hourly_stats":[]`)
}

func TestHealthAndInfo(t *testing.T) {
	r := newTestEngine(t, &fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "scriptgen", info["name"])
	assert.Equal(t, "gemini", info["provider"])
	assert.Equal(t, "gemini-3-pro-preview", info["model"])
}

func TestStaticAssets(t *testing.T) {
	r := newTestEngine(t, &fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "navigator.clipboard")
}

func TestNoRoute(t *testing.T) {
	r := newTestEngine(t, &fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error.Code)
}
