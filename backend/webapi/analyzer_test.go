package webapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dictionary maps tokens to the JSON body the fake service returns.
var dictionary = map[string]string{
	"käden":      `[{"BASEFORM":"käsi","WORDBASES":"+käde(käsi)"}]`,
	"kädet":      `[{"BASEFORM":"käsi","WORDBASES":"+käde(käsi)"}]`,
	"kotikoirat": `[{"BASEFORM":"kotikoira","WORDBASES":"+koti(koti)+koira(koira)","CLASS":"nimisana"}]`,
	"kuusi":      `[{"BASEFORM":"kuusi"},{"BASEFORM":"kuusi"},{"BASEFORM":"kuu"}]`,
	"tyhjä":      `[]`,
	"null":       `null`,
	"empty":      ``,
	"rikki":      `{"BASEFORM":"rikki"}`,
	"eibase":     `[{"WORDBASES":"+ei(ei)"}]`,
}

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.URL.Path, "/analyze/")
		if !ok || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		if token == "virhe" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		body, ok := dictionary[token]
		if !ok {
			body = `[]`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAnalyzer(t *testing.T, endpoint string, split bool) *Analyzer {
	t.Helper()
	a, err := New(&core.BackendConfig{
		APIType:            core.APITypeWebAPI,
		Endpoint:           endpoint,
		SplitCompoundWords: split,
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAnalyze(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	t.Run("collects base forms", func(t *testing.T) {
		a := newAnalyzer(t, srv.URL, false)
		analysis, err := a.Analyze(ctx, []string{"käden", "kotikoirat"})
		require.NoError(t, err)
		assert.Equal(t, []string{"käsi", "kotikoira"}, analysis.BaseForms)
		assert.Empty(t, analysis.CompoundAnnotations)
		assert.Empty(t, analysis.Failures)
	})

	t.Run("collects word bases when splitting", func(t *testing.T) {
		a := newAnalyzer(t, srv.URL+"/", true)
		analysis, err := a.Analyze(ctx, []string{"käden", "kotikoirat"})
		require.NoError(t, err)
		assert.Equal(t, []string{"+käde(käsi)", "+koti(koti)+koira(koira)"}, analysis.CompoundAnnotations)
		assert.Equal(t, []string{"käsi", "kotikoira", "koti", "koira"}, analysis.Words(true))
	})

	t.Run("merged words are unique", func(t *testing.T) {
		a := newAnalyzer(t, srv.URL, true)
		analysis, err := a.Analyze(ctx, []string{"käden", "kädet", "kuusi"})
		require.NoError(t, err)
		assert.Equal(t, []string{"käsi", "kuusi", "kuu"}, analysis.Words(true))
	})

	t.Run("empty and null bodies contribute nothing", func(t *testing.T) {
		a := newAnalyzer(t, srv.URL, true)
		analysis, err := a.Analyze(ctx, []string{"tyhjä", "null", "empty", "tuntematon"})
		require.NoError(t, err)
		assert.Empty(t, analysis.BaseForms)
		assert.Empty(t, analysis.Failures)
	})

	t.Run("items without base form still give word bases", func(t *testing.T) {
		a := newAnalyzer(t, srv.URL, true)
		analysis, err := a.Analyze(ctx, []string{"eibase"})
		require.NoError(t, err)
		assert.Empty(t, analysis.BaseForms)
		assert.Equal(t, []string{"+ei(ei)"}, analysis.CompoundAnnotations)
	})

	t.Run("empty batch sends nothing", func(t *testing.T) {
		a := newAnalyzer(t, "http://127.0.0.1:1", false)
		analysis, err := a.Analyze(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, analysis.BaseForms)
		assert.Empty(t, analysis.Failures)
	})
}

func TestAnalyzeRecordsFailures(t *testing.T) {
	srv := newService(t)
	a := newAnalyzer(t, srv.URL, false)

	analysis, err := a.Analyze(context.Background(), []string{"käden", "virhe", "rikki"})
	require.NoError(t, err)
	assert.Equal(t, []string{"käsi"}, analysis.BaseForms)
	require.Len(t, analysis.Failures, 2)

	assert.Equal(t, "virhe", analysis.Failures[0].Token)
	assert.ErrorIs(t, analysis.Failures[0].Err, core.ErrNetworkFailure)
	assert.Equal(t, "rikki", analysis.Failures[1].Token)
	assert.ErrorIs(t, analysis.Failures[1].Err, core.ErrMalformedResponse)

	assert.ErrorIs(t, analysis.Err(), core.ErrNetworkFailure)
}

func TestAnalyzeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	a := newAnalyzer(t, endpoint, false)
	analysis, err := a.Analyze(context.Background(), []string{"käden", "talo"})
	require.NoError(t, err)
	assert.Empty(t, analysis.BaseForms)
	require.Len(t, analysis.Failures, 2)
	for _, f := range analysis.Failures {
		assert.ErrorIs(t, f.Err, core.ErrNetworkFailure)
	}
}

func TestAnalyzeEscapesTokens(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath())
		mu.Unlock()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	a := newAnalyzer(t, srv.URL+"/api//", false)
	_, err := a.Analyze(context.Background(), []string{"käden", "a/b"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"/api/analyze/k%C3%A4den", "/api/analyze/a%2Fb"}, paths)
}

func TestAnalyzeBoundsConcurrency(t *testing.T) {
	var inFlight, maxInFlight, calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		fmt.Fprintf(w, `[{"BASEFORM":%q}]`, strings.TrimPrefix(r.URL.Path, "/analyze/"))
	}))
	defer srv.Close()

	a := newAnalyzer(t, srv.URL, false)

	tokens := make([]string, 50)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("sana%d", i)
	}

	analysis, err := a.Analyze(context.Background(), tokens)
	require.NoError(t, err)

	// Analyze returns only after every request has settled.
	assert.Equal(t, int32(50), calls.Load())
	assert.Equal(t, int32(0), inFlight.Load())
	assert.Len(t, analysis.BaseForms, 50)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(core.DefaultConcurrency))
	assert.Greater(t, maxInFlight.Load(), int32(1))
}

func TestAnalyzeCustomConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	a, err := New(&core.BackendConfig{APIType: core.APITypeWebAPI, Endpoint: srv.URL, Concurrency: 2})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Analyze(context.Background(), []string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
}

func TestAnalyzeRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	a, err := New(&core.BackendConfig{
		APIType:        core.APITypeWebAPI,
		Endpoint:       srv.URL,
		RequestTimeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer a.Close()

	analysis, err := a.Analyze(context.Background(), []string{"hidas"})
	require.NoError(t, err)
	require.Len(t, analysis.Failures, 1)
	assert.ErrorIs(t, analysis.Failures[0].Err, core.ErrNetworkFailure)
}

func TestNewValidation(t *testing.T) {
	_, err := New(&core.BackendConfig{APIType: core.APITypeWebAPI})
	assert.ErrorIs(t, err, core.ErrEndpointRequired)

	_, err = New(&core.BackendConfig{APIType: core.APITypeBinary})
	assert.ErrorIs(t, err, core.ErrInvalidAPIType)
}
