package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIType(t *testing.T) {
	tests := []struct {
		in      string
		want    APIType
		wantErr error
	}{
		{in: "binary", want: APITypeBinary},
		{in: "command_line", want: APITypeCommandLine},
		{in: " WEB_API ", want: APITypeWebAPI},
		{in: "grpc", wantErr: ErrInvalidAPIType},
		{in: "", wantErr: ErrInvalidAPIType},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAPIType(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPITypeIsLocal(t *testing.T) {
	assert.True(t, APITypeBinary.IsLocal())
	assert.True(t, APITypeCommandLine.IsLocal())
	assert.False(t, APITypeWebAPI.IsLocal())
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "", NormalizeEndpoint(""))
	assert.Equal(t, "", NormalizeEndpoint("   "))
	assert.Equal(t, "http://localhost:3000/", NormalizeEndpoint("http://localhost:3000"))
	assert.Equal(t, "http://localhost:3000/", NormalizeEndpoint("http://localhost:3000/"))
	assert.Equal(t, "http://localhost:3000/api/", NormalizeEndpoint("http://localhost:3000/api///"))
}

func TestBackendConfigValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &BackendConfig{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, APITypeBinary, cfg.APIType)
		assert.Equal(t, DefaultBinaryDir, cfg.BinaryDir)
		assert.Equal(t, DefaultCommand, cfg.Command)
		assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("web api requires endpoint", func(t *testing.T) {
		cfg := &BackendConfig{APIType: APITypeWebAPI}
		assert.ErrorIs(t, cfg.Validate(), ErrEndpointRequired)
	})

	t.Run("web api endpoint normalized", func(t *testing.T) {
		cfg := &BackendConfig{APIType: APITypeWebAPI, Endpoint: "http://voikko.test"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://voikko.test/", cfg.Endpoint)
	})

	t.Run("unknown type", func(t *testing.T) {
		cfg := &BackendConfig{APIType: "soap"}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidAPIType)
	})
}

func TestAnalysisWords(t *testing.T) {
	a := &Analysis{
		BaseForms:           []string{"koira", "juosta", "koira", ""},
		CompoundAnnotations: []string{"+koti(koti)+koira(koira)", "+kirja(kirja)(+sto)"},
	}

	t.Run("without compound splitting", func(t *testing.T) {
		assert.Equal(t, []string{"koira", "juosta"}, a.Words(false))
	})

	t.Run("with compound splitting", func(t *testing.T) {
		assert.Equal(t, []string{"koira", "juosta", "koti", "kirja"}, a.Words(true))
	})

	t.Run("nil analysis", func(t *testing.T) {
		var nilAnalysis *Analysis
		assert.Empty(t, nilAnalysis.Words(true))
	})
}

func TestAnalysisErr(t *testing.T) {
	a := &Analysis{}
	assert.NoError(t, a.Err())

	a.Failures = []TokenFailure{
		{Token: "käden", Err: ErrNetworkFailure},
		{Token: "talo", Err: ErrMalformedResponse},
	}
	err := a.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), `token "käden"`)
}

func TestExternalToolError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &ExternalToolError{Stderr: "Unknown option -x\n", Err: cause}

	assert.ErrorIs(t, err, ErrExternalToolFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "external tool failure: exit status 1: Unknown option -x", err.Error())

	stderrOnly := &ExternalToolError{Stderr: "dictionary not found"}
	assert.ErrorIs(t, stderrOnly, ErrExternalToolFailure)
	assert.Equal(t, "external tool failure: dictionary not found", stderrOnly.Error())
}

func TestCacheKey(t *testing.T) {
	binary := &BackendConfig{APIType: APITypeBinary}
	split := &BackendConfig{APIType: APITypeBinary, SplitCompoundWords: true}
	web := &BackendConfig{APIType: APITypeWebAPI, Endpoint: "http://a/"}
	otherWeb := &BackendConfig{APIType: APITypeWebAPI, Endpoint: "http://b/"}

	key := CacheKey(binary, []string{"käden"})
	assert.Len(t, key, 32)
	assert.Equal(t, key, CacheKey(binary, []string{"käden"}))
	assert.NotEqual(t, key, CacheKey(split, []string{"käden"}))
	assert.NotEqual(t, key, CacheKey(binary, []string{"käsi"}))
	assert.NotEqual(t, CacheKey(binary, []string{"ab", "c"}), CacheKey(binary, []string{"a", "bc"}))
	assert.NotEqual(t, CacheKey(web, []string{"käden"}), CacheKey(otherWeb, []string{"käden"}))
}
