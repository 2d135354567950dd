package backend

import (
	"net/http"
	"testing"
	"time"

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend/voikko"
	"github.com/joppuyo/relevanssi-finnish-base-forms/backend/webapi"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *core.BackendConfig
		wantType any
		wantErr  error
	}{
		{
			name:     "binary",
			cfg:      &core.BackendConfig{APIType: core.APITypeBinary},
			wantType: &voikko.Analyzer{},
		},
		{
			name:     "command line",
			cfg:      &core.BackendConfig{APIType: core.APITypeCommandLine},
			wantType: &voikko.Analyzer{},
		},
		{
			name:     "web api",
			cfg:      &core.BackendConfig{APIType: core.APITypeWebAPI, Endpoint: "http://localhost:9999"},
			wantType: &webapi.Analyzer{},
		},
		{
			name:    "web api without endpoint",
			cfg:     &core.BackendConfig{APIType: core.APITypeWebAPI},
			wantErr: core.ErrEndpointRequired,
		},
		{
			name:    "unknown type",
			cfg:     &core.BackendConfig{APIType: "soap"},
			wantErr: core.ErrInvalidAPIType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer, err := New(tt.cfg, WithHTTPClient(&http.Client{Timeout: time.Second}))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, analyzer)
				return
			}
			require.NoError(t, err)
			defer analyzer.Close()
			assert.IsType(t, tt.wantType, analyzer)
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	analyzer, err := New(nil)
	assert.Error(t, err)
	assert.Nil(t, analyzer)
}
