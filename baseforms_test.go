package baseforms

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend"
	"github.com/joppuyo/relevanssi-finnish-base-forms/backend/mock"
	"github.com/joppuyo/relevanssi-finnish-base-forms/config"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/lemmatize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockFactory(m *mock.MockAnalyzer) AnalyzerFactory {
	return func(cfg *core.BackendConfig) (backend.Analyzer, error) {
		m.Split = cfg.SplitCompoundWords
		return m, nil
	}
}

func TestOpen(t *testing.T) {
	t.Run("defaults without cache", func(t *testing.T) {
		m := mock.NewFinnishMockAnalyzer()
		svc, err := Open(nil, WithAnalyzerFactory(mockFactory(m)))
		require.NoError(t, err)
		defer svc.Close()

		assert.NotNil(t, svc.Lemmatizer())
		assert.Nil(t, svc.cache)
		assert.Nil(t, svc.cacheBackend)
		assert.Equal(t, core.APITypeBinary, svc.Settings().APIType)
	})

	t.Run("with cache", func(t *testing.T) {
		m := mock.NewFinnishMockAnalyzer()
		settings := config.NewSettings(config.WithCacheDir(filepath.Join(t.TempDir(), "cache")))
		svc, err := Open(settings, WithAnalyzerFactory(mockFactory(m)))
		require.NoError(t, err)
		defer svc.Close()

		assert.NotNil(t, svc.cache)
		assert.NotNil(t, svc.cacheBackend)
	})

	t.Run("invalid settings", func(t *testing.T) {
		settings := config.NewSettings(config.WithAPIType(core.APITypeWebAPI))
		svc, err := Open(settings)
		assert.ErrorIs(t, err, core.ErrEndpointRequired)
		assert.Nil(t, svc)
	})

	t.Run("factory error", func(t *testing.T) {
		svc, err := Open(nil, WithAnalyzerFactory(func(cfg *core.BackendConfig) (backend.Analyzer, error) {
			return nil, errors.New("no backend")
		}))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("cache dir is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		m := mock.NewMockAnalyzer()
		svc, err := Open(config.NewSettings(config.WithCacheDir(path)), WithAnalyzerFactory(mockFactory(m)))
		assert.Error(t, err)
		assert.Nil(t, svc)
		assert.True(t, m.Closed())
	})
}

func TestService_Lemmatize(t *testing.T) {
	m := mock.NewFinnishMockAnalyzer()
	settings := config.NewSettings(
		config.WithSplitCompoundWords(true),
		config.WithCacheDir(filepath.Join(t.TempDir(), "cache")),
	)
	svc, err := Open(settings, WithAnalyzerFactory(mockFactory(m)))
	require.NoError(t, err)
	defer svc.Close()
	ctx := context.Background()

	for range 2 {
		got, err := svc.Lemmatizer().Lemmatize(ctx, "kotikoirat")
		require.NoError(t, err)
		assert.Equal(t, "kotikoirat kotikoira koti koira", got)
	}
	assert.Equal(t, 1, m.CallCount())

	require.NoError(t, svc.Purge(ctx))
	_, err = svc.Lemmatizer().Lemmatize(ctx, "kotikoirat")
	require.NoError(t, err)
	assert.Equal(t, 2, m.CallCount())
}

func TestService_Purge_Disabled(t *testing.T) {
	svc, err := Open(nil, WithAnalyzerFactory(mockFactory(mock.NewMockAnalyzer())))
	require.NoError(t, err)
	defer svc.Close()

	assert.ErrorIs(t, svc.Purge(context.Background()), ErrCacheDisabled)
}

func TestService_Verify(t *testing.T) {
	m := mock.NewFinnishMockAnalyzer()
	svc, err := Open(nil, WithAnalyzerFactory(mockFactory(m)))
	require.NoError(t, err)
	defer svc.Close()

	assert.NoError(t, svc.Verify(context.Background()))

	m.AnalyzeFunc = func(ctx context.Context, tokens []string) (*core.Analysis, error) {
		return &core.Analysis{BaseForms: []string{"käde"}}, nil
	}
	assert.ErrorIs(t, svc.Verify(context.Background()), lemmatize.ErrVerificationFailed)
}

func TestService_VerifySettings(t *testing.T) {
	var built []*core.BackendConfig
	factory := func(cfg *core.BackendConfig) (backend.Analyzer, error) {
		built = append(built, cfg)
		if cfg.APIType == core.APITypeWebAPI {
			return nil, core.ErrNetworkFailure
		}
		return mock.NewFinnishMockAnalyzer(), nil
	}
	svc, err := Open(nil, WithAnalyzerFactory(factory))
	require.NoError(t, err)
	defer svc.Close()
	ctx := context.Background()

	err = svc.VerifySettings(ctx, config.NewSettings(config.WithAPIType(core.APITypeCommandLine)))
	assert.NoError(t, err)
	assert.Equal(t, core.APITypeCommandLine, built[len(built)-1].APIType)

	err = svc.VerifySettings(ctx, config.NewSettings(config.WithAPIType(core.APITypeWebAPI)))
	assert.ErrorIs(t, err, lemmatize.ErrVerificationFailed)

	err = svc.VerifySettings(ctx, config.NewSettings(
		config.WithAPIType(core.APITypeWebAPI),
		config.WithAPIURL("http://voikko.invalid"),
	))
	assert.ErrorIs(t, err, lemmatize.ErrVerificationFailed)
}

func TestService_Close(t *testing.T) {
	m := mock.NewMockAnalyzer()
	settings := config.NewSettings(config.WithCacheDir(t.TempDir()))
	svc, err := Open(settings, WithAnalyzerFactory(mockFactory(m)))
	require.NoError(t, err)

	require.NoError(t, svc.Close())
	assert.True(t, m.Closed())
	assert.True(t, svc.cacheBackend.IsClosed())
}
