package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

// MockAnalyzer is a test double for backend.Analyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, answers from the dictionaries.
	AnalyzeFunc func(ctx context.Context, tokens []string) (*core.Analysis, error)

	// Split controls whether WORDBASES annotations are reported.
	Split bool

	mu        sync.Mutex
	baseForms map[string][]string
	wordBases map[string][]string
	calls     [][]string
	closed    bool
}

// NewMockAnalyzer creates a mock analyzer with an empty dictionary.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{
		baseForms: make(map[string][]string),
		wordBases: make(map[string][]string),
	}
}

// NewFinnishMockAnalyzer returns a mock that knows a handful of Finnish
// words, including the verification token "käden".
func NewFinnishMockAnalyzer() *MockAnalyzer {
	return NewMockAnalyzer().
		WithBaseForms("käden", "käsi").
		WithWordBases("käden", "+käde(käsi)").
		WithBaseForms("kädet", "käsi").
		WithBaseForms("Koira", "koira").
		WithBaseForms("koirat", "koira").
		WithBaseForms("juoksee", "juosta").
		WithBaseForms("nopeasti", "nopea").
		WithBaseForms("kotikoirat", "kotikoira").
		WithWordBases("kotikoirat", "+koti(koti)+koira(koira)").
		WithBaseForms("talossa", "talo").
		WithWordBases("talossa", "+ta=lo(ta=lo)")
}

// WithBaseForms registers base forms reported for token.
func (m *MockAnalyzer) WithBaseForms(token string, forms ...string) *MockAnalyzer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseForms[token] = append(m.baseForms[token], forms...)
	return m
}

// WithWordBases registers WORDBASES annotations reported for token.
func (m *MockAnalyzer) WithWordBases(token string, annotations ...string) *MockAnalyzer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wordBases[token] = append(m.wordBases[token], annotations...)
	return m
}

// Analyze answers from the dictionaries unless AnalyzeFunc is set.
func (m *MockAnalyzer) Analyze(ctx context.Context, tokens []string) (*core.Analysis, error) {
	m.mu.Lock()
	m.calls = append(m.calls, slices.Clone(tokens))
	fn := m.AnalyzeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, tokens)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	analysis := &core.Analysis{}
	for _, token := range tokens {
		analysis.BaseForms = append(analysis.BaseForms, m.baseForms[token]...)
		if m.Split {
			analysis.CompoundAnnotations = append(analysis.CompoundAnnotations, m.wordBases[token]...)
		}
	}
	return analysis, nil
}

// Close marks the mock as closed.
func (m *MockAnalyzer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// CallCount returns the number of Analyze calls.
func (m *MockAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns the token batches passed to Analyze.
func (m *MockAnalyzer) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Closed reports whether Close was called.
func (m *MockAnalyzer) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Reset clears recorded calls and the injected function.
func (m *MockAnalyzer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.AnalyzeFunc = nil
}
