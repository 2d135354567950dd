// Package mock provides a test double for backend.Analyzer.
//
// MockAnalyzer answers from an in-memory dictionary of token → base forms
// (and token → WORDBASES annotations), so pipeline and server tests run
// without voikkospell or a remote service.
//
// # Usage in Tests
//
//	analyzer := mock.NewMockAnalyzer().
//	    WithBaseForms("käden", "käsi").
//	    WithWordBases("käden", "+käde(käsi)")
//
//	// Custom behavior injection
//	analyzer.AnalyzeFunc = func(ctx context.Context, tokens []string) (*core.Analysis, error) {
//	    return nil, core.ErrExternalToolFailure
//	}
//
//	// Check call counts
//	count := analyzer.CallCount()
package mock
