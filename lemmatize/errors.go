package lemmatize

import "errors"

var (
	// ErrAnalyzerRequired is returned when a Lemmatizer is built without an analyzer.
	ErrAnalyzerRequired = errors.New("analyzer required")

	// ErrVerificationFailed is returned when a backend does not map the
	// reference word to its expected base form.
	ErrVerificationFailed = errors.New("verification failed")
)
