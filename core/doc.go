// Package core defines the domain types shared by the tokenizer, the
// lemmatization backends and the pipeline: the backend selection, the raw
// analysis returned by a backend, and the error taxonomy.
package core
