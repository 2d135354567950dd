// Package text extracts the words handed to a lemmatization backend.
//
// It provides three pure functions:
//   - StripTags removes HTML markup from indexable content
//   - Tokenize splits text into word tokens on Unicode class boundaries
//   - ParseCompoundParts extracts sub-words from voikko WORDBASES annotations
//
// None of the functions normalize case or diacritics; that is left to the
// backend.
package text
