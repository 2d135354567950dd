// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/lemmatize"
)

// maxBodyBytes bounds request bodies. Post content can be large.
const maxBodyBytes = 8 << 20

type contentRequest struct {
	Content string `json:"content"`
}

type contentResponse struct {
	Content string `json:"content"`
}

type fieldsRequest struct {
	Values []string `json:"values"`
}

type fieldsResponse struct {
	Values []string `json:"values"`
}

type queryRequest struct {
	Q string `json:"q"`
}

type queryResponse struct {
	Q string `json:"q"`
}

type termsRequest struct {
	Terms []string `json:"terms"`
}

type termsResponse struct {
	Terms    []string `json:"terms"`
	MaxTerms int      `json:"max_terms,omitempty"`
	AndLogic bool     `json:"and_logic"`
}

type verifyRequest struct {
	APIType string `json:"api_type"`
	APIRoot string `json:"api_root"`
}

type settingsResponse struct {
	APIType              string `json:"api_type"`
	APIURL               string `json:"api_url"`
	SplitCompoundWords   bool   `json:"split_compound_words"`
	LemmatizeSearchQuery bool   `json:"lemmatize_search_query"`
	Enabled              bool   `json:"enabled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.settings.Enabled() {
		s.writeJSON(w, http.StatusOK, contentResponse{Content: req.Content})
		return
	}

	content, err := s.lemmatizer.Lemmatize(r.Context(), req.Content)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contentResponse{Content: content})
}

func (s *Server) handleCustomField(w http.ResponseWriter, r *http.Request) {
	var req fieldsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Values == nil {
		req.Values = []string{}
	}
	if !s.settings.Enabled() {
		s.writeJSON(w, http.StatusOK, fieldsResponse{Values: req.Values})
		return
	}

	values, err := s.lemmatizer.LemmatizeFields(r.Context(), req.Values)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fieldsResponse{Values: values})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.queryEnabled() {
		s.writeJSON(w, http.StatusOK, queryResponse{Q: req.Q})
		return
	}

	q, err := s.lemmatizer.LemmatizeQuery(r.Context(), req.Q)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, queryResponse{Q: q})
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	var req termsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Terms == nil {
		req.Terms = []string{}
	}
	if !s.queryEnabled() {
		s.writeJSON(w, http.StatusOK, termsResponse{Terms: req.Terms, AndLogic: true})
		return
	}

	terms, err := s.lemmatizer.LemmatizeTerms(r.Context(), req.Terms)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	// Base forms repeat the query words, so every term must be optional
	s.writeJSON(w, http.StatusOK, termsResponse{
		Terms:    terms,
		MaxTerms: lemmatize.MaxSearchTerms(s.settings.SplitCompoundWords),
		AndLogic: false,
	})
}

// handleVerify answers 200 with an empty body when a backend built from
// the submitted api_type and api_root maps the reference word correctly,
// and 500 with an empty body otherwise.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	req, err := decodeVerifyRequest(w, r)
	if err != nil {
		s.logger.Debug("invalid verify request", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	settings := s.settings.Clone()
	apiType, err := core.ParseAPIType(req.APIType)
	if err != nil {
		s.logger.Debug("invalid api type", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	settings.APIType = apiType
	if apiType == core.APITypeWebAPI {
		settings.APIURL = req.APIRoot
	}

	if err := s.verifier.VerifySettings(r.Context(), settings); err != nil {
		s.logger.Info("verification failed", "api_type", apiType)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, settingsResponse{
		APIType:              s.settings.APIType.String(),
		APIURL:               s.settings.APIURL,
		SplitCompoundWords:   s.settings.SplitCompoundWords,
		LemmatizeSearchQuery: s.settings.LemmatizeSearchQuery,
		Enabled:              s.settings.Enabled(),
	})
}

func (s *Server) queryEnabled() bool {
	return s.settings.Enabled() && s.settings.LemmatizeSearchQuery
}

// decodeVerifyRequest accepts a JSON body or form values, the way the
// admin page posts them.
func decodeVerifyRequest(w http.ResponseWriter, r *http.Request) (*verifyRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &verifyRequest{
		APIType: r.PostForm.Get("api_type"),
		APIRoot: r.PostForm.Get("api_root"),
	}, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	s.logger.Error("lemmatization failed", "err", err)

	msg := "lemmatization failed"
	switch {
	case errors.Is(err, core.ErrExternalToolFailure):
		msg = core.ErrExternalToolFailure.Error()
	case errors.Is(err, core.ErrPermissionRepairFailure):
		msg = core.ErrPermissionRepairFailure.Error()
	case errors.Is(err, core.ErrNetworkFailure):
		msg = core.ErrNetworkFailure.Error()
	case errors.Is(err, core.ErrMalformedResponse):
		msg = core.ErrMalformedResponse.Error()
	}
	s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode error", "err", err)
	}
}
