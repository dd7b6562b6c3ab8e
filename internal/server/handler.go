// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     server
// Description: REST handlers for health and tokenization
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/pkg/core/health"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// TokenizeRequest is the body of POST /v1/tokenize and the WebSocket
// tokenize payload
type TokenizeRequest struct {
	CommandLine       string `json:"command_line"`
	ExtendedArguments bool   `json:"extended_arguments"`
	DiscardFirstToken bool   `json:"discard_first_token"`
}

// Options returns the tokenizer options of the request
func (r TokenizeRequest) Options() cmdline.Options {
	return cmdline.Options{
		ExtendedArguments: r.ExtendedArguments,
		DiscardFirstToken: r.DiscardFirstToken,
	}
}

// TokenizeResponse is the result of one tokenization
type TokenizeResponse struct {
	RequestID string            `json:"request_id"`
	HistoryID string            `json:"history_id,omitempty"`
	Arguments cmdline.Arguments `json:"arguments"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	RequestID string                 `json:"request_id,omitempty"`
	Code      string                 `json:"code"`
	Error     string                 `json:"error"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, requestID)
	logger := s.logger.WithRequestID(requestID)

	var req TokenizeRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		e := mdwerror.Wrap(err, "invalid request body").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("server.Tokenize").
			WithRequestID(requestID)
		logger.WarnWithErr("Rejected tokenize request", err)
		writeError(w, e)
		return
	}

	resp := s.tokenize(r.Context(), requestID, store.SourceHTTP, req)
	logger.Debug("Tokenized command line", "arguments", len(resp.Arguments))
	writeJSON(w, http.StatusOK, resp)
}

// tokenize parses a request and records it when history is enabled.
// A failed history write does not fail the request.
func (s *Server) tokenize(ctx context.Context, requestID string, source store.Source, req TokenizeRequest) *TokenizeResponse {
	opts := req.Options()
	args := s.results.GetOrSet(cacheKey(req.CommandLine, opts), func() cmdline.Arguments {
		return cmdline.Parse(req.CommandLine, opts)
	})

	resp := &TokenizeResponse{
		RequestID: requestID,
		Arguments: args,
	}

	entry, err := s.recorder.Record(ctx, source, req.CommandLine, opts, args)
	if err != nil {
		s.logger.WithRequestID(requestID).LogError(err)
	}
	if entry != nil {
		resp.HistoryID = entry.ID
	}

	return resp
}

// cacheKey encodes the options ahead of the raw line
func cacheKey(line string, opts cmdline.Options) string {
	return fmt.Sprintf("%t:%t:%s", opts.ExtendedArguments, opts.DiscardFirstToken, line)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error code to an HTTP status
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mdwerror.GetCode(err).HTTPStatus(), errorResponse(err))
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Code:  string(mdwerror.GetCode(err)),
		Error: err.Error(),
	}
	if e, ok := err.(*mdwerror.Error); ok {
		resp.RequestID = e.RequestID()
		if details := e.Details(); len(details) > 0 {
			resp.Details = details
		}
	}
	return resp
}
