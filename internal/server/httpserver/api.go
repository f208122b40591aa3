package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pitlane/internal/common"
	"github.com/dmitrijs2005/pitlane/internal/server/metrics"
	"github.com/dmitrijs2005/pitlane/internal/server/services"
)

const tokenTypeBearer = "Bearer"

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.RecordLogin(channelAPI, metrics.OutcomeInvalid)
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	tok, err := s.users.IssueAccessToken(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.RecordLogin(channelAPI, metrics.OutcomeFailure)
			writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.log(ctx).Error(ctx, "issuing token failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.RecordLogin(channelAPI, metrics.OutcomeSuccess)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: tok.Token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(tok.ExpiresIn.Seconds()),
	})
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		unauthorized(w, "missing token")
		return
	}

	var in services.SessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	created, err := s.history.Record(ctx, &userID, in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: verr.Fields})
			return
		}
		s.log(ctx).Error(ctx, "recording session failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.RecordGameSession()
	s.log(ctx).Info(ctx, "game session recorded", "session_id", created.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleHistoryJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := s.history.List(ctx)
	if err != nil {
		s.log(ctx).Error(ctx, "listing sessions failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sessionList(sessions))
}
