package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pitlane/internal/common"
	"github.com/dmitrijs2005/pitlane/internal/server/metrics"
	"github.com/dmitrijs2005/pitlane/internal/server/models"
	"github.com/dmitrijs2005/pitlane/internal/server/services"
)

const (
	channelForm = "form"
	channelAPI  = "api"
)

const loginFailedMessage = "E-mail ou senha inválidos."

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/historico", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", loginView{})
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", registerView{})
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := parseForm(w, r); err != nil {
		s.metrics.RecordLogin(channelForm, metrics.OutcomeInvalid)
		s.render(w, r, http.StatusUnprocessableEntity, "login", loginView{Error: loginFailedMessage})
		return
	}

	email := r.PostFormValue(services.FieldEmail)
	password := r.PostFormValue(services.FieldPassword)

	user, err := s.users.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.RecordLogin(channelForm, metrics.OutcomeFailure)
			s.render(w, r, http.StatusUnprocessableEntity, "login", loginView{Email: email, Error: loginFailedMessage})
			return
		}
		s.log(ctx).Error(ctx, "login failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordLogin(channelForm, metrics.OutcomeSuccess)
	s.log(ctx).Info(ctx, "user logged in", "user_id", user.ID)

	writeSessionCookie(w, user.ID, s.cookieSecure)
	http.Redirect(w, r, "/perfil", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := parseForm(w, r); err != nil {
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		s.render(w, r, http.StatusUnprocessableEntity, "register", registerView{})
		return
	}

	in := services.Registration{
		Name:     r.PostFormValue(services.FieldName),
		Email:    r.PostFormValue(services.FieldEmail),
		Password: r.PostFormValue(services.FieldPassword),
	}

	user, err := s.users.Register(ctx, in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			s.metrics.RecordRegistration(metrics.OutcomeInvalid)
			s.render(w, r, http.StatusUnprocessableEntity, "register", registerView{
				Name:   in.Name,
				Email:  in.Email,
				Errors: verr.Fields,
			})
			return
		}
		s.metrics.RecordRegistration(metrics.OutcomeFailure)
		s.log(ctx).Error(ctx, "registration failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordRegistration(metrics.OutcomeSuccess)
	s.log(ctx).Info(ctx, "user registered", "user_id", user.ID)

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, s.cookieSecure)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		s.redirectToLogin(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "perfil", profileView{User: user})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := s.history.List(ctx)
	if err != nil {
		s.log(ctx).Error(ctx, "listing sessions failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.render(w, r, http.StatusOK, "historico", historyView{Sessions: sessions})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.db.PingContext(ctx); err != nil {
		s.log(r.Context()).Warn(r.Context(), "health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

// sessionList never encodes as JSON null.
func sessionList(in []models.GameSession) []models.GameSession {
	if in == nil {
		return []models.GameSession{}
	}
	return in
}
