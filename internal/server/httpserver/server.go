// Package httpserver serves the pitlane web pages and the game JSON API.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pitlane/internal/logging"
	"github.com/dmitrijs2005/pitlane/internal/server/config"
	"github.com/dmitrijs2005/pitlane/internal/server/metrics"
	"github.com/dmitrijs2005/pitlane/internal/server/models"
	"github.com/dmitrijs2005/pitlane/internal/server/services"
	"github.com/gorilla/mux"
)

const (
	maxFormBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// UserService is what the handlers need from account management.
type UserService interface {
	Register(ctx context.Context, r services.Registration) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	IssueAccessToken(ctx context.Context, email, password string) (*services.AccessToken, error)
	Authenticate(token string) (int64, error)
}

// HistoryService is what the handlers need from the session history.
type HistoryService interface {
	List(ctx context.Context) ([]models.GameSession, error)
	Record(ctx context.Context, userID *int64, in services.SessionInput) (*models.GameSession, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address      string
	cookieSecure bool
	logger       logging.Logger
	users        UserService
	history      HistoryService
	db           Pinger
	metrics      *metrics.Metrics
	limiter      *ipLimiter
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, hs HistoryService, db Pinger, m *metrics.Metrics) *Server {
	return &Server{
		address:      cfg.EndpointAddrHTTP,
		cookieSecure: cfg.CookieSecure,
		logger:       l.With("module", "http_server"),
		users:        us,
		history:      hs,
		db:           db,
		metrics:      m,
		limiter:      newIPLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst),
	}
}

// Handler returns the routed handler with request id, logging and metrics
// middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.instrument)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegisterPage).Methods(http.MethodGet)
	r.Handle("/auth/login", s.rateLimit(channelForm, http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/perfil", s.requireSession(http.HandlerFunc(s.handleProfile))).Methods(http.MethodGet)
	r.HandleFunc("/historico", s.handleHistory).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/auth/token", s.rateLimit(channelAPI, http.HandlerFunc(s.handleToken))).Methods(http.MethodPost)
	api.Handle("/sessoes", s.requireBearer(http.HandlerFunc(s.handleRecordSession))).Methods(http.MethodPost)
	api.HandleFunc("/historico", s.handleHistoryJSON).Methods(http.MethodGet)

	r.NotFoundHandler = s.requestID(s.instrument(http.NotFoundHandler()))
	r.MethodNotAllowedHandler = s.requestID(s.instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})))

	return r
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve runs the server on an existing listener until ctx is cancelled, then
// drains in-flight requests.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}

func (s *Server) log(ctx context.Context) logging.Logger {
	if id := RequestID(ctx); id != "" {
		return s.logger.With("request_id", id)
	}
	return s.logger
}
