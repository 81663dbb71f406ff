package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/campus-shuttle/internal/app"
	"github.com/example/campus-shuttle/internal/notify"
)

// Server is the presentation bridge: it exposes the session snapshot
// and derived views over HTTP and feeds user intents back into the
// state machine.
type Server struct {
	sess   *app.Session
	wsreg  *notify.WSRegistry
	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(sess *app.Session, wsreg *notify.WSRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{sess: sess, wsreg: wsreg, logger: logger, mux: mux.NewRouter()}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.mux.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/state", s.handleState).Methods("GET")
	api.HandleFunc("/vehicles", s.handleVehicles).Methods("GET")

	api.HandleFunc("/session/signin", s.handleSignIn).Methods("POST")
	api.HandleFunc("/session/find", s.handleFind).Methods("POST")
	api.HandleFunc("/session/back", s.handleBack).Methods("POST")
	api.HandleFunc("/session/navigate", s.handleNavigate).Methods("POST")
	api.HandleFunc("/session/continue", s.handleContinue).Methods("POST")
	api.HandleFunc("/session/query", s.handleQuery).Methods("POST")
	api.HandleFunc("/session/route", s.handleRoute).Methods("POST")
	api.HandleFunc("/session/theme", s.handleTheme).Methods("POST")
	api.HandleFunc("/session/language", s.handleLanguage).Methods("POST")
	api.HandleFunc("/session/onboarding/dismiss", s.handleDismissOnboarding).Methods("POST")

	api.HandleFunc("/vehicles/{vehicle_id}/select", s.handleSelect).Methods("POST")
	api.HandleFunc("/session/waiting/open", s.handleWaitingOpen).Methods("POST")
	api.HandleFunc("/session/waiting/cancel", s.handleWaitingCancel).Methods("POST")
	api.HandleFunc("/session/waiting/notify", s.handleWaitingNotify).Methods("POST")

	api.HandleFunc("/session/pay/open", s.handleOpenPayment).Methods("POST")
	api.HandleFunc("/session/pay/confirm", s.handleConfirmPayment).Methods("POST")

	api.HandleFunc("/profile/topup", s.handleTopUp).Methods("POST")
	api.HandleFunc("/profile/feedback", s.handleFeedback).Methods("POST")

	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/ws/{client_id}", s.handleWS)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
