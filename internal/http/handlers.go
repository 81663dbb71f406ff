package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/example/campus-shuttle/internal/app"
	"github.com/example/campus-shuttle/internal/models"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.sess.Snapshot())
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.sess.Vehicles())
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.respond(w, s.sess.SignIn(in.Identity, in.Password))
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.sess.FindVehicles())
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.sess.Back())
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.respond(w, s.sess.Navigate(app.NavTarget(in.Target)))
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.sess.Continue())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["vehicle_id"]
	s.respond(w, s.sess.SelectVehicle(id))
}

func (s *Server) handleWaitingOpen(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.sess.OpenWaiting())
}

func (s *Server) handleWaitingCancel(w http.ResponseWriter, r *http.Request) {
	s.sess.CancelWaiting()
	s.respond(w, nil)
}

func (s *Server) handleWaitingNotify(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.sess.NotifyDrivers())
}

func (s *Server) handleOpenPayment(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.sess.OpenPayment())
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	method := models.PaymentMethod(strings.TrimSpace(in.Method))
	if method == "" {
		method = models.PayWalletOrUpi
	}
	s.respond(w, s.sess.ConfirmPayment(r.Context(), method))
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.sess.SetQuery(in.Query)
	s.respond(w, nil)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Route string `json:"route"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.sess.SetRoute(in.Route)
	s.respond(w, nil)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.sess.SetTheme(in.Theme)
	s.respond(w, nil)
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.sess.SetLanguage(in.Language)
	s.respond(w, nil)
}

func (s *Server) handleDismissOnboarding(w http.ResponseWriter, r *http.Request) {
	s.sess.DismissOnboarding()
	s.respond(w, nil)
}

func (s *Server) handleTopUp(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.sess.AddFunds(in.Amount)
	s.respond(w, nil)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.sess.SubmitFeedback(in.Text, in.Rating)
	s.respond(w, nil)
}

var upgrader = websocket.Upgrader{}

// handleWS streams live tracking positions to a presentation client.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.wsreg == nil {
		http.Error(w, "streaming disabled", 404)
		return
	}
	id := mux.Vars(r)["client_id"]
	if id == "" {
		id = newID()
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", 400)
		return
	}
	s.wsreg.Add(id, conn)
}

// respond maps session errors onto HTTP statuses and returns the fresh
// snapshot on success, so clients re-render from one round trip.
func (s *Server) respond(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, s.sess.Snapshot())
	case errors.Is(err, app.ErrUnknownVehicle):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, app.ErrNoSeats), errors.Is(err, app.ErrBadTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
