package app

import (
	"context"
	"strings"
	"time"

	"github.com/example/campus-shuttle/internal/models"
	"github.com/example/campus-shuttle/internal/observability"
)

// LowBalanceNotice is surfaced when the wallet cannot cover the fare
// and the flow falls through to the simulated external payment.
const LowBalanceNotice = "Low wallet — simulating external payment (mock)."

// OpenPayment moves from the detail screen to payment. Refused, with
// no screen change, when the selected vehicle has no seats left.
func (s *Session) OpenPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenEvDetails {
		return ErrBadTransition
	}
	i, ok := s.vehicleByID(s.selectedID)
	if !ok {
		return ErrUnknownVehicle
	}
	if s.vehicles[i].Seats <= 0 {
		observability.SeatRefusalsTotal.Inc()
		return ErrNoSeats
	}
	s.screen = ScreenPay
	return nil
}

// ConfirmPayment settles the fare and executes the boarding
// operation: seat decrement (floored at zero), status recompute, ride
// count increment, transition to Confirmation. The seat precondition
// is re-checked here as defense in depth; on refusal the screen drops
// back to the detail view.
func (s *Session) ConfirmPayment(ctx context.Context, method models.PaymentMethod) error {
	s.mu.Lock()
	if s.screen != ScreenPay {
		s.mu.Unlock()
		return ErrBadTransition
	}
	i, ok := s.vehicleByID(s.selectedID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownVehicle
	}
	if s.vehicles[i].Seats <= 0 {
		observability.SeatRefusalsTotal.Inc()
		s.screen = ScreenEvDetails
		s.mu.Unlock()
		return ErrNoSeats
	}

	var externalCharge bool
	switch method {
	case models.PayWalletOrUpi:
		if s.profile.Wallet >= s.fare {
			s.profile.Wallet -= s.fare
			s.persistWallet()
		} else {
			// Degraded mock path: no deduction, informational notice,
			// boarding proceeds regardless.
			s.notice = LowBalanceNotice
			externalCharge = true
		}
	case models.PayCash:
		// settled with the driver; wallet untouched
	default:
		s.mu.Unlock()
		return ErrBadTransition
	}

	s.boardLocked(i)
	fare := s.fare
	rider := s.profile.Identity
	charger := s.charger
	s.mu.Unlock()

	if externalCharge && charger != nil {
		// best-effort simulation of an external processor
		cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := charger.Charge(cctx, int64(fare), "inr", rider); err != nil {
			s.logger.Warn("external charge failed", "rider", rider, "error", err)
		}
	}
	return nil
}

// boardLocked decrements the seat count (never below zero), recomputes
// the status label, bumps the ride count and lands on Confirmation.
// Caller holds the lock.
func (s *Session) boardLocked(i int) {
	v := &s.vehicles[i]
	if v.Seats > 0 {
		v.Seats--
	}
	v.Status = models.StatusForSeats(v.Seats)
	s.persistVehicles()

	s.profile.Rides++
	s.persistRides()

	observability.BoardingsTotal.Inc()
	s.logger.Info("boarding confirmed", "vehicle", v.ID, "seats_left", v.Seats, "rides", s.profile.Rides)
	s.screen = ScreenConfirmation
}

// AddFunds tops the wallet up; non-positive amounts are ignored.
func (s *Session) AddFunds(amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Wallet += amount
	s.persistWallet()
}

// SubmitFeedback appends a feedback entry (newest first) and a rating.
// Empty text is silently ignored; ratings outside 1..5 are dropped.
func (s *Session) SubmitFeedback(text string, rating int) {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	if text != "" {
		entry := models.Feedback{ID: newID(), Text: text, Date: time.Now()}
		s.profile.Feedbacks = append([]models.Feedback{entry}, s.profile.Feedbacks...)
		s.persistFeedbacks()
	}
	if rating >= 1 && rating <= 5 {
		s.profile.Ratings = append(s.profile.Ratings, rating)
		s.persistRatings()
	}
}
