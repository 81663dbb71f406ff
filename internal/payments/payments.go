package payments

import (
	"context"
	"log/slog"
)

// Charger settles a fare through an external processor. The session
// only reaches for it on the degraded low-balance path, and the call
// is best-effort: boarding proceeds regardless of the outcome.
type Charger interface {
	Charge(ctx context.Context, amount int64, currency, riderID string) error
}

// MockCharger pretends an external UPI charge succeeded.
type MockCharger struct {
	Logger *slog.Logger
}

func (m *MockCharger) Charge(ctx context.Context, amount int64, currency, riderID string) error {
	if m.Logger != nil {
		m.Logger.Info("mock external charge", "amount", amount, "currency", currency, "rider", riderID)
	}
	return nil
}
