package notify

import (
	"log/slog"

	"github.com/example/campus-shuttle/internal/models"
)

// Notifier lets drivers know a rider is waiting. There is no real
// transport behind this; implementations simulate one.
type Notifier interface {
	Waiting(n models.WaitingNotice) error
}

// LogNotifier simulates notifying a driver backend by logging the
// notice.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l *LogNotifier) Waiting(n models.WaitingNotice) error {
	if l.Logger != nil {
		l.Logger.Info("drivers notified (mock)", "vehicle", n.VehicleID, "route", n.Route, "rider", n.RiderID)
	}
	return nil
}
