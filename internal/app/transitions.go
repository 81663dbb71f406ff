package app

import (
	"time"

	"github.com/example/campus-shuttle/internal/models"
	"github.com/example/campus-shuttle/internal/observability"
	"github.com/example/campus-shuttle/internal/sim"
	"github.com/example/campus-shuttle/internal/store"
)

// setScreen performs the actual screen change. Entering Home always
// re-triggers the transient list-loading flag, not only the first
// time. Caller holds the lock.
func (s *Session) setScreen(to Screen) {
	s.screen = to
	if to == ScreenHome {
		s.startListLoadLocked()
	}
}

// startListLoadLocked raises the skeleton-loading flag and arms its
// auto-clear. A newer trigger supersedes an older one via the
// generation counter.
func (s *Session) startListLoadLocked() {
	s.loadingList = true
	s.loadGen++
	gen := s.loadGen
	time.AfterFunc(s.listLoadDelay, func() {
		s.mu.Lock()
		if s.loadGen == gen {
			s.loadingList = false
		}
		s.mu.Unlock()
	})
}

// SignIn accepts any credentials (they are unvalidated and the
// password is discarded) and lands on Home.
func (s *Session) SignIn(identity, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenSignIn {
		return ErrBadTransition
	}
	s.profile.Identity = identity
	s.setScreen(ScreenHome)
	return nil
}

// FindVehicles moves from Home to the EV list, raising the transient
// loading flag on the way.
func (s *Session) FindVehicles() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenHome {
		return ErrBadTransition
	}
	s.screen = ScreenEvList
	s.startListLoadLocked()
	return nil
}

// SelectVehicle opens the detail screen for a vehicle and restarts
// live tracking from its static position. Any tracker for a previous
// selection is stopped first; stale steps from it are discarded by the
// generation check.
func (s *Session) SelectVehicle(id string) error {
	s.mu.Lock()
	if s.screen != ScreenHome && s.screen != ScreenEvList {
		s.mu.Unlock()
		return ErrBadTransition
	}
	i, ok := s.vehicleByID(id)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownVehicle
	}
	prior := s.tracker
	s.tracker = nil
	s.trackGen++
	gen := s.trackGen
	s.selectedID = id
	start := s.vehicles[i].Coords
	s.livePos = nil
	s.screen = ScreenEvDetails
	s.startListLoadLocked()
	s.mu.Unlock()

	if prior != nil {
		prior.Stop()
	}

	t := sim.Start(start, sim.Config{Interval: s.trackInterval, Steps: s.trackSteps}, func(pos models.Coord, step int) {
		s.mu.Lock()
		if s.trackGen != gen {
			s.mu.Unlock()
			return
		}
		p := pos
		s.livePos = &p
		s.mu.Unlock()
		observability.SimStepsTotal.Inc()
		if s.onPosition != nil {
			s.onPosition(models.PositionEvent{VehicleID: id, Pos: pos, Step: step, At: time.Now()})
		}
	})

	s.mu.Lock()
	if s.trackGen == gen {
		s.tracker = t
		s.mu.Unlock()
		return nil
	}
	// selection changed again while we were starting; ours is stale
	s.mu.Unlock()
	t.Stop()
	return nil
}

// clearSelectionLocked drops the selected vehicle and its live
// position. Caller holds the lock; returns the tracker to stop once
// the lock is released.
func (s *Session) clearSelectionLocked() *sim.Tracker {
	t := s.tracker
	s.tracker = nil
	s.trackGen++
	s.selectedID = ""
	s.livePos = nil
	return t
}

// Back walks one screen up: EvDetails→EvList, Pay→EvDetails,
// EvList→Home. Selection and tracker are left alone; only a new
// selection or the Track nav replaces them.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.screen {
	case ScreenEvDetails:
		s.screen = ScreenEvList
	case ScreenPay:
		s.screen = ScreenEvDetails
	case ScreenEvList:
		s.setScreen(ScreenHome)
	default:
		return ErrBadTransition
	}
	return nil
}

// Navigate serves the bottom nav from Home, EvList and Profile. Track
// lands on the EV list with the selection (and its tracker) cleared.
func (s *Session) Navigate(target NavTarget) error {
	s.mu.Lock()
	if s.screen != ScreenHome && s.screen != ScreenEvList && s.screen != ScreenProfile {
		s.mu.Unlock()
		return ErrBadTransition
	}
	var stop *sim.Tracker
	var err error
	switch target {
	case NavHome:
		s.setScreen(ScreenHome)
	case NavTrack:
		stop = s.clearSelectionLocked()
		s.screen = ScreenEvList
	case NavProfile:
		s.screen = ScreenProfile
	default:
		err = ErrBadTransition
	}
	s.mu.Unlock()
	if stop != nil {
		stop.Stop()
	}
	return err
}

// Continue leaves the confirmation screen for the profile.
func (s *Session) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenConfirmation {
		return ErrBadTransition
	}
	s.notice = ""
	s.screen = ScreenProfile
	return nil
}

// OpenWaiting and CancelWaiting toggle the waiting-modal flag on the
// detail screen.
func (s *Session) OpenWaiting() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenEvDetails {
		return ErrBadTransition
	}
	s.waitingModal = true
	return nil
}

func (s *Session) CancelWaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waitingModal = false
}

// NotifyDrivers closes the waiting modal and fires the (simulated)
// driver notification. Notifier failures are logged, never surfaced.
func (s *Session) NotifyDrivers() error {
	s.mu.Lock()
	if s.screen != ScreenEvDetails {
		s.mu.Unlock()
		return ErrBadTransition
	}
	s.waitingModal = false
	var notice models.WaitingNotice
	if i, ok := s.vehicleByID(s.selectedID); ok {
		v := s.vehicles[i]
		notice = models.WaitingNotice{VehicleID: v.ID, Route: v.Route, RiderID: s.profile.Identity, ETA: v.ETA}
	}
	n := s.notifier
	s.mu.Unlock()

	if n != nil && notice.VehicleID != "" {
		if err := n.Waiting(notice); err != nil {
			s.logger.Warn("driver notification failed", "vehicle", notice.VehicleID, "error", err)
		}
	}
	return nil
}

// SetQuery updates the free-text search; the filtered list is derived
// on read.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// SetRoute picks one of the offered route tiles.
func (s *Session) SetRoute(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedRoute = route
}

// SetTheme persists the light/dark preference; anything else is
// ignored.
func (s *Session) SetTheme(theme string) {
	if theme != "light" && theme != "dark" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.persist(store.KeyTheme, []byte(theme))
}

// SetLanguage switches between the supported languages; anything else
// is ignored. Session-scoped, not persisted.
func (s *Session) SetLanguage(lang string) {
	if lang != "English" && lang != "Hindi" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Language = lang
}

// DismissOnboarding hides the one-time overlay and records that it was
// seen so it never reappears across restarts.
func (s *Session) DismissOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.showOnboarding {
		return
	}
	s.showOnboarding = false
	s.persist(store.KeyOnboard, []byte("1"))
}
