package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/campus-shuttle/internal/app"
	"github.com/example/campus-shuttle/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	sess := app.New(app.Options{
		Store:         store.NewMemoryStore(),
		TrackInterval: 2 * time.Millisecond,
		TrackSteps:    2,
		ListLoadDelay: 10 * time.Millisecond,
	})
	t.Cleanup(sess.Close)
	return NewServer(sess, nil, nil)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestSignInAndState(t *testing.T) {
	s := newTestServer(t)
	if w := post(t, s, "/api/v1/session/signin", `{"identity":"21B0001","password":"x"}`); w.Code != 200 {
		t.Fatalf("signin status %d: %s", w.Code, w.Body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("state status %d", w.Code)
	}
	var snap app.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Screen != "home" || snap.Identity != "21B0001" {
		t.Fatalf("unexpected snapshot: screen=%s identity=%s", snap.Screen, snap.Identity)
	}
	if len(snap.Vehicles) != 3 {
		t.Fatalf("expected seeded fleet in snapshot, got %d", len(snap.Vehicles))
	}
}

func TestIntentErrorsMapToStatuses(t *testing.T) {
	s := newTestServer(t)

	// payment before sign-in: event not valid for this screen
	if w := post(t, s, "/api/v1/session/pay/open", ``); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	_ = post(t, s, "/api/v1/session/signin", `{"identity":"a","password":"b"}`)
	if w := post(t, s, "/api/v1/vehicles/ev-99/select", ``); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown vehicle, got %d", w.Code)
	}
}

func TestFullBoardingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	_ = post(t, s, "/api/v1/session/signin", `{"identity":"a","password":"b"}`)
	_ = post(t, s, "/api/v1/session/find", ``)
	if w := post(t, s, "/api/v1/vehicles/ev-01/select", ``); w.Code != 200 {
		t.Fatalf("select: %d %s", w.Code, w.Body)
	}
	if w := post(t, s, "/api/v1/session/pay/open", ``); w.Code != 200 {
		t.Fatalf("pay open: %d %s", w.Code, w.Body)
	}
	w := post(t, s, "/api/v1/session/pay/confirm", `{"method":"wallet_or_upi"}`)
	if w.Code != 200 {
		t.Fatalf("pay confirm: %d %s", w.Code, w.Body)
	}
	var snap app.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Screen != "confirmation" || snap.Wallet != 130 || snap.Rides != 4 {
		t.Fatalf("unexpected post-boarding snapshot: %+v", snap)
	}
}

func TestFullVehicleRefusedWith409(t *testing.T) {
	s := newTestServer(t)
	_ = post(t, s, "/api/v1/session/signin", `{"identity":"a","password":"b"}`)
	_ = post(t, s, "/api/v1/session/find", ``)
	_ = post(t, s, "/api/v1/vehicles/ev-03/select", ``) // seeded full
	if w := post(t, s, "/api/v1/session/pay/open", ``); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for full vehicle, got %d", w.Code)
	}
}
