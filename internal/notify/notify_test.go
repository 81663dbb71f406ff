package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/campus-shuttle/internal/models"
)

func TestPushNotifierPostsNotice(t *testing.T) {
	var got struct {
		Notice models.WaitingNotice `json:"notice"`
	}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(204)
	}))
	defer srv.Close()

	p := NewPushNotifier(srv.URL, "k3y")
	err := p.Waiting(models.WaitingNotice{VehicleID: "ev-01", Route: "Hostel 6 to Main gate", RiderID: "21B0001"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Notice.VehicleID != "ev-01" || got.Notice.RiderID != "21B0001" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if auth != "Bearer k3y" {
		t.Fatalf("unexpected auth header: %q", auth)
	}
}

func TestLogNotifierToleratesNilLogger(t *testing.T) {
	n := &LogNotifier{}
	if err := n.Waiting(models.WaitingNotice{VehicleID: "ev-01"}); err != nil {
		t.Fatal(err)
	}
}
