package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/campus-shuttle/internal/models"
)

// PushNotifier posts waiting notices as JSON to a driver-app backend
// endpoint, with an optional bearer key.
type PushNotifier struct {
	Endpoint string
	Key      string
	Client   *http.Client
}

func NewPushNotifier(endpoint, key string) *PushNotifier {
	return &PushNotifier{Endpoint: endpoint, Key: key, Client: &http.Client{Timeout: 3 * time.Second}}
}

func (p *PushNotifier) Waiting(n models.WaitingNotice) error {
	body := map[string]interface{}{"notice": n}
	b, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, p.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.Key != "" {
		req.Header.Set("Authorization", "Bearer "+p.Key)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}
