package notify

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/campus-shuttle/internal/models"
)

// WSSession represents one connected presentation client.
type WSSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *WSSession) Send(ev models.PositionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(ev)
}

// WSRegistry fans live tracking positions out to connected
// presentation clients.
type WSRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*WSSession
}

func NewWSRegistry() *WSRegistry { return &WSRegistry{sessions: make(map[string]*WSSession)} }

func (r *WSRegistry) Add(clientID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[clientID] = &WSSession{conn: conn}
}

func (r *WSRegistry) Remove(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, clientID)
}

// Broadcast sends a position event to every client; send failures drop
// the client.
func (r *WSRegistry) Broadcast(ev models.PositionEvent) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	conns := make([]*WSSession, 0, len(r.sessions))
	for id, s := range r.sessions {
		ids = append(ids, id)
		conns = append(conns, s)
	}
	r.mu.RUnlock()
	for i, s := range conns {
		if err := s.Send(ev); err != nil {
			log.Printf("ws send error: %v", err)
			r.Remove(ids[i])
		}
	}
}
