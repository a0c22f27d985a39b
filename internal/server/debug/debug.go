// Package debug exposes a websocket endpoint for a dev viewer: it streams
// chunk lifecycle events and answers height/biome probes against the live
// terrain. It observes the pipeline; it never mutates it.
package debug

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emberwood/terrain-server/internal/stream"
	"github.com/emberwood/terrain-server/internal/terrain"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type chunkEventPayload struct {
	Kind  string `json:"kind"`
	X     int    `json:"x"`
	Z     int    `json:"z"`
	Biome string `json:"biome"`
}

type probeRequest struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type probePayload struct {
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Height   float64 `json:"height"`
	Biome    string  `json:"biome"`
	Walkable bool    `json:"walkable"`
	Water    float64 `json:"water"`
}

// Server is the debug websocket endpoint.
type Server struct {
	query terrain.Query
	log   *slog.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte

	events chan stream.Event
}

// New creates a debug Server answering probes against query.
func New(query terrain.Query, log *slog.Logger) *Server {
	return &Server{
		query:   query,
		log:     log,
		clients: make(map[*websocket.Conn]chan []byte),
		events:  make(chan stream.Event, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Observe is the stream.Manager observer hook. It must not block the update
// loop: if the event queue is full the event is dropped.
func (s *Server) Observe(e stream.Event) {
	select {
	case s.events <- e:
	default:
	}
}

// ListenAndServe runs the endpoint until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: addr, Handler: mux}

	go s.broadcastLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("debug endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// broadcastLoop fans chunk events out to every connected client.
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.events:
			payload, err := json.Marshal(chunkEventPayload{
				Kind:  e.Kind,
				X:     e.Pos.X,
				Z:     e.Pos.Z,
				Biome: e.Biome,
			})
			if err != nil {
				continue
			}
			msg, err := json.Marshal(envelope{Type: "chunk", Payload: payload})
			if err != nil {
				continue
			}

			s.mu.Lock()
			for _, send := range s.clients {
				select {
				case send <- msg:
				default: // slow client, drop the event for it
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade", "error", err)
		return
	}

	send := make(chan []byte, 64)
	s.mu.Lock()
	s.clients[conn] = send
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		close(send) // broadcastLoop only sends while the client is registered
		s.mu.Unlock()
		conn.Close()
	}()

	go func() {
		for msg := range send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		if env.Type != "probe" {
			continue
		}

		var req probeRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			continue
		}

		payload, err := json.Marshal(probePayload{
			X:        req.X,
			Z:        req.Z,
			Height:   s.query.HeightAt(req.X, req.Z),
			Biome:    s.query.BiomeAt(req.X, req.Z).String(),
			Walkable: s.query.Walkable(req.X, req.Z),
			Water:    s.query.WaterLevel(),
		})
		if err != nil {
			continue
		}
		msg, err := json.Marshal(envelope{Type: "probe", Payload: payload})
		if err != nil {
			continue
		}
		select {
		case send <- msg:
		default:
		}
	}
}
