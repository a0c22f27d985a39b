package debug

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emberwood/terrain-server/internal/stream"
	"github.com/emberwood/terrain-server/internal/terrain"
	"github.com/emberwood/terrain-server/internal/terrain/biome"
)

type fixedQuery struct{}

func (fixedQuery) HeightAt(x, z float64) float64    { return 42.5 }
func (fixedQuery) BiomeAt(x, z float64) biome.Biome { return biome.Forest }
func (fixedQuery) WaterLevel() float64              { return 12 }
func (fixedQuery) Walkable(x, z float64) bool       { return true }

func newTestEndpoint(t *testing.T) (*Server, *websocket.Conn, context.CancelFunc) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(fixedQuery{}, log)

	ctx, cancel := context.WithCancel(context.Background())
	go s.broadcastLoop(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	httpSrv := httptest.NewServer(mux)
	t.Cleanup(httpSrv.Close)

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Wait until the server side has registered the client, so broadcasts
	// sent by the test cannot race the registration.
	for i := 0; i < 200; i++ {
		s.mu.Lock()
		n := len(s.clients)
		s.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	return s, conn, cancel
}

func readEnvelope(t *testing.T, conn *websocket.Conn, wantType string) json.RawMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read envelope: %v", err)
		}
		if env.Type == wantType {
			return env.Payload
		}
	}
}

func TestProbeAnswersHeightAndBiome(t *testing.T) {
	_, conn, cancel := newTestEndpoint(t)
	defer cancel()

	req, _ := json.Marshal(probeRequest{X: 10, Z: -20})
	if err := conn.WriteJSON(envelope{Type: "probe", Payload: req}); err != nil {
		t.Fatalf("write probe: %v", err)
	}

	var got probePayload
	if err := json.Unmarshal(readEnvelope(t, conn, "probe"), &got); err != nil {
		t.Fatalf("unmarshal probe payload: %v", err)
	}
	if got.Height != 42.5 {
		t.Errorf("Height = %f, want 42.5", got.Height)
	}
	if got.Biome != "forest" {
		t.Errorf("Biome = %q, want %q", got.Biome, "forest")
	}
	if !got.Walkable {
		t.Error("Walkable = false, want true")
	}
	if got.Water != 12 {
		t.Errorf("Water = %f, want 12", got.Water)
	}
}

func TestChunkEventsBroadcast(t *testing.T) {
	s, conn, cancel := newTestEndpoint(t)
	defer cancel()

	s.Observe(stream.Event{
		Kind:  "loaded",
		Pos:   terrain.ChunkPos{X: 3, Z: -1},
		Biome: "tundra",
	})

	var got chunkEventPayload
	if err := json.Unmarshal(readEnvelope(t, conn, "chunk"), &got); err != nil {
		t.Fatalf("unmarshal chunk payload: %v", err)
	}
	if got.Kind != "loaded" || got.X != 3 || got.Z != -1 || got.Biome != "tundra" {
		t.Errorf("chunk event = %+v, want loaded (3,-1) tundra", got)
	}
}
