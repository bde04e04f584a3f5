// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/CodeStix/bieden/engine"
	"github.com/CodeStix/bieden/internal/database"
	"github.com/CodeStix/bieden/internal/game"
	"github.com/CodeStix/bieden/internal/models"
)

var botNames = [engine.NumSeats]string{"", "West", "Noord", "Oost"}

// Server hosts one table per WebSocket connection: the connecting player
// takes seat 0, the other three seats are automated.
type Server struct {
	TurnDelay time.Duration

	mu     sync.Mutex
	tables map[uuid.UUID]*game.Table
}

// New creates a server. turnDelay paces the automated seats.
func New(turnDelay time.Duration) *Server {
	return &Server{
		TurnDelay: turnDelay,
		tables:    make(map[uuid.UUID]*game.Table),
	}
}

// Routes registers the HTTP handlers.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// joinMessage is the first client message on a fresh socket.
type joinMessage struct {
	Name     string `json:"name"`
	RecordID string `json:"recordId,omitempty"` // scoreboard row held by the client
}

// session is one connected player and their table.
type session struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	table    *game.Table
	recordID uuid.UUID
	log      *logrus.Entry
}

// send writes one event to the socket. Events arrive from the read loop and
// from turn timers, so writes are serialized here.
func (sess *session) send(ev game.GameEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		sess.log.WithError(err).Error("marshal event")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.Write(ctx, websocket.MessageText, raw); err != nil {
		sess.log.WithError(err).Debug("write event")
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logrus.WithError(err).Warn("ws: accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	ctx := r.Context()

	// The first message names the player and optionally carries their
	// scoreboard record id.
	var join joinMessage
	if err := readJSON(ctx, conn, &join); err != nil {
		conn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}
	if join.Name == "" {
		join.Name = "Speler"
	}

	sess := &session{conn: conn}
	if join.RecordID != "" {
		if id, err := uuid.Parse(join.RecordID); err == nil {
			sess.recordID = id
		}
	}

	tb := game.NewTable(uint64(time.Now().UnixNano()), engine.DefaultRules())
	tb.TurnDelay = s.TurnDelay
	tb.BroadcastFn = sess.send
	tb.BroadcastToSeatFn = func(seat engine.Seat, ev game.GameEvent) {
		if seat == 0 {
			sess.send(ev)
		}
	}
	tb.OnRoundEnd = func(info engine.GameOverInfo) {
		s.recordRoundResult(sess.recordID, info)
	}
	sess.table = tb
	sess.log = logrus.WithFields(logrus.Fields{"table": tb.ID, "player": join.Name})

	tb.Mu.Lock()
	tb.AddPlayer(&models.Player{ID: uuid.New(), Name: join.Name, Seat: 0, Conn: conn, Connected: true})
	for seat := engine.Seat(1); seat < engine.NumSeats; seat++ {
		tb.AddPlayer(&models.Player{ID: uuid.New(), Name: botNames[seat], Seat: uint8(seat), IsBot: true})
	}
	tb.Mu.Unlock()

	s.mu.Lock()
	s.tables[tb.ID] = tb
	s.mu.Unlock()
	defer func() {
		tb.Stop()
		s.mu.Lock()
		delete(s.tables, tb.ID)
		s.mu.Unlock()
		sess.log.Info("table closed")
	}()

	sess.log.Info("table opened")
	tb.Start()

	for {
		var action models.GameAction
		if err := readJSON(ctx, conn, &action); err != nil {
			sess.log.WithError(err).Debug("read loop ended")
			return
		}
		if err := tb.HandleAction(0, action); err != nil {
			sess.log.WithError(err).WithField("action", action.ActionType).Info("rejected action")
			seat := 0
			sess.send(game.GameEvent{
				Type:    game.EventError,
				Seat:    &seat,
				Payload: map[string]interface{}{"message": err.Error()},
			})
		}
	}
}

func readJSON(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	typ, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}
	if typ != websocket.MessageText {
		return fmt.Errorf("server: unexpected message type %v", typ)
	}
	return json.Unmarshal(data, v)
}

// recordRoundResult applies the round outcome to the player's running
// scoreboard row. The row counts down like the table: succeeding at your own
// bid lowers the score, failing raises it, and setting the opponents back
// lowers it too. Winning a round the opponents bid scores nothing.
func (s *Server) recordRoundResult(recordID uuid.UUID, info engine.GameOverInfo) {
	if database.DB == nil || recordID == uuid.Nil {
		return
	}
	delta, ok := scoreDelta(info)
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.IncrementScore(ctx, recordID, delta); err != nil {
			logrus.WithError(err).Warn("leaderboard update failed")
		}
	}()
}

// scoreDelta maps a round outcome to the leaderboard change for the player
// on seat 0's partnership. Winning a round the opponents bid scores
// nothing.
func scoreDelta(info engine.GameOverInfo) (int, bool) {
	bidderLocal := info.Bidder.Team() == 0
	switch {
	case bidderLocal && info.Won:
		return -info.Meten, true
	case bidderLocal && !info.Won:
		return info.Meten, true
	case !bidderLocal && !info.Won:
		return -info.Meten, true
	}
	return 0, false
}

// handleLeaderboard serves the global scoreboard. GET lists the best rows;
// POST {"name"} creates a fresh row and returns its id for the client to
// keep.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if database.DB == nil {
		http.Error(w, "leaderboard not configured", http.StatusServiceUnavailable)
		return
	}
	switch r.Method {
	case http.MethodGet:
		entries, err := database.TopScores(r.Context(), 25)
		if err != nil {
			logrus.WithError(err).Error("leaderboard query failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, entries)
	case http.MethodPost:
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			http.Error(w, "expected {\"name\"}", http.StatusBadRequest)
			return
		}
		id, err := database.CreatePlayerRecord(r.Context(), body.Name)
		if err != nil {
			logrus.WithError(err).Error("leaderboard create failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{"id": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Debug("write response")
	}
}
