// internal/game/table.go
package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CodeStix/bieden/engine"
	"github.com/CodeStix/bieden/internal/cache"
	"github.com/CodeStix/bieden/internal/models"
)

// GameEventType represents the type of a table event broadcast via
// WebSockets.
type GameEventType string

// Constants defining the various GameEvent types used for WebSocket
// communication.
const (
	EventDealt       GameEventType = "dealt"        // Public: a new round was dealt.
	EventPrivateHand GameEventType = "private_hand" // Private: the seat's own cards.
	EventShouldOffer GameEventType = "should_offer" // Public: a seat must offer or pass.
	EventSeatOffer   GameEventType = "seat_offer"   // Public: a seat offered or passed.
	EventRedeal      GameEventType = "redeal"       // Public: everyone passed, cards moved on.
	EventPlayStarted GameEventType = "play_started" // Public: auction resolved, winner leads.
	EventTrumpSet    GameEventType = "trump_set"    // Public: the first lead fixed trump.
	EventWijsShown   GameEventType = "wijs_shown"   // Public: a seat revealed combinations.
	EventCardPlayed  GameEventType = "card_played"  // Public: a card hit the table.
	EventTrickWon    GameEventType = "trick_won"    // Public: four cards resolved.
	EventShouldPlay  GameEventType = "should_play"  // Public: a seat must play a card.
	EventRoundOver   GameEventType = "round_over"   // Public: round scored, includes GameOverInfo.
	EventMatchOver   GameEventType = "match_over"   // Public: a partnership reached zero.
	EventError       GameEventType = "error"        // Private: a rejected action.
)

// EventCard identifies a card within a GameEvent payload.
type EventCard struct {
	Index int    `json:"index"` // deck index 0-31
	Name  string `json:"name"`  // e.g. "J♥"
}

func eventCard(c engine.Card) *EventCard {
	return &EventCard{Index: int(c), Name: c.String()}
}

// GameEvent is the standard structure for broadcasting table changes.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	Seat    *int                   `json:"seat,omitempty"` // The seat initiating or targeted by the event.
	Card    *EventCard             `json:"card,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

func seatEvent(t GameEventType, seat engine.Seat) GameEvent {
	s := int(seat)
	return GameEvent{Type: t, Seat: &s}
}

// Table runs one match: it owns the authoritative engine state, drives the
// automated seats and reports everything that happens through broadcast
// callbacks. All entry points lock Mu; internal helpers assume it is held.
type Table struct {
	ID    uuid.UUID
	Rules engine.Rules
	Game  *engine.Game

	Players [engine.NumSeats]*models.Player

	// TurnDelay paces automated seats for presentation. Zero advances them
	// synchronously, which tests and the simulator rely on.
	TurnDelay time.Duration
	turnTimer *time.Timer

	actionIndex int

	Mu sync.Mutex

	BroadcastFn       func(ev GameEvent)
	BroadcastToSeatFn func(seat engine.Seat, ev GameEvent)

	// OnRoundEnd lets the host persist results (leaderboard updates).
	OnRoundEnd func(info engine.GameOverInfo)
}

// NewTable creates a table with a freshly dealt match.
func NewTable(seed uint64, rules engine.Rules) *Table {
	return &Table{
		ID:    uuid.New(),
		Rules: rules,
		Game:  engine.NewGame(seed, rules),
	}
}

// Seat returns the player occupying a seat, or nil.
func (t *Table) Seat(s engine.Seat) *models.Player {
	return t.Players[s]
}

// AddPlayer seats a player. Assumes lock is held by caller.
func (t *Table) AddPlayer(p *models.Player) {
	t.Players[p.Seat] = p
	log.Printf("Table %s: seat %d taken by %s (bot=%v)", t.ID, p.Seat, p.Name, p.IsBot)
	t.logAction(int(p.Seat), "player_add", map[string]interface{}{"name": p.Name, "bot": p.IsBot})
}

// Start announces the opening deal and begins the auction.
func (t *Table) Start() {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	t.announceDeal()
	t.advance()
}

// HandleAction routes a decoded client action for a seat.
func (t *Table) HandleAction(seat engine.Seat, action models.GameAction) error {
	switch action.ActionType {
	case "action_offer":
		bid, _ := action.Payload["bid"].(float64)
		pass, _ := action.Payload["pass"].(bool)
		return t.SubmitBid(seat, int(bid), pass)
	case "action_play":
		idx, ok := action.Payload["card"].(float64)
		if !ok || idx < 0 || idx >= engine.DeckSize {
			return fmt.Errorf("table: bad card index in payload")
		}
		return t.PlayCard(seat, engine.Card(idx))
	case "action_new_round":
		return t.NewRound(seat)
	default:
		return fmt.Errorf("table: unknown action type %q", action.ActionType)
	}
}

// SubmitBid applies a seat's offer (or pass) and moves the auction along.
func (t *Table) SubmitBid(seat engine.Seat, bid int, pass bool) error {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	if err := t.submitBid(seat, bid, pass); err != nil {
		return err
	}
	t.advance()
	return nil
}

// PlayCard applies a seat's card.
func (t *Table) PlayCard(seat engine.Seat, card engine.Card) error {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	if err := t.playCard(seat, card); err != nil {
		return err
	}
	t.advance()
	return nil
}

// NewRound starts the next round after a finished one. Any seat may ask.
func (t *Table) NewRound(seat engine.Seat) error {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	if err := t.Game.NewRound(); err != nil {
		return err
	}
	t.logAction(int(seat), "new_round", nil)
	t.announceDeal()
	t.advance()
	return nil
}

// Stop cancels any pending automated turn. Call when the table is torn
// down.
func (t *Table) Stop() {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}
}

// ---------------------------------------------------------------------------
// Internals — lock held
// ---------------------------------------------------------------------------

func (t *Table) announceDeal() {
	g := t.Game
	dealer := int(g.Dealer)
	t.fireEvent(GameEvent{Type: EventDealt, Payload: map[string]interface{}{
		"dealer":     dealer,
		"scoreBoard": g.ScoreBoard,
	}})
	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		hand := make([]*EventCard, len(g.Seats[s].Hand))
		for i, c := range g.Seats[s].Hand {
			hand[i] = eventCard(c)
		}
		t.fireEventToSeat(s, GameEvent{Type: EventPrivateHand, Payload: map[string]interface{}{
			"cards": hand,
		}})
	}
	t.logAction(-1, string(EventDealt), map[string]interface{}{"dealer": dealer})
}

func (t *Table) submitBid(seat engine.Seat, bid int, pass bool) error {
	res, err := t.Game.SubmitBid(seat, bid, pass)
	if err != nil {
		return err
	}

	ev := seatEvent(EventSeatOffer, seat)
	ev.Payload = map[string]interface{}{"pass": pass}
	if !pass {
		ev.Payload["bid"] = bid
	}
	t.fireEvent(ev)
	t.logAction(int(seat), string(EventSeatOffer), ev.Payload)

	switch {
	case res.Redealt:
		t.fireEvent(GameEvent{Type: EventRedeal})
		t.logAction(-1, string(EventRedeal), nil)
		t.announceDeal()
	case res.Done:
		started := seatEvent(EventPlayStarted, res.Winner)
		started.Payload = map[string]interface{}{"bid": res.WinningBid}
		t.fireEvent(started)
		t.logAction(int(res.Winner), string(EventPlayStarted), started.Payload)
	}
	return nil
}

func (t *Table) playCard(seat engine.Seat, card engine.Card) error {
	res, err := t.Game.PlayCard(seat, card)
	if err != nil {
		return err
	}

	if res.TrumpJustSet {
		ev := seatEvent(EventTrumpSet, seat)
		ev.Payload = map[string]interface{}{"trump": int(t.Game.Trump)}
		t.fireEvent(ev)
	}
	if res.WijsShown != nil {
		shown := make([]string, len(res.WijsShown))
		for i, w := range res.WijsShown {
			shown[i] = w.String()
		}
		ev := seatEvent(EventWijsShown, seat)
		ev.Payload = map[string]interface{}{"wijs": shown, "score": res.WijsScore}
		t.fireEvent(ev)
		t.logAction(int(seat), string(EventWijsShown), ev.Payload)
	}

	played := seatEvent(EventCardPlayed, seat)
	played.Card = eventCard(card)
	t.fireEvent(played)
	t.logAction(int(seat), string(EventCardPlayed), map[string]interface{}{"card": card.String()})

	if res.TrickDone {
		t.fireEvent(seatEvent(EventTrickWon, res.TrickWinner))
	}
	if res.RoundOver {
		info := *res.GameOver
		over := seatEvent(EventRoundOver, info.Bidder)
		over.Payload = map[string]interface{}{
			"won":        info.Won,
			"score":      info.Score,
			"bid":        info.Bid,
			"meten":      info.Meten,
			"scoreBoard": info.ScoreBoard,
			"matchOver":  info.MatchOver,
		}
		t.fireEvent(over)
		t.logAction(int(info.Bidder), string(EventRoundOver), over.Payload)
		if t.OnRoundEnd != nil {
			t.OnRoundEnd(info)
		}
		if info.MatchOver {
			t.fireEvent(GameEvent{Type: EventMatchOver, Payload: map[string]interface{}{
				"weWon": info.WeWonMatch,
			}})
			t.logAction(-1, string(EventMatchOver), nil)
		}
	}
	return nil
}

// advance prompts the seat at turn and drives automated seats, either
// synchronously (TurnDelay 0) or on a timer.
func (t *Table) advance() {
	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}

	// With no delay, resolve the whole automated stretch at once.
	if t.TurnDelay == 0 {
		for i := 0; i < 4*engine.DeckSize; i++ {
			if !t.promptTurn() {
				return
			}
			if err := t.botStep(); err != nil {
				log.Printf("Table %s: bot step failed: %v", t.ID, err)
				return
			}
		}
		log.Printf("Table %s: automated seats did not settle", t.ID)
		return
	}

	if !t.promptTurn() {
		return
	}
	t.turnTimer = time.AfterFunc(t.TurnDelay, func() {
		t.Mu.Lock()
		defer t.Mu.Unlock()
		if err := t.botStep(); err != nil {
			log.Printf("Table %s: bot step failed: %v", t.ID, err)
			return
		}
		t.advance()
	})
}

// promptTurn announces whose turn it is and reports whether that seat is
// automated and must be driven by the table.
func (t *Table) promptTurn() bool {
	g := t.Game
	switch g.Phase {
	case engine.PhaseBidding:
		t.fireEvent(seatEvent(EventShouldOffer, g.Turn))
	case engine.PhasePlaying:
		t.fireEvent(seatEvent(EventShouldPlay, g.Turn))
	default:
		return false
	}
	p := t.Players[g.Turn]
	return p == nil || p.IsBot
}

// botStep performs the recommended action for the seat at turn.
func (t *Table) botStep() error {
	g := t.Game
	seat := g.Turn
	switch g.Phase {
	case engine.PhaseBidding:
		bid, pass, _ := g.RecommendTurn()
		return t.submitBid(seat, bid, pass)
	case engine.PhasePlaying:
		_, _, card := g.RecommendTurn()
		return t.playCard(seat, card)
	}
	return nil
}

func (t *Table) fireEvent(ev GameEvent) {
	if t.BroadcastFn != nil {
		t.BroadcastFn(ev)
	}
}

func (t *Table) fireEventToSeat(seat engine.Seat, ev GameEvent) {
	if t.BroadcastToSeatFn == nil {
		return
	}
	t.BroadcastToSeatFn(seat, ev)
}

// logAction sends action details to the historian queue via Redis.
// Increments the internal action index for ordering. Assumes lock is held
// by caller.
func (t *Table) logAction(seat int, actionType string, payload map[string]interface{}) {
	t.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		TableID:       t.ID,
		ActionIndex:   t.actionIndex,
		Seat:          seat,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}

	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cache.Rdb == nil {
			return
		}
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			log.Printf("Table %s: failed publishing action %d (%s): %v", t.ID, rec.ActionIndex, rec.ActionType, err)
		}
	}(record)
}
