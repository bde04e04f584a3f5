package engine

import (
	"errors"
	"fmt"
)

// Phase of the round state machine.
type Phase uint8

const (
	PhaseDealing Phase = iota
	PhaseBidding
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	}
	return "unknown"
}

// Sentinel errors for rejected actions. Every rejection leaves the game
// state untouched.
var (
	ErrInvalidPhase = errors.New("action not valid in current phase")
	ErrOutOfTurn    = errors.New("not this seat's turn")
	ErrIllegalCard  = errors.New("card may not be played")
	ErrAlreadyBid   = errors.New("seat already made its offer")
	ErrInvalidBid   = errors.New("invalid bid")
)

// ScoreKind tags a scoreboard row with how it came about, from the
// perspective of the seat-0 partnership ("us").
type ScoreKind uint8

const (
	ScoreInitial    ScoreKind = iota // match start
	ScoreWon                         // we bid and made it
	ScoreLost                        // we bid and fell short
	ScoreOthersWon                   // they bid and made it
	ScoreOthersLost                  // they bid and fell short
)

func (k ScoreKind) String() string {
	switch k {
	case ScoreInitial:
		return "initial"
	case ScoreWon:
		return "won"
	case ScoreLost:
		return "lost"
	case ScoreOthersWon:
		return "others-won"
	case ScoreOthersLost:
		return "others-lost"
	}
	return "unknown"
}

// ScoreBoardItem is one row of the countdown scoreboard. Both partnerships
// start at Rules.StartScore and count down; the first to reach zero or
// below wins the match.
type ScoreBoardItem struct {
	OurScore   int
	TheirScore int
	Kind       ScoreKind
}

// GameOverInfo summarizes a finished round.
type GameOverInfo struct {
	Bidder     Seat
	Won        bool // bidding side reached its bid
	Score      int  // card points + declared wijs of the bidding side
	Bid        int
	Meten      int
	ScoreBoard []ScoreBoardItem
	MatchOver  bool
	WeWonMatch bool // meaningful only when MatchOver; true if seat 0's side won
}

// SeatState is the per-seat state of the current round.
type SeatState struct {
	Hand      []Card
	Bid       int  // 0 until HasBid with a real offer
	HasBid    bool // offer made, possibly a pass
	Passed    bool
	Anchor    Card // recommended opening lead from the bid estimator
	WijsScore int  // declared combination points this round
	Beliefs   BeliefState
}

// Game is a full match: deck, seats, scoreboard and the round state
// machine. Plain value semantics throughout; copying the struct snapshots
// the match.
type Game struct {
	Rules Rules
	RNG   uint64

	Seats     [NumSeats]SeatState
	Dealer    Seat
	Turn      Seat
	BidWinner Seat
	Phase     Phase

	Trump    uint8
	TrumpSet bool

	Table      []Card
	TableSeats []Seat

	// deck keeps the full 32-card order between rounds; gathered piles are
	// cut, not shuffled, before the next deal.
	deck    []Card
	DealtTo [DeckSize]Seat

	// WonPiles are shared per partnership (team 0 = seats 0/2).
	WonPiles [2]CardSet

	ScoreBoard []ScoreBoardItem
}

// NewGame creates a match with a shuffled deck, a random dealer and a fresh
// scoreboard, and deals the first round. The returned game is in
// PhaseBidding with Turn on the seat left of the dealer.
func NewGame(seed uint64, rules Rules) *Game {
	g := &Game{Rules: rules, RNG: seed}
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}

	g.deck = make([]Card, 0, DeckSize)
	for s := uint8(0); s < NumSuits; s++ {
		for r := uint8(0); r < NumRanks; r++ {
			g.deck = append(g.deck, NewCard(s, r))
		}
	}
	g.shuffle()

	for s := Seat(0); s < NumSeats; s++ {
		g.Seats[s].Beliefs.Observer = s
	}
	g.Dealer = Seat(g.randN(NumSeats))
	g.ScoreBoard = []ScoreBoardItem{{
		OurScore:   rules.StartScore,
		TheirScore: rules.StartScore,
		Kind:       ScoreInitial,
	}}

	g.deal()
	return g
}

func (g *Game) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *Game) randN(n uint64) uint64 {
	return g.nextRand() % n
}

func (g *Game) shuffle() {
	for i := len(g.deck) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	}
}

// gather collects every card back into the deck in table order, then per
// seat its hand followed by its partnership's pile, and cuts the deck twice
// instead of shuffling. Card order surviving rounds is part of the game:
// runs formed by tricks tend to stay together.
func (g *Game) gather() {
	deck := make([]Card, 0, DeckSize)
	deck = append(deck, g.Table...)
	pileTaken := [2]bool{}
	for s := Seat(0); s < NumSeats; s++ {
		deck = append(deck, g.Seats[s].Hand...)
		if !pileTaken[s.Team()] {
			pileTaken[s.Team()] = true
			deck = append(deck, g.WonPiles[s.Team()].Cards()...)
		}
	}
	if len(deck) != DeckSize {
		// A card went missing; fall back to a fresh deck.
		deck = deck[:0]
		for s := uint8(0); s < NumSuits; s++ {
			for r := uint8(0); r < NumRanks; r++ {
				deck = append(deck, NewCard(s, r))
			}
		}
	}
	g.deck = deck

	for i := 0; i < 2; i++ {
		cut := int(g.randN(uint64(len(g.deck)-8))) + 4
		g.deck = append(append([]Card(nil), g.deck[cut:]...), g.deck[:cut]...)
	}
}

// deal hands out the deck in packets, starting left of the dealer, and
// opens the bidding there.
func (g *Game) deal() {
	g.Phase = PhaseDealing
	g.TrumpSet = false
	g.Trump = 0
	g.Table = nil
	g.TableSeats = nil
	g.WonPiles = [2]CardSet{}

	for s := Seat(0); s < NumSeats; s++ {
		st := &g.Seats[s]
		st.Hand = nil
		st.Bid = 0
		st.HasBid = false
		st.Passed = false
		st.Anchor = EmptyCard
		st.WijsScore = 0
		st.Beliefs.Reset()
	}

	packet := g.Rules.DealPacket
	for i, c := range g.deck {
		seat := (g.Dealer + 1 + Seat(i/packet)) % NumSeats
		g.Seats[seat].Hand = append(g.Seats[seat].Hand, c)
		g.DealtTo[c] = seat
	}
	for s := Seat(0); s < NumSeats; s++ {
		SortHand(g.Seats[s].Hand)
		// Remember the estimator's opening lead now; the hand won't change
		// before the first trick.
		if rec, ok := RecommendBid(g.Rules, g.Seats[s].Hand); ok {
			g.Seats[s].Anchor = rec.Anchor
		}
	}

	g.Phase = PhaseBidding
	g.Turn = g.Dealer.Next()
}

// HighestBid returns the current highest offer and the seat that holds it.
// ok is false while nobody has offered. Earlier seats keep ties.
func (g *Game) HighestBid() (seat Seat, bid int, ok bool) {
	for s := Seat(0); s < NumSeats; s++ {
		st := &g.Seats[s]
		if st.HasBid && !st.Passed && (!ok || st.Bid > bid) {
			seat, bid, ok = s, st.Bid, true
		}
	}
	return seat, bid, ok
}

// BidResult reports what a SubmitBid call caused.
type BidResult struct {
	Done       bool // bidding closed (dealer has spoken)
	Redealt    bool // nobody offered; dealer advanced and a new deal is out
	Winner     Seat // valid when Done && !Redealt
	WinningBid int
	NextBidder Seat // valid while bidding continues (or after a redeal)
}

// SubmitBid records a seat's offer, or a pass when pass is true. Bidding
// runs once around the table from the dealer's left and closes with the
// dealer; the highest offer wins the right to name trump with its first
// lead. When everyone passes, the deal moves on: the next dealer deals and
// bidding reopens.
func (g *Game) SubmitBid(seat Seat, bid int, pass bool) (BidResult, error) {
	if g.Phase != PhaseBidding {
		return BidResult{}, fmt.Errorf("%w: phase is %s", ErrInvalidPhase, g.Phase)
	}
	if seat != g.Turn {
		return BidResult{}, fmt.Errorf("%w: seat %d offered on seat %d's turn", ErrOutOfTurn, seat, g.Turn)
	}
	if g.Seats[seat].HasBid {
		return BidResult{}, fmt.Errorf("%w: seat %d", ErrAlreadyBid, seat)
	}
	if !pass {
		if bid < g.Rules.MinBid || bid%g.Rules.BidStep != 0 {
			return BidResult{}, fmt.Errorf("%w: %d (minimum %d, step %d)", ErrInvalidBid, bid, g.Rules.MinBid, g.Rules.BidStep)
		}
	}

	st := &g.Seats[seat]
	st.HasBid = true
	st.Passed = pass
	if !pass {
		st.Bid = bid
	}

	if seat != g.Dealer {
		g.Turn = seat.Next()
		return BidResult{NextBidder: g.Turn}, nil
	}

	// Dealer spoke last; resolve the auction.
	winner, winning, ok := g.HighestBid()
	if !ok {
		g.Dealer = g.Dealer.Next()
		g.gather()
		g.deal()
		return BidResult{Done: true, Redealt: true, NextBidder: g.Turn}, nil
	}

	g.BidWinner = winner
	g.Phase = PhasePlaying
	g.Turn = winner
	for s := Seat(0); s < NumSeats; s++ {
		g.Seats[s].Beliefs.NoteBeginPlay(g.Seats[s].Hand)
	}
	return BidResult{Done: true, Winner: winner, WinningBid: winning}, nil
}

// PlayResult reports what a PlayCard call caused.
type PlayResult struct {
	TrumpJustSet bool
	WijsShown    []Wijs // combinations revealed by the player, nil if none
	WijsScore    int    // counting score of WijsShown under trump
	TrickDone    bool
	TrickWinner  Seat // valid when TrickDone
	RoundOver    bool
	GameOver     *GameOverInfo // set when RoundOver
}

// PlayCard plays a card from a seat's hand onto the trick. The first card
// of the round fixes trump to its suit and reveals the leader's wijs; the
// leader's partner reveals when it first plays from a seven-card hand. A
// full trick goes to the highest card's partnership pile; the winner leads
// the next trick, and the round ends when the winner's hand is empty.
func (g *Game) PlayCard(seat Seat, card Card) (PlayResult, error) {
	if g.Phase != PhasePlaying {
		return PlayResult{}, fmt.Errorf("%w: phase is %s", ErrInvalidPhase, g.Phase)
	}
	if seat != g.Turn {
		return PlayResult{}, fmt.Errorf("%w: seat %d played on seat %d's turn", ErrOutOfTurn, seat, g.Turn)
	}
	st := &g.Seats[seat]
	handIdx := -1
	for i, c := range st.Hand {
		if c == card {
			handIdx = i
			break
		}
	}
	if handIdx < 0 {
		return PlayResult{}, fmt.Errorf("%w: seat %d does not hold %s", ErrIllegalCard, seat, card)
	}
	if !IsPlayable(g.Table, st.Hand, card, g.Trump, g.TrumpSet) {
		return PlayResult{}, fmt.Errorf("%w: %s must follow %s", ErrIllegalCard, card, g.Table[0])
	}

	var res PlayResult

	showWijs := false
	if !g.TrumpSet {
		g.Trump = card.Suit()
		g.TrumpSet = true
		showWijs = true
		res.TrumpJustSet = true
	}
	if len(st.Hand) == 7 && seat.Partner() == g.BidWinner {
		showWijs = true
	}

	// Wijs is declared from the full hand, before the card leaves it; the
	// led trump itself can be part of a declared run.
	if showWijs {
		wijs := DetectWijs(st.Hand)
		if len(wijs) > 0 {
			st.WijsScore = WijsScore(wijs, g.Trump)
			res.WijsShown = wijs
			res.WijsScore = st.WijsScore
			for s := Seat(0); s < NumSeats; s++ {
				g.Seats[s].Beliefs.NoteWijsShown(seat, wijs, g.Trump)
			}
		}
	}

	st.Hand = append(st.Hand[:handIdx], st.Hand[handIdx+1:]...)
	g.Table = append(g.Table, card)
	g.TableSeats = append(g.TableSeats, seat)
	for s := Seat(0); s < NumSeats; s++ {
		g.Seats[s].Beliefs.NoteCardPlayed(seat, card, g.Table[0], g.Trump)
	}

	if len(g.Table) < NumSeats {
		g.Turn = seat.Next()
		return res, nil
	}

	winIdx := WinningCard(g.Table, g.Trump)
	winner := g.TableSeats[winIdx]
	for _, c := range g.Table {
		g.WonPiles[winner.Team()] = g.WonPiles[winner.Team()].Add(c)
	}
	g.Table = nil
	g.TableSeats = nil

	res.TrickDone = true
	res.TrickWinner = winner

	if len(g.Seats[winner].Hand) == 0 {
		res.RoundOver = true
		info := g.stopRound()
		res.GameOver = &info
		return res, nil
	}

	g.Turn = winner
	return res, nil
}

// stopRound scores the finished round and appends a scoreboard row.
//
// The bidding side's score is its two declared wijs totals plus the card
// points in its pile. Making the bid moves that side meten points down the
// countdown; falling short moves it meten up while the defenders move
// down. "Our" side is seat 0's partnership.
func (g *Game) stopRound() GameOverInfo {
	g.Phase = PhaseGameOver

	bidder := g.BidWinner
	partner := bidder.Partner()
	score := g.Seats[bidder].WijsScore + g.Seats[partner].WijsScore
	for _, c := range g.WonPiles[bidder.Team()].Cards() {
		score += c.Score(c.Suit() == g.Trump)
	}

	bid := g.Seats[bidder].Bid
	won := score >= bid
	meten := bid / g.Rules.MetenDivisor
	last := g.ScoreBoard[len(g.ScoreBoard)-1]

	var item ScoreBoardItem
	if bidder.Team() == 0 {
		if won {
			item = ScoreBoardItem{last.OurScore - meten, last.TheirScore, ScoreWon}
		} else {
			item = ScoreBoardItem{last.OurScore + meten, last.TheirScore - meten, ScoreLost}
		}
	} else {
		if won {
			item = ScoreBoardItem{last.OurScore, last.TheirScore - meten, ScoreOthersWon}
		} else {
			item = ScoreBoardItem{last.OurScore - meten, last.TheirScore + meten, ScoreOthersLost}
		}
	}
	g.ScoreBoard = append(g.ScoreBoard, item)

	matchOver := item.OurScore <= 0 || item.TheirScore <= 0
	return GameOverInfo{
		Bidder:     bidder,
		Won:        won,
		Score:      score,
		Bid:        bid,
		Meten:      meten,
		ScoreBoard: append([]ScoreBoardItem(nil), g.ScoreBoard...),
		MatchOver:  matchOver,
		WeWonMatch: matchOver && item.OurScore <= 0,
	}
}

// NewRound gathers the cards, advances the dealer and deals the next round.
// Valid only after a round has finished.
func (g *Game) NewRound() error {
	if g.Phase != PhaseGameOver {
		return fmt.Errorf("%w: phase is %s", ErrInvalidPhase, g.Phase)
	}
	g.Dealer = g.Dealer.Next()
	g.gather()
	g.deal()
	return nil
}

// RecommendTurn computes the engine's recommendation for the seat currently
// at turn: a bid during bidding (pass=true when the hand is too weak), or a
// card during play.
func (g *Game) RecommendTurn() (bid int, pass bool, card Card) {
	switch g.Phase {
	case PhaseBidding:
		rec, ok := RecommendBid(g.Rules, g.Seats[g.Turn].Hand)
		if !ok {
			return 0, true, EmptyCard
		}
		// Only outbid; matching the standing offer is worthless.
		if _, highest, has := g.HighestBid(); has && rec.Bid <= highest {
			return 0, true, EmptyCard
		}
		return rec.Bid, false, EmptyCard

	case PhasePlaying:
		st := &g.Seats[g.Turn]
		if !g.TrumpSet {
			if st.Anchor != EmptyCard {
				return 0, false, st.Anchor
			}
			return 0, false, RecommendOpening(st.Hand)
		}
		var upcoming []Seat
		for i := 1; i < NumSeats-len(g.Table); i++ {
			upcoming = append(upcoming, (g.Turn+Seat(i))%NumSeats)
		}
		return 0, false, st.Beliefs.RecommendPlay(st.Hand, g.Table, g.TableSeats, upcoming, g.Trump)
	}
	return 0, true, EmptyCard
}
