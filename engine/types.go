// Package engine implements the rules and recommendation core for pandoer,
// a four-player partnership bidding trick-taking game played with a 32-card
// deck. The package is deliberately free of I/O and third-party imports so
// it can be embedded, simulated and fuzzed cheaply; the service layers in
// internal/ wrap it with transport, persistence and logging.
package engine

import (
	"log"
	"sort"
)

// Suit constants — packed into the upper bits of Card.
const (
	SuitClubs    uint8 = 0
	SuitSpades   uint8 = 1
	SuitHearts   uint8 = 2
	SuitDiamonds uint8 = 3

	NumSuits = 4
)

// Rank constants — packed into the lower 3 bits of Card. Seven is the
// lowest card in the deck, ace the highest.
const (
	RankSeven uint8 = 0
	RankEight uint8 = 1
	RankNine  uint8 = 2
	RankTen   uint8 = 3
	RankJack  uint8 = 4
	RankQueen uint8 = 5
	RankKing  uint8 = 6
	RankAce   uint8 = 7

	NumRanks = 8
)

// DeckSize is the number of cards in play: 4 suits × ranks seven..ace.
const DeckSize = NumSuits * NumRanks

// Card is a packed uint8: suit*8 + rank. The value doubles as the card's
// index into deck-sized arrays and bitmasks.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank. Out-of-range inputs are
// clamped to the seven of clubs, mirroring how malformed cards are treated
// everywhere else: loudly, but without panicking mid-round.
func NewCard(suit, rank uint8) Card {
	if suit >= NumSuits || rank >= NumRanks {
		log.Printf("engine: invalid card suit=%d rank=%d, clamping", suit, rank)
		return Card(0)
	}
	return Card(suit*NumRanks + rank)
}

// Suit returns the card's suit (0–3).
func (c Card) Suit() uint8 { return uint8(c) / NumRanks }

// Rank returns the card's rank (0–7, seven..ace).
func (c Card) Rank() uint8 { return uint8(c) % NumRanks }

var suitNames = [NumSuits]string{"♣", "♠", "♥", "♦"}
var rankNames = [NumRanks]string{"7", "8", "9", "10", "J", "Q", "K", "A"}

// String renders the card as rank+suit, e.g. "J♥". EmptyCard renders as "--".
func (c Card) String() string {
	if c == EmptyCard || uint8(c) >= DeckSize {
		return "--"
	}
	return rankNames[c.Rank()] + suitNames[c.Suit()]
}

// ---------------------------------------------------------------------------
// Rank order, point score and fatting order
// ---------------------------------------------------------------------------

// Trump and plain suits rank their cards differently: in the trump suit the
// jack is highest and the nine second, while in plain suits the natural
// seven..ace order holds.
var plainOrder = [NumRanks]uint8{0, 1, 2, 3, 4, 5, 6, 7}
var trumpOrder = [NumRanks]uint8{0, 1, 6, 2, 7, 3, 4, 5}

// Order returns the card's trick-taking strength within its suit. Higher
// order wins. trump reports whether the card is of the trump suit.
func (c Card) Order(trump bool) uint8 {
	if trump {
		return trumpOrder[c.Rank()]
	}
	return plainOrder[c.Rank()]
}

var plainScore = [NumRanks]int{0, 0, 0, 10, 1, 2, 3, 11}
var trumpScore = [NumRanks]int{0, 0, 14, 10, 20, 2, 3, 11}

// Score returns the card's point value when counting a won pile. The trump
// jack is worth 20 and the trump nine 14; all other cards score the same
// whether trump or not.
func (c Card) Score(trump bool) int {
	if trump {
		return trumpScore[c.Rank()]
	}
	return plainScore[c.Rank()]
}

// Fatting order: the preference ranking used when throwing points onto a
// trick the partner is winning ("fatting") or dumping a worthless card.
// Lower values are thrown first. Trump cards always come before plain
// cards, and the plain ten is the very last card given away.
var trumpFatting = [NumRanks]uint8{1, 2, 7, 8, 3, 4, 5, 6}
var plainFatting = [NumRanks]uint8{15, 14, 13, 16, 12, 11, 10, 9}

// FattingOrder returns the card's give-away preference. Lower is thrown
// away more readily.
func (c Card) FattingOrder(trump bool) uint8 {
	if trump {
		return trumpFatting[c.Rank()]
	}
	return plainFatting[c.Rank()]
}

// Beats reports whether card a beats card b, given the trump suit. Any
// trump beats any plain card; two cards of the same trump-ness compare by
// Order, even when their suits differ (the caller decides which suits are
// actually in contention via WinningCard).
func Beats(a, b Card, trump uint8) bool {
	aTrump := a.Suit() == trump
	bTrump := b.Suit() == trump
	if aTrump != bTrump {
		return aTrump
	}
	return a.Order(aTrump) > b.Order(bTrump)
}

// WinningCard returns the index of the winning card among the cards played
// to a trick, in play order. If any trump was played the highest trump
// wins; otherwise the highest card that followed the led suit wins.
// Returns -1 for an empty trick.
func WinningCard(cards []Card, trump uint8) int {
	if len(cards) == 0 {
		return -1
	}
	best := -1
	bestOrder := uint8(0)
	anyTrump := false
	for i, c := range cards {
		if c.Suit() == trump {
			if !anyTrump || c.Order(true) > bestOrder {
				anyTrump = true
				best = i
				bestOrder = c.Order(true)
			}
		}
	}
	if anyTrump {
		return best
	}
	lead := cards[0].Suit()
	for i, c := range cards {
		if c.Suit() != lead {
			continue
		}
		if best == -1 || c.Order(false) > bestOrder {
			best = i
			bestOrder = c.Order(false)
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// Seats and partnerships
// ---------------------------------------------------------------------------

// NumSeats is the number of players at the table.
const NumSeats = 4

// Seat identifies a position at the table, 0–3 counter-clockwise. Seats 0
// and 2 form one partnership, 1 and 3 the other.
type Seat uint8

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Next returns the seat to the left.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Team returns the partnership index (0 or 1).
func (s Seat) Team() uint8 { return uint8(s) % 2 }

// SeatSet is a bitmask of seats.
type SeatSet uint8

// Add returns the set with seat s included.
func (ss SeatSet) Add(s Seat) SeatSet { return ss | 1<<s }

// Has reports whether seat s is in the set.
func (ss SeatSet) Has(s Seat) bool { return ss&(1<<s) != 0 }

// Count returns the number of seats in the set.
func (ss SeatSet) Count() int {
	n := 0
	for s := Seat(0); s < NumSeats; s++ {
		if ss.Has(s) {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Card sets
// ---------------------------------------------------------------------------

// CardSet is a bitmask over the 32 deck indices. The belief tracker, won
// piles and hand snapshots all use CardSets so copying state is a handful
// of register moves.
type CardSet uint32

// FullDeck contains every card.
const FullDeck CardSet = (1 << DeckSize) - 1

// Add returns the set with c included.
func (cs CardSet) Add(c Card) CardSet { return cs | 1<<uint8(c) }

// Remove returns the set with c excluded.
func (cs CardSet) Remove(c Card) CardSet { return cs &^ (1 << uint8(c)) }

// Has reports whether c is in the set.
func (cs CardSet) Has(c Card) bool {
	return c != EmptyCard && cs&(1<<uint8(c)) != 0
}

// Count returns the number of cards in the set.
func (cs CardSet) Count() int {
	n := 0
	for cs != 0 {
		cs &= cs - 1
		n++
	}
	return n
}

// Cards returns the members of the set in deck-index order.
func (cs CardSet) Cards() []Card {
	out := make([]Card, 0, cs.Count())
	for i := uint8(0); i < DeckSize; i++ {
		if cs&(1<<i) != 0 {
			out = append(out, Card(i))
		}
	}
	return out
}

// SuitCards returns the subset of the given suit.
func (cs CardSet) SuitCards(suit uint8) CardSet {
	return cs & (CardSet(0xFF) << (suit * NumRanks))
}

// HandSet converts a hand slice to a CardSet.
func HandSet(hand []Card) CardSet {
	var cs CardSet
	for _, c := range hand {
		cs = cs.Add(c)
	}
	return cs
}

// ---------------------------------------------------------------------------
// Presentation sort
// ---------------------------------------------------------------------------

// Display order alternates suit colours so same-coloured suits never sit
// next to each other: clubs, hearts, spades, diamonds. When a hand holds no
// hearts, diamonds slot into the hearts position instead.
var suitDisplayOrder = [NumSuits]uint8{0, 2, 1, 3}

// SortHand sorts a hand in place into presentation order: alternating
// colours by suit, seven..ace within each suit.
func SortHand(hand []Card) {
	noHearts := true
	for _, c := range hand {
		if c.Suit() == SuitHearts {
			noHearts = false
			break
		}
	}
	key := func(c Card) int {
		so := suitDisplayOrder[c.Suit()]
		if noHearts && c.Suit() == SuitDiamonds {
			so = 1
		}
		return int(so)*100 + int(c.Order(false))
	}
	sort.Slice(hand, func(i, j int) bool { return key(hand[i]) < key(hand[j]) })
}
