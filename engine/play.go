package engine

// IsPlayable reports whether card may legally be played from hand onto the
// current trick. Leading is always free, as is any play before trump is
// fixed. Trump may always be thrown. Otherwise the led suit must be
// followed when the hand can.
func IsPlayable(table, hand []Card, card Card, trump uint8, trumpSet bool) bool {
	if len(table) == 0 || !trumpSet {
		return true
	}
	if card.Suit() == trump {
		return true
	}
	lead := table[0].Suit()
	for _, c := range hand {
		if c.Suit() == lead {
			return card.Suit() == lead
		}
	}
	return true
}

// LegalCards returns the playable subset of hand, in hand order.
func LegalCards(table, hand []Card, trump uint8, trumpSet bool) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if IsPlayable(table, hand, c, trump, trumpSet) {
			out = append(out, c)
		}
	}
	return out
}

// RecommendOpening returns the card to lead the very first trick with when
// the seat has no anchor card from the bidding: the weakest card under
// trump ordering, so the strong cards stay back.
func RecommendOpening(hand []Card) Card {
	best := EmptyCard
	for _, c := range hand {
		if best == EmptyCard || c.Order(true) < best.Order(true) {
			best = c
		}
	}
	return best
}

// hintingCard picks a card that signals a suit to the partner: the
// strongest off-lead, off-trump card's suit, represented by the cheapest
// card of that suit. Returns EmptyCard when the hand cannot signal (no
// candidate suit, or only a single card in the best suit — throwing it
// would waste the suit instead of advertising it).
func hintingCard(table, available []Card, trump uint8) Card {
	best := EmptyCard
	for _, c := range available {
		if len(table) > 0 && c.Suit() == table[0].Suit() {
			continue
		}
		if c.Suit() == trump {
			continue
		}
		if best == EmptyCard || c.Order(false) > best.Order(false) {
			best = c
		}
	}
	if best == EmptyCard {
		return EmptyCard
	}

	cheapest := EmptyCard
	n := 0
	for _, c := range available {
		if c.Suit() != best.Suit() {
			continue
		}
		n++
		if cheapest == EmptyCard || c.Score(false) < cheapest.Score(false) {
			cheapest = c
		}
	}
	if n <= 1 {
		return EmptyCard
	}
	return cheapest
}

// playChance scores one candidate play: the chance the trick ends up with
// the observer's side, and whether that is through the observer's own card
// or the partner's.
type playChance struct {
	card      Card
	winChance float64
	friend    bool
}

// RecommendPlay picks the card to play, given the cards already on the
// table (in play order), the seats that played them, the seats still to
// play after the observer, and the trump suit.
//
// If the partner is currently winning the trick, the highest fatting card
// is thrown to load it with points. Otherwise every playable card is scored
// against the chance table: cards no upcoming card can beat win outright;
// when the strongest threat is (possibly) the partner's, the play counts as
// a handover with the partner's holding chance; otherwise the play's win
// chance is discounted by the threat's. Ties go to helping oneself over the
// partner. Sub-half chances prefer signalling a suit over wasting points,
// and feed the partner's remembered hint suit when handing over.
func (b *BeliefState) RecommendPlay(hand, table []Card, tableSeats []Seat, upcoming []Seat, trump uint8) Card {
	chances := b.NextCardChances(upcoming)
	playable := LegalCards(table, hand, trump, true)
	if len(playable) == 0 {
		return EmptyCard
	}
	partner := b.Observer.Partner()

	winIdx := WinningCard(table, trump)
	if winIdx >= 0 && tableSeats[winIdx] == partner {
		return maxByFatting(playable, trump)
	}

	moves := make([]playChance, 0, len(playable))
	for _, play := range playable {
		currentlyWins := winIdx < 0 || Beats(play, table[winIdx], trump)

		// Threats: upcoming cards that would beat both the current winner
		// and this candidate. Deck-index order keeps the pick stable.
		var threats []Card
		for _, c := range chances.Present.Cards() {
			if winIdx >= 0 && !Beats(c, table[winIdx], trump) {
				continue
			}
			if Beats(c, play, trump) {
				threats = append(threats, c)
			}
		}

		if len(threats) == 0 {
			wc := 0.0
			if currentlyWins {
				wc = 1.0
			}
			moves = append(moves, playChance{card: play, winChance: wc})
			continue
		}

		best := threats[WinningCard(threats, trump)]
		owners := chances.Owners[best]
		if owners.Has(partner) {
			moves = append(moves, playChance{
				card:      play,
				winChance: chances.Chance[best] / float64(owners.Count()),
				friend:    true,
			})
		} else {
			wc := 0.0
			if currentlyWins {
				wc = 1.0 - chances.Chance[best]
			}
			moves = append(moves, playChance{card: play, winChance: wc})
		}
	}

	// All moves tied for the best win chance.
	bestChance := moves[0].winChance
	for _, m := range moves[1:] {
		if m.winChance > bestChance {
			bestChance = m.winChance
		}
	}
	var bestMoves, ownMoves []playChance
	for _, m := range moves {
		if m.winChance == bestChance {
			bestMoves = append(bestMoves, m)
			if !m.friend {
				ownMoves = append(ownMoves, m)
			}
		}
	}

	// Help yourself before your partner.
	if len(ownMoves) > 0 {
		if bestChance > 0.5 {
			return maxByScore(movesCards(ownMoves), trump)
		}
		if hint := hintingCard(table, playable, trump); hint != EmptyCard {
			return hint
		}
		return minByScore(movesCards(ownMoves), trump)
	}

	if bestChance > 0.5 {
		return maxByFatting(movesCards(bestMoves), trump)
	}

	// Handing over cheaply: prefer the partner's signalled suit if the
	// partner can still hold it and we can follow it.
	fk := b.Entries[partner]
	if fk.Hint != EmptyCard && fk.Could.SuitCards(fk.Hint.Suit()) != 0 {
		var feed []Card
		for _, c := range playable {
			if c.Suit() == fk.Hint.Suit() {
				feed = append(feed, c)
			}
		}
		if len(feed) > 0 {
			return maxByFatting(feed, trump)
		}
	}
	if hint := hintingCard(table, playable, trump); hint != EmptyCard {
		return hint
	}
	return minByFatting(movesCards(bestMoves), trump)
}

func movesCards(moves []playChance) []Card {
	out := make([]Card, len(moves))
	for i, m := range moves {
		out[i] = m.card
	}
	return out
}

func maxByFatting(cards []Card, trump uint8) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.FattingOrder(c.Suit() == trump) > best.FattingOrder(best.Suit() == trump) {
			best = c
		}
	}
	return best
}

func minByFatting(cards []Card, trump uint8) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.FattingOrder(c.Suit() == trump) < best.FattingOrder(best.Suit() == trump) {
			best = c
		}
	}
	return best
}

func maxByScore(cards []Card, trump uint8) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Score(c.Suit() == trump) > best.Score(best.Suit() == trump) {
			best = c
		}
	}
	return best
}

func minByScore(cards []Card, trump uint8) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Score(c.Suit() == trump) < best.Score(best.Suit() == trump) {
			best = c
		}
	}
	return best
}
