package engine

// Belief is what one observer holds about one seat's hand: cards the seat
// is known to hold, cards it could still hold, and the first off-suit
// signal ("hint") seen from that seat.
type Belief struct {
	Has   CardSet
	Could CardSet
	Hint  Card // EmptyCard until a hint is observed
}

// BeliefState tracks, from a single seat's point of view, what every seat
// (including the observer itself) may hold. Each seat carries its own
// BeliefState and feeds it the public events of the round; the entries only
// ever shrink between deals.
type BeliefState struct {
	Observer Seat
	Entries  [NumSeats]Belief
}

// Reset clears the state for a new deal: every seat could hold any card,
// nothing is known, no hints.
func (b *BeliefState) Reset() {
	for i := range b.Entries {
		b.Entries[i] = Belief{Could: FullDeck, Hint: EmptyCard}
	}
}

// NoteBeginPlay folds in the observer's own hand once play starts: no other
// seat can hold the observer's cards, and the observer's own entry is
// pinned to exactly its hand.
func (b *BeliefState) NoteBeginPlay(hand []Card) {
	own := HandSet(hand)
	for i := range b.Entries {
		b.Entries[i].Could &^= own
	}
	self := &b.Entries[b.Observer]
	self.Could = own
	self.Has = own
}

// NoteWijsShown records a declared combination: the shown cards are known
// holdings. A counting run or marriage additionally proves the declarer
// does NOT hold the same-suit cards adjacent to the declared span (they
// would have been part of the combination).
func (b *BeliefState) NoteWijsShown(subject Seat, wijs []Wijs, trump uint8) {
	entry := &b.Entries[subject]
	for _, w := range wijs {
		for _, c := range w.Cards {
			entry.Has = entry.Has.Add(c)
		}
		if (w.Kind == WijsRun || w.Kind == WijsMarriage) && w.CountsIfTrump(trump) {
			first := w.Cards[0]
			last := w.Cards[len(w.Cards)-1]
			if first.Rank() > RankSeven {
				entry.Could = entry.Could.Remove(NewCard(first.Suit(), first.Rank()-1))
			}
			if last.Rank() < RankAce {
				entry.Could = entry.Could.Remove(NewCard(last.Suit(), last.Rank()+1))
			}
		}
	}
}

// NoteCardPlayed records a played card. lead is the first card of the
// current trick (the played card itself when subject led). Failing to
// follow the led suit without trumping in proves the subject is void in
// that suit, except for the trump jack which never has to follow; a
// partner's first such discard is remembered as a hint, unless it is a ten
// (tens are hoarded for their points, not signalled with).
func (b *BeliefState) NoteCardPlayed(subject Seat, card, lead Card, trump uint8) {
	for i := range b.Entries {
		b.Entries[i].Has = b.Entries[i].Has.Remove(card)
		b.Entries[i].Could = b.Entries[i].Could.Remove(card)
	}

	if card.Suit() == lead.Suit() {
		return
	}
	if card.Suit() == trump && lead.Suit() != trump {
		// Trumped in; says nothing about the led suit.
		return
	}

	entry := &b.Entries[subject]
	if subject == b.Observer.Partner() && entry.Hint == EmptyCard && card.Rank() != RankTen {
		entry.Hint = card
	}
	for r := uint8(0); r < NumRanks; r++ {
		c := NewCard(lead.Suit(), r)
		if c.Rank() == RankJack && c.Suit() == trump {
			continue
		}
		entry.Could = entry.Could.Remove(c)
		entry.Has = entry.Has.Remove(c)
	}
}
