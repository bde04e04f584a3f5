package engine

import "testing"

// TestCardSuitRank verifies Suit/Rank roundtrip for every card in the deck.
func TestCardSuitRank(t *testing.T) {
	for s := uint8(0); s < NumSuits; s++ {
		for r := uint8(0); r < NumRanks; r++ {
			c := NewCard(s, r)
			if c.Suit() != s {
				t.Errorf("NewCard(%d,%d).Suit() = %d, want %d", s, r, c.Suit(), s)
			}
			if c.Rank() != r {
				t.Errorf("NewCard(%d,%d).Rank() = %d, want %d", s, r, c.Rank(), r)
			}
		}
	}
}

// TestNewCardClamps verifies out-of-range inputs clamp instead of panicking.
func TestNewCardClamps(t *testing.T) {
	if c := NewCard(7, 3); c != Card(0) {
		t.Errorf("NewCard(7,3) = %v, want clamped card 0", c)
	}
	if c := NewCard(0, 12); c != Card(0) {
		t.Errorf("NewCard(0,12) = %v, want clamped card 0", c)
	}
}

// TestOrderTotal verifies Order is defined and distinct for all ranks in
// both trump states.
func TestOrderTotal(t *testing.T) {
	for _, trump := range []bool{false, true} {
		seen := make(map[uint8]uint8)
		for r := uint8(0); r < NumRanks; r++ {
			c := NewCard(SuitClubs, r)
			o := c.Order(trump)
			if o >= NumRanks {
				t.Errorf("Order(trump=%v) of rank %d = %d, out of range", trump, r, o)
			}
			if prev, dup := seen[o]; dup {
				t.Errorf("Order(trump=%v) %d shared by ranks %d and %d", trump, o, prev, r)
			}
			seen[o] = r
		}
	}
}

// TestOrderRanking verifies the trump suit promotes jack and nine.
func TestOrderRanking(t *testing.T) {
	tests := []struct {
		rank  uint8
		trump bool
		want  uint8
	}{
		{RankSeven, false, 0},
		{RankTen, false, 3},
		{RankAce, false, 7},
		{RankSeven, true, 0},
		{RankTen, true, 2},
		{RankAce, true, 5},
		{RankNine, true, 6},
		{RankJack, true, 7},
	}
	for _, tt := range tests {
		c := NewCard(SuitHearts, tt.rank)
		if got := c.Order(tt.trump); got != tt.want {
			t.Errorf("Order(rank=%d, trump=%v) = %d, want %d", tt.rank, tt.trump, got, tt.want)
		}
	}
}

// TestScoreValues verifies the point table, including the trump jack and
// trump nine premiums.
func TestScoreValues(t *testing.T) {
	tests := []struct {
		rank  uint8
		trump bool
		want  int
	}{
		{RankSeven, false, 0},
		{RankEight, false, 0},
		{RankNine, false, 0},
		{RankTen, false, 10},
		{RankJack, false, 1},
		{RankQueen, false, 2},
		{RankKing, false, 3},
		{RankAce, false, 11},
		{RankNine, true, 14},
		{RankJack, true, 20},
		{RankTen, true, 10},
		{RankAce, true, 11},
	}
	for _, tt := range tests {
		c := NewCard(SuitSpades, tt.rank)
		if got := c.Score(tt.trump); got != tt.want {
			t.Errorf("Score(rank=%d, trump=%v) = %d, want %d", tt.rank, tt.trump, got, tt.want)
		}
	}
}

// TestFattingOrder verifies trump cards are always thrown before plain
// cards and the plain ten is kept longest.
func TestFattingOrder(t *testing.T) {
	for r := uint8(0); r < NumRanks; r++ {
		c := NewCard(SuitClubs, r)
		if c.FattingOrder(true) >= c.FattingOrder(false) {
			t.Errorf("rank %d: trump fatting %d should precede plain %d",
				r, c.FattingOrder(true), c.FattingOrder(false))
		}
	}
	ten := NewCard(SuitClubs, RankTen)
	for r := uint8(0); r < NumRanks; r++ {
		if r == RankTen {
			continue
		}
		c := NewCard(SuitClubs, r)
		if c.FattingOrder(false) >= ten.FattingOrder(false) {
			t.Errorf("plain ten should outlast rank %d", r)
		}
	}
}

// TestBeats verifies trump supremacy and within-suit ordering.
func TestBeats(t *testing.T) {
	trump := SuitHearts
	tests := []struct {
		a, b Card
		want bool
	}{
		{NewCard(SuitHearts, RankSeven), NewCard(SuitClubs, RankAce), true},
		{NewCard(SuitClubs, RankAce), NewCard(SuitHearts, RankSeven), false},
		{NewCard(SuitHearts, RankJack), NewCard(SuitHearts, RankNine), true},
		{NewCard(SuitHearts, RankNine), NewCard(SuitHearts, RankAce), true},
		{NewCard(SuitClubs, RankAce), NewCard(SuitClubs, RankKing), true},
		{NewCard(SuitClubs, RankKing), NewCard(SuitClubs, RankAce), false},
	}
	for _, tt := range tests {
		if got := Beats(tt.a, tt.b, trump); got != tt.want {
			t.Errorf("Beats(%s, %s, hearts) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestWinningCard verifies trick resolution: a lone trump ace takes a
// clubs-led trick.
func TestWinningCard(t *testing.T) {
	trump := SuitHearts
	trick := []Card{
		NewCard(SuitClubs, RankEight),
		NewCard(SuitHearts, RankAce),
		NewCard(SuitClubs, RankNine),
		NewCard(SuitClubs, RankKing),
	}
	if got := WinningCard(trick, trump); got != 1 {
		t.Fatalf("WinningCard = index %d, want 1 (trump ace)", got)
	}

	// No trump played: highest card of the led suit wins, off-suit cards
	// never do.
	trick = []Card{
		NewCard(SuitClubs, RankEight),
		NewCard(SuitSpades, RankAce),
		NewCard(SuitClubs, RankKing),
		NewCard(SuitClubs, RankSeven),
	}
	if got := WinningCard(trick, trump); got != 2 {
		t.Fatalf("WinningCard = index %d, want 2 (king of clubs)", got)
	}

	// Trump led: trump order decides.
	trick = []Card{
		NewCard(SuitHearts, RankAce),
		NewCard(SuitHearts, RankNine),
		NewCard(SuitHearts, RankJack),
		NewCard(SuitHearts, RankTen),
	}
	if got := WinningCard(trick, trump); got != 2 {
		t.Fatalf("WinningCard = index %d, want 2 (trump jack)", got)
	}

	if got := WinningCard(nil, trump); got != -1 {
		t.Fatalf("WinningCard(empty) = %d, want -1", got)
	}
}

// TestSeatHelpers verifies partner/next/team arithmetic.
func TestSeatHelpers(t *testing.T) {
	for s := Seat(0); s < NumSeats; s++ {
		if s.Partner() != (s+2)%4 {
			t.Errorf("Seat(%d).Partner() = %d", s, s.Partner())
		}
		if s.Partner().Partner() != s {
			t.Errorf("Partner is not an involution for seat %d", s)
		}
		if s.Team() != s.Partner().Team() {
			t.Errorf("seat %d and partner on different teams", s)
		}
	}
}

// TestCardSet verifies set arithmetic used by the belief tracker.
func TestCardSet(t *testing.T) {
	var cs CardSet
	a := NewCard(SuitClubs, RankSeven)
	b := NewCard(SuitDiamonds, RankAce)
	cs = cs.Add(a).Add(b)
	if !cs.Has(a) || !cs.Has(b) {
		t.Fatal("Add/Has mismatch")
	}
	if cs.Count() != 2 {
		t.Fatalf("Count = %d, want 2", cs.Count())
	}
	cs = cs.Remove(a)
	if cs.Has(a) {
		t.Fatal("Remove failed")
	}
	if cs.Has(EmptyCard) {
		t.Fatal("EmptyCard must never be a member")
	}
	if FullDeck.Count() != DeckSize {
		t.Fatalf("FullDeck.Count() = %d", FullDeck.Count())
	}
	hearts := FullDeck.SuitCards(SuitHearts)
	if hearts.Count() != NumRanks {
		t.Fatalf("SuitCards(hearts).Count() = %d", hearts.Count())
	}
	for _, c := range hearts.Cards() {
		if c.Suit() != SuitHearts {
			t.Errorf("SuitCards returned %s", c)
		}
	}
}

// TestSortHand verifies presentation order alternates suit colours and the
// diamonds-for-hearts fallback.
func TestSortHand(t *testing.T) {
	hand := []Card{
		NewCard(SuitDiamonds, RankAce),
		NewCard(SuitClubs, RankSeven),
		NewCard(SuitHearts, RankKing),
		NewCard(SuitSpades, RankTen),
		NewCard(SuitClubs, RankAce),
	}
	SortHand(hand)
	want := []Card{
		NewCard(SuitClubs, RankSeven),
		NewCard(SuitClubs, RankAce),
		NewCard(SuitHearts, RankKing),
		NewCard(SuitSpades, RankTen),
		NewCard(SuitDiamonds, RankAce),
	}
	for i := range want {
		if hand[i] != want[i] {
			t.Fatalf("SortHand[%d] = %s, want %s", i, hand[i], want[i])
		}
	}

	// Without hearts, diamonds move between the black suits.
	hand = []Card{
		NewCard(SuitSpades, RankTen),
		NewCard(SuitDiamonds, RankAce),
		NewCard(SuitClubs, RankSeven),
	}
	SortHand(hand)
	want = []Card{
		NewCard(SuitClubs, RankSeven),
		NewCard(SuitDiamonds, RankAce),
		NewCard(SuitSpades, RankTen),
	}
	for i := range want {
		if hand[i] != want[i] {
			t.Fatalf("no-hearts SortHand[%d] = %s, want %s", i, hand[i], want[i])
		}
	}
}
