package engine

import (
	"math/rand"
	"testing"
)

func cards(pairs ...[2]uint8) []Card {
	out := make([]Card, len(pairs))
	for i, p := range pairs {
		out[i] = NewCard(p[0], p[1])
	}
	return out
}

// TestDetectRun verifies run detection and scoring by length.
func TestDetectRun(t *testing.T) {
	tests := []struct {
		name  string
		hand  []Card
		want  int // score under clubs trump
		kinds int
	}{
		{
			name: "three in a row",
			hand: cards([2]uint8{SuitClubs, RankSeven}, [2]uint8{SuitClubs, RankEight}, [2]uint8{SuitClubs, RankNine}),
			want: 20, kinds: 1,
		},
		{
			name: "four in a row",
			hand: cards([2]uint8{SuitSpades, RankTen}, [2]uint8{SuitSpades, RankJack}, [2]uint8{SuitSpades, RankQueen}, [2]uint8{SuitSpades, RankKing}),
			want: 50, kinds: 1,
		},
		{
			name: "five in a row",
			hand: cards([2]uint8{SuitHearts, RankSeven}, [2]uint8{SuitHearts, RankEight}, [2]uint8{SuitHearts, RankNine}, [2]uint8{SuitHearts, RankTen}, [2]uint8{SuitHearts, RankJack}),
			want: 100, kinds: 1,
		},
		{
			name: "gap breaks the run",
			hand: cards([2]uint8{SuitClubs, RankSeven}, [2]uint8{SuitClubs, RankEight}, [2]uint8{SuitClubs, RankTen}),
			want: 0, kinds: 0,
		},
		{
			name: "suit change breaks the run",
			hand: cards([2]uint8{SuitClubs, RankSeven}, [2]uint8{SuitClubs, RankEight}, [2]uint8{SuitSpades, RankNine}),
			want: 0, kinds: 0,
		},
	}
	for _, tt := range tests {
		wijs := DetectWijs(tt.hand)
		if len(wijs) != tt.kinds {
			t.Errorf("%s: got %d combinations, want %d", tt.name, len(wijs), tt.kinds)
			continue
		}
		if got := WijsScore(wijs, SuitClubs); got != tt.want {
			t.Errorf("%s: score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestDetectMarriage verifies the marriage is found in any suit but only
// scores in trump.
func TestDetectMarriage(t *testing.T) {
	hand := cards([2]uint8{SuitSpades, RankQueen}, [2]uint8{SuitSpades, RankKing}, [2]uint8{SuitHearts, RankAce})
	wijs := DetectWijs(hand)
	if len(wijs) != 1 || wijs[0].Kind != WijsMarriage {
		t.Fatalf("got %v, want one marriage", wijs)
	}
	// Listed regardless of trump, counting only when spades are trump.
	if wijs[0].CountsIfTrump(SuitHearts) {
		t.Error("plain marriage must not count")
	}
	if !wijs[0].CountsIfTrump(SuitSpades) {
		t.Error("trump marriage must count")
	}
	if got := WijsScore(wijs, SuitHearts); got != 0 {
		t.Errorf("score under hearts = %d, want 0", got)
	}
	if got := WijsScore(wijs, SuitSpades); got != 20 {
		t.Errorf("score under spades = %d, want 20", got)
	}
}

// TestDetectFourOfAKind verifies quads of jack and above, and that lower
// quads are ignored.
func TestDetectFourOfAKind(t *testing.T) {
	jacks := cards([2]uint8{SuitClubs, RankJack}, [2]uint8{SuitSpades, RankJack}, [2]uint8{SuitHearts, RankJack}, [2]uint8{SuitDiamonds, RankJack})
	wijs := DetectWijs(jacks)
	if len(wijs) != 1 || wijs[0].Kind != WijsFourOfAKind {
		t.Fatalf("got %v, want one four-of-a-kind", wijs)
	}
	if got := wijs[0].Score(); got != 200 {
		t.Errorf("four jacks score = %d, want 200", got)
	}

	aces := cards([2]uint8{SuitClubs, RankAce}, [2]uint8{SuitSpades, RankAce}, [2]uint8{SuitHearts, RankAce}, [2]uint8{SuitDiamonds, RankAce})
	wijs = DetectWijs(aces)
	if len(wijs) != 1 || wijs[0].Score() != 100 {
		t.Fatalf("four aces: got %v, want one combo worth 100", wijs)
	}

	nines := cards([2]uint8{SuitClubs, RankNine}, [2]uint8{SuitSpades, RankNine}, [2]uint8{SuitHearts, RankNine}, [2]uint8{SuitDiamonds, RankNine})
	if wijs = DetectWijs(nines); len(wijs) != 0 {
		t.Fatalf("four nines must not form a combination, got %v", wijs)
	}
}

// TestWijsOverlap verifies a card can sit in a run and a marriage at once.
func TestWijsOverlap(t *testing.T) {
	hand := cards(
		[2]uint8{SuitHearts, RankJack},
		[2]uint8{SuitHearts, RankQueen},
		[2]uint8{SuitHearts, RankKing},
	)
	wijs := DetectWijs(hand)
	if len(wijs) != 2 {
		t.Fatalf("got %d combinations, want run + marriage", len(wijs))
	}
	if got := WijsScore(wijs, SuitHearts); got != 40 {
		t.Errorf("score under hearts = %d, want 40", got)
	}
	if got := WijsScore(wijs, SuitClubs); got != 20 {
		t.Errorf("score under clubs = %d, want 20 (run only)", got)
	}
}

// TestDetectWijsOrderIndependent verifies detection ignores hand order.
func TestDetectWijsOrderIndependent(t *testing.T) {
	hand := cards(
		[2]uint8{SuitClubs, RankNine},
		[2]uint8{SuitClubs, RankSeven},
		[2]uint8{SuitSpades, RankKing},
		[2]uint8{SuitClubs, RankEight},
		[2]uint8{SuitSpades, RankQueen},
		[2]uint8{SuitHearts, RankAce},
		[2]uint8{SuitClubs, RankTen},
		[2]uint8{SuitDiamonds, RankAce},
	)
	base := WijsScore(DetectWijs(hand), SuitSpades)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Card(nil), hand...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := WijsScore(DetectWijs(shuffled), SuitSpades); got != base {
			t.Fatalf("shuffle %d: score = %d, want %d", i, got, base)
		}
	}
	// The sample hand: 7-8-9-10 run (50) + spades marriage (20).
	if base != 70 {
		t.Fatalf("sample hand score = %d, want 70", base)
	}
}
