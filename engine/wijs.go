package engine

import "sort"

// WijsKind discriminates the declarable combination types.
type WijsKind uint8

const (
	WijsRun         WijsKind = iota // 3+ consecutive ranks in one suit
	WijsMarriage                    // king + queen of one suit
	WijsFourOfAKind                 // all four cards of one rank, jack..ace
)

// Wijs is a single declarable combination found in a hand.
type Wijs struct {
	Kind  WijsKind
	Cards []Card // ascending rank; one suit for runs/marriages, one rank for four-of-a-kinds
}

// Score returns the combination's point value, independent of whether it
// counts under the current trump.
func (w Wijs) Score() int {
	switch w.Kind {
	case WijsRun:
		switch {
		case len(w.Cards) >= 5:
			return 100
		case len(w.Cards) == 4:
			return 50
		case len(w.Cards) == 3:
			return 20
		}
		return 0
	case WijsMarriage:
		return 20
	case WijsFourOfAKind:
		if w.Cards[0].Rank() == RankJack {
			return 200
		}
		return 100
	}
	return 0
}

// CountsIfTrump reports whether the combination scores under the given
// trump suit. Only marriages are trump-dependent.
func (w Wijs) CountsIfTrump(trump uint8) bool {
	if w.Kind == WijsMarriage {
		return w.Cards[0].Suit() == trump
	}
	return true
}

func (w Wijs) String() string {
	switch w.Kind {
	case WijsRun:
		return "run " + w.Cards[0].String() + "-" + w.Cards[len(w.Cards)-1].String()
	case WijsMarriage:
		return "marriage " + suitNames[w.Cards[0].Suit()]
	case WijsFourOfAKind:
		return "four " + rankNames[w.Cards[0].Rank()] + "s"
	}
	return "?"
}

// DetectWijs finds every declarable combination in a hand. The result is
// independent of the hand's order. A card may take part in more than one
// combination (a king can sit in both a run and a marriage).
func DetectWijs(hand []Card) []Wijs {
	cards := append([]Card(nil), hand...)
	sort.Slice(cards, func(i, j int) bool {
		return int(cards[i].Suit())*100+int(cards[i].Rank()) <
			int(cards[j].Suit())*100+int(cards[j].Rank())
	})

	var wijs []Wijs

	// Runs: consecutive ranks within a suit, length 3 or more.
	var run []Card
	for i, c := range cards {
		run = append(run, c)
		broken := i+1 == len(cards) ||
			cards[i+1].Suit() != c.Suit() ||
			cards[i+1].Rank() != c.Rank()+1
		if broken {
			if len(run) >= 3 {
				wijs = append(wijs, Wijs{Kind: WijsRun, Cards: run})
			}
			run = nil
		}
	}

	// Marriages: king + queen of the same suit.
	set := HandSet(cards)
	for s := uint8(0); s < NumSuits; s++ {
		queen := NewCard(s, RankQueen)
		king := NewCard(s, RankKing)
		if set.Has(queen) && set.Has(king) {
			wijs = append(wijs, Wijs{Kind: WijsMarriage, Cards: []Card{queen, king}})
		}
	}

	// Four-of-a-kinds: only jacks and above form a counting quad.
	for r := RankJack; r <= RankAce; r++ {
		var quad []Card
		for _, c := range cards {
			if c.Rank() == r {
				quad = append(quad, c)
			}
		}
		if len(quad) == NumSuits {
			wijs = append(wijs, Wijs{Kind: WijsFourOfAKind, Cards: quad})
		}
	}

	return wijs
}

// WijsScore sums the combinations that count under the given trump suit.
func WijsScore(wijs []Wijs, trump uint8) int {
	sum := 0
	for _, w := range wijs {
		if w.CountsIfTrump(trump) {
			sum += w.Score()
		}
	}
	return sum
}
