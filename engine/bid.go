package engine

// BidRecommendation is the bid estimator's verdict on a hand.
type BidRecommendation struct {
	Trump     uint8 // suit to name as trump
	Bid       int   // recommended bid, a multiple of Rules.BidStep
	Anchor    Card  // card to lead with to fix the trump suit
	WijsScore int   // declarable points under the recommended trump
}

// RecommendBid estimates the best bid for a hand, or ok=false if the hand
// is not worth the minimum bid.
//
// For each candidate trump suit, the estimate is the hand's declarable
// combination score plus expected trick points: each trump or ace counts as
// a winning trick worth an eighth of the point pool, minus one trick each
// for a missing trump jack and trump nine. The total is floored to a bid
// step; the best suit wins, lowest suit index on ties.
//
// The anchor is the card to lead first so the named suit becomes trump:
// the nine when jack and nine are both held (the jack stays back as the
// highest trump), the jack without the nine, the ace with the nine but no
// jack, otherwise the cheapest trump held.
func RecommendBid(rules Rules, hand []Card) (rec BidRecommendation, ok bool) {
	wijs := DetectWijs(hand)

	bestBid := 0
	bestSuit := uint8(0)
	first := true
	for trump := uint8(0); trump < NumSuits; trump++ {
		wijsScore := WijsScore(wijs, trump)

		winningTricks := 0
		for _, c := range hand {
			if c.Suit() == trump || c.Rank() == RankAce {
				winningTricks++
			}
		}
		set := HandSet(hand)
		if !set.Has(NewCard(trump, RankJack)) {
			winningTricks--
		}
		if !set.Has(NewCard(trump, RankNine)) {
			winningTricks--
		}

		points := float64(winningTricks) * float64(rules.PointsAvailable) / 8.0
		bid := int(float64(wijsScore)+points) / rules.BidStep * rules.BidStep

		if first || bid > bestBid {
			first = false
			bestBid = bid
			bestSuit = trump
		}
	}

	if bestBid < rules.MinBid {
		return BidRecommendation{}, false
	}

	set := HandSet(hand)
	trumpCards := set.SuitCards(bestSuit)
	jack := trumpCards.Has(NewCard(bestSuit, RankJack))
	nine := trumpCards.Has(NewCard(bestSuit, RankNine))

	anchor := EmptyCard
	switch {
	case jack && nine:
		anchor = NewCard(bestSuit, RankNine)
	case jack:
		anchor = NewCard(bestSuit, RankJack)
	case nine && trumpCards.Has(NewCard(bestSuit, RankAce)):
		anchor = NewCard(bestSuit, RankAce)
	default:
		for _, c := range trumpCards.Cards() {
			if anchor == EmptyCard || c.Score(true) < anchor.Score(true) {
				anchor = c
			}
		}
	}

	return BidRecommendation{
		Trump:     bestSuit,
		Bid:       bestBid,
		Anchor:    anchor,
		WijsScore: WijsScore(wijs, bestSuit),
	}, true
}
