package engine

// Rules parameterizes a match. The defaults are the standard house rules;
// they are kept in one value so simulations can vary them.
type Rules struct {
	// StartScore is the countdown score each partnership begins with. The
	// first partnership to reach zero or below wins the match.
	StartScore int

	// MinBid is the lowest valid bid. Bids are multiples of BidStep.
	MinBid  int
	BidStep int

	// MetenDivisor converts a bid into the meten moved on the scoreboard:
	// meten = bid / MetenDivisor, truncated.
	MetenDivisor int

	// PointsAvailable is the total card-point pool in a round, including
	// the last-trick bonus. Used by the bid estimator.
	PointsAvailable int

	// DealPacket is the number of cards handed to a seat at a time.
	DealPacket int
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		StartScore:      12,
		MinBid:          100,
		BidStep:         10,
		MetenDivisor:    50,
		PointsAvailable: 141,
		DealPacket:      4,
	}
}
