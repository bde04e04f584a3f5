package engine

// ChanceTable estimates, for every card that a set of upcoming seats might
// still play to the current trick, the chance that one of them holds it and
// which seats are candidates.
type ChanceTable struct {
	Present CardSet
	Chance  [DeckSize]float64
	Owners  [DeckSize]SeatSet
}

// Has reports whether the table holds an estimate for c.
func (t *ChanceTable) Has(c Card) bool { return t.Present.Has(c) }

// NextCardChances builds a ChanceTable for the seats still to play in the
// current trick, from the observer's beliefs.
//
// Known holdings of an upcoming seat get chance 1. Cards an upcoming seat
// could hold are discounted by how many already-played seats could equally
// hold them: chance = 1 - prevCandidates/(numPrev+1). A card a previous
// seat is known to hold gets chance 0 but keeps its upcoming candidate
// seats, so the caller can still see who was threatening with it.
func (b *BeliefState) NextCardChances(upcoming []Seat) ChanceTable {
	var t ChanceTable

	var upSet SeatSet
	for _, s := range upcoming {
		upSet = upSet.Add(s)
	}

	var upHas, upCould CardSet
	for _, s := range upcoming {
		upHas |= b.Entries[s].Has
		upCould |= b.Entries[s].Could
	}

	var previous []Seat
	for s := Seat(0); s < NumSeats; s++ {
		if !upSet.Has(s) && s != b.Observer {
			previous = append(previous, s)
		}
	}

	for _, c := range upHas.Cards() {
		var owners SeatSet
		for _, s := range upcoming {
			if b.Entries[s].Has.Has(c) {
				owners = owners.Add(s)
			}
		}
		t.Present = t.Present.Add(c)
		t.Chance[c] = 1.0
		t.Owners[c] = owners
	}

	for _, c := range upCould.Cards() {
		if t.Present.Has(c) {
			continue
		}

		prevHolds := false
		prevCandidates := 0
		for _, s := range previous {
			if b.Entries[s].Has.Has(c) {
				prevHolds = true
				continue
			}
			if b.Entries[s].Could.Has(c) {
				prevCandidates++
			}
		}

		var owners SeatSet
		for _, s := range upcoming {
			if b.Entries[s].Could.Has(c) {
				owners = owners.Add(s)
			}
		}

		t.Present = t.Present.Add(c)
		t.Owners[c] = owners
		if prevHolds {
			t.Chance[c] = 0.0
		} else {
			t.Chance[c] = 1.0 - float64(prevCandidates)/float64(len(previous)+1)
		}
	}

	return t
}
