// cmd/pandoer-sim/main.go
//
// Headless self-play driver: four automated seats play full matches and the
// aggregate results are printed. Useful for eyeballing how the estimator
// heuristics behave over many deals.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/CodeStix/bieden/engine"
)

const maxRoundsPerMatch = 200

type stats struct {
	matches   int
	team0Wins int
	rounds    int
	bidsMade  int
	bidsWon   int
	totalBid  int
	stuck     int
}

func main() {
	matches := flag.Int("matches", 100, "number of matches to play")
	seed := flag.Uint64("seed", 1, "seed of the first match; match n uses seed+n")
	verbose := flag.Bool("v", false, "log every round result")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var st stats
	for i := 0; i < *matches; i++ {
		playMatch(*seed+uint64(i), &st)
	}
	report(st)
	if st.stuck > 0 {
		os.Exit(1)
	}
}

func playMatch(seed uint64, st *stats) {
	g := engine.NewGame(seed, engine.DefaultRules())
	st.matches++

	for round := 0; round < maxRoundsPerMatch; round++ {
		info, ok := playRound(g)
		if !ok {
			logrus.WithField("seed", seed).Error("round did not finish")
			st.stuck++
			return
		}
		st.rounds++
		st.bidsMade++
		st.totalBid += info.Bid
		if info.Won {
			st.bidsWon++
		}
		logrus.WithFields(logrus.Fields{
			"seed":   seed,
			"bidder": info.Bidder,
			"bid":    info.Bid,
			"won":    info.Won,
			"score":  info.Score,
		}).Debug("round over")

		if info.MatchOver {
			if info.WeWonMatch {
				st.team0Wins++
			}
			return
		}
		if err := g.NewRound(); err != nil {
			logrus.WithError(err).WithField("seed", seed).Error("new round failed")
			st.stuck++
			return
		}
	}
	logrus.WithField("seed", seed).Error("match did not finish")
	st.stuck++
}

// playRound drives one round with every seat following the recommendations.
// Returns the round result, or ok=false when the round never settled.
func playRound(g *engine.Game) (engine.GameOverInfo, bool) {
	for step := 0; step < 4*engine.DeckSize; step++ {
		switch g.Phase {
		case engine.PhaseBidding:
			bid, pass, _ := g.RecommendTurn()
			if _, err := g.SubmitBid(g.Turn, bid, pass); err != nil {
				logrus.WithError(err).Error("recommended offer rejected")
				return engine.GameOverInfo{}, false
			}
		case engine.PhasePlaying:
			_, _, card := g.RecommendTurn()
			res, err := g.PlayCard(g.Turn, card)
			if err != nil {
				logrus.WithError(err).Error("recommended card rejected")
				return engine.GameOverInfo{}, false
			}
			if res.RoundOver {
				return *res.GameOver, true
			}
		default:
			return engine.GameOverInfo{}, false
		}
	}
	return engine.GameOverInfo{}, false
}

func report(st stats) {
	avgBid := 0
	if st.bidsMade > 0 {
		avgBid = st.totalBid / st.bidsMade
	}
	logrus.WithFields(logrus.Fields{
		"matches":   st.matches,
		"team0Wins": st.team0Wins,
		"rounds":    st.rounds,
		"avgBid":    avgBid,
		"bidWon%":   percent(st.bidsWon, st.bidsMade),
		"stuck":     st.stuck,
	}).Info("simulation finished")
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return 100 * n / total
}
