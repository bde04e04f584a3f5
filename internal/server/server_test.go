// internal/server/server_test.go
package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStix/bieden/engine"
)

func TestScoreDelta(t *testing.T) {
	cases := []struct {
		name   string
		bidder engine.Seat
		won    bool
		delta  int
		ok     bool
	}{
		{"own side makes its bid", 0, true, -3, true},
		{"partner makes the bid", 2, true, -3, true},
		{"own side fails", 0, false, 3, true},
		{"opponents fail", 1, false, -3, true},
		{"opponents make their bid", 3, true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			delta, ok := scoreDelta(engine.GameOverInfo{Bidder: tc.bidder, Won: tc.won, Meten: 3})
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.delta, delta)
			}
		})
	}
}

func TestLeaderboardUnavailableWithoutDatabase(t *testing.T) {
	s := New(0)
	mux := http.NewServeMux()
	s.Routes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := New(50 * time.Millisecond)
	mux := http.NewServeMux()
	s.Routes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
