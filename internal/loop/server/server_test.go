package server

import (
	"context"
	"testing"
	"time"
)

// waitFor polls cond until it holds or a second has passed
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

// TestRegisterAndUnregister verifies the player count follows registrations
func TestRegisterAndUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(nil)
	go s.Run(ctx)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("duplicate client id %d", a.ID)
	}
	waitFor(t, func() bool { return s.Players() == 2 })

	s.UnregisterClient(a.ID)
	waitFor(t, func() bool { return s.Players() == 1 })

	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel not closed after unregister")
	}
}

// TestTopScoresKeepsBestPerSession verifies the leaderboard ordering
func TestTopScoresKeepsBestPerSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(nil)
	go s.Run(ctx)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	c := s.RegisterClient("carol")
	waitFor(t, func() bool { return s.Players() == 3 })

	s.ReportScore(a.ID, 40)
	s.ReportScore(a.ID, 20) // Lower run does not replace the best
	s.ReportScore(b.ID, 90)
	s.ReportScore(c.ID, 40)
	waitFor(t, func() bool { return len(s.TopScores(10)) == 3 })

	top := s.TopScores(2)
	if len(top) != 2 {
		t.Fatalf("TopScores(2) returned %d entries", len(top))
	}
	if top[0].Username != "bob" || top[0].Score != 90 {
		t.Errorf("first = %+v, want bob 90", top[0])
	}
	if top[1].Username != "alice" || top[1].Score != 40 {
		t.Errorf("second = %+v, want alice 40 (earlier session wins ties)", top[1])
	}
}

// TestShutdownNotifiesSessions verifies sessions receive the shutdown event
func TestShutdownNotifiesSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(nil)
	go s.Run(ctx)

	h := s.RegisterClient("alice")
	waitFor(t, func() bool { return s.Players() == 1 })

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) >= 5*time.Second {
		t.Fatal("Shutdown waited for the full timeout")
	}
	if s.Players() != 0 {
		t.Fatalf("%d players left after shutdown", s.Players())
	}
}
