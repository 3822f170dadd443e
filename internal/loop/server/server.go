// Package server keeps track of the game sessions running in one process.
//
// Every session plays its own independent game; the server only knows who is
// connected, collects final scores for the leaderboard shown on the menu and
// tells every session when the process is shutting down.
package server

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GameServer is the interface sessions use to talk to the server.
// Decouples the game loop from the concrete Server for testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID, score int)
	TopScores(n int) []TopScoreEntry
	Players() int
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a session's registration with the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the session
}

// ClientEvent represents an event sent from server to session.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

type scoreReport struct {
	clientID int
	score    int
}

// Server tracks registered sessions and their best scores.
type Server struct {
	clients      map[int]*ClientHandle
	best         map[int]TopScoreEntry
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	scoreCh      chan scoreReport
	mu           sync.RWMutex
	logger       *log.Logger
}

// NewServer creates a new server. A nil logger discards log output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		best:         make(map[int]TopScoreEntry),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		scoreCh:      make(chan scoreReport, 64),
		logger:       logger,
	}
}

// Run processes registrations and score reports. Blocks until the context
// is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			n := len(s.clients)
			s.mu.Unlock()
			s.logger.Info("session registered", "id", handle.ID, "user", handle.Username, "players", n)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			n := len(s.clients)
			s.mu.Unlock()
			s.logger.Info("session unregistered", "id", clientID, "players", n)
		case r := <-s.scoreCh:
			s.recordScore(r)
		}
	}
}

func (s *Server) recordScore(r scoreReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[r.clientID]
	if !ok {
		return
	}
	if prev, ok := s.best[r.clientID]; ok && prev.Score >= r.score {
		return
	}
	s.best[r.clientID] = TopScoreEntry{Username: handle.Username, Score: r.score, clientID: r.clientID}
}

// Shutdown notifies all connected sessions and waits for them to disconnect
// (up to the given timeout). The caller should cancel the Run context after
// Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new session with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a session from the server. Its best score stays
// on the leaderboard.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportScore records a finished run. Reports are dropped when the server
// is saturated.
func (s *Server) ReportScore(clientID, score int) {
	select {
	case s.scoreCh <- scoreReport{clientID: clientID, score: score}:
	default:
	}
}

// TopScores returns up to n best scores, highest first.
func (s *Server) TopScores(n int) []TopScoreEntry {
	s.mu.RLock()
	entries := make([]TopScoreEntry, 0, len(s.best))
	for _, e := range s.best {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].clientID < entries[j].clientID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Players returns the number of connected sessions.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
