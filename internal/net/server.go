package net

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net"
	"os"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
	"github.com/JaTvoiRabotnik/bushido/internal/match"
	"github.com/google/uuid"
)

// Server hosts a duel between the local duelist and one TCP client. The
// host plays the challenger.
type Server struct {
	LoadoutFile string
	Port        string
	HostProfile string // host's attribute profile name
	Pool        string // draft pool name, "" for the standard pool
	Seed        int64  // 0 seeds from the clock
}

// Run starts the server, waits for a client to join, then runs the duel.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for a challenger's opponent on port %s...\n", s.Port)

	// Accept exactly one connection (the defender)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Opponent connected from %s\n", conn.RemoteAddr())

	// Read the joiner's profile choice
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}

	loadouts, err := duel.ParseLoadoutFile(s.LoadoutFile)
	if err != nil {
		return fmt.Errorf("load loadouts: %w", err)
	}
	hostAttrs, err := loadouts.Profile(s.HostProfile)
	if err != nil {
		return fmt.Errorf("host profile: %w", err)
	}
	joinerProfile := joinMsg.Profile
	if joinerProfile == "" {
		joinerProfile = s.HostProfile
	}
	joinerAttrs, err := loadouts.Profile(joinerProfile)
	if err != nil {
		return fmt.Errorf("joiner profile: %w", err)
	}
	pool, err := loadouts.Pool(s.Pool)
	if err != nil {
		return fmt.Errorf("draft pool: %w", err)
	}

	matchID := uuid.NewString()
	fmt.Printf("Duel %s: host %s, opponent %s\n", matchID, s.HostProfile, joinerProfile)

	// Create a pipe for the host's local connection
	hostConn, hostServerConn := net.Pipe()

	hostCtrl := NewNetworkController(hostServerConn, duel.Challenger)
	joinerCtrl := NewNetworkController(conn, duel.Defender)

	cfg := duel.MatchConfig{
		Challenger:       hostAttrs,
		Defender:         joinerAttrs,
		Pool:             pool,
		ChallengerPicker: hostCtrl,
		DefenderPicker:   joinerCtrl,
	}
	if s.Seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(s.Seed))
	}

	// Run the host's local REPL in a goroutine
	errCh := make(chan error, 2)
	go func() {
		client := &Client{conn: hostConn, playerName: "Challenger"}
		errCh <- client.RunREPL(ctx)
	}()

	// The draft solicits picks over both controllers, so the match is
	// created inside the duel goroutine after the REPL is listening.
	go func() {
		m, err := match.New(cfg, log.NewTextLogger(os.Stdout), hostCtrl, joinerCtrl)
		if err != nil {
			errCh <- fmt.Errorf("start match: %w", err)
			return
		}
		outcome, err := m.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("duel error: %w", err)
			return
		}
		_ = joinerCtrl.SendGameOver(outcome)
		_ = hostCtrl.SendGameOver(outcome)
		errCh <- nil
	}()

	// Wait for either the duel or the REPL to finish
	err = <-errCh
	return err
}
