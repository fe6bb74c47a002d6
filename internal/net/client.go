package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a duel server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "Challenger" or "Defender"
}

// Connect connects to a server, sends the profile choice, and runs the REPL.
func Connect(ctx context.Context, addr, profile string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with profile choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", Profile: profile}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for the duel to start...")

	client := &Client{conn: conn, playerName: "Defender"}
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(os.Stdin)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose_pick":
			c.renderPick(msg.Candidates)
			idx := c.readChoice(reader, len(msg.Candidates))
			if err := enc.Encode(ClientMessage{Type: "pick", Index: idx}); err != nil {
				return fmt.Errorf("send pick: %w", err)
			}

		case "choose_intent":
			if msg.Error != "" {
				fmt.Printf("Rejected: %s\n", msg.Error)
			}
			c.renderState(msg.State)
			intent := c.readIntent(reader)
			if err := enc.Encode(ClientMessage{Type: "intent", Intent: intent}); err != nil {
				return fmt.Errorf("send intent: %w", err)
			}

		case "game_over":
			fmt.Println()
			fmt.Println("═══════════════════════════════════")
			fmt.Println("         DUEL CONCLUDED")
			fmt.Println("═══════════════════════════════════")
			fmt.Println(msg.Result)
			fmt.Println("═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	rng := ev.Range
	if rng == "" {
		rng = "          "
	}
	for len(rng) < 14 {
		rng += " "
	}
	fmt.Printf("T%-2d %s| %s\n", ev.Turn, rng, ev.Details)
}

func (c *Client) renderPick(candidates []string) {
	fmt.Println("\nDraft pick:")
	for i, name := range candidates {
		fmt.Printf("  %d) %s\n", i+1, name)
	}
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Printf("║  OPPONENT  health %d  momentum %d  balance %d\n",
		opp.Health, opp.Momentum, opp.Balance)
	if known := formatKnown(opp); known != "" {
		fmt.Printf("║    known: %s\n", known)
	}

	fmt.Println("║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Printf("║  YOU       health %d  momentum %d  balance %d\n",
		you.Health, you.Momentum, you.Balance)
	fmt.Printf("║    speed %d  strength %d  defense %d\n",
		deref(you.Speed), deref(you.Strength), deref(you.Defense))
	fmt.Printf("║    active: %s\n", you.Active)
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	fmt.Printf("Turn %d | %s\n", sv.Turn, sv.Range)

	if len(you.Hand) > 0 {
		fmt.Printf("\nHand: ")
		for i, name := range you.Hand {
			fmt.Printf("[%d] %s  ", i+1, name)
		}
		fmt.Println()
	}
}

func formatKnown(dv DuelistView) string {
	var parts []string
	if dv.Speed != nil {
		parts = append(parts, fmt.Sprintf("speed %d", *dv.Speed))
	}
	if dv.Strength != nil {
		parts = append(parts, fmt.Sprintf("strength %d", *dv.Strength))
	}
	if dv.Defense != nil {
		parts = append(parts, fmt.Sprintf("defense %d", *dv.Defense))
	}
	if dv.Active != "" {
		parts = append(parts, fmt.Sprintf("technique %s", dv.Active))
	}
	return strings.Join(parts, ", ")
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// readIntent parses a one-line command into a wire intent. Examples:
//
//	advance attack
//	stay insight speed
//	retreat
//	advance attack tech Kiai
//	stay attack reset
func (c *Client) readIntent(reader *bufio.Reader) *IntentView {
	fmt.Println("\nIntent (movement [attack|defend|insight <fact>] [reset] [tech <name>]):")
	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		words := strings.Fields(strings.TrimSpace(line))
		if len(words) == 0 {
			fmt.Println("Enter at least a movement: advance, retreat, or stay")
			continue
		}
		intent, err := parseCommand(words)
		if err != nil {
			fmt.Println(err)
			continue
		}
		return intent
	}
}

func parseCommand(words []string) (*IntentView, error) {
	intent := &IntentView{}
	i := 0
	switch strings.ToLower(words[0]) {
	case "advance", "retreat", "stay":
		intent.Movement = strings.ToLower(words[0])
		i = 1
	}
	for i < len(words) {
		switch strings.ToLower(words[i]) {
		case "attack", "defend":
			intent.Combat = strings.ToLower(words[i])
			i++
		case "insight":
			if i+1 >= len(words) {
				return nil, fmt.Errorf("insight needs a fact: speed, strength, defense, or technique")
			}
			intent.Insight = strings.ToLower(words[i+1])
			i += 2
		case "tech":
			if i+1 >= len(words) {
				return nil, fmt.Errorf("tech needs a technique name")
			}
			// Technique names may span words ("Tsubame Gaeshi").
			intent.Technique = strings.Join(words[i+1:], " ")
			i = len(words)
		case "reset":
			intent.Reset = true
			i++
		default:
			return nil, fmt.Errorf("unknown word %q", words[i])
		}
	}
	return intent, nil
}

func (c *Client) readChoice(reader *bufio.Reader, count int) int {
	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > count {
			fmt.Printf("Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1 // convert to 0-indexed
	}
}
