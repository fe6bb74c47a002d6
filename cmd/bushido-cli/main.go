package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	bushidonet "github.com/JaTvoiRabotnik/bushido/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  bushido host [--profile NAME] [--pool NAME] [--port P] [--loadouts FILE] [--seed N]")
	fmt.Println("  bushido join [--profile NAME] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a duel server and fight as the challenger")
	fmt.Println("  join    Connect to a duel server and fight as the defender")
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	profile := fs.String("profile", "Kensei", "attribute profile to use (from loadouts.yaml)")
	pool := fs.String("pool", "", "draft pool name, empty for the standard ten")
	port := fs.String("port", "7777", "TCP port to listen on")
	loadouts := fs.String("loadouts", "loadouts.yaml", "path to loadouts file")
	seed := fs.Int64("seed", 0, "draft seed, 0 for random")
	fs.Parse(args)

	srv := &bushidonet.Server{
		LoadoutFile: *loadouts,
		Port:        *port,
		HostProfile: *profile,
		Pool:        *pool,
		Seed:        *seed,
	}

	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	profile := fs.String("profile", "", "attribute profile to use, empty to mirror the host")
	addr := fs.String("addr", "localhost:7777", "server address to connect to")
	fs.Parse(args)

	if err := bushidonet.Connect(context.Background(), *addr, *profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
