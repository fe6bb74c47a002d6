package main

import (
	"flag"
	"fmt"
	"os"

	bushidomcp "github.com/JaTvoiRabotnik/bushido/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	loadouts := flag.String("loadouts", "loadouts.yaml", "path to loadouts YAML file")
	port := flag.String("port", "7778", "TCP port for human player connection")
	flag.Parse()

	bushidomcp.SetLoadoutFile(*loadouts)
	bushidomcp.SetPort(*port)

	s := server.NewMCPServer("bushido", "1.0.0")
	bushidomcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
