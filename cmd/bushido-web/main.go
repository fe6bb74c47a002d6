package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaTvoiRabotnik/bushido/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	loadouts := flag.String("loadouts", "loadouts.yaml", "path to loadouts YAML file")
	flag.Parse()

	srv, err := web.NewServer(*loadouts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("bushido web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
