package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/sim"
)

func main() {
	matches := flag.Int("n", 1000, "number of matches to play")
	workers := flag.Int("workers", 4, "concurrent matches")
	seed := flag.Int64("seed", 0, "base seed, 0 for random")
	maxTurns := flag.Int("max-turns", 40, "per-match turn limit")
	loadouts := flag.String("loadouts", "loadouts.yaml", "path to loadouts YAML file")
	chalProfile := flag.String("challenger", "Kensei", "challenger attribute profile")
	defProfile := flag.String("defender", "Kensei", "defender attribute profile")
	pool := flag.String("pool", "", "draft pool name, empty for the standard ten")
	dbPath := flag.String("db", "", "SQLite file for per-match records, empty to skip")
	flag.Parse()

	if err := run(*matches, *workers, *seed, *maxTurns, *loadouts, *chalProfile, *defProfile, *pool, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(matches, workers int, seed int64, maxTurns int, loadoutsFile, chalProfile, defProfile, poolName, dbPath string) error {
	lf, err := duel.ParseLoadoutFile(loadoutsFile)
	if err != nil {
		return err
	}
	chal, err := lf.Profile(chalProfile)
	if err != nil {
		return err
	}
	def, err := lf.Profile(defProfile)
	if err != nil {
		return err
	}
	pool, err := lf.Pool(poolName)
	if err != nil {
		return err
	}

	cfg := sim.Config{
		Matches:     matches,
		Concurrency: workers,
		Challenger:  chal,
		Defender:    def,
		Pool:        pool,
		Seed:        seed,
		MaxTurns:    maxTurns,
	}
	if dbPath != "" {
		store, err := sim.OpenStore(dbPath)
		if err != nil {
			return err
		}
		cfg.Store = store
	}

	runner, err := sim.NewRunner(cfg)
	if err != nil {
		return err
	}
	stats, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s vs %s: %s\n\n", chalProfile, defProfile, stats)
	printTechniqueTable(stats)
	return nil
}

func printTechniqueTable(stats *sim.Stats) {
	names := make([]string, 0, len(stats.TechniquePicks))
	for name := range stats.TechniquePicks {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("technique          picks   wins   win%")
	for _, name := range names {
		picks := stats.TechniquePicks[name]
		wins := stats.TechniqueWins[name]
		rate := 0.0
		if picks > 0 {
			rate = 100 * float64(wins) / float64(picks)
		}
		fmt.Printf("%-18s %5d  %5d  %5.1f\n", name, picks, wins, rate)
	}
}
