// daybt-montecarlo runs the trade-shuffle bootstrap standalone, against a
// comma-separated list of realized trade PnLs (typically extracted from a
// prior daybt-run result document), and prints the percentile curves and
// risk summary as JSON.
//
// Usage:
//
//	daybt-montecarlo -pnls 120,-45,80,-200 -init-cash 10000 -simulations 2000
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"daybt/internal/domain"
	"daybt/internal/montecarlo"
)

func main() {
	pnlsFlag := flag.String("pnls", "", "comma-separated list of realized trade PnLs (required)")
	initCash := flag.Float64("init-cash", 10000, "starting cash for each simulated equity curve")
	simulations := flag.Int("simulations", 1000, fmt.Sprintf("number of simulations (%d-%d)", montecarlo.MinSimulations, montecarlo.MaxSimulations))
	seed := flag.Int64("seed", 0, "deterministic RNG seed; 0 (default) draws a fresh non-reproducible seed")
	flag.Parse()

	if *pnlsFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: daybt-montecarlo -pnls 120,-45,80,-200 [-init-cash 10000] [-simulations 1000] [-seed N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	pnls, err := parsePnLs(*pnlsFlag)
	if err != nil {
		log.Fatalf("parsing -pnls: %v", err)
	}

	var result domain.MonteCarloResult
	if *seed != 0 {
		result, err = montecarlo.RunSeeded(pnls, *initCash, *simulations, uint64(*seed))
	} else {
		result, err = montecarlo.Run(pnls, *initCash, *simulations)
	}
	if err != nil {
		log.Fatalf("running monte carlo: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encoding result: %v", err)
	}
	fmt.Println(string(out))
}

func parsePnLs(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	pnls := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pnl %q: %w", p, err)
		}
		pnls[i] = v
	}
	return pnls, nil
}
