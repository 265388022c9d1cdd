// Command threadme-bench measures thread launch/join and barrier costs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

func main() {
	configFlag := flag.String("config", "", "YAML file with benchmark settings")
	threadsFlag := flag.Int("threads", 0, "Threads per round (overrides config)")
	roundsFlag := flag.Int("rounds", 0, "Spawn/join rounds (overrides config)")
	participantsFlag := flag.Int("participants", 0, "Barrier participants (overrides config)")
	generationsFlag := flag.Int("generations", 0, "Barrier generations (overrides config)")
	limitFlag := flag.Int("limit", -1, "Max live threads, 0 = unlimited (overrides config)")
	pinFlag := flag.Bool("pin", false, "Pin threads to CPUs round-robin")
	ciFlag := flag.Bool("ci", false, "CI mode: disable the progress bar")
	flag.Parse()

	enableWindowsANSI()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		_, _ = red.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *threadsFlag > 0 {
		cfg.Threads = *threadsFlag
	}
	if *roundsFlag > 0 {
		cfg.Rounds = *roundsFlag
	}
	if *participantsFlag > 0 {
		cfg.Participants = *participantsFlag
	}
	if *generationsFlag > 0 {
		cfg.Generations = *generationsFlag
	}
	if *limitFlag >= 0 {
		cfg.ThreadLimit = *limitFlag
	}
	cfg.PinCPUs = cfg.PinCPUs || *pinFlag
	cfg.CI = cfg.CI || *ciFlag

	if err := cfg.validate(); err != nil {
		_, _ = red.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printConfiguration(cfg)

	scenarios := []struct {
		name  string
		steps int
		run   func(benchConfig, *progressbar.ProgressBar) scenarioResult
	}{
		{name: "spawn+join", steps: cfg.Rounds, run: runSpawnJoin},
		{name: "spawn-all+join", steps: cfg.Rounds, run: runSpawnAll},
		{name: "barrier generation", steps: 1, run: runBarrier},
	}

	total := 0
	for _, s := range scenarios {
		total += s.steps
	}

	var bar *progressbar.ProgressBar
	if !cfg.CI {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Running scenarios"),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionEnableColorCodes(true),
		)
	}

	results := make([]scenarioResult, 0, len(scenarios))
	for i, s := range scenarios {
		if cfg.CI {
			fmt.Printf("[%d/%d] %s\n", i+1, len(scenarios), s.name)
		}
		if bar != nil {
			bar.Describe(fmt.Sprintf("Running: %s", s.name))
		}
		results = append(results, s.run(cfg, bar))
	}
	if bar != nil {
		_ = bar.Finish()
	}

	printResults(results)
}
