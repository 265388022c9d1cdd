package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func printConfiguration(cfg benchConfig) {
	_, _ = bold.Println("Configuration:")
	fmt.Printf("  Threads per round: %d (%d CPUs)\n", cfg.Threads, runtime.NumCPU())
	fmt.Printf("  Rounds:            %d\n", cfg.Rounds)
	fmt.Printf("  Participants:      %d\n", cfg.Participants)
	fmt.Printf("  Generations:       %d\n", cfg.Generations)
	if cfg.ThreadLimit > 0 {
		fmt.Printf("  Thread limit:      %d\n", cfg.ThreadLimit)
	}
	fmt.Printf("  Pinned threads:    %t\n", cfg.PinCPUs)
	fmt.Println()
}

func printResults(results []scenarioResult) {
	fmt.Println()
	_, _ = bold.Println("Results")
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Scenario", "Operations", "Failures", "Total", "Per op", "Ops/sec")

	for _, r := range results {
		_ = table.Append(
			r.Name,
			fmt.Sprintf("%d", r.Operations),
			fmt.Sprintf("%d", r.Failures),
			r.TotalTime.Round(time.Microsecond).String(),
			r.PerOp().String(),
			fmt.Sprintf("%.0f", r.OpsPerSec()),
		)
	}
	table.Render()

	failed := 0
	for _, r := range results {
		failed += r.Failures
	}
	fmt.Println()
	if failed == 0 {
		_, _ = green.Println("All scenarios completed without failures")
	} else {
		_, _ = red.Printf("%d operations failed\n", failed)
	}
}
