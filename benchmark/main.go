// Package main provides a performance benchmarking tool for the mediascore CLI.
// It seeds a fresh SQLite document store per corpus, then times rating builds and
// trend reports, first without build history and then while recording history.
// Each command runs several times; the first successful run counts as cold and the
// rest are averaged as warm. Results are written as CSV.
//
// Prerequisites:
// - mediascore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [corpus.yaml ...]
//
//	corpus.yaml: YAML corpora to seed; the bundled sample corpus is used when none is given
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Corpus        string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Corpora       []string
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Commands      []benchCommand
}

// benchCommand is one CLI invocation under test.
type benchCommand struct {
	name       string
	args       []string
	completion string
}

func main() {
	corpora := os.Args[1:]
	if len(corpora) == 0 {
		corpora = []string{"sample"}
	}

	workDir, err := os.MkdirTemp("", "mediascore-bench-")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	config := BenchmarkConfig{
		Corpora:       corpora,
		WorkDir:       workDir,
		Timeout:       5 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Commands: []benchCommand{
			{"rating", []string{"rating", "--tree", "children", "--start", "10 years ago"}, "Build completed in"},
			{"rating-diversity", []string{"rating", "--tree", "media-diversity", "--start", "10 years ago"}, "Build completed in"},
			{"trends", []string{"trends", "--start", "10 years ago"}, "Report completed in"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the mediascore binary and corpus files exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("mediascore"); err != nil {
		return fmt.Errorf("mediascore binary not found in PATH")
	}
	for _, corpus := range config.Corpora {
		if corpus == "sample" {
			continue
		}
		if _, err := os.Stat(corpus); os.IsNotExist(err) {
			return fmt.Errorf("corpus %s not found", corpus)
		}
	}
	return nil
}

// runBenchmarks seeds a store per corpus and benchmarks every command on it
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d corpora, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Corpora), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for i, corpus := range config.Corpora {
		name := strings.TrimSuffix(filepath.Base(corpus), filepath.Ext(corpus))
		docsPath := filepath.Join(config.WorkDir, fmt.Sprintf("documents-%d.db", i))
		historyPath := filepath.Join(config.WorkDir, fmt.Sprintf("history-%d.db", i))

		fmt.Printf("Seeding %s\n", name)
		seedArgs := []string{"store", "seed", "--document-db-connect", docsPath}
		if corpus != "sample" {
			seedArgs = append(seedArgs, corpus)
		}
		if output, err := exec.Command("mediascore", seedArgs...).CombinedOutput(); err != nil {
			fmt.Printf("Warning: failed to seed %s: %v\nOutput: %s\n", name, err, string(output))
			continue
		}

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, name, command, docsPath, historyPath))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, corpus string, command benchCommand, docsPath, historyPath string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command.name, corpus)

	runPhase := func(historyArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		args := append(append([]string{}, command.args...), "--document-db-connect", docsPath)
		args = append(args, historyArgs...)
		cold, times := runBenchmark(config, args, command.completion, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: No build history
	_, noHistoryAvg := runPhase([]string{"--history-backend", "none"}, config.NoHistoryRuns, "No-history")

	// Phase 2: Record every build
	coldTime, warmAvg := runPhase([]string{"--history-backend", "sqlite", "--history-db-connect", historyPath}, config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Corpus:        corpus,
		Command:       command.name,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a mediascore command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, completion string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("mediascore", args...)
		cmd.Env = append(os.Environ(), "MEDIASCORE_COLOR=no")

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), completion) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("mediascore_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"corpus", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Corpus, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command.name)
		for _, result := range results {
			if result.Command == command.name {
				fmt.Printf("  %-12s: No-history: %s, Cold: %s, Warm: %s\n", result.Corpus, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
