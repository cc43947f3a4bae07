// Package main is a performance benchmarking tool for the qgit CLI.
// It measures execution times across repositories and report views,
// running each view several times without a cache and several times with the
// SQLite snapshot cache. The first cached run is reported as cold and the rest
// are averaged as warm. Results are written to a CSV file.
//
// Prerequisites:
// - qgit binary installed and available in PATH
// - Test repositories cloned to the specified base directory
//
// Usage: go run benchmark/main.go [repo-base-dir]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	TestRepos   []string
	Commands    [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:    os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		TestRepos:   []string{"csv-parser", "fd", "git", "kubernetes"},
		Commands: [][]string{
			{"tree"},
			{"languages"},
			{"frameworks", "--nested-markers"},
			{"contributors"},
			{"timeline", "--limit", "100"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	if output, err := exec.Command("qgit", "cache", "clear").CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the qgit binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("qgit"); err != nil {
		return errors.New("qgit binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.TestRepos), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, args := range config.Commands {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, args))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache phases for one view
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", strings.Join(args, " "), repo)

	runPhase := func(cacheBackend string, numRuns int) (cold float64, avg string) {
		times := runBenchmark(config, repoPath, args, cacheBackend, numRuns)
		if len(times) == 0 {
			return 0, "TIMEOUT"
		}
		cold = times[0]
		warm := times
		if len(times) > 1 && cacheBackend != "none" {
			warm = times[1:]
		}
		var sum float64
		for _, t := range warm {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns)
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		Command:     args[0],
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a qgit view numRuns times and returns the successful durations in seconds.
func runBenchmark(config BenchmarkConfig, repoPath string, args []string, cacheBackend string, numRuns int) []float64 {
	full := append([]string{}, args...)
	full = append(full, "--cache-backend", cacheBackend, "--workers", fmt.Sprint(config.Workers))

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "qgit", full...)
		cmd.Dir = repoPath
		output, err := cmd.CombinedOutput()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, time.Since(start).Seconds())
		}
	}
	return times
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	s := string(output)
	return strings.Contains(s, "Analysis completed in") && strings.Contains(s, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	filename := fmt.Sprintf("/tmp/qgit_benchmark_%s.csv", time.Now().Format("20060102_150405"))

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
	if err := writer.Write([]string{"repo", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	info, err := file.Stat()
	if err == nil {
		fmt.Printf("Results saved to %s (%s)\n", filename, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

// printSummary displays the final benchmark results as a table
func printSummary(results []BenchmarkResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Repo", "Command", "No-cache", "Cold", "Warm")
	for _, r := range results {
		_ = table.Append(r.Repository, r.Command, r.NoCacheTime, r.ColdTime, r.WarmTime)
	}
	if err := table.Render(); err != nil {
		fmt.Printf("Failed to render summary: %v\n", err)
	}
}
