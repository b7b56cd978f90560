// Package main provides a performance benchmarking tool for psicosocial report generation.
// It seeds SQLite stores with synthetic campaigns of different sizes, then runs
// the report command several times per store and worker count, treating the
// first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - psicosocial binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the seeded stores and reports are written
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/psicosocial/core"
	"github.com/huangsam/psicosocial/internal/iocache"
	"github.com/huangsam/psicosocial/schema"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Responses int
	Format    string
	Workers   int
	ColdTime  string
	WarmTime  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	Runs      int
	Sizes     []int
	Workers   []int
	Formats   []string
	AnswerSet []string
}

// seededStore is a store file with one campaign ready to report on.
type seededStore struct {
	Path       string
	CampaignID string
	Responses  int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:   os.Args[1],
		Timeout:   5 * time.Minute,
		Runs:      4,
		Sizes:     []int{25, 250, 1000},
		Workers:   []int{1, 4, 14},
		Formats:   []string{"data", "docx"},
		AnswerSet: []string{"siempre", "casi_siempre", "algunas_veces", "casi_nunca", "nunca"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	var stores []seededStore
	for _, size := range config.Sizes {
		fmt.Printf("Seeding store with %d responses...\n", size)
		store, err := seedStore(config, size)
		if err != nil {
			fmt.Printf("Failed to seed store: %v\n", err)
			os.Exit(1)
		}
		stores = append(stores, store)
	}

	results := runBenchmarks(config, stores)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the psicosocial binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("psicosocial"); err != nil {
		return fmt.Errorf("psicosocial binary not found in PATH")
	}
	info, err := os.Stat(config.WorkDir)
	if err != nil {
		return fmt.Errorf("work dir %s not found: %w", config.WorkDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("work dir %s is not a directory", config.WorkDir)
	}
	return nil
}

// seedStore creates a fresh SQLite store holding one campaign with n responses.
func seedStore(config BenchmarkConfig, n int) (seededStore, error) {
	ctx := context.Background()
	path := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%d.db", n))
	if err := iocache.ClearStore(schema.SQLiteBackend, path, ""); err != nil {
		return seededStore{}, err
	}

	store, err := iocache.NewSurveyStore(schema.SQLiteBackend, path)
	if err != nil {
		return seededStore{}, err
	}
	defer func() { _ = store.Close() }()

	company, err := store.CreateCompany(ctx, fmt.Sprintf("Benchmark %d", n), "900000000")
	if err != nil {
		return seededStore{}, err
	}
	campaign, err := store.CreateCampaign(ctx, company.ID, "Medición")
	if err != nil {
		return seededStore{}, err
	}

	now := time.Now()
	for i := range n {
		sub := syntheticSubmission(config, campaign.ID, i)
		if _, err := core.SubmitSurvey(ctx, store, sub, now.Add(time.Duration(i)*time.Second)); err != nil {
			return seededStore{}, fmt.Errorf("response %d: %w", i, err)
		}
	}
	return seededStore{Path: path, CampaignID: campaign.ID, Responses: n}, nil
}

// syntheticSubmission builds a deterministic answer set that varies by respondent.
func syntheticSubmission(config BenchmarkConfig, campaignID string, i int) *schema.Submission {
	form := schema.FormA
	intraItems := 123
	if i%3 == 2 {
		form = schema.FormB
		intraItems = 97
	}
	sexo := "Femenino"
	if i%2 == 1 {
		sexo = "Masculino"
	}

	answer := func(item int) string {
		return config.AnswerSet[(i+item)%len(config.AnswerSet)]
	}
	sub := &schema.Submission{
		CampaignID:      campaignID,
		Cedula:          strconv.Itoa(10_000_000 + i),
		ConsentAccepted: true,
		FormType:        form,
		Ficha:           schema.Ficha{"sexo": sexo, "anioNacimiento": strconv.Itoa(1960 + i%40)},
		Intralaboral:    schema.AnswerSet{},
		Extralaboral:    schema.AnswerSet{},
		Estres:          schema.AnswerSet{},
	}
	for item := 1; item <= intraItems; item++ {
		sub.Intralaboral["intralaboral_"+strconv.Itoa(item)] = answer(item)
	}
	for item := 1; item <= 31; item++ {
		sub.Extralaboral["extralaboral_"+strconv.Itoa(item)] = answer(item)
		sub.Estres["estres_"+strconv.Itoa(item)] = answer(item + 1)
	}
	return sub
}

// runBenchmarks executes every format and worker count against each seeded store
func runBenchmarks(config BenchmarkConfig, stores []seededStore) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d stores, %v timeout, %d runs each\n",
		len(stores), config.Timeout, config.Runs)

	for _, store := range stores {
		for _, format := range config.Formats {
			for _, workers := range config.Workers {
				results = append(results, runBenchmarkSuite(config, store, format, workers))
			}
		}
	}
	return results
}

// runBenchmarkSuite runs the report command repeatedly and summarizes the timings
func runBenchmarkSuite(config BenchmarkConfig, store seededStore, format string, workers int) BenchmarkResult {
	fmt.Printf("Running %s report on %d responses with %d workers\n", format, store.Responses, workers)

	cold, warm := runBenchmark(config, store, format, workers)

	coldTime := "TIMEOUT"
	if cold > 0 {
		coldTime = fmt.Sprintf("%.3fs", cold)
	}
	warmTime := "TIMEOUT"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmTime)

	return BenchmarkResult{
		Responses: store.Responses,
		Format:    format,
		Workers:   workers,
		ColdTime:  coldTime,
		WarmTime:  warmTime,
	}
}

// runBenchmark executes the report command several times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, store seededStore, format string, workers int) (coldTime float64, warmTimes []float64) {
	outFile := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%d_%s", store.Responses, format))
	args := []string{
		"report",
		"--campaign", store.CampaignID,
		"--format", format,
		"--workers", strconv.Itoa(workers),
		"--store-db-connect", store.Path,
		"--output-file", outFile,
	}
	if format == "data" {
		args = append(args, "--output", "json")
	}

	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "psicosocial", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output, format) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, format string) bool {
	if format == "docx" {
		return strings.Contains(string(output), "Report written to:")
	}
	return !strings.Contains(string(output), "Fatal")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/psicosocial_benchmark_%s.csv", timestamp)

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
	defer writer.Flush()

	if err := writer.Write([]string{"responses", "format", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		record := []string{strconv.Itoa(r.Responses), r.Format, strconv.Itoa(r.Workers), r.ColdTime, r.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, format := range config.Formats {
		fmt.Printf("Report format %s:\n", format)
		for _, r := range results {
			if r.Format == format {
				fmt.Printf("  %5d responses, %2d workers: Cold: %s, Warm: %s\n", r.Responses, r.Workers, r.ColdTime, r.WarmTime)
			}
		}
	}
}
