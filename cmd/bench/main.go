package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/silt"
)

func main() {
	count := flag.Int("count", 1000, "Number of trips to generate")
	days := flag.Int("days", 5, "Days linked by each trip")
	keep := flag.Bool("keep", false, "Keep the generated input after running")
	verbose := flag.Bool("v", false, "Log at debug level")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "silt_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d trips x %d days in %s...\n", *count, *days, benchDir)
	startGen := time.Now()
	if err := generate(benchDir, *count, *days); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	// 2. Load: decode + ingest + hydrate + transform
	pattern := filepath.Join(benchDir, "*.json")
	startLoad := time.Now()
	c, err := silt.LoadFiles([]string{pattern}, silt.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)

	// 3. Follow every link once
	startFollow := time.Now()
	trips, err := c.TypeStore("trip")
	if err != nil {
		panic(err)
	}
	links := 0
	for _, trip := range trips.Records() {
		linked, err := c.FollowAll(trip, "days")
		if err != nil {
			panic(err)
		}
		links += len(linked)
	}
	followDuration := time.Since(startFollow)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d trips, %d links):\n", *count, links)
	fmt.Printf("  Load:   %v\n", loadDuration)
	fmt.Printf("  Follow: %v\n", followDuration)
	fmt.Printf("--------------------------------------------------\n")
}

// generate writes one file of days and one file of trips. Trips are written
// to the first file so every link is a forward reference.
func generate(dir string, count, perTrip int) error {
	dayCount := count * perTrip
	dayData := make([]map[string]any, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		dayData = append(dayData, map[string]any{
			"_k":   fmt.Sprintf("d%d", i),
			"date": time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i%365).Format("2006-01-02"),
		})
	}

	tripData := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		keys := make([]string, perTrip)
		for j := range keys {
			keys[j] = fmt.Sprintf("d%d", i*perTrip+j)
		}
		// "_day_s" sorts before "_k", so encoding/json keeps the link ahead of the identity.
		tripData = append(tripData, map[string]any{"_day_s": keys, "_k": i, "booked": "2017-05-01"})
	}

	trips := map[string]any{"trip": map[string]any{
		"_metadata": map[string]any{"transforms": []map[string]any{
			{"sourceField": "booked", "targetField": "bookedAt", "transform": "date"},
		}},
		"data": tripData,
	}}
	if err := writeJSON(filepath.Join(dir, "a_trips.json"), trips); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, "b_days.json"), map[string]any{"day": map[string]any{"data": dayData}})
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
