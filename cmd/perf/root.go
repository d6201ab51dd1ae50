package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recbase/recmap/cmd/util"
	"github.com/recbase/recmap/lib/recmap"
)

var (
	// PerfCmd benchmarks the map operations in-process
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the map engine",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__perf"
	perfKeySpread  = 1000
	perfValueSizeB = 64
	perfSkip       = make([]string, 0)
	perfMetricsReg = gometrics.NewRegistry()
)

func init() {
	// add flags
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,get)"))
	key = "keys"
	PerfCmd.Flags().Int(key, 1000, util.WrapString("How many different keys to use for the tests"))
	key = "value-size"
	PerfCmd.Flags().Int(key, 64, util.WrapString("How large the string values should be (in bytes)"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfKeySpread = viper.GetInt("keys")
	perfValueSizeB = viper.GetInt("value-size")
	if skip := viper.GetString("skip"); skip != "" {
		perfSkip = strings.Split(skip, ",")
	}

	return nil
}

// result couples the raw benchmark outcome with the latency timer that
// sampled the individual operations.
type result struct {
	bench testing.BenchmarkResult
	timer gometrics.Timer
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for the map engine")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Keys: %d\n", perfKeySpread)
	fmt.Printf("Value size: %dB\n", perfValueSizeB)
	fmt.Println()

	fmt.Println("starting benchmarks...")

	value := strings.Repeat("v", perfValueSizeB)
	getKey, iter := getKeys()

	// Create results map
	results := make(map[string]result)

	runBench := func(name string, prepare func(m *recmap.Map), op func(m *recmap.Map, i int) error) {
		timer := gometrics.NewRegisteredTimer(name, perfMetricsReg)
		res := result{timer: timer}

		res.bench = testing.Benchmark(func(b *testing.B) {
			if shouldSkip(name) {
				return
			}

			m := recmap.New()
			if prepare != nil {
				prepare(m)
			}

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				start := time.Now()
				if err := op(m, i); err != nil {
					b.Fatalf("(%s) - operation failed: %v", name, err)
				}
				timer.UpdateSince(start)
			}
		})

		results[name] = res
		printResult(name, res)
	}

	fill := func(m *recmap.Map) {
		iter(func(k string) {
			if _, err := m.Put(k, value); err != nil {
				fmt.Printf("(fill) - error inserting key: %v\n", err)
			}
		})
	}

	runBench("put", nil, func(m *recmap.Map, i int) error {
		_, err := m.Put(fmt.Sprintf("%s-put-%d", perfKeyPrefix, i), value)
		return err
	})

	runBench("overwrite", fill, func(m *recmap.Map, i int) error {
		_, err := m.Put(getKey(i), value)
		return err
	})

	runBench("get", fill, func(m *recmap.Map, i int) error {
		_ = m.Get(getKey(i))
		return nil
	})

	runBench("contains", fill, func(m *recmap.Map, i int) error {
		_ = m.ContainsKey(getKey(i))
		return nil
	})

	runBench("contains-not", nil, func(m *recmap.Map, i int) error {
		_ = m.ContainsKey(fmt.Sprintf("%s-absent-%d", perfKeyPrefix, i%perfKeySpread))
		return nil
	})

	runBench("delete", fill, func(m *recmap.Map, i int) error {
		// re-insert so every iteration deletes a live pair
		key := getKey(i)
		if _, err := m.Put(key, value); err != nil {
			return err
		}
		_, err := m.Delete(key)
		return err
	})

	runBench("foreach", fill, func(m *recmap.Map, _ int) error {
		_, err := m.ForEach(0, func(_ *recmap.Map, _, _, result any, _ bool) (recmap.Command, error) {
			return recmap.Continue(result.(int) + 1), nil
		})
		return err
	})

	runBench("iterate", fill, func(m *recmap.Map, _ int) error {
		it := m.IterateKeys()
		for it.HasNext() {
			if _, err := it.Next(); err != nil {
				return err
			}
		}
		return nil
	})

	runBench("snapshot", fill, func(m *recmap.Map, _ int) error {
		_ = m.Keys()
		_ = m.Values()
		return nil
	})

	runBench("mixed", fill, func(m *recmap.Map, i int) error {
		key := getKey(i)
		var err error
		switch i % 4 {
		case 0: // put
			_, err = m.Put(key, value)
		case 1: // get
			_ = m.Get(key)
		case 2: // delete and re-insert
			if _, err = m.Delete(key); err == nil {
				_, err = m.Put(key, value)
			}
		case 3: // contains
			_ = m.ContainsKey(key)
		}
		return err
	})

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// getKeys creates an array of test keys and functions to work with them
func getKeys() (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%d", perfKeyPrefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, res result) {
	if res.bench.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(res.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	p99 := time.Duration(res.timer.Percentile(0.99))

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp99 %s\n",
		test, nsPerOp, time.Duration(nsPerOp), opsPerSec, p99)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]result) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50Ns", "P99Ns", "Skipped",
		"Keys Count", "ValueSizeB",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, res := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if res.bench.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(res.bench.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", res.timer.Percentile(0.5)),
			fmt.Sprintf("%.0f", res.timer.Percentile(0.99)),
			skipped,
			strconv.Itoa(perfKeySpread),
			strconv.Itoa(perfValueSizeB),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
