package query

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/roads/cmd/util"
	"github.com/ValentinKolb/roads/rpc/client"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for roads servers",
		Long:    "Runs the read commands in parallel against a roads server. Every thread uses its own connection.",
		Args:    cobra.NoArgs,
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfNumThreads = 10
	perfCountryID  int16
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. get-towns,get-roads)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "country"
	perfTestCmd.Flags().Int(key, 1, util.WrapString("Country id used for the get-towns and get-roads tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	country := viper.GetInt("country")
	if country < 0 || country > math.MaxInt16 {
		return fmt.Errorf("invalid country id %d (expected 0..%d)", country, math.MaxInt16)
	}
	perfCountryID = int16(country)

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for roads servers")

	// Print configuration
	config := util.GetClientConfig()
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	// fail early if the server is not reachable
	c, err := newClient()
	if err != nil {
		return err
	}
	if err := c.Finish(); err != nil {
		return err
	}

	fmt.Println("staring tests...")

	tests := []struct {
		name string
		fn   func(c *client.RoadsClient) error
	}{
		{"get-countries", func(c *client.RoadsClient) error {
			_, err := c.GetCountries()
			return err
		}},
		{"get-towns", func(c *client.RoadsClient) error {
			_, err := c.GetTowns(perfCountryID)
			return err
		}},
		{"get-roads", func(c *client.RoadsClient) error {
			_, err := c.GetRoads(perfCountryID)
			return err
		}},
	}

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	for _, test := range tests {
		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(test.name) {
				return
			}

			b.SetParallelism(perfNumThreads)

			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				c, err := newClient()
				if err != nil {
					log.Printf("(%s) - error connecting: %v\n", test.name, err)
					return
				}
				defer func() { _ = c.Finish() }()

				for pb.Next() {
					if err := test.fn(c); err != nil {
						log.Printf("(%s) - error: %v\n", test.name, err)
					}
				}
			})
		})

		results[test.name] = result
		printResult(test.name, result)
	}

	// Write results to CSV if requested
	if csvPath := viper.GetString("csv"); csvPath != "" {
		if err := writeResultsToCSV(csvPath, results, &config); err != nil {
			return err
		}
		fmt.Printf("\nresults written to %s\n", csvPath)
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

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoint", "TimeoutSec", "Serializer", "Transport",
		"Threads", "Country",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			config.Endpoint,
			strconv.Itoa(config.TimeoutSecond),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(int(perfCountryID)),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
