package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/afcon/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Run executes the complete prediction load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting afcon prediction test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("fixtures", config.NumFixtures),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("simulate", config.Simulate),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate fixtures
	fixtures, err := generateFixtures(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("fixture generation failed: %w", err)
	}

	// Step 3: Submit predictions concurrently
	predictions, err := submitPredictions(ctx, config, fixtures, stats)
	if err != nil {
		return fmt.Errorf("prediction submission failed: %w", err)
	}

	// Step 4: Verify the serving contract
	verifyPredictions(fixtures, predictions, stats)
	displayTopWinners(predictions, config.Verbose)

	// Step 5: Run and verify a bracket simulation
	if config.Simulate {
		result, err := runSimulation(ctx, config, stats)
		if err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}
		if err := verifySimulation(result); err != nil {
			return fmt.Errorf("simulation verification failed: %w", err)
		}
	}

	// Step 6: Save fixtures to file
	if err := saveFixturesToFile(ctx, config, fixtures); err != nil {
		logger.Get().Warn(ctx, "failed to save fixtures to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveFixturesToFile saves the generated fixtures to a JSON file.
func saveFixturesToFile(ctx context.Context, config *Config, fixtures []Fixture) error {
	if len(fixtures) == 0 {
		return fmt.Errorf("no fixtures to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_fixtures_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fixtures: %w", err)
	}
	if err := os.WriteFile(filename, raw, outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "fixtures saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, fixturesPerSecond float64

	if stats.PredictionsSubmitted > 0 {
		successRate = float64(stats.PredictionsSuccessful) / float64(stats.PredictionsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		fixturesPerSecond = float64(stats.PredictionsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("fixturesGenerated", stats.FixturesGenerated),
		logger.Int("predictionsSubmitted", stats.PredictionsSubmitted),
		logger.Int("predictionsSuccessful", stats.PredictionsSuccessful),
		logger.Int("predictionsFailed", stats.PredictionsFailed),
		logger.Int("predictionsInvalid", stats.PredictionsInvalid),
		logger.Int("simulationsRun", stats.SimulationsRun),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("fixturesPerSecond", fixturesPerSecond))
}
