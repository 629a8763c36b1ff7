package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitPredictions requests a prediction per fixture using worker pools
func submitPredictions(ctx context.Context, config *Config, fixtures []Fixture, stats *Stats) ([]Prediction, error) {
	log.Printf("📤 Submitting %d fixtures with %d workers...", len(fixtures), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predict"

	// Results storage
	predictions := make([]Prediction, len(fixtures))

	// Counters for statistics
	var (
		successful int64
		failed     int64
		submitted  int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	fixtureChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range fixtureChan {
				select {
				case <-ctx.Done():
					return
				default:
					prediction, err := submitSingleFixture(ctx, client, url, fixtures[index])

					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to predict %s vs %s: %v",
								fixtures[index].Team1, fixtures[index].Team2, err)
						}
					} else {
						predictions[index] = prediction
						atomic.AddInt64(&successful, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, failed: %d)",
								total, len(fixtures), succ, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, failed: %d)",
								total, len(fixtures), succ, fail)
						}
					}
				}
			}
		}(i)
	}

	// Send fixture indices to workers
	go func() {
		defer close(fixtureChan)
		for i := range fixtures {
			select {
			case <-ctx.Done():
				return
			case fixtureChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.PredictionsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.PredictionsSuccessful = int(atomic.LoadInt64(&successful))
	stats.PredictionsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Prediction submission completed:
   Successful: %d
   Failed: %d
`, stats.PredictionsSuccessful, stats.PredictionsFailed)

	return predictions, nil
}

// submitSingleFixture requests a prediction for one pairing.
func submitSingleFixture(ctx context.Context, client *HTTPClient, url string, fx Fixture) (Prediction, error) {
	resp, err := client.Post(ctx, url, fx)
	if err != nil {
		return Prediction{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Prediction{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var prediction Prediction
	if err := json.Unmarshal(body, &prediction); err != nil {
		return Prediction{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return prediction, nil
}

// runSimulation posts an empty body so the service runs its default bracket.
func runSimulation(ctx context.Context, config *Config, stats *Stats) (SimulationResult, error) {
	log.Printf("🏆 Running default bracket simulation...")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/simulate"

	resp, err := client.Post(ctx, url, struct{}{})
	if err != nil {
		return SimulationResult{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return SimulationResult{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result SimulationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return SimulationResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.SimulationsRun++
	log.Printf("✅ Simulation %s completed: champion %s after %d rounds",
		result.RunID, result.Champion, len(result.Rounds))

	return result, nil
}
