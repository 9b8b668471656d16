package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/papercheck/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	maxAttempts      = 3
	maxErrorBodySize = 4 << 10  // 4 KiB
	maxResponseSize  = 10 << 20 // 10 MiB
)

// ClientConfig holds configuration for the OCR service client
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client handles communication with the OCR inference service.
// The service owns the paper detector, the text-region detector and the recognition model.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new OCR service client
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	burst := config.Burst
	if burst <= 0 {
		burst = 4
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[OCR] "+format, args...)
	}
}

// exponentialBackoff returns the wait before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// isRetryable reports whether a response status is worth another attempt
func isRetryable(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

// doRequest executes a POST of the image with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string, image []byte, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PaperCheck/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}

	return resp, nil
}

// ExtractText sends an image to the OCR service and returns the recognized text regions
func (c *Client) ExtractText(ctx context.Context, image []byte, contentType string) (*domain.OCRResponse, error) {
	reqURL := fmt.Sprintf("%s/v1/ocr", c.baseURL)
	c.debugLog("ExtractText called with %d bytes (%s)", len(image), contentType)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, exponentialBackoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL, image, contentType)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Printf("[OCR] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := readLimitedBody(resp.Body, maxErrorBodySize)
			resp.Body.Close()
			log.Printf("[OCR] Service error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))

			switch {
			case resp.StatusCode == http.StatusUnsupportedMediaType:
				return nil, domain.ErrUnsupportedMedia
			case isRetryable(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status %d", domain.ErrOCRFailure, resp.StatusCode)
				continue
			default:
				return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrOCRFailure, resp.StatusCode, string(body))
			}
		}

		body, err := readLimitedBody(resp.Body, maxResponseSize)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: failed to read response: %v", domain.ErrOCRFailure, err)
			continue
		}

		var ocrResp domain.OCRResponse
		if err := json.Unmarshal(body, &ocrResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if !ocrResp.PaperDetected {
			log.Printf("[OCR] No paper detected in image")
			return nil, domain.ErrNoTextDetected
		}

		c.debugLog("Recognized %d regions", len(ocrResp.Regions))
		return &ocrResp, nil
	}

	log.Printf("[OCR] All %d attempts failed", maxAttempts)
	return nil, lastErr
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
