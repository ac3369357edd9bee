package vetcare

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultViewTimeout = 10 * time.Second

// HTTPViewSource defines a public type used by vetcare APIs.
//
// HTTPViewSource instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPViewSource struct {
	base   string
	client *http.Client
}

// NewHTTPViewSource describes the newhttpviewsource operation and its observable behavior.
//
// NewHTTPViewSource may return an error when input validation, dependency calls, or security checks fail.
// NewHTTPViewSource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewHTTPViewSource(base string, timeout time.Duration) *HTTPViewSource {
	if timeout <= 0 {
		timeout = defaultViewTimeout
	}
	return &HTTPViewSource{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}
}

// Load fetches the view at base+target and returns its body as a string.
// Transport failures and non-2xx responses are errors; the router decides
// what to render instead.
func (s *HTTPViewSource) Load(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+target, nil)
	if err != nil {
		return "", fmt.Errorf("build view request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch view %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch view %s: unexpected status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read view %s: %w", target, err)
	}
	return string(body), nil
}

// StaticViewSource serves views from an in-memory map. It backs tests and
// embedded deployments that ship their markup with the binary.
type StaticViewSource map[string]string

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s StaticViewSource) Load(_ context.Context, target string) (string, error) {
	content, ok := s[target]
	if !ok {
		return "", fmt.Errorf("view %s not found", target)
	}
	return content, nil
}
