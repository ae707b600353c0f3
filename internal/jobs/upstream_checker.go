package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"walink/internal/models"
)

// maxDrain bounds how much of a check response is read so the connection can
// be reused.
const maxDrain = 1 << 20

// Upstream is an external service the generated page depends on.
type Upstream struct {
	Name string
	URL  string
}

// StatusSink receives probe results.
type StatusSink interface {
	SetUpstream(service string, up bool)
}

// UpstreamChecker periodically probes the code rendering and flag services so
// operators can see when generated pages will show broken images.
type UpstreamChecker struct {
	upstreams []Upstream
	interval  time.Duration
	client    *http.Client
	sink      StatusSink
	log       *slog.Logger

	mu     sync.RWMutex
	status map[string]models.UpstreamStatusResponse
}

// NewUpstreamChecker creates a new checker.
func NewUpstreamChecker(upstreams []Upstream, interval time.Duration, sink StatusSink, logger *slog.Logger) *UpstreamChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpstreamChecker{
		upstreams: upstreams,
		interval:  interval,
		sink:      sink,
		log:       logger,
		status:    make(map[string]models.UpstreamStatusResponse),
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Start runs the probe loop until ctx is cancelled.
func (u *UpstreamChecker) Start(ctx context.Context) {
	u.log.Info("upstream checker started", "interval", u.interval, "upstreams", len(u.upstreams))

	// Run immediately on start
	u.CheckAll(ctx)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.log.Info("upstream checker stopped")
			return
		case <-ticker.C:
			u.CheckAll(ctx)
		}
	}
}

// CheckAll probes every upstream once.
func (u *UpstreamChecker) CheckAll(ctx context.Context) {
	for _, up := range u.upstreams {
		select {
		case <-ctx.Done():
			return
		default:
		}

		errMsg := u.check(ctx, up.URL)
		now := time.Now()
		res := models.UpstreamStatusResponse{
			Service:   up.Name,
			Up:        errMsg == "",
			CheckedAt: &now,
			Error:     errMsg,
		}
		if !res.Up {
			u.log.Warn("upstream unavailable", "service", up.Name, "error", errMsg)
		}

		u.mu.Lock()
		u.status[up.Name] = res
		u.mu.Unlock()

		if u.sink != nil {
			u.sink.SetUpstream(up.Name, res.Up)
		}
	}
}

// Status returns the last result for every upstream, in configuration order.
// Upstreams that were never probed are reported down with no check time.
func (u *UpstreamChecker) Status() []models.UpstreamStatusResponse {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]models.UpstreamStatusResponse, 0, len(u.upstreams))
	for _, up := range u.upstreams {
		if s, ok := u.status[up.Name]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, models.UpstreamStatusResponse{Service: up.Name})
	}
	return out
}

// check performs a GET and returns an error message, empty when healthy.
// Some image services reject HEAD, so GET is used and the body discarded.
func (u *UpstreamChecker) check(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "invalid URL: " + err.Error()
	}

	req.Header.Set("User-Agent", "walink-UpstreamChecker/1.0")

	resp, err := u.client.Do(req)
	if err != nil {
		return "connection failed: " + err.Error()
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return ""
	}
	return "HTTP " + resp.Status
}
