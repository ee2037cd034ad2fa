package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "tussenuur/internal/log"
	"tussenuur/internal/metrics"
)

// Prober periodically checks whether the timetable reporting service is
// reachable. Its last observation lets the UI distinguish "room schedule
// unknown because the source is down" from an isolated per-room failure.
type Prober struct {
	url    string
	client *http.Client
	cron   *cron.Cron

	mu        sync.RWMutex
	up        bool
	checkedAt time.Time
}

// Status is a point-in-time view of upstream reachability.
type Status struct {
	Up        bool      `json:"up"`
	CheckedAt time.Time `json:"checked_at"`
}

// NewProber builds a Prober for the given endpoint. No probe has run yet,
// so the source is optimistically reported up until the first tick.
func NewProber(url string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Prober{
		url:    url,
		client: &http.Client{Timeout: timeout},
		up:     true,
	}
}

// Start schedules probes with the given cron spec and runs one immediately.
// An empty spec disables the prober.
func (p *Prober) Start(spec string) error {
	if spec == "" {
		return nil
	}
	p.cron = cron.New()
	if _, err := p.cron.AddFunc(spec, p.probe); err != nil {
		return err
	}
	p.cron.Start()
	go p.probe()
	return nil
}

// Stop halts scheduled probes.
func (p *Prober) Stop() {
	if p.cron != nil {
		p.cron.Stop()
	}
}

// Last returns the most recent observation.
func (p *Prober) Last() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{Up: p.up, CheckedAt: p.checkedAt}
}

func (p *Prober) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), p.client.Timeout)
	defer cancel()

	up := false
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err == nil {
		resp, doErr := p.client.Do(req)
		if doErr == nil {
			resp.Body.Close()
			// Any HTTP answer counts as reachable; the reporting service
			// responds with odd statuses to bare requests.
			up = true
		} else {
			appLog.Error("timetable source probe failed", doErr, "url", p.url)
		}
	}

	p.mu.Lock()
	p.up = up
	p.checkedAt = time.Now()
	p.mu.Unlock()

	metrics.SetSourceUp(up)
	appLog.Debug("timetable source probe", "up", up)
}
