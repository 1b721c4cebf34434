package health

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m3rciful/filebot/core/logger"
	"log/slog"
)

// KeepAlive periodically pings an external URL so free-tier hosts do not
// idle the process out.
type KeepAlive struct {
	url    string
	spec   string
	client *http.Client
	cron   *cron.Cron
}

// NewKeepAlive builds the job. URL may be empty to disable it.
func NewKeepAlive(url, spec string) *KeepAlive {
	return &KeepAlive{
		url:    url,
		spec:   spec,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Start schedules the job until the context is cancelled.
func (k *KeepAlive) Start(ctx context.Context) error {
	if k.url == "" {
		return nil
	}
	if k.spec == "" {
		k.spec = "@every 10m"
	}

	k.cron = cron.New()
	if _, err := k.cron.AddFunc(k.spec, func() { k.ping(ctx) }); err != nil {
		return err
	}
	k.cron.Start()

	go func() {
		<-ctx.Done()
		k.cron.Stop()
	}()

	logger.HTTP.Info("keepalive scheduled",
		slog.String("event", "keepalive.start"),
		slog.String("url", k.url),
		slog.String("spec", k.spec),
	)
	return nil
}

func (k *KeepAlive) ping(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, k.url, nil)
	if err != nil {
		return
	}
	resp, err := k.client.Do(req)
	if err != nil {
		logger.Warn(ctx, "http", "keepalive.fail",
			slog.String("url", k.url),
			slog.String("err", err.Error()),
		)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug(ctx, "http", "keepalive.ok",
		slog.String("url", k.url),
		slog.Int("code", resp.StatusCode),
	)
}
