// Package sender executes outbound Telegram calls on a bounded worker
// queue so slow API round-trips never block update handling.
package sender

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrQueueClosed is returned when enqueue is attempted after dispatcher stop.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull indicates the queue is saturated and the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")

	tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent retrying a single job.
	MaxDuration time.Duration
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
}

// Dispatcher executes outbound Telegram calls asynchronously with retries.
type Dispatcher struct {
	opts Options
	jobs chan job
	wg   sync.WaitGroup
	errs atomic.Uint64

	// mu orders Enqueue against Close so a job is never sent on the
	// closed jobs channel.
	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts a dispatcher with sane defaults if options are zeroed.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 12 * time.Second
	}

	d := &Dispatcher{
		opts: opts,
		jobs: make(chan job, opts.QueueSize),
	}

	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.worker()
	}

	return d
}

// Enqueue schedules the provided function for asynchronous execution.
// The run closure must be idempotent if retries are desired.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.jobs <- job{ctx: ctx, action: action, endpoint: endpoint, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of failed jobs.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.errs.Load()
}

// Close stops workers and waits for them to drain queued jobs.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.handle(j)
	}
}

func (d *Dispatcher) handle(j job) {
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	deadline, cancel := context.WithTimeout(ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts := d.opts.MaxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := deadline.Err(); err != nil {
			d.fail(ctx, j, err, attempt, time.Since(start))
			return
		}

		err := j.run()
		if err == nil {
			lvl := logger.Debug
			event := "send.success"
			if attempt > 1 {
				lvl = logger.Info
				event = "send.retry.success"
			}
			lvl(ctx, "tg.sender", event,
				append(j.attrs(),
					slog.Int("attempts", attempt),
					slog.Duration("duration", logger.RoundMS(time.Since(start))),
				)...,
			)
			return
		}

		if !netutil.ShouldRetry(err) || attempt == attempts {
			d.fail(ctx, j, err, attempt, time.Since(start))
			return
		}

		delay := d.opts.RetryBackoff * time.Duration(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-deadline.Done():
			timer.Stop()
			d.fail(ctx, j, deadline.Err(), attempt, time.Since(start))
			return
		case <-timer.C:
		}
		logger.Debug(ctx, "tg.sender", "send.retry.backoff",
			append(j.attrs(),
				slog.Int("attempts", attempt),
				slog.Duration("backoff_ms", logger.RoundMS(delay)),
			)...,
		)
	}
}

func (d *Dispatcher) fail(ctx context.Context, j job, err error, attempts int, elapsed time.Duration) {
	d.errs.Add(1)
	logger.Error(ctx, "tg.sender", "send.fail",
		append(j.attrs(),
			slog.String("err", RedactToken(err)),
			slog.String("err_code", classifyError(err)),
			slog.Int("attempts", attempts),
			slog.Duration("duration", logger.RoundMS(elapsed)),
		)...,
	)
}

func (j job) attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("action", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}
	return attrs
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return "timeout"
		}
		if opErr.Op == "dial" {
			return "dial"
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "timeout"
		}
		if urlErr.Err != nil && !errors.Is(urlErr.Err, err) {
			if kind := classifyError(urlErr.Err); kind != "unknown" && kind != "" {
				return kind
			}
		}
	}

	switch status := httpStatusFromError(err); {
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}

	return "unknown"
}

// RedactToken strips Telegram bot tokens from error text before logging.
func RedactToken(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

func httpStatusFromError(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}

	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}

	// Telebot formats unknown API errors as "... (<code>)".
	msg := err.Error()
	lastOpen := strings.LastIndex(msg, "(")
	lastClose := strings.LastIndex(msg, ")")
	if lastOpen >= 0 && lastClose > lastOpen+1 {
		if code, convErr := strconv.Atoi(strings.TrimSpace(msg[lastOpen+1 : lastClose])); convErr == nil {
			return code
		}
	}

	return 0
}
