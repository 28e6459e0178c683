package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tracklink/internal/confirmcache"
	"tracklink/internal/library"
	"tracklink/internal/logging"
	"tracklink/internal/probe"
)

// Prober reads embedded ISRCs from library files. Probe never fails; errors
// come back as a Result with StatusError.
type Prober interface {
	Probe(ctx context.Context, location string) probe.Result
	Fingerprint(location string) (probe.Fingerprint, error)
}

// ConfirmOptions tunes deep inspection.
type ConfirmOptions struct {
	// Parallelism is both the worker count and the per-row read request.
	Parallelism int
	// Revalidate reprobes cached verdicts whose file fingerprint changed.
	Revalidate bool
	Logger     *slog.Logger
}

// Confirmer runs budgeted deep inspection over candidate pools.
type Confirmer struct {
	index  *library.Index
	cache  *CacheView
	prober Prober
	budget *Budget
	opts   ConfirmOptions
	logger *slog.Logger

	mu     sync.Mutex
	probed int
	hits   int
}

// NewConfirmer wires the cache, probe, and shared budget together.
func NewConfirmer(index *library.Index, cache *CacheView, prober Prober, budget *Budget, opts ConfirmOptions) *Confirmer {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	if cache == nil {
		cache = NewCacheView(nil, nil)
	}
	return &Confirmer{
		index:  index,
		cache:  cache,
		prober: prober,
		budget: budget,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "confirm"),
	}
}

// ConfirmStats reports deep-inspection activity for the run.
type ConfirmStats struct {
	Probed          int
	Hits            int
	BudgetRemaining int
}

// Stats returns a snapshot of confirmation activity.
func (c *Confirmer) Stats() ConfirmStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConfirmStats{Probed: c.probed, Hits: c.hits, BudgetRemaining: c.budget.Remaining()}
}

// Confirm returns the first candidate whose file carries code. Cached verdicts
// are consulted before any file is read; the probe batch always drains and is
// committed to the cache before Confirm returns.
func (c *Confirmer) Confirm(ctx context.Context, pool []*library.Record, code string) (*library.Record, error) {
	code = library.NormalizeCode(code)
	if code == "" || len(pool) == 0 {
		return nil, nil
	}

	var eligible []*library.Record
	for _, cand := range pool {
		if cand.PersistentID == "" || !cand.HasLocation() {
			continue
		}
		entry, ok := c.cache.Get(cand.PersistentID)
		if !ok || !entry.Status.Known() || c.stale(cand, entry) {
			eligible = append(eligible, cand)
			continue
		}
		if entry.Status == confirmcache.StatusPresent && library.NormalizeCode(entry.ISRC) == code {
			c.index.AttachCode(cand, code)
			return cand, nil
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	granted := c.budget.Reserve(min(len(eligible), c.opts.Parallelism))
	if granted == 0 {
		c.logger.Debug("deep inspection skipped",
			logging.String("isrc", code),
			logging.String("reason", "read budget exhausted"))
		return nil, nil
	}
	batch := eligible[:granted]
	results := c.probeBatch(context.WithoutCancel(ctx), batch)

	entries := make([]confirmcache.Entry, 0, len(batch))
	now := time.Now().UTC()
	for i, cand := range batch {
		entries = append(entries, entryFromResult(cand.PersistentID, results[i], now))
	}
	if err := c.cache.Record(ctx, entries); err != nil {
		return nil, fmt.Errorf("record confirmations: %w", err)
	}

	var match *library.Record
	for i, cand := range batch {
		res := results[i]
		switch res.Status {
		case probe.StatusPresent:
			c.index.AttachCode(cand, res.Code)
			if match == nil && library.NormalizeCode(res.Code) == code {
				match = cand
			}
		case probe.StatusError:
			c.logger.Debug("deep inspection failed",
				logging.String("persistent_id", cand.PersistentID),
				logging.String("reason", res.Reason),
				logging.Duration("elapsed", res.Elapsed))
		}
	}

	c.mu.Lock()
	c.probed += len(batch)
	if match != nil {
		c.hits++
	}
	c.mu.Unlock()
	return match, nil
}

// probeBatch inspects every candidate on a fixed-size worker pool. Results are
// returned in batch order.
func (c *Confirmer) probeBatch(ctx context.Context, batch []*library.Record) []probe.Result {
	results := make([]probe.Result, len(batch))
	jobs := make(chan int)
	workers := min(c.opts.Parallelism, len(batch))

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.prober.Probe(ctx, batch[i].Location)
			}
		}()
	}
	for i := range batch {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// stale reports whether a trusted verdict should be discarded because the file
// changed since it was inspected.
func (c *Confirmer) stale(cand *library.Record, entry confirmcache.Entry) bool {
	if !c.opts.Revalidate {
		return false
	}
	fp, err := c.prober.Fingerprint(cand.Location)
	if err != nil {
		return true
	}
	return fp.ModTime != entry.ModTime || fp.Size != entry.Size
}

func entryFromResult(persistentID string, res probe.Result, now time.Time) confirmcache.Entry {
	entry := confirmcache.Entry{
		PersistentID: persistentID,
		ModTime:      res.Fingerprint.ModTime,
		Size:         res.Fingerprint.Size,
		Reason:       res.Reason,
		UpdatedAt:    now,
	}
	switch res.Status {
	case probe.StatusPresent:
		entry.Status = confirmcache.StatusPresent
		entry.ISRC = res.Code
	case probe.StatusAbsent:
		entry.Status = confirmcache.StatusAbsent
	default:
		entry.Status = confirmcache.StatusError
		if entry.Reason == "" {
			entry.Reason = "unknown probe failure"
		}
	}
	return entry
}
