package bulk

import (
	"context"
	"sync"

	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/procuramart/backoffice/internal/core/port"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrency caps in-flight catalog resolutions per import.
const DefaultMaxConcurrency = 8

// Importer drives the catalog resolver over every parsed line of a
// pasted block. Resolutions fan out concurrently and the importer
// waits for all of them; one line failing never cancels its siblings.
// Cancelling the context stops launching new resolutions and lets the
// in-flight ones drain.
type Importer struct {
	resolver port.CatalogResolver
	logger   *zap.Logger
	maxInFly int64
}

type importerOption func(*Importer)

// WithMaxConcurrency overrides the resolution concurrency cap.
func WithMaxConcurrency(n int64) importerOption {
	return func(i *Importer) {
		if n > 0 {
			i.maxInFly = n
		}
	}
}

func NewImporter(resolver port.CatalogResolver, logger *zap.Logger, opts ...importerOption) (*Importer, error) {
	imp := &Importer{
		resolver: resolver,
		logger:   logger,
		maxInFly: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp, nil
}

// ImportLines parses the pasted text and appends one line item to the
// order per resolved code. Failures are collected per code, not
// propagated. Returns domain.ErrNoValidLines when nothing parses and
// domain.ErrBulkImportFailed when every parsed line failed; the result
// is returned alongside the error so callers still see the failures.
func (i *Importer) ImportLines(ctx context.Context, order *domain.Order, text string) (*domain.ImportResult, error) {
	lines := ParseLines(text)
	if len(lines) == 0 {
		return nil, domain.ErrNoValidLines
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		resolved []domain.LineItem
		failures []domain.LineFailure
	)

	sem := semaphore.NewWeighted(i.maxInFly)

	for _, line := range lines {
		if err := sem.Acquire(ctx, 1); err != nil {
			// context cancelled: stop launching, in-flight work drains
			mu.Lock()
			failures = append(failures, domain.LineFailure{Code: line.Code, Reason: err.Error()})
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(line Line) {
			defer wg.Done()
			defer sem.Release(1)

			ref, err := i.resolver.Resolve(ctx, line.Code)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, domain.LineFailure{Code: line.Code, Reason: err.Error()})
				return
			}
			resolved = append(resolved, domain.NewLineItem(ref.ID, line.Quantity))
		}(line)
	}

	wg.Wait()

	order.LineItems = append(order.LineItems, resolved...)

	result := &domain.ImportResult{
		Added:    len(resolved),
		Failures: failures,
	}

	i.logger.Info("bulk import finished",
		zap.Uint64("order", order.ID),
		zap.Int("added", result.Added),
		zap.Int("failed", len(result.Failures)))

	if result.Added == 0 {
		return result, domain.ErrBulkImportFailed
	}

	return result, nil
}
