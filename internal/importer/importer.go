package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reelmate/internal/enrich"
	"reelmate/internal/letterboxd"
	"reelmate/internal/logging"
	"reelmate/internal/movies"
	"reelmate/internal/notifications"
	"reelmate/internal/services"
	"reelmate/internal/store"
)

// Summary reports the outcome of a completed import.
type Summary struct {
	BatchID   string        `json:"batchId"`
	Total     int           `json:"total"`
	Matched   int           `json:"matched"`
	Unmatched int           `json:"unmatched"`
	Elapsed   time.Duration `json:"-"`
}

// Importer runs the parse, enrich, persist pipeline for one upload at
// a time. It is safe for concurrent use.
type Importer struct {
	store    *store.Store
	enricher *enrich.Enricher
	notifier notifications.Service
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithNotifier attaches a notification service invoked after each
// import attempt.
func WithNotifier(notifier notifications.Service) Option {
	return func(imp *Importer) {
		if notifier != nil {
			imp.notifier = notifier
		}
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) {
		if logger != nil {
			imp.logger = logging.NewComponentLogger(logger, "importer")
		}
	}
}

// New constructs an Importer around the persistence and enrichment
// layers.
func New(st *store.Store, enricher *enrich.Enricher, opts ...Option) (*Importer, error) {
	if st == nil {
		return nil, errors.New("importer requires a store")
	}
	if enricher == nil {
		return nil, errors.New("importer requires an enricher")
	}
	imp := &Importer{
		store:    st,
		enricher: enricher,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp, nil
}

// Run executes the full pipeline for one upload. Parse failures and
// persistence failures abort the import and are returned; individual
// lookup misses are absorbed and counted in the summary. The user's
// stored collection is replaced wholesale in one write, so a failed
// import never leaves a partial collection behind.
func (imp *Importer) Run(ctx context.Context, userID string, upload io.Reader, progress enrich.ProgressFunc) (Summary, error) {
	batchID := uuid.NewString()
	ctx = services.WithUserID(ctx, userID)
	ctx = services.WithBatchID(ctx, batchID)
	started := time.Now()

	summary, err := imp.run(ctx, userID, batchID, upload, progress)
	summary.BatchID = batchID
	summary.Elapsed = time.Since(started)

	if err != nil {
		imp.logger.Error("import failed",
			logging.String(logging.FieldUserID, userID),
			logging.String(logging.FieldBatchID, batchID),
			logging.Error(err),
		)
		imp.notify(ctx, func(n notifications.Service) error {
			return n.NotifyImportFailed(ctx, userID, err)
		})
		return summary, err
	}

	imp.logger.Info("import completed",
		logging.String(logging.FieldUserID, userID),
		logging.String(logging.FieldBatchID, batchID),
		logging.Int("total", summary.Total),
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Duration("elapsed", summary.Elapsed),
	)
	imp.notify(ctx, func(n notifications.Service) error {
		return n.NotifyImportCompleted(ctx, userID, summary.Total, summary.Matched, summary.Elapsed)
	})
	return summary, nil
}

func (imp *Importer) run(ctx context.Context, userID, batchID string, upload io.Reader, progress enrich.ProgressFunc) (Summary, error) {
	records, err := letterboxd.Parse(upload)
	if err != nil {
		return Summary{}, err
	}

	imp.logger.Info("parsed export",
		logging.String(logging.FieldUserID, userID),
		logging.String(logging.FieldBatchID, batchID),
		logging.Int("records", len(records)),
	)
	if dupes := duplicateKeys(records); dupes > 0 {
		// Duplicates are kept; the count only matters for diagnosing
		// surprising similarity numbers.
		imp.logger.Debug("duplicate identity keys in export",
			logging.String(logging.FieldBatchID, batchID),
			logging.Int("duplicates", dupes),
		)
	}

	enriched, err := imp.enricher.EnrichAll(ctx, records, progress)
	if err != nil {
		return Summary{}, err
	}

	if err := imp.store.SaveMovies(ctx, userID, enriched); err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(enriched)}
	for _, rec := range enriched {
		if rec.TMDBID != nil {
			summary.Matched++
		}
	}
	summary.Unmatched = summary.Total - summary.Matched
	return summary, nil
}

func (imp *Importer) notify(ctx context.Context, send func(notifications.Service) error) {
	if imp.notifier == nil {
		return
	}
	if err := send(imp.notifier); err != nil {
		imp.logger.Warn("notification delivery failed", logging.Error(err))
	}
}

func duplicateKeys(records []movies.Record) int {
	seen := make(map[string]struct{}, len(records))
	dupes := 0
	for _, rec := range records {
		key := rec.Key()
		if _, ok := seen[key]; ok {
			dupes++
			continue
		}
		seen[key] = struct{}{}
	}
	return dupes
}
