// Package collector runs the one-shot pipeline: status snapshot,
// journal window, normalize, append.
package collector

import (
	"context"
	"time"

	"tscollect/src/internal/config"
	"tscollect/src/internal/filter"
	"tscollect/src/internal/sink"
	"tscollect/src/internal/source"

	"github.com/lixenwraith/log"
)

type Collector struct {
	status  *source.StatusSource
	journal *source.JournalSource
	filters *filter.Chain
	sink    *sink.FileSink
	logger  *log.Logger
}

// Result describes a completed collection cycle
type Result struct {
	// Target file the record was appended to
	Path string

	// Number of events embedded in the record
	EventCount int

	// Journal retrieval failure, if any. Non-nil never prevented the
	// record from being persisted.
	JournalErr error
}

func New(cfg *config.Config, logger *log.Logger) (*Collector, error) {
	filters, err := filter.NewChain(cfg.Filters, logger)
	if err != nil {
		return nil, err
	}

	return &Collector{
		status:  source.NewStatusSource(cfg.Status, logger),
		journal: source.NewJournalSource(cfg.Journal, logger),
		filters: filters,
		sink:    sink.NewFileSink(cfg.Output, logger),
		logger:  logger,
	}, nil
}

// Run performs exactly one collect-format-append cycle.
//
// Status retrieval failure short-circuits the run: no journal query is
// attempted and nothing is written - a record without a snapshot is
// not worth persisting. Journal failure only empties the events; the
// record is appended regardless.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	status, err := c.status.Collect(ctx)
	if err != nil {
		return nil, err
	}

	docs, journalErr := c.journal.Collect(ctx)

	now := time.Now()
	events := NormalizeEvents(docs, now)

	if len(events) > 0 {
		kept := events[:0]
		for _, event := range events {
			if c.filters.Apply(event) {
				kept = append(kept, event)
			}
		}
		events = kept
	}

	record := BuildRecord(status, events, now)

	if err := c.sink.Append(record); err != nil {
		return nil, err
	}

	c.logger.Info("msg", "Collection cycle complete",
		"component", "collector",
		"path", c.sink.Path(),
		"events", len(record.Events),
		"journal_failed", journalErr != nil)

	c.logger.Debug("msg", "Pipeline statistics",
		"component", "collector",
		"filters", c.filters.GetStats(),
		"sink", c.sink.GetStats())

	return &Result{
		Path:       c.sink.Path(),
		EventCount: len(record.Events),
		JournalErr: journalErr,
	}, nil
}
