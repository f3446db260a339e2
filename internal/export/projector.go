package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrWrite is returned when at least one sink could not be written.
	ErrWrite = errors.New("export failed")
	// ErrRead is returned when the record set could not be loaded.
	ErrRead = errors.New("export source unavailable")
)

// Projector rewrites every sink from the full record set.
type Projector struct {
	lister Lister
	sinks  []Sink
	logger *slog.Logger
}

func NewProjector(lister Lister, logger *slog.Logger, sinks ...Sink) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{lister: lister, sinks: sinks, logger: logger}
}

// Sinks returns the names of the configured sinks.
func (p *Projector) Sinks() []string {
	names := make([]string, len(p.sinks))
	for i, s := range p.sinks {
		names[i] = s.Name()
	}
	return names
}

// Project reads every record and overwrites each sink with the result.
// All sinks are attempted even if one fails; failures are joined.
func (p *Projector) Project(ctx context.Context) error {
	start := time.Now()

	records, err := p.lister.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	table := BuildTable(records)

	var errs []error
	for _, s := range p.sinks {
		if err := s.Write(ctx, table); err != nil {
			p.logger.ErrorContext(ctx, "Export sink failed",
				"sink", s.Name(),
				"rows", len(table.Rows),
				"error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		p.logger.DebugContext(ctx, "Export sink written",
			"sink", s.Name(),
			"rows", len(table.Rows))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrWrite, errors.Join(errs...))
	}

	p.logger.InfoContext(ctx, "Export completed",
		"rows", len(table.Rows),
		"sinks", len(p.sinks),
		"duration", time.Since(start))
	return nil
}
