// Package pipeline orchestrates one certificate inspection run: open
// the source, split the stream into PEM blocks, extract fields per
// block, and compute the renewal window for the leaf certificate.
package pipeline

import (
	"time"

	"github.com/tk-ops/certops/internal/inspect"
	"github.com/tk-ops/certops/internal/logger"
	"github.com/tk-ops/certops/internal/pemsplit"
	"github.com/tk-ops/certops/internal/renewal"
	"github.com/tk-ops/certops/internal/source"
)

// Options controls the renewal calculation.
type Options struct {
	// LeadDays is the renewal lead time in days.
	LeadDays int

	// Location is the display timezone for renewal instants.
	Location *time.Location
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Records holds one record per certificate, in chain order. The
	// first record is the leaf.
	Records []*inspect.Record

	// Renewal is the leaf certificate's renewal decision, nil when it
	// could not be computed.
	Renewal *renewal.Decision

	// RenewalErr explains a nil Renewal: missing validity dates or a
	// malformed timestamp. It never invalidates Records.
	RenewalErr error
}

// Run executes the pipeline against src. Certificates are extracted
// sequentially in chain order; a tool failure on any block aborts the
// whole run with no partial result, since an unparseable certificate
// in a chain invalidates confidence in the rest.
func Run(src source.Source, opts Options) (*Result, error) {
	stream, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	blocks, err := pemsplit.Split(stream)
	if err != nil {
		return nil, err
	}
	logger.Debug("split %d certificate block(s) from %s", len(blocks), src.Name())

	records := make([]*inspect.Record, 0, len(blocks))
	for i, block := range blocks {
		logger.Debug("extracting fields for certificate %d of %d", i+1, len(blocks))
		rec, err := inspect.Extract(block)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	result := &Result{Records: records}
	if len(records) == 0 {
		logger.Warn("no certificates found in %s", src.Name())
		return result, nil
	}

	// Only the leaf's expiry matters for a TLS endpoint.
	decision, err := renewal.Compute(records[0], opts.LeadDays, opts.Location)
	if err != nil {
		result.RenewalErr = err
		return result, nil
	}
	result.Renewal = decision

	return result, nil
}
