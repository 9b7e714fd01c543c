// Package renewal computes when a certificate is due for rotation.
package renewal

import (
	"fmt"
	"strings"
	"time"

	certerrors "github.com/tk-ops/certops/internal/errors"
	"github.com/tk-ops/certops/internal/inspect"
)

// openssl prints validity timestamps as "Mar 18 05:36:21 2025 GMT",
// day space-padded, always GMT. The suffix is checked literally: any
// other zone means the input did not come from the expected tool and
// silently accepting it would shift the renewal instant by the zone
// offset.
const (
	timeLayout = "Jan _2 15:04:05 2006"
	gmtSuffix  = " GMT"
)

// DefaultLeadDays is the default renewal lead time.
const DefaultLeadDays = 30

// Decision is the renewal window for one certificate, with all
// instants converted to the operator's display timezone.
type Decision struct {
	NotBefore   time.Time
	NotAfter    time.Time
	NextRenewal time.Time
}

// Summary renders the tab-separated diagnostic line.
func (d *Decision) Summary() string {
	const layout = time.RFC3339
	return fmt.Sprintf("notBefore=%s\tnotAfter=%s\tnextRenewal=%s",
		d.NotBefore.Format(layout),
		d.NotAfter.Format(layout),
		d.NextRenewal.Format(layout))
}

// ParseGMT parses one validity timestamp. The literal " GMT" suffix is
// required; anything else is a TIMESTAMP error.
func ParseGMT(value string) (time.Time, error) {
	if !strings.HasSuffix(value, gmtSuffix) {
		return time.Time{}, certerrors.Timestamp(value)
	}
	t, err := time.ParseInLocation(timeLayout, strings.TrimSuffix(value, gmtSuffix), time.UTC)
	if err != nil {
		return time.Time{}, certerrors.Wrap(certerrors.ErrCodeTimestamp,
			fmt.Sprintf("malformed timestamp %q", value), err)
	}
	return t, nil
}

// Compute derives the renewal decision for one record: renew leadDays
// before expiry, displayed in loc.
//
// A record without both validity dates gets a MISSING error so the
// caller can degrade the summary without touching the primary output.
func Compute(rec *inspect.Record, leadDays int, loc *time.Location) (*Decision, error) {
	if rec.NotBefore == "" || rec.NotAfter == "" {
		return nil, certerrors.ErrMissingValidity
	}
	if loc == nil {
		loc = time.UTC
	}

	notBefore, err := ParseGMT(rec.NotBefore)
	if err != nil {
		return nil, err
	}
	notAfter, err := ParseGMT(rec.NotAfter)
	if err != nil {
		return nil, err
	}

	return &Decision{
		NotBefore:   notBefore.In(loc),
		NotAfter:    notAfter.In(loc),
		NextRenewal: notAfter.AddDate(0, 0, -leadDays).In(loc),
	}, nil
}
