package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"timecard-backend/internal/ledger"
	"timecard-backend/internal/store"
	"timecard-backend/internal/wage"
)

// Dimension selects which settled value a series reports.
type Dimension string

const (
	DimensionHourlyRate Dimension = "hourlyRate"
	DimensionWorkHours  Dimension = "workHours"
)

// Valid reports whether the dimension is one of the two known values.
func (d Dimension) Valid() bool {
	return d == DimensionHourlyRate || d == DimensionWorkHours
}

// Point is one day of heatmap data.
type Point struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Projector builds read-only per-day series from settled clock records.
type Projector struct {
	store store.Store
}

// NewProjector creates a Projector backed by the given store.
func NewProjector(s store.Store) *Projector {
	return &Projector{store: s}
}

// Series returns the selected dimension for every settled record in
// [start, end], ordered by day ascending. Days that were clocked in but
// never clocked out are omitted entirely; the output is sparse, and an
// empty range is an empty slice.
func (p *Projector) Series(ctx context.Context, userID string, start, end time.Time, dim Dimension) ([]Point, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: unknown dimension %q", ledger.ErrValidation, dim)
	}

	recs, err := p.store.ListClockRecords(ctx, userID,
		wage.DayBucket(start.UTC().UnixMilli()),
		wage.DayBucket(end.UTC().UnixMilli()))
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(recs))
	for _, rec := range recs {
		var value decimal.NullDecimal
		switch dim {
		case DimensionHourlyRate:
			value = rec.ActualHourlyRate
		case DimensionWorkHours:
			value = rec.ActualWorkHours
		}
		if !value.Valid {
			continue
		}
		points = append(points, Point{
			Date:  wage.DayLabel(rec.Day),
			Value: value.Decimal,
		})
	}
	return points, nil
}
