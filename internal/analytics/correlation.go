package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	apperrors "epipulse/internal/errors"
	"epipulse/internal/pipeline"
)

// Correlation computes the Pearson correlation coefficient between two
// record fields over the pairwise-complete observations: records where
// either field is null are skipped. Fewer than two complete pairs is a
// NoData error.
func Correlation(records []pipeline.CleanedRecord, x, y Field) (float64, error) {
	if !x.Valid() || !y.Valid() {
		return 0, apperrors.NewValidationError(fmt.Sprintf("unknown correlation fields %q, %q", x, y))
	}

	xs := make([]float64, 0, len(records))
	ys := make([]float64, 0, len(records))
	for _, r := range records {
		xv, yv := x.value(r), y.value(r)
		if xv == nil || yv == nil {
			continue
		}
		xs = append(xs, *xv)
		ys = append(ys, *yv)
	}

	if len(xs) < 2 {
		return 0, apperrors.NewNoDataError("correlation").
			WithContext("pairs", len(xs))
	}

	return stat.Correlation(xs, ys, nil), nil
}
