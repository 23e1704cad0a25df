// Package deals scores canonical records against the fitted fair-price
// models and ranks them by discount.
package deals

import (
	"sort"

	"github.com/shopspring/decimal"

	"xc60-deals/internal/pipeline"
)

// Predictor yields a predicted price in SEK for a record, or reports that no
// prediction is possible.
type Predictor interface {
	Predict(pipeline.CanonicalRecord) (float64, bool)
}

// Reason codes for records left out of the ranking.
const (
	ReasonNoModel               = "no_model"
	ReasonMissingPrice          = "missing_price"
	ReasonUnresolvedMileage     = "unresolved_mileage"
	ReasonUnresolvedHorsepower  = "unresolved_horsepower"
	ReasonNonpositivePrediction = "nonpositive_prediction"
)

var dec100 = decimal.NewFromInt(100)

// ScoredRecord is a canonical record with its deal metrics. DiscountPct and
// DiscountSEK both derive from the primary specification's predicted price so
// the two figures always describe the same estimate.
type ScoredRecord struct {
	pipeline.CanonicalRecord

	PredictedLinear    decimal.Decimal
	HasLinear          bool
	PredictedLogLinear decimal.Decimal
	HasLogLinear       bool

	Predicted   decimal.Decimal
	DiscountPct decimal.Decimal
	DiscountSEK decimal.Decimal
	Rank        int
}

// UnscoredRecord is a canonical record that could not be ranked.
type UnscoredRecord struct {
	pipeline.CanonicalRecord
	Reason string
}

// Result is one scoring pass over the canonical dataset.
type Result struct {
	Ranked   []ScoredRecord
	Unscored []UnscoredRecord
}

// Score computes deal metrics for every record. The primary specification is
// the log-linear model when it fit, otherwise the linear model; per-spec
// predictions are carried alongside for the output columns. Records without
// a usable prediction land in Unscored with a reason code. Ranking order:
// discount percentage descending, discount SEK descending, registration
// ascending.
func Score(records []pipeline.CanonicalRecord, linear, loglinear Predictor) Result {
	primary := loglinear
	if primary == nil {
		primary = linear
	}

	var result Result
	for _, rec := range records {
		if primary == nil {
			result.Unscored = append(result.Unscored, UnscoredRecord{rec, ReasonNoModel})
			continue
		}
		if reason, ok := scoreable(rec); !ok {
			result.Unscored = append(result.Unscored, UnscoredRecord{rec, reason})
			continue
		}

		scored := ScoredRecord{CanonicalRecord: rec}
		if linear != nil {
			if p, ok := linear.Predict(rec); ok {
				scored.PredictedLinear = decimal.NewFromFloat(p)
				scored.HasLinear = true
			}
		}
		if loglinear != nil {
			if p, ok := loglinear.Predict(rec); ok {
				scored.PredictedLogLinear = decimal.NewFromFloat(p)
				scored.HasLogLinear = true
			}
		}

		predFloat, ok := primary.Predict(rec)
		if !ok {
			// scoreable already checked the inputs Predict needs
			result.Unscored = append(result.Unscored, UnscoredRecord{rec, ReasonNonpositivePrediction})
			continue
		}
		pred := decimal.NewFromFloat(predFloat)
		if !pred.IsPositive() {
			result.Unscored = append(result.Unscored, UnscoredRecord{rec, ReasonNonpositivePrediction})
			continue
		}

		scored.Predicted = pred
		scored.DiscountSEK = pred.Sub(rec.Price)
		scored.DiscountPct = scored.DiscountSEK.Div(pred).Mul(dec100)
		result.Ranked = append(result.Ranked, scored)
	}

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		a, b := result.Ranked[i], result.Ranked[j]
		if cmp := a.DiscountPct.Cmp(b.DiscountPct); cmp != 0 {
			return cmp > 0
		}
		if cmp := a.DiscountSEK.Cmp(b.DiscountSEK); cmp != 0 {
			return cmp > 0
		}
		return a.Registration < b.Registration
	})
	for i := range result.Ranked {
		result.Ranked[i].Rank = i + 1
	}

	return result
}

func scoreable(rec pipeline.CanonicalRecord) (string, bool) {
	if !rec.Price.IsPositive() {
		return ReasonMissingPrice, false
	}
	if !rec.MileageResolved {
		return ReasonUnresolvedMileage, false
	}
	if rec.Horsepower <= 0 {
		return ReasonUnresolvedHorsepower, false
	}
	return "", true
}
