package deals

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"xc60-deals/internal/pipeline"
)

// surfacePredictor applies a fixed linear price surface:
// 200000 − 0.5·mileage + 300·hp
type surfacePredictor struct{}

func (surfacePredictor) Predict(rec pipeline.CanonicalRecord) (float64, bool) {
	if !rec.MileageResolved || rec.Horsepower <= 0 {
		return 0, false
	}
	return 200000 - 0.5*rec.Mileage + 300*float64(rec.Horsepower), true
}

func scoreRecord(reg string, price int64, mileage float64, hp int) pipeline.CanonicalRecord {
	return pipeline.CanonicalRecord{
		Registration:    reg,
		Price:           decimal.NewFromInt(price),
		Mileage:         mileage,
		MileageResolved: true,
		Horsepower:      hp,
	}
}

func TestScoreDiscountArithmetic(t *testing.T) {
	// mileage 50000, hp 250: predicted = 200000 − 25000 + 75000 = 250000
	rec := scoreRecord("ABC123", 230000, 50000, 250)

	result := Score([]pipeline.CanonicalRecord{rec}, surfacePredictor{}, nil)
	if len(result.Ranked) != 1 {
		t.Fatalf("expected 1 scored record, got %d (unscored: %+v)", len(result.Ranked), result.Unscored)
	}

	scored := result.Ranked[0]
	if !scored.Predicted.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("predicted = %s, want 250000", scored.Predicted)
	}
	if !scored.DiscountSEK.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("discount_sek = %s, want 20000", scored.DiscountSEK)
	}
	if got := scored.DiscountPct.InexactFloat64(); math.Abs(got-8) > 1e-9 {
		t.Errorf("discount_pct = %v, want 8", got)
	}
}

func TestScoreDiscountIdentities(t *testing.T) {
	records := []pipeline.CanonicalRecord{
		scoreRecord("AAA111", 180000, 90000, 197),
		scoreRecord("BBB222", 310000, 20000, 310),
		scoreRecord("CCC333", 255000, 40000, 250),
	}

	result := Score(records, surfacePredictor{}, nil)
	for _, scored := range result.Ranked {
		wantSEK := scored.Predicted.Sub(scored.Price)
		if !scored.DiscountSEK.Equal(wantSEK) {
			t.Errorf("%s: discount_sek = %s, want predicted − actual = %s", scored.Registration, scored.DiscountSEK, wantSEK)
		}
		wantPct := scored.DiscountSEK.Div(scored.Predicted).Mul(decimal.NewFromInt(100))
		if !scored.DiscountPct.Equal(wantPct) {
			t.Errorf("%s: discount_pct = %s, want %s", scored.Registration, scored.DiscountPct, wantPct)
		}
	}
}

func TestScoreRankingOrder(t *testing.T) {
	records := []pipeline.CanonicalRecord{
		scoreRecord("AAA111", 240000, 50000, 250), // pct 4
		scoreRecord("BBB222", 230000, 50000, 250), // pct 8
		scoreRecord("CCC333", 225000, 50000, 250), // pct 10
	}

	result := Score(records, surfacePredictor{}, nil)
	if len(result.Ranked) != 3 {
		t.Fatalf("expected 3 ranked records, got %d", len(result.Ranked))
	}

	for i := 1; i < len(result.Ranked); i++ {
		prev, cur := result.Ranked[i-1], result.Ranked[i]
		if prev.DiscountPct.Cmp(cur.DiscountPct) < 0 {
			t.Errorf("rank %d (%s) has lower discount than rank %d (%s)", i, prev.DiscountPct, i+1, cur.DiscountPct)
		}
	}
	if result.Ranked[0].Registration != "CCC333" || result.Ranked[0].Rank != 1 {
		t.Errorf("best deal should rank first: %+v", result.Ranked[0])
	}
	for i, scored := range result.Ranked {
		if scored.Rank != i+1 {
			t.Errorf("rank positions must be 1..n, got %d at index %d", scored.Rank, i)
		}
	}
}

func TestScoreRankingTieBreaks(t *testing.T) {
	// identical discount percentage and SEK: registration ascending decides
	records := []pipeline.CanonicalRecord{
		scoreRecord("ZZZ999", 230000, 50000, 250),
		scoreRecord("AAA111", 230000, 50000, 250),
	}

	result := Score(records, surfacePredictor{}, nil)
	if result.Ranked[0].Registration != "AAA111" {
		t.Errorf("equal discounts must order by registration ascending, got %q first", result.Ranked[0].Registration)
	}
}

func TestScoreUnscoredReasons(t *testing.T) {
	noPrice := scoreRecord("AAA111", 0, 50000, 250)
	noPrice.Price = decimal.Decimal{}
	noMileage := scoreRecord("BBB222", 230000, 0, 250)
	noMileage.MileageResolved = false
	noHP := scoreRecord("CCC333", 230000, 50000, 0)

	result := Score([]pipeline.CanonicalRecord{noPrice, noMileage, noHP}, surfacePredictor{}, nil)
	if len(result.Ranked) != 0 {
		t.Fatalf("no record should rank, got %d", len(result.Ranked))
	}

	want := map[string]string{
		"AAA111": ReasonMissingPrice,
		"BBB222": ReasonUnresolvedMileage,
		"CCC333": ReasonUnresolvedHorsepower,
	}
	for _, un := range result.Unscored {
		if un.Reason != want[un.Registration] {
			t.Errorf("%s: reason = %q, want %q", un.Registration, un.Reason, want[un.Registration])
		}
	}
}

func TestScoreWithoutAnyModel(t *testing.T) {
	records := []pipeline.CanonicalRecord{scoreRecord("ABC123", 230000, 50000, 250)}

	result := Score(records, nil, nil)
	if len(result.Ranked) != 0 || len(result.Unscored) != 1 {
		t.Fatalf("everything must be unscored without a model: %+v", result)
	}
	if result.Unscored[0].Reason != ReasonNoModel {
		t.Errorf("reason = %q, want %q", result.Unscored[0].Reason, ReasonNoModel)
	}
}

func TestScorePrimarySpecificationIsLogLinear(t *testing.T) {
	rec := scoreRecord("ABC123", 230000, 50000, 250)

	linearOnly := Score([]pipeline.CanonicalRecord{rec}, surfacePredictor{}, nil)
	both := Score([]pipeline.CanonicalRecord{rec}, surfacePredictor{}, shiftedPredictor{offset: 10000})

	if linearOnly.Ranked[0].Predicted.Equal(both.Ranked[0].Predicted) {
		t.Error("log-linear predictor should drive the primary score when present")
	}
	if !both.Ranked[0].HasLinear || !both.Ranked[0].HasLogLinear {
		t.Error("both per-spec predictions should be carried")
	}
}

type shiftedPredictor struct{ offset float64 }

func (s shiftedPredictor) Predict(rec pipeline.CanonicalRecord) (float64, bool) {
	p, ok := surfacePredictor{}.Predict(rec)
	return p + s.offset, ok
}
