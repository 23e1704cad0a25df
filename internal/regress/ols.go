package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"xc60-deals/internal/pipeline"
)

func logPrice(price float64) float64 { return math.Log(price) }

// Fit estimates one specification on the fully resolved subset of records.
// Returns ErrInsufficientData when fewer than minRecords usable observations
// exist (or the design has more parameters than observations), and
// ErrDegenerate when the design matrix is singular. Degeneracy is fatal for
// this specification only; callers keep the other specification and the rest
// of the pipeline running.
func Fit(kind Kind, records []pipeline.CanonicalRecord, minRecords int) (*Model, error) {
	fitting := make([]pipeline.CanonicalRecord, 0, len(records))
	for _, rec := range records {
		if Fittable(rec) {
			fitting = append(fitting, rec)
		}
	}

	n := len(fitting)
	if n < minRecords {
		return nil, fmt.Errorf("%w: %d usable records, need %d", ErrInsufficientData, n, minRecords)
	}

	d := buildDesign(fitting, kind)
	k := len(d.cols)
	if n <= k {
		return nil, fmt.Errorf("%w: %d records cannot identify %d parameters", ErrInsufficientData, n, k)
	}

	// beta = (XᵀX)⁻¹ Xᵀy; the explicit inverse is also needed for the
	// coefficient standard errors.
	var xtx mat.Dense
	xtx.Mul(d.x.T(), d.x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	var xty mat.VecDense
	xty.MulVec(d.x.T(), d.y)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var fitted mat.VecDense
	fitted.MulVec(d.x, &beta)

	residuals := make([]Residual, n)
	rss := 0.0
	meanY := 0.0
	for i := 0; i < n; i++ {
		meanY += d.y.AtVec(i)
	}
	meanY /= float64(n)

	tss := 0.0
	for i := 0; i < n; i++ {
		actual := d.y.AtVec(i)
		fit := fitted.AtVec(i)
		resid := actual - fit
		residuals[i] = Residual{
			Registration: d.regs[i],
			Actual:       actual,
			Fitted:       fit,
			Residual:     resid,
		}
		rss += resid * resid
		tss += (actual - meanY) * (actual - meanY)
	}

	sigma2 := rss / float64(n-k)

	coefficients := make([]Coefficient, k)
	coefs := make(map[string]float64, k)
	for j, name := range d.cols {
		coefficients[j] = Coefficient{
			Name:   name,
			Value:  beta.AtVec(j),
			StdErr: math.Sqrt(sigma2 * xtxInv.At(j, j)),
		}
		coefs[name] = beta.AtVec(j)
	}

	r2 := 0.0
	adjR2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
		adjR2 = 1 - (1-r2)*float64(n-1)/float64(n-k)
	}

	// Gaussian log-likelihood; AIC/BIC count the k mean parameters, matching
	// the statistics most OLS packages report.
	logLik := -float64(n) / 2 * (math.Log(2*math.Pi) + math.Log(rss/float64(n)) + 1)

	return &Model{
		Kind:         kind,
		Coefficients: coefficients,
		References:   d.references,
		NObs:         n,
		R2:           r2,
		AdjR2:        adjR2,
		AIC:          -2*logLik + 2*float64(k),
		BIC:          -2*logLik + float64(k)*math.Log(float64(n)),
		RMSE:         math.Sqrt(sigma2),
		Residuals:    residuals,
		coefs:        coefs,
	}, nil
}
