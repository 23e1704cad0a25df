// Package regress fits the fair-price regressions on the canonical dataset.
// Two ordinary-least-squares specifications are supported: price in SEK
// (linear) and log price (log-linear), both with mileage and horsepower as
// continuous predictors and model year, engine code, fuel type, transmission,
// and drive type as categorical fixed effects.
package regress

import (
	"errors"
	"math"

	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/vocab"
)

// Kind selects the regression specification.
type Kind string

// Specification kinds.
const (
	Linear    Kind = "linear"
	LogLinear Kind = "loglinear"
)

var (
	// ErrInsufficientData means too few fully resolved records to fit.
	ErrInsufficientData = errors.New("regress: insufficient data")
	// ErrDegenerate means the design matrix has no stable solution.
	ErrDegenerate = errors.New("regress: singular design matrix")
)

// Coefficient is one fitted parameter with its standard error.
type Coefficient struct {
	Name   string
	Value  float64
	StdErr float64
}

// Residual is one record's raw residual in the specification's response
// scale: SEK for the linear model, log points for the log-linear model.
type Residual struct {
	Registration string
	Actual       float64
	Fitted       float64
	Residual     float64
}

// References records which category was held out per fixed-effect group.
type References struct {
	ModelYear    int
	Engine       vocab.EngineCode
	Fuel         vocab.FuelType
	Transmission vocab.Transmission
	Drive        vocab.DriveType
}

// Model is an immutable fitted regression.
type Model struct {
	Kind         Kind
	Coefficients []Coefficient
	References   References
	NObs         int
	R2           float64
	AdjR2        float64
	AIC          float64
	BIC          float64
	RMSE         float64
	Residuals    []Residual

	coefs map[string]float64
}

// Coefficient returns a fitted coefficient by name.
func (m *Model) Coefficient(name string) (float64, bool) {
	v, ok := m.coefs[name]
	return v, ok
}

// Predict returns the predicted price in SEK for a record, applying the
// exact inverse transform for the log-linear specification. A record whose
// fixed-effect category is unresolved, or whose category never appeared in
// the fitting data, is scored as the group's reference category. Records
// without mileage or horsepower cannot be predicted.
func (m *Model) Predict(rec pipeline.CanonicalRecord) (float64, bool) {
	if !rec.MileageResolved || rec.Horsepower <= 0 {
		return 0, false
	}

	pred := m.coefs[colIntercept]
	pred += m.coefs[colMileage] * rec.Mileage / mileageScale
	pred += m.coefs[colHorsepower] * float64(rec.Horsepower)
	if rec.ModelYear > 0 {
		pred += m.coefs[yearCol(rec.ModelYear)]
	}
	if rec.Engine.Resolved() {
		pred += m.coefs[engineCol(rec.Engine)]
	}
	if rec.Fuel.Resolved() {
		pred += m.coefs[fuelCol(rec.Fuel)]
	}
	if rec.Transmission.Resolved() {
		pred += m.coefs[transmissionCol(rec.Transmission)]
	}
	if rec.Drive.Resolved() {
		pred += m.coefs[driveCol(rec.Drive)]
	}

	if m.Kind == LogLinear {
		pred = math.Exp(pred)
	}
	return pred, true
}
