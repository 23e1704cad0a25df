package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/regress"
)

// FitOutcome pairs a specification with its fit result; Err carries the
// degeneracy or insufficient-data failure when the model is nil.
type FitOutcome struct {
	Kind  regress.Kind
	Model *regress.Model
	Err   error
}

// WriteModelSummary writes the fit-statistics and coefficient report for the
// reporting collaborator.
func WriteModelSummary(path string, outcomes []FitOutcome, stats pipeline.Stats) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return renderModelSummary(file, outcomes, stats)
}

func renderModelSummary(w io.Writer, outcomes []FitOutcome, stats pipeline.Stats) error {
	fmt.Fprintln(w, "XC60 FAIR-PRICE MODEL SUMMARY")
	fmt.Fprintln(w)

	for _, outcome := range outcomes {
		fmt.Fprintf(w, "=== specification: %s ===\n", outcome.Kind)
		if outcome.Model == nil {
			fmt.Fprintf(w, "not fitted: %v\n\n", outcome.Err)
			continue
		}

		m := outcome.Model
		fmt.Fprintf(w, "observations: %d\n", m.NObs)
		fmt.Fprintf(w, "R²: %.4f\n", m.R2)
		fmt.Fprintf(w, "adj. R²: %.4f\n", m.AdjR2)
		fmt.Fprintf(w, "AIC: %.2f\n", m.AIC)
		fmt.Fprintf(w, "BIC: %.2f\n", m.BIC)
		fmt.Fprintf(w, "RMSE: %.4f\n", m.RMSE)
		fmt.Fprintf(w, "references: year=%d engine=%s fuel=%s transmission=%s drive=%s\n",
			m.References.ModelYear, m.References.Engine, m.References.Fuel,
			m.References.Transmission, m.References.Drive)
		fmt.Fprintln(w)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "coefficient\testimate\tstd. error")
		for _, coef := range m.Coefficients {
			fmt.Fprintf(tw, "%s\t%.6f\t%.6f\n", coef.Name, coef.Value, coef.StdErr)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== pipeline counters ===")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "raw rows\t%d\n", stats.RawRows)
	fmt.Fprintf(tw, "duplicates merged\t%d\n", stats.DuplicatesMerged)
	fmt.Fprintf(tw, "unverified registrations\t%d\n", stats.UnverifiedRegistrations)
	fmt.Fprintf(tw, "malformed price\t%d\n", stats.MalformedPrice)
	fmt.Fprintf(tw, "malformed model year\t%d\n", stats.MalformedModelYear)
	fmt.Fprintf(tw, "malformed mileage\t%d\n", stats.MalformedMileage)
	fmt.Fprintf(tw, "unresolved fuel\t%d\n", stats.UnresolvedFuel)
	fmt.Fprintf(tw, "unresolved transmission\t%d\n", stats.UnresolvedTransmission)
	fmt.Fprintf(tw, "unresolved drive\t%d\n", stats.UnresolvedDrive)
	fmt.Fprintf(tw, "engines extracted\t%d\n", stats.EnginesExtracted)
	fmt.Fprintf(tw, "engines inferred\t%d\n", stats.EnginesInferred)
	fmt.Fprintf(tw, "unresolved engine\t%d\n", stats.UnresolvedEngine)
	fmt.Fprintf(tw, "unresolved horsepower\t%d\n", stats.UnresolvedHorsepower)
	fmt.Fprintf(tw, "future model years\t%d\n", stats.FutureModelYears)
	return tw.Flush()
}
