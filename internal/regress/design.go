package regress

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/vocab"
)

// Mileage enters the design matrix in 10 000 km units so coefficients read
// as SEK (or log points) per 10k km. Pure reparameterization; predictions
// are unaffected.
const mileageScale = 10000.0

const (
	colIntercept  = "intercept"
	colMileage    = "mileage_10k"
	colHorsepower = "horsepower"
)

func yearCol(year int) string { return fmt.Sprintf("year[%d]", year) }

func engineCol(e vocab.EngineCode) string { return fmt.Sprintf("engine[%s]", e) }

func fuelCol(f vocab.FuelType) string { return fmt.Sprintf("fuel[%s]", f) }

func transmissionCol(t vocab.Transmission) string { return fmt.Sprintf("transmission[%s]", t) }

func driveCol(d vocab.DriveType) string { return fmt.Sprintf("drive[%s]", d) }

// Fittable reports whether a record carries every field the regression
// needs. Unverified registrations still fit; the plate's format says
// nothing about the listing's price signal.
func Fittable(rec pipeline.CanonicalRecord) bool {
	return rec.Price.IsPositive() &&
		rec.MileageResolved &&
		rec.Horsepower > 0 &&
		rec.ModelYear > 0 &&
		rec.Fuel.Resolved() &&
		rec.Transmission.Resolved() &&
		rec.Drive.Resolved() &&
		rec.Engine.Resolved()
}

// design holds the dummy-encoded matrix for one fit.
type design struct {
	cols       []string
	x          *mat.Dense
	y          *mat.VecDense
	regs       []string
	references References
}

// buildDesign encodes the fitting subset. One category per fixed-effect
// group is held out as reference: the configured reference when present in
// the data, otherwise the first present category in the group's fixed order.
// A group with a single observed category contributes no columns at all;
// a dummy that is 1 on every row duplicates the intercept.
func buildDesign(records []pipeline.CanonicalRecord, kind Kind) *design {
	years := make(map[int]bool)
	engines := make(map[vocab.EngineCode]bool)
	fuels := make(map[vocab.FuelType]bool)
	transmissions := make(map[vocab.Transmission]bool)
	drives := make(map[vocab.DriveType]bool)
	for _, rec := range records {
		years[rec.ModelYear] = true
		engines[rec.Engine] = true
		fuels[rec.Fuel] = true
		transmissions[rec.Transmission] = true
		drives[rec.Drive] = true
	}

	sortedYears := make([]int, 0, len(years))
	for y := range years {
		sortedYears = append(sortedYears, y)
	}
	sort.Ints(sortedYears)

	refs := References{
		ModelYear:    sortedYears[0], // earliest year present
		Engine:       pickEngineRef(engines),
		Fuel:         pickFuelRef(fuels),
		Transmission: pickTransmissionRef(transmissions),
		Drive:        pickDriveRef(drives),
	}

	cols := []string{colIntercept, colMileage, colHorsepower}
	for _, y := range sortedYears {
		if y != refs.ModelYear {
			cols = append(cols, yearCol(y))
		}
	}
	for _, e := range vocab.EngineCodes {
		if engines[e] && e != refs.Engine {
			cols = append(cols, engineCol(e))
		}
	}
	for _, f := range vocab.FuelTypes {
		if fuels[f] && f != refs.Fuel {
			cols = append(cols, fuelCol(f))
		}
	}
	for _, t := range vocab.Transmissions {
		if transmissions[t] && t != refs.Transmission {
			cols = append(cols, transmissionCol(t))
		}
	}
	for _, d := range vocab.DriveTypes {
		if drives[d] && d != refs.Drive {
			cols = append(cols, driveCol(d))
		}
	}

	colIndex := make(map[string]int, len(cols))
	for i, name := range cols {
		colIndex[name] = i
	}

	n := len(records)
	x := mat.NewDense(n, len(cols), nil)
	y := mat.NewVecDense(n, nil)
	regs := make([]string, n)

	for i, rec := range records {
		x.Set(i, colIndex[colIntercept], 1)
		x.Set(i, colIndex[colMileage], rec.Mileage/mileageScale)
		x.Set(i, colIndex[colHorsepower], float64(rec.Horsepower))
		for _, name := range []string{
			yearCol(rec.ModelYear),
			engineCol(rec.Engine),
			fuelCol(rec.Fuel),
			transmissionCol(rec.Transmission),
			driveCol(rec.Drive),
		} {
			if j, ok := colIndex[name]; ok {
				x.Set(i, j, 1)
			}
		}

		y.SetVec(i, response(rec, kind))
		regs[i] = rec.Registration
	}

	return &design{cols: cols, x: x, y: y, regs: regs, references: refs}
}

func response(rec pipeline.CanonicalRecord, kind Kind) float64 {
	price := rec.Price.InexactFloat64()
	if kind == LogLinear {
		return logPrice(price)
	}
	return price
}

func pickEngineRef(present map[vocab.EngineCode]bool) vocab.EngineCode {
	if present[vocab.ReferenceEngine] {
		return vocab.ReferenceEngine
	}
	for _, e := range vocab.EngineCodes {
		if present[e] {
			return e
		}
	}
	return vocab.ReferenceEngine
}

func pickFuelRef(present map[vocab.FuelType]bool) vocab.FuelType {
	if present[vocab.ReferenceFuel] {
		return vocab.ReferenceFuel
	}
	for _, f := range vocab.FuelTypes {
		if present[f] {
			return f
		}
	}
	return vocab.ReferenceFuel
}

func pickTransmissionRef(present map[vocab.Transmission]bool) vocab.Transmission {
	if present[vocab.ReferenceTransmission] {
		return vocab.ReferenceTransmission
	}
	for _, t := range vocab.Transmissions {
		if present[t] {
			return t
		}
	}
	return vocab.ReferenceTransmission
}

func pickDriveRef(present map[vocab.DriveType]bool) vocab.DriveType {
	if present[vocab.ReferenceDrive] {
		return vocab.ReferenceDrive
	}
	for _, d := range vocab.DriveTypes {
		if present[d] {
			return d
		}
	}
	return vocab.ReferenceDrive
}
