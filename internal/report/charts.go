package report

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"xc60-deals/internal/deals"
	"xc60-deals/internal/regress"
)

// ChartOptions size the rendered PNGs.
type ChartOptions struct {
	Width  int
	Height int
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	return o
}

// WriteDealsChart renders the price-vs-mileage scatter with the top deals
// highlighted.
func WriteDealsChart(path string, ranked []deals.ScoredRecord, highlight int, opts ChartOptions) error {
	if len(ranked) == 0 {
		return fmt.Errorf("no scored records to chart")
	}
	opts = opts.withDefaults()

	mileage := make([]float64, len(ranked))
	price := make([]float64, len(ranked))
	for i, rec := range ranked {
		mileage[i] = rec.Mileage
		price[i] = rec.Price.InexactFloat64()
	}

	if highlight > len(ranked) {
		highlight = len(ranked)
	}
	topMileage := make([]float64, highlight)
	topPrice := make([]float64, highlight)
	for i := 0; i < highlight; i++ {
		topMileage[i] = ranked[i].Mileage
		topPrice[i] = ranked[i].Price.InexactFloat64()
	}

	graph := chart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name: "Mileage (km)",
		},
		YAxis: chart.YAxis{
			Name: "Price (SEK)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Listings",
				XValues: mileage,
				YValues: price,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
				},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("Top %d deals", highlight),
				XValues: topMileage,
				YValues: topPrice,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    8,
					DotColor:    drawing.ColorGreen,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, graph)
}

// WriteResidualChart renders one model's residual-vs-fitted diagnostic.
func WriteResidualChart(path string, model *regress.Model, opts ChartOptions) error {
	if model == nil || len(model.Residuals) == 0 {
		return fmt.Errorf("no fitted model to chart")
	}
	opts = opts.withDefaults()

	fitted := make([]float64, len(model.Residuals))
	residual := make([]float64, len(model.Residuals))
	for i, res := range model.Residuals {
		fitted[i] = res.Fitted
		residual[i] = res.Residual
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Residuals vs fitted (%s)", model.Kind),
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name: "Fitted",
		},
		YAxis: chart.YAxis{
			Name: "Residual",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Residuals",
				XValues: fitted,
				YValues: residual,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
				},
			},
		},
	}

	return renderPNG(path, graph)
}

func renderPNG(path string, graph chart.Chart) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(chart.PNG, file)
}
