package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit        int
	Registration string
}

// Show prints the latest persisted snapshot's ranking, or one registration's
// stored history when a registration is given.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("database.dsn not configured; nothing to show")
	}
	defer closeStore()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if opts.Registration != "" {
		listings, err := store.ListListingHistory(ctx, opts.Registration, opts.Limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "snapshot\tsource\tprice\tmileage\tengine\tlocation")
		for _, row := range listings {
			mileage := ""
			if row.Mileage != nil {
				mileage = fmt.Sprintf("%.0f", *row.Mileage)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.SnapshotDate.Format("2006-01-02"),
				row.Source,
				row.Price.StringFixed(0),
				mileage,
				deref(row.EngineCode),
				deref(row.Location),
			)
		}
		return nil
	}

	ranked, err := store.ListRecentDeals(ctx, opts.Limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "rank\tregistration\tpredicted\tdiscount %\tdiscount SEK\tsnapshot")
	for _, row := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Rank,
			row.Registration,
			row.PredictedPrice.StringFixed(0),
			row.DiscountPct.StringFixed(1),
			row.DiscountSEK.StringFixed(0),
			row.SnapshotDate.Format("2006-01-02"),
		)
	}
	return nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
