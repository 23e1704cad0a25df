package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	upsertListingSQL = `INSERT INTO listings (
        registration,
        snapshot_date,
        source,
        price,
        model_year,
        mileage,
        horsepower,
        engine_code,
        fuel_type,
        transmission,
        driving_type,
        location,
        model_variant
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
    )
    ON CONFLICT (registration, snapshot_date) DO UPDATE
    SET
        source        = EXCLUDED.source,
        price         = EXCLUDED.price,
        model_year    = EXCLUDED.model_year,
        mileage       = EXCLUDED.mileage,
        horsepower    = EXCLUDED.horsepower,
        engine_code   = EXCLUDED.engine_code,
        fuel_type     = EXCLUDED.fuel_type,
        transmission  = EXCLUDED.transmission,
        driving_type  = EXCLUDED.driving_type,
        location      = EXCLUDED.location,
        model_variant = EXCLUDED.model_variant;`

	upsertDealScoreSQL = `INSERT INTO deal_scores (
        registration,
        snapshot_date,
        predicted_price,
        discount_pct,
        discount_sek,
        rank
    ) VALUES (
        $1,$2,$3,$4,$5,$6
    )
    ON CONFLICT (registration, snapshot_date) DO UPDATE
    SET predicted_price = EXCLUDED.predicted_price,
        discount_pct    = EXCLUDED.discount_pct,
        discount_sek    = EXCLUDED.discount_sek,
        rank            = EXCLUDED.rank;`

	listRecentDealsSQL = `SELECT
        d.registration,
        d.snapshot_date,
        d.predicted_price,
        d.discount_pct,
        d.discount_sek,
        d.rank,
        d.created_at
    FROM deal_scores d
    WHERE d.snapshot_date = (SELECT MAX(snapshot_date) FROM deal_scores)
    ORDER BY d.rank
    LIMIT $1;`

	listListingHistorySQL = `SELECT
        registration,
        snapshot_date,
        source,
        price,
        model_year,
        mileage,
        horsepower,
        engine_code,
        fuel_type,
        transmission,
        driving_type,
        location,
        model_variant,
        created_at
    FROM listings
    WHERE registration = $1
    ORDER BY snapshot_date DESC
    LIMIT $2;`

	countListingsSQL = `SELECT COUNT(*) FROM listings;`

	deleteSnapshotsBeforeSQL = `DELETE FROM deal_scores WHERE snapshot_date < $1;`
	deleteListingsBeforeSQL  = `DELETE FROM listings WHERE snapshot_date < $1;`
)

// ListingStore defines operations for listing snapshot persistence.
type ListingStore interface {
	UpsertListing(ctx context.Context, row ListingRow) error
	ListListingHistory(ctx context.Context, registration string, limit int) ([]ListingRow, error)
	CountListings(ctx context.Context) (int64, error)
}

// DealScoreStore defines operations for ranked-deal persistence.
type DealScoreStore interface {
	UpsertDealScore(ctx context.Context, row DealScoreRow) error
	ListRecentDeals(ctx context.Context, limit int) ([]DealScoreRow, error)
	DeleteSnapshotsBefore(ctx context.Context, olderThan time.Time) error
}

// Store aggregates access to listings and deal scores.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// UpsertListing persists or updates one listing for its snapshot date.
func (s *Store) UpsertListing(ctx context.Context, row ListingRow) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	_, execErr := pool.Exec(ctx, upsertListingSQL,
		row.Registration,
		row.SnapshotDate,
		row.Source,
		row.Price.String(),
		row.ModelYear,
		row.Mileage,
		row.Horsepower,
		row.EngineCode,
		row.FuelType,
		row.Transmission,
		row.DrivingType,
		row.Location,
		row.ModelVariant,
	)
	if execErr != nil {
		return fmt.Errorf("upsert listing: %w", execErr)
	}
	return nil
}

// UpsertDealScore persists or updates one ranked deal for its snapshot date.
func (s *Store) UpsertDealScore(ctx context.Context, row DealScoreRow) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	_, execErr := pool.Exec(ctx, upsertDealScoreSQL,
		row.Registration,
		row.SnapshotDate,
		row.PredictedPrice.String(),
		row.DiscountPct.String(),
		row.DiscountSEK.String(),
		row.Rank,
	)
	if execErr != nil {
		return fmt.Errorf("upsert deal score: %w", execErr)
	}
	return nil
}

// ListRecentDeals lists the latest snapshot's deals ordered by rank.
func (s *Store) ListRecentDeals(ctx context.Context, limit int) ([]DealScoreRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentDealsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent deals: %w", queryErr)
	}
	defer rows.Close()

	deals := make([]DealScoreRow, 0, limit)
	for rows.Next() {
		rec, scanErr := scanDealScore(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deals = append(deals, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return deals, nil
}

// ListListingHistory lists stored snapshots of one registration, newest first.
func (s *Store) ListListingHistory(ctx context.Context, registration string, limit int) ([]ListingRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listListingHistorySQL, registration, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list listing history: %w", queryErr)
	}
	defer rows.Close()

	listings := make([]ListingRow, 0, limit)
	for rows.Next() {
		rec, scanErr := scanListing(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		listings = append(listings, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return listings, nil
}

// CountListings counts stored listing rows.
func (s *Store) CountListings(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countListingsSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count listings: %w", scanErr)
	}
	return count, nil
}

// DeleteSnapshotsBefore deletes listings and deal scores older than the cutoff.
func (s *Store) DeleteSnapshotsBefore(ctx context.Context, olderThan time.Time) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, deleteSnapshotsBeforeSQL, olderThan); execErr != nil {
		return fmt.Errorf("delete deal scores before: %w", execErr)
	}
	if _, execErr := pool.Exec(ctx, deleteListingsBeforeSQL, olderThan); execErr != nil {
		return fmt.Errorf("delete listings before: %w", execErr)
	}
	return nil
}

func scanDealScore(rows pgx.Rows) (DealScoreRow, error) {
	var (
		rec          DealScoreRow
		predictedStr string
		pctStr       string
		sekStr       string
	)

	if err := rows.Scan(
		&rec.Registration,
		&rec.SnapshotDate,
		&predictedStr,
		&pctStr,
		&sekStr,
		&rec.Rank,
		&rec.CreatedAt,
	); err != nil {
		return DealScoreRow{}, err
	}

	var convErr error
	rec.PredictedPrice, convErr = decimal.NewFromString(predictedStr)
	if convErr != nil {
		return DealScoreRow{}, fmt.Errorf("parse predicted price: %w", convErr)
	}
	rec.DiscountPct, convErr = decimal.NewFromString(pctStr)
	if convErr != nil {
		return DealScoreRow{}, fmt.Errorf("parse discount pct: %w", convErr)
	}
	rec.DiscountSEK, convErr = decimal.NewFromString(sekStr)
	if convErr != nil {
		return DealScoreRow{}, fmt.Errorf("parse discount sek: %w", convErr)
	}

	return rec, nil
}

func scanListing(rows pgx.Rows) (ListingRow, error) {
	var (
		rec          ListingRow
		priceStr     string
		modelYear    sql.NullInt64
		mileage      sql.NullFloat64
		horsepower   sql.NullInt64
		engineCode   sql.NullString
		fuelType     sql.NullString
		transmission sql.NullString
		drivingType  sql.NullString
		location     sql.NullString
		modelVariant sql.NullString
	)

	if err := rows.Scan(
		&rec.Registration,
		&rec.SnapshotDate,
		&rec.Source,
		&priceStr,
		&modelYear,
		&mileage,
		&horsepower,
		&engineCode,
		&fuelType,
		&transmission,
		&drivingType,
		&location,
		&modelVariant,
		&rec.CreatedAt,
	); err != nil {
		return ListingRow{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return ListingRow{}, fmt.Errorf("parse price: %w", err)
	}
	rec.Price = price

	if modelYear.Valid {
		value := int(modelYear.Int64)
		rec.ModelYear = &value
	}
	if mileage.Valid {
		value := mileage.Float64
		rec.Mileage = &value
	}
	if horsepower.Valid {
		value := int(horsepower.Int64)
		rec.Horsepower = &value
	}
	rec.EngineCode = nullString(engineCode)
	rec.FuelType = nullString(fuelType)
	rec.Transmission = nullString(transmission)
	rec.DrivingType = nullString(drivingType)
	rec.Location = nullString(location)
	rec.ModelVariant = nullString(modelVariant)

	return rec, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	value := v.String
	return &value
}
