package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yourorg/land-api/internal/listing"
)

// ErrNotFound is returned by point lookups that match no row.
var ErrNotFound = errors.New("not found")

// Store is the read-mostly reference datastore: rated cities and the
// builders operating in them. Scraped land listings are never written here.
type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS city_ratings (
            id              BIGSERIAL PRIMARY KEY,
            city            TEXT NOT NULL,
            state           TEXT NOT NULL,
            latitude        DOUBLE PRECISION,
            longitude       DOUBLE PRECISION,
            city_rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
            rating_category TEXT,
            community_count INTEGER NOT NULL DEFAULT 0,
            builder_count   INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_city_ratings_city_state ON city_ratings(city, state);`,
		`CREATE TABLE IF NOT EXISTS builders (
            id           BIGSERIAL PRIMARY KEY,
            builder_name TEXT NOT NULL,
            project_name TEXT,
            city         TEXT NOT NULL,
            state        TEXT NOT NULL,
            latitude     DOUBLE PRECISION,
            longitude    DOUBLE PRECISION
        );`,
		`CREATE INDEX IF NOT EXISTS idx_builders_city_state ON builders(city, state);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// City is one rated city row.
type City struct {
	ID             int64    `json:"id"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	CityRating     float64  `json:"city_rating"`
	RatingCategory string   `json:"rating_category"`
	CommunityCount int      `json:"community_count"`
	BuilderCount   int      `json:"builder_count"`
}

// Reference converts a city row into the location record the aggregator
// anchors distance calculations to.
func (c City) Reference() listing.ReferenceLocation {
	return listing.ReferenceLocation{
		City:      c.City,
		State:     c.State,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

// Builder is one builder/project row.
type Builder struct {
	ID          int64    `json:"id"`
	BuilderName string   `json:"builder_name"`
	ProjectName string   `json:"project_name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Stats summarizes the reference data.
type Stats struct {
	Cities        int
	Builders      int
	BuilderStates int
}

func (s *Store) GetCityByID(ctx context.Context, id int64) (City, error) {
	var c City
	var category sql.NullString
	err := s.DB.QueryRowContext(ctx, `
        SELECT id, city, state, latitude, longitude, city_rating, rating_category, community_count, builder_count
        FROM city_ratings WHERE id = $1`, id,
	).Scan(&c.ID, &c.City, &c.State, &c.Latitude, &c.Longitude, &c.CityRating, &category, &c.CommunityCount, &c.BuilderCount)
	if errors.Is(err, sql.ErrNoRows) {
		return City{}, ErrNotFound
	}
	if err != nil {
		return City{}, fmt.Errorf("get city %d: %w", id, err)
	}
	c.RatingCategory = category.String
	return c, nil
}

// ListCities returns the rated cities worth showing in the picker, best
// rated first. Cities rated below 30 have no builder presence worth mapping.
func (s *Store) ListCities(ctx context.Context) ([]City, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT DISTINCT id, city, state, latitude, longitude, city_rating, rating_category, community_count, builder_count
        FROM city_ratings
        WHERE city_rating >= 30
        ORDER BY city_rating DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var out []City
	for rows.Next() {
		var c City
		var category sql.NullString
		if err := rows.Scan(&c.ID, &c.City, &c.State, &c.Latitude, &c.Longitude, &c.CityRating, &category, &c.CommunityCount, &c.BuilderCount); err != nil {
			return nil, err
		}
		c.RatingCategory = category.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListBuilders returns the builders operating in the given city and state.
func (s *Store) ListBuilders(ctx context.Context, city, state string) ([]Builder, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, builder_name, project_name, city, state, latitude, longitude
        FROM builders
        WHERE city = $1 AND state = $2`, city, state)
	if err != nil {
		return nil, fmt.Errorf("list builders: %w", err)
	}
	defer rows.Close()

	var out []Builder
	for rows.Next() {
		var b Builder
		var project sql.NullString
		if err := rows.Scan(&b.ID, &b.BuilderName, &project, &b.City, &b.State, &b.Latitude, &b.Longitude); err != nil {
			return nil, err
		}
		b.ProjectName = project.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.DB.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM city_ratings),
            (SELECT COUNT(*) FROM builders),
            (SELECT COUNT(DISTINCT state) FROM builders)`,
	).Scan(&st.Cities, &st.Builders, &st.BuilderStates)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

// SeedInput is one city with its builders, as read from a seed file.
type SeedInput struct {
	City     City      `json:"city"`
	Builders []Builder `json:"builders"`
}

// Seed upserts reference rows, keyed by (city, state).
func (s *Store) Seed(ctx context.Context, inputs []SeedInput) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, in := range inputs {
		c := in.City
		_, err = tx.ExecContext(ctx, `
            INSERT INTO city_ratings (city, state, latitude, longitude, city_rating, rating_category, community_count, builder_count)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
            ON CONFLICT (city, state)
            DO UPDATE SET latitude=EXCLUDED.latitude, longitude=EXCLUDED.longitude, city_rating=EXCLUDED.city_rating,
                rating_category=EXCLUDED.rating_category, community_count=EXCLUDED.community_count, builder_count=EXCLUDED.builder_count`,
			c.City, c.State, c.Latitude, c.Longitude, c.CityRating, c.RatingCategory, c.CommunityCount, c.BuilderCount)
		if err != nil {
			return fmt.Errorf("seed city %s, %s: %w", c.City, c.State, err)
		}
		for _, b := range in.Builders {
			_, err = tx.ExecContext(ctx, `
                INSERT INTO builders (builder_name, project_name, city, state, latitude, longitude)
                VALUES ($1,$2,$3,$4,$5,$6)`,
				b.BuilderName, b.ProjectName, b.City, b.State, b.Latitude, b.Longitude)
			if err != nil {
				return fmt.Errorf("seed builder %s: %w", b.BuilderName, err)
			}
		}
	}
	err = tx.Commit()
	return err
}
