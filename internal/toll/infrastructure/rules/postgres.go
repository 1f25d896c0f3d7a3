package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	toll "congestion-cloud/internal/toll/domain"
)

const (
	defaultSlabsTable    = "toll_fee_slabs"
	defaultHolidaysTable = "toll_holidays"
	defaultVehiclesTable = "toll_free_vehicles"
	defaultSettingsTable = "toll_settings"

	settingYear      = "year"
	settingFreeMonth = "free_month"
	settingDailyCap  = "daily_cap"
)

// PostgresSource loads the rule set from Postgres tables. It is read once at
// startup; the service never queries per request.
type PostgresSource struct {
	db            *sql.DB
	slabsTable    string
	holidaysTable string
	vehiclesTable string
	settingsTable string
}

// PostgresOption configures the source.
type PostgresOption func(*PostgresSource)

// WithSlabsTable overrides the fee slab table name.
func WithSlabsTable(table string) PostgresOption {
	return func(s *PostgresSource) {
		if table != "" {
			s.slabsTable = table
		}
	}
}

// WithHolidaysTable overrides the holidays table name.
func WithHolidaysTable(table string) PostgresOption {
	return func(s *PostgresSource) {
		if table != "" {
			s.holidaysTable = table
		}
	}
}

// WithVehiclesTable overrides the exempt vehicles table name.
func WithVehiclesTable(table string) PostgresOption {
	return func(s *PostgresSource) {
		if table != "" {
			s.vehiclesTable = table
		}
	}
}

// WithSettingsTable overrides the settings table name.
func WithSettingsTable(table string) PostgresOption {
	return func(s *PostgresSource) {
		if table != "" {
			s.settingsTable = table
		}
	}
}

// NewPostgresSource constructs a source.
func NewPostgresSource(db *sql.DB, opts ...PostgresOption) *PostgresSource {
	s := &PostgresSource{
		db:            db,
		slabsTable:    defaultSlabsTable,
		holidaysTable: defaultHolidaysTable,
		vehiclesTable: defaultVehiclesTable,
		settingsTable: defaultSettingsTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and builds the rule set.
func (s *PostgresSource) Load(ctx context.Context) (*RuleSet, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("toll rules: nil db")
	}

	raw := rawRules{
		year:      defaultYear,
		freeMonth: defaultFreeMonth,
		dailyCap:  defaultDailyCap,
	}
	if err := s.loadSettings(ctx, &raw); err != nil {
		return nil, err
	}
	if err := s.loadSlabs(ctx, &raw); err != nil {
		return nil, err
	}
	if err := s.loadHolidays(ctx, &raw); err != nil {
		return nil, err
	}
	if err := s.loadVehicles(ctx, &raw); err != nil {
		return nil, err
	}
	return raw.build()
}

func (s *PostgresSource) loadSettings(ctx context.Context, raw *rawRules) error {
	query := fmt.Sprintf(`SELECT key, value FROM %s`, s.settingsTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("toll rules: load settings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("toll rules: scan setting: %w", err)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("toll rules: setting %s=%q: %w", key, value, err)
		}
		switch key {
		case settingYear:
			raw.year = n
		case settingFreeMonth:
			raw.freeMonth = n
		case settingDailyCap:
			raw.dailyCap = n
		}
	}
	return rows.Err()
}

func (s *PostgresSource) loadSlabs(ctx context.Context, raw *rawRules) error {
	query := fmt.Sprintf(`
SELECT start_sec, end_sec, amount
FROM %s
ORDER BY position ASC`, s.slabsTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("toll rules: load fee slabs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var startSec, endSec, amount int
		if err := rows.Scan(&startSec, &endSec, &amount); err != nil {
			return fmt.Errorf("toll rules: scan fee slab: %w", err)
		}
		slab, err := toll.NewFeeSlab(startSec, endSec, amount)
		if err != nil {
			return fmt.Errorf("toll rules: slab %d-%d: %w", startSec, endSec, err)
		}
		raw.slabs = append(raw.slabs, slab)
	}
	return rows.Err()
}

func (s *PostgresSource) loadHolidays(ctx context.Context, raw *rawRules) error {
	query := fmt.Sprintf(`SELECT holiday FROM %s`, s.holidaysTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("toll rules: load holidays: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var holiday time.Time
		if err := rows.Scan(&holiday); err != nil {
			return fmt.Errorf("toll rules: scan holiday: %w", err)
		}
		raw.holidays = append(raw.holidays, holiday)
	}
	return rows.Err()
}

func (s *PostgresSource) loadVehicles(ctx context.Context, raw *rawRules) error {
	query := fmt.Sprintf(`SELECT class FROM %s`, s.vehiclesTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("toll rules: load exempt vehicles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return fmt.Errorf("toll rules: scan exempt vehicle: %w", err)
		}
		raw.vehicles = append(raw.vehicles, class)
	}
	return rows.Err()
}
