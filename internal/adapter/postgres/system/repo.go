// Package system reads the installation-wide rows: the legislative house,
// the application configuration and user accounts.
package system

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Repo provides system persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new system repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const houseSQL = `
SELECT id, code, name, acronym, address, zip_code, city, state, phone, fax,
       logo_path, web_address, email, general_info
FROM legislative_houses
ORDER BY id
LIMIT 1`

const appConfigColumns = `id, documents_visibility, numbering_sequence, panel_open,
       articulated_text_proposition, articulated_text_matter, articulated_text_norm,
       proposition_incorporation, speech_timer, aside_timer, order_timer`

const getAppConfigSQL = `
SELECT ` + appConfigColumns + `
FROM app_config
ORDER BY id
LIMIT 1`

const createAppConfigSQL = `
INSERT INTO app_config DEFAULT VALUES
RETURNING ` + appConfigColumns

const countUsersSQL = `SELECT COUNT(*) FROM users`

const userColumns = `id, username, email, first_name, last_name, is_active, is_superuser, date_joined`

const listUsersSQL = `
SELECT ` + userColumns + `
FROM users
ORDER BY username
LIMIT $1 OFFSET $2`

const userByUsernameSQL = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1`

// ---------------------------------------------------------------------------
// House
// ---------------------------------------------------------------------------

// House returns the legislative house record.
// Returns domain.ErrNotFound when none is registered.
func (r *Repo) House(ctx context.Context) (*domain.LegislativeHouse, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var h domain.LegislativeHouse
	err := q.QueryRow(ctx, houseSQL).Scan(
		&h.ID, &h.Code, &h.Name, &h.Acronym, &h.Address, &h.ZipCode, &h.City, &h.State,
		&h.Phone, &h.Fax, &h.LogoPath, &h.WebAddress, &h.Email, &h.GeneralInfo,
	)
	if err != nil {
		return nil, postgres.MapError(err, "legislative house")
	}
	return &h, nil
}

// ---------------------------------------------------------------------------
// App config
// ---------------------------------------------------------------------------

// GetOrCreateAppConfig returns the configuration row with the lowest id,
// inserting one with default values when the table is empty.
func (r *Repo) GetOrCreateAppConfig(ctx context.Context) (domain.AppConfig, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	cfg, err := scanAppConfig(q.QueryRow(ctx, getAppConfigSQL))
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.AppConfig{}, postgres.MapError(err, "app config")
	}

	cfg, err = scanAppConfig(q.QueryRow(ctx, createAppConfigSQL))
	if err != nil {
		return domain.AppConfig{}, postgres.MapError(err, "app config")
	}
	return cfg, nil
}

func scanAppConfig(row pgx.Row) (domain.AppConfig, error) {
	var (
		c                          domain.AppConfig
		visibility, numbering, inc string
		speech, aside, order       pgtype.Interval
	)
	err := row.Scan(&c.ID, &visibility, &numbering, &c.PanelOpen,
		&c.ArticulatedTextProposition, &c.ArticulatedTextMatter, &c.ArticulatedTextNorm,
		&inc, &speech, &aside, &order)
	if err != nil {
		return domain.AppConfig{}, err
	}
	c.DocumentsVisibility = domain.DocumentVisibility(visibility)
	c.Numbering = domain.NumberingSequence(numbering)
	c.PropositionIncorporation = domain.IncorporationRule(inc)
	c.SpeechTimer = intervalDuration(speech)
	c.AsideTimer = intervalDuration(aside)
	c.OrderTimer = intervalDuration(order)
	return c, nil
}

// intervalDuration converts a nullable INTERVAL. Months count as 30 days.
func intervalDuration(iv pgtype.Interval) *time.Duration {
	if !iv.Valid {
		return nil
	}
	d := time.Duration(iv.Microseconds)*time.Microsecond +
		time.Duration(iv.Days)*24*time.Hour +
		time.Duration(iv.Months)*30*24*time.Hour
	return &d
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// ListUsers returns one page of users ordered by username, and the total count.
func (r *Repo) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, countUsersSQL).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "count users")
	}

	rows, err := q.Query(ctx, listUsersSQL, limit, offset)
	if err != nil {
		return nil, 0, postgres.MapError(err, "list users")
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, 0, postgres.MapError(err, "scan users")
	}
	return users, total, nil
}

// UserByUsername returns the account with the given username.
// Returns domain.ErrNotFound when there is none.
func (r *Repo) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userByUsernameSQL, username))
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user "+username)
	}
	return u, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.IsActive, &u.IsSuperuser, &u.DateJoined)
	return u, err
}
