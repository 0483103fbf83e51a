package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("lead not found")
	ErrDuplicateEmail = errors.New("a lead with this email already exists")
)

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Status     string
	MoveInDate *time.Time
	UnitType   string
	Occupants  int
	Pets       string
	Notes      string
	Address    string
	Employer   string
	MoveReason string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateLeadParams struct {
	Name       string
	Email      string
	Phone      string
	Status     string
	MoveInDate *time.Time
	UnitType   string
	Occupants  int
	Pets       string
	Notes      string
	Address    string
	Employer   string
	MoveReason string
}

// UpdateLeadParams holds optional field changes. MoveInDateSet distinguishes
// clearing the date from leaving it untouched.
type UpdateLeadParams struct {
	Name          *string
	Email         *string
	Phone         *string
	Status        *string
	MoveInDateSet bool
	MoveInDate    *time.Time
	UnitType      *string
	Occupants     *int
	Pets          *string
	Notes         *string
	Address       *string
	Employer      *string
	MoveReason    *string
}

const leadColumns = `id, name, email, phone, status, move_in_date, unit_type, occupants,
	pets, notes, address, employer, move_reason, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Status, &lead.MoveInDate, &lead.UnitType, &lead.Occupants,
		&lead.Pets, &lead.Notes, &lead.Address, &lead.Employer, &lead.MoveReason, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			id, name, email, phone, status, move_in_date, unit_type, occupants,
			pets, notes, address, employer, move_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+leadColumns,
		uuid.New(), params.Name, params.Email, params.Phone, params.Status, params.MoveInDate, params.UnitType, params.Occupants,
		params.Pets, params.Notes, params.Address, params.Employer, params.MoveReason,
	))
	if err != nil {
		return Lead{}, mapWriteError(err)
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE lower(email) = lower($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	setClauses, args := buildUpdateSet(params)
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, mapWriteError(err)
	}
	return lead, nil
}

func buildUpdateSet(params UpdateLeadParams) ([]string, []any) {
	setClauses := []string{}
	args := []any{}

	fields := []struct {
		enabled bool
		column  string
		value   any
	}{
		{params.Name != nil, "name", deref(params.Name)},
		{params.Email != nil, "email", deref(params.Email)},
		{params.Phone != nil, "phone", deref(params.Phone)},
		{params.Status != nil, "status", deref(params.Status)},
		{params.MoveInDateSet, "move_in_date", params.MoveInDate},
		{params.UnitType != nil, "unit_type", deref(params.UnitType)},
		{params.Occupants != nil, "occupants", deref(params.Occupants)},
		{params.Pets != nil, "pets", deref(params.Pets)},
		{params.Notes != nil, "notes", deref(params.Notes)},
		{params.Address != nil, "address", deref(params.Address)},
		{params.Employer != nil, "employer", deref(params.Employer)},
		{params.MoveReason != nil, "move_reason", deref(params.MoveReason)},
	}

	for _, field := range fields {
		if !field.enabled {
			continue
		}
		args = append(args, field.value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field.column, len(args)))
	}
	return setClauses, args
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error) {
	return r.Update(ctx, id, UpdateLeadParams{Status: &status})
}

// UpdatePhone rewrites only the stored phone value and leaves updated_at alone,
// since normalizing storage is not an edit of the lead.
func (r *Repository) UpdatePhone(ctx context.Context, id uuid.UUID, phone string) error {
	result, err := r.pool.Exec(ctx, `UPDATE leads SET phone = $2 WHERE id = $1`, id, phone)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type ListParams struct {
	Search    string
	Status    *string
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	whereClause, args := buildLeadListWhere(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, buildLeadOrderBy(params.SortBy, params.SortOrder), len(args)-1, len(args))

	leads, err := r.queryLeads(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func buildLeadListWhere(params ListParams) (string, []any) {
	whereClauses := []string{"TRUE"}
	args := []any{}

	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	if params.Status != nil {
		args = append(args, *params.Status)
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", len(args)))
	}

	return strings.Join(whereClauses, " AND "), args
}

// buildLeadOrderBy sorts text columns ascending and dates newest first unless
// an explicit order is given. id breaks ties so paging is stable.
func buildLeadOrderBy(sortBy, sortOrder string) string {
	column, defaultOrder := mapLeadSortColumn(sortBy)

	order := defaultOrder
	switch strings.ToLower(sortOrder) {
	case "asc":
		order = "ASC"
	case "desc":
		order = "DESC"
	}

	nulls := ""
	if column == "move_in_date" {
		nulls = " NULLS LAST"
	}
	return fmt.Sprintf("%s %s%s, id ASC", column, order, nulls)
}

func mapLeadSortColumn(sortBy string) (string, string) {
	switch sortBy {
	case "name":
		return "lower(name)", "ASC"
	case "status":
		return "status", "ASC"
	case "moveInDate":
		return "move_in_date", "ASC"
	default:
		return "created_at", "DESC"
	}
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total)
	return total, err
}

// ListStatuses returns the statuses currently in use, ordered by first appearance.
func (r *Repository) ListStatuses(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT status FROM leads GROUP BY status ORDER BY MIN(created_at), status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]string, 0)
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *Repository) ListAll(ctx context.Context) ([]Lead, error) {
	return r.queryLeads(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at, id`)
}

func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Lead, error) {
	return r.queryLeads(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ANY($1) ORDER BY created_at, id`, ids)
}

func (r *Repository) queryLeads(ctx context.Context, query string, args ...any) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}
	return *value
}
