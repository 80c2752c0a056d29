package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

// VesselRecord mirrors the 'vessels' table. The rate columns are stored in
// cents; weekly and monthly rates are nullable tiers.
type VesselRecord struct {
	ID               uint64    `json:"id"`
	OwnerID          uint64    `json:"owner_id"`
	Name             string    `json:"name"`
	VesselType       string    `json:"vessel_type"`
	Status           string    `json:"status"`
	DailyRateCents   int64     `json:"daily_rate_cents"`
	WeeklyRateCents  *int64    `json:"weekly_rate_cents,omitempty"`
	MonthlyRateCents *int64    `json:"monthly_rate_cents,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VesselRepo provides CRUD for vessels and adapts the rows to the charter
// core's VesselStore port.
type VesselRepo struct {
	db *sql.DB
}

// NewVesselRepo constructs a VesselRepo with the given DB handle.
func NewVesselRepo(db *sql.DB) *VesselRepo { return &VesselRepo{db: db} }

const vesselCols = `id, owner_id, name, vessel_type, status, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, created_at, updated_at`

func scanVessel(row interface{ Scan(...interface{}) error }, v *VesselRecord) error {
	var weekly, monthly sql.NullInt64
	if err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.VesselType, &v.Status,
		&v.DailyRateCents, &weekly, &monthly, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return err
	}
	if weekly.Valid {
		w := weekly.Int64
		v.WeeklyRateCents = &w
	}
	if monthly.Valid {
		m := monthly.Int64
		v.MonthlyRateCents = &m
	}
	return nil
}

// Create inserts a new vessel. The record must have OwnerID, Name and
// DailyRateCents set; after insert the ID and timestamps are populated.
func (r *VesselRepo) Create(ctx context.Context, v *VesselRecord) error {
	const qInsert = `INSERT INTO vessels (owner_id, name, vessel_type, status, daily_rate_cents, weekly_rate_cents, monthly_rate_cents)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	status := v.Status
	if status == "" {
		status = "OPERATIONAL"
	}
	res, err := r.db.ExecContext(ctx, qInsert, v.OwnerID, v.Name, v.VesselType, status,
		v.DailyRateCents, v.WeeklyRateCents, v.MonthlyRateCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	const qSelect = `SELECT ` + vesselCols + ` FROM vessels WHERE id = ?`
	return scanVessel(r.db.QueryRowContext(ctx, qSelect, v.ID), v)
}

// GetByID retrieves a vessel regardless of owner. Returns
// charter.ErrVesselNotFound when no row exists.
func (r *VesselRepo) GetByID(ctx context.Context, id uint64) (*VesselRecord, error) {
	const q = `SELECT ` + vesselCols + ` FROM vessels WHERE id = ?`
	var v VesselRecord
	if err := scanVessel(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, charter.ErrVesselNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByOwner returns all vessels owned by the given user, newest first.
func (r *VesselRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*VesselRecord, error) {
	const q = `SELECT ` + vesselCols + ` FROM vessels WHERE owner_id = ? ORDER BY id DESC`
	return r.list(ctx, q, ownerID)
}

// ListAll returns every vessel. Intended for administrators.
func (r *VesselRepo) ListAll(ctx context.Context) ([]*VesselRecord, error) {
	const q = `SELECT ` + vesselCols + ` FROM vessels ORDER BY id`
	return r.list(ctx, q)
}

func (r *VesselRepo) list(ctx context.Context, q string, args ...interface{}) ([]*VesselRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*VesselRecord
	for rows.Next() {
		v := new(VesselRecord)
		if err := scanVessel(rows, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndOwner updates the mutable vessel fields if the vessel
// belongs to the given owner. Returns charter.ErrVesselNotFound when no
// matching row exists.
func (r *VesselRepo) UpdateByIDAndOwner(ctx context.Context, v *VesselRecord, ownerID uint64) error {
	const q = `UPDATE vessels
	           SET name = ?, vessel_type = ?, status = ?, daily_rate_cents = ?, weekly_rate_cents = ?, monthly_rate_cents = ?
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.VesselType, v.Status,
		v.DailyRateCents, v.WeeklyRateCents, v.MonthlyRateCents, v.ID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return charter.ErrVesselNotFound
	}
	const qSelect = `SELECT ` + vesselCols + ` FROM vessels WHERE id = ?`
	return scanVessel(r.db.QueryRowContext(ctx, qSelect, v.ID), v)
}

// DeleteByIDAndOwner removes a vessel owned by the given user. Vessels
// with reservations on file cannot be removed; the FK restriction maps
// to ErrConflict.
func (r *VesselRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vessels WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		// 1451: row is referenced by reservations
		if mysqlErrCode(err, "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return charter.ErrVesselNotFound
	}
	return nil
}

// GetVessel implements charter.VesselStore.
func (r *VesselRepo) GetVessel(ctx context.Context, id uint64) (*charter.Vessel, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.toCharter(), nil
}

func (v *VesselRecord) toCharter() *charter.Vessel {
	return &charter.Vessel{
		ID:      v.ID,
		OwnerID: v.OwnerID,
		Name:    v.Name,
		Status:  v.Status,
		Rates: charter.Schedule{
			DailyRateCents:   v.DailyRateCents,
			WeeklyRateCents:  v.WeeklyRateCents,
			MonthlyRateCents: v.MonthlyRateCents,
		},
	}
}
