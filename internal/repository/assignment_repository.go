package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// AssignmentRecord mirrors the 'vessel_operators' table. A row links one
// operator to one vessel; the newest row per vessel is the assignment the
// core resolves at reservation time.
type AssignmentRecord struct {
	ID         uint64    `json:"id"`
	VesselID   uint64    `json:"vessel_id"`
	OperatorID uint64    `json:"operator_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// ErrAssignmentNotFound is returned when an assignment lookup fails.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepo manages operator assignments. Together with VesselRepo it
// satisfies the charter core's VesselStore port, so the two repos share a
// composite adapter (see VesselStoreAdapter).
type AssignmentRepo struct {
	db *sql.DB
}

// NewAssignmentRepo constructs an AssignmentRepo with the given DB handle.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// Assign links an operator to a vessel. Re-assigning the same pair maps
// the unique-key violation to ErrConflict.
func (r *AssignmentRepo) Assign(ctx context.Context, rec *AssignmentRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO vessel_operators (vessel_id, operator_id) VALUES (?, ?)",
		rec.VesselID, rec.OperatorID)
	if err != nil {
		if mysqlErrCode(err, "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT id, vessel_id, operator_id, assigned_at FROM vessel_operators WHERE id = ?",
		rec.ID).Scan(&rec.ID, &rec.VesselID, &rec.OperatorID, &rec.AssignedAt)
}

// Remove deletes the assignment between a vessel and an operator.
func (r *AssignmentRepo) Remove(ctx context.Context, vesselID, operatorID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM vessel_operators WHERE vessel_id = ? AND operator_id = ?",
		vesselID, operatorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// ListByVessel returns a vessel's assignments, newest first.
func (r *AssignmentRepo) ListByVessel(ctx context.Context, vesselID uint64) ([]*AssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, vessel_id, operator_id, assigned_at FROM vessel_operators WHERE vessel_id = ? ORDER BY assigned_at DESC, id DESC",
		vesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*AssignmentRecord
	for rows.Next() {
		rec := new(AssignmentRecord)
		if err := rows.Scan(&rec.ID, &rec.VesselID, &rec.OperatorID, &rec.AssignedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentOperator returns the most recently assigned operator for the
// vessel, or nil when no assignment exists.
func (r *AssignmentRepo) CurrentOperator(ctx context.Context, vesselID uint64) (*uint64, error) {
	var operatorID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT operator_id FROM vessel_operators WHERE vessel_id = ? ORDER BY assigned_at DESC, id DESC LIMIT 1",
		vesselID).Scan(&operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &operatorID, nil
}

// OperatorAssigned reports whether the operator holds an assignment on
// the vessel.
func (r *AssignmentRepo) OperatorAssigned(ctx context.Context, vesselID, operatorID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM vessel_operators WHERE vessel_id = ? AND operator_id = ? LIMIT 1",
		vesselID, operatorID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
