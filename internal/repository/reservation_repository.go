package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

// ReservationRepo implements charter.ReservationStore on MySQL. Status
// changes are compare-and-swap updates keyed by the current status, and the
// move into CONFIRMED additionally locks the vessel row and re-verifies
// exclusivity inside the same transaction, so approvals racing across
// server processes cannot both win.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, vessel_id, requester_id, operator_id, status, start_date, end_date, personnel_count, work_description, base_cost_cents, total_cost_cents, project_ref, idempotency_key, created_at, updated_at`

const dateLayout = "2006-01-02"

func scanReservation(row interface{ Scan(...interface{}) error }, res *charter.Reservation) error {
	var (
		operatorID sql.NullInt64
		projectRef sql.NullString
		status     string
	)
	if err := row.Scan(&res.ID, &res.VesselID, &res.RequesterID, &operatorID, &status,
		&res.StartDate, &res.EndDate, &res.Personnel, &res.WorkDescription,
		&res.BaseCostCents, &res.TotalCostCents, &projectRef, &res.IdempotencyKey,
		&res.CreatedAt, &res.UpdatedAt); err != nil {
		return err
	}
	res.Status = charter.Status(status)
	if operatorID.Valid {
		op := uint64(operatorID.Int64)
		res.OperatorID = &op
	} else {
		res.OperatorID = nil
	}
	if projectRef.Valid {
		pr := projectRef.String
		res.ProjectRef = &pr
	} else {
		res.ProjectRef = nil
	}
	res.StartDate = charter.DateOnly(res.StartDate)
	res.EndDate = charter.DateOnly(res.EndDate)
	return nil
}

// CreateReservation persists a new reservation and fills its generated ID
// and timestamps. A duplicate idempotency key is not an error: the stored
// row is loaded back instead, making retried creates return the first
// reservation unchanged.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *charter.Reservation) error {
	const qInsert = `INSERT INTO reservations
	  (vessel_id, requester_id, operator_id, status, start_date, end_date, personnel_count, work_description, base_cost_cents, total_cost_cents, project_ref, idempotency_key)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, qInsert,
		res.VesselID, res.RequesterID, res.OperatorID, string(res.Status),
		res.StartDate.Format(dateLayout), res.EndDate.Format(dateLayout),
		res.Personnel, res.WorkDescription, res.BaseCostCents, res.TotalCostCents,
		res.ProjectRef, res.IdempotencyKey)
	if err != nil {
		if mysqlErrCode(err, "1062") {
			return r.getByIdempotencyKey(ctx, res.IdempotencyKey, res)
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const qSelect = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, qSelect, res.ID), res)
}

func (r *ReservationRepo) getByIdempotencyKey(ctx context.Context, key string, res *charter.Reservation) error {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE idempotency_key = ?`
	return scanReservation(r.db.QueryRowContext(ctx, q, key), res)
}

// GetReservation returns the reservation or charter.ErrReservationNotFound.
func (r *ReservationRepo) GetReservation(ctx context.Context, id uint64) (*charter.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	var res charter.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, charter.ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByVessel returns the vessel's reservations in the given statuses,
// ordered by start date.
func (r *ReservationRepo) ListByVessel(ctx context.Context, vesselID uint64, statuses []charter.Status) ([]charter.Reservation, error) {
	q, args := listQuery(vesselID, nil, statuses)
	return r.listRows(ctx, r.db, q, args)
}

// ListByVesselAndOperator narrows ListByVessel to reservations held by the
// given assigned operator.
func (r *ReservationRepo) ListByVesselAndOperator(ctx context.Context, vesselID, operatorID uint64, statuses []charter.Status) ([]charter.Reservation, error) {
	q, args := listQuery(vesselID, &operatorID, statuses)
	return r.listRows(ctx, r.db, q, args)
}

// ListByRequester returns every reservation filed by the user, newest first.
// Used by the host API, not part of the core port.
func (r *ReservationRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]charter.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE requester_id = ? ORDER BY id DESC`
	return r.listRows(ctx, r.db, q, []interface{}{requesterID})
}

// ListByOperator returns the operator's reservations in the given statuses
// across all vessels, ordered by start date. Backs the operator work queue.
func (r *ReservationRepo) ListByOperator(ctx context.Context, operatorID uint64, statuses []charter.Status) ([]charter.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE operator_id = ?`
	args := []interface{}{operatorID}
	if len(statuses) > 0 {
		q += ` AND status IN (` + placeholders(len(statuses)) + `)`
		for _, s := range statuses {
			args = append(args, string(s))
		}
	}
	q += ` ORDER BY start_date, id`
	return r.listRows(ctx, r.db, q, args)
}

func listQuery(vesselID uint64, operatorID *uint64, statuses []charter.Status) (string, []interface{}) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE vessel_id = ?`
	args := []interface{}{vesselID}
	if operatorID != nil {
		q += ` AND operator_id = ?`
		args = append(args, *operatorID)
	}
	if len(statuses) > 0 {
		q += ` AND status IN (` + placeholders(len(statuses)) + `)`
		for _, s := range statuses {
			args = append(args, string(s))
		}
	}
	q += ` ORDER BY start_date, id`
	return q, args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *ReservationRepo) listRows(ctx context.Context, q queryer, query string, args []interface{}) ([]charter.Reservation, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []charter.Reservation
	for rows.Next() {
		var res charter.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReservationStatus moves the reservation from one status to another
// if and only if it is still in the from status. Moving into CONFIRMED
// takes a row lock on the vessel and re-checks that no other CONFIRMED or
// ACTIVE reservation overlaps the range, returning
// charter.ErrAvailabilityConflict when one does.
func (r *ReservationRepo) UpdateReservationStatus(ctx context.Context, id uint64, from, to charter.Status) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		vesselID   uint64
		current    string
		start, end time.Time
	)
	err = tx.QueryRowContext(ctx,
		"SELECT vessel_id, status, start_date, end_date FROM reservations WHERE id = ? FOR UPDATE",
		id).Scan(&vesselID, &current, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return charter.ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if charter.Status(current) != from {
		return charter.ErrStaleStatus
	}

	if to == charter.StatusConfirmed {
		// Serialize competing approvals on the vessel row.
		var locked uint64
		if err := tx.QueryRowContext(ctx,
			"SELECT id FROM vessels WHERE id = ? FOR UPDATE", vesselID).Scan(&locked); err != nil {
			return err
		}
		var overlapping int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM reservations
			 WHERE vessel_id = ? AND id <> ?
			   AND status IN ('CONFIRMED','ACTIVE')
			   AND start_date <= ? AND end_date >= ?`,
			vesselID, id, end.Format(dateLayout), start.Format(dateLayout)).Scan(&overlapping)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return charter.ErrAvailabilityConflict
		}
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status = ? WHERE id = ? AND status = ?",
		string(to), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return charter.ErrStaleStatus
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
