package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo manages refresh sessions for charter API accounts. A session
// row holds only the hex SHA-256 digest of the refresh token (the CHAR(64)
// token_hash column); the raw value lives on the client, so a leaked
// refresh_tokens table cannot be replayed against the API. Revocation is a
// timestamp, not a delete, which keeps an audit trail of terminated
// sessions.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// StoreRefresh opens a session for the user: one row per issued refresh
// token, expiring at exp.
func (r *SessionRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves a token hash to its user. Expiry and revocation
// are checked in the query itself so a dead session is indistinguishable
// from one that never existed; both surface as sql.ErrNoRows.
func (r *SessionRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM refresh_tokens
		 WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()
		 LIMIT 1`,
		tokenHash).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// RevokeByHash terminates a single session, e.g. logout of one device or
// rotation of a used refresh token.
func (r *SessionRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser terminates every open session of the user. Used for
// whole-account logout and when an owner or operator account is
// deactivated.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
