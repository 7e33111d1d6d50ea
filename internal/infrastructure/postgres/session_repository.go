package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implements SessionRepository (usable with pool or tx).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository builds the adapter. Pass a pool or tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `id, session_number, store_id, pos_device_id, user_id, status, opened_at, closed_at, created_at, updated_at`

// GetByID loads one session with its charges, events, device and user.
func (r *SessionRepo) GetByID(id int64) (*entity.PosSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM pos_sessions WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := r.loadAssociations([]*entity.PosSession{session}); err != nil {
		return nil, err
	}
	return session, nil
}

// ListClosedInRange selects the closed sessions of a store whose opened_at
// calendar date falls in [from, to], oldest first, with associations loaded.
// Time-of-day on the bounds is ignored via date-only comparison.
func (r *SessionRepo) ListClosedInRange(storeID int64, from, to time.Time) ([]*entity.PosSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM pos_sessions
		WHERE store_id = $1
		  AND status = $2
		  AND opened_at::date BETWEEN $3::date AND $4::date
		ORDER BY opened_at, id`
	rows, err := r.q.Query(context.Background(), query,
		storeID, entity.SessionStatusClosed, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.PosSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAssociations(sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// loadAssociations eager-loads charges, events, devices and users for the
// given sessions in four batched queries.
func (r *SessionRepo) loadAssociations(sessions []*entity.PosSession) error {
	if len(sessions) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.PosSession, len(sessions))
	sessionIDs := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
		sessionIDs = append(sessionIDs, s.ID)
	}

	if err := r.loadCharges(byID, sessionIDs); err != nil {
		return err
	}
	if err := r.loadEvents(byID, sessionIDs); err != nil {
		return err
	}
	if err := r.loadDevices(sessions); err != nil {
		return err
	}
	return r.loadUsers(sessions)
}

func (r *SessionRepo) loadCharges(byID map[int64]*entity.PosSession, sessionIDs []int64) error {
	query := `
		SELECT id, stripe_charge_id, pos_session_id, amount, tip_amount, status,
		       payment_method, article_group_code, transaction_code, description,
		       paid_at, created_at
		FROM connected_charges
		WHERE pos_session_id = ANY($1)
		ORDER BY pos_session_id, id`
	rows, err := r.q.Query(context.Background(), query, sessionIDs)
	if err != nil {
		return fmt.Errorf("load charges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.ConnectedCharge
		var paymentMethod, articleGroupCode, transactionCode, description *string
		if err := rows.Scan(
			&c.ID, &c.StripeChargeID, &c.PosSessionID, &c.Amount, &c.TipAmount, &c.Status,
			&paymentMethod, &articleGroupCode, &transactionCode, &description,
			&c.PaidAt, &c.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan charge: %w", err)
		}
		c.PaymentMethod = deref(paymentMethod)
		c.ArticleGroupCode = deref(articleGroupCode)
		c.TransactionCode = deref(transactionCode)
		c.Description = deref(description)
		if session, ok := byID[c.PosSessionID]; ok {
			session.Charges = append(session.Charges, &c)
		}
	}
	return rows.Err()
}

func (r *SessionRepo) loadEvents(byID map[int64]*entity.PosSession, sessionIDs []int64) error {
	query := `
		SELECT id, pos_session_id, event_code, event_type, description, event_data,
		       occurred_at, created_at
		FROM pos_events
		WHERE pos_session_id = ANY($1)
		ORDER BY pos_session_id, occurred_at, id`
	rows, err := r.q.Query(context.Background(), query, sessionIDs)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e entity.PosEvent
		var description *string
		if err := rows.Scan(
			&e.ID, &e.PosSessionID, &e.EventCode, &e.EventType, &description,
			&e.EventData, &e.OccurredAt, &e.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan event: %w", err)
		}
		e.Description = deref(description)
		if session, ok := byID[e.PosSessionID]; ok {
			session.Events = append(session.Events, &e)
		}
	}
	return rows.Err()
}

func (r *SessionRepo) loadDevices(sessions []*entity.PosSession) error {
	ids := make([]int64, 0, len(sessions))
	seen := map[int64]bool{}
	for _, s := range sessions {
		if s.PosDeviceID != nil && !seen[*s.PosDeviceID] {
			seen[*s.PosDeviceID] = true
			ids = append(ids, *s.PosDeviceID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	query := `SELECT id, store_id, name, status, created_at, updated_at FROM pos_devices WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load devices: %w", err)
	}
	defer rows.Close()

	devices := map[int64]*entity.PosDevice{}
	for rows.Next() {
		var d entity.PosDevice
		if err := rows.Scan(&d.ID, &d.StoreID, &d.Name, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return fmt.Errorf("scan device: %w", err)
		}
		devices[d.ID] = &d
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, s := range sessions {
		if s.PosDeviceID != nil {
			s.Device = devices[*s.PosDeviceID]
		}
	}
	return nil
}

func (r *SessionRepo) loadUsers(sessions []*entity.PosSession) error {
	ids := make([]int64, 0, len(sessions))
	seen := map[int64]bool{}
	for _, s := range sessions {
		if s.UserID != nil && !seen[*s.UserID] {
			seen[*s.UserID] = true
			ids = append(ids, *s.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	query := `SELECT id, name, email, created_at FROM users WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	users := map[int64]*entity.User{}
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		users[u.ID] = &u
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, s := range sessions {
		if s.UserID != nil {
			s.User = users[*s.UserID]
		}
	}
	return nil
}

func scanSession(row pgx.Row) (*entity.PosSession, error) {
	var s entity.PosSession
	err := row.Scan(
		&s.ID, &s.SessionNumber, &s.StoreID, &s.PosDeviceID, &s.UserID,
		&s.Status, &s.OpenedAt, &s.ClosedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
