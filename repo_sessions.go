package yoga

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Sessions persists sessions together with their ordered participant list
type Sessions interface {
	GetByID(ctx context.Context, id int64) (*Session, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Create(ctx context.Context, record *Session) (*Session, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Session) (*Session, error)
	Update(ctx context.Context, record *Session) (*Session, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *Session) (*Session, error)
	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) error
	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) error
}

type sessions struct {
	db *bun.DB
}

var _ Sessions = (*sessions)(nil)

func NewSessionsRepository(db *bun.DB) Sessions {
	return &sessions{db: db}
}

func (r *sessions) GetByID(ctx context.Context, id int64) (*Session, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *sessions) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Session, error) {
	record := &Session{}
	err := tx.NewSelect().
		Model(record).
		Relation("Teacher").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, ErrSessionNotFound, "failed to load session", map[string]any{"id": id})
	}

	if err := loadParticipantsTx(ctx, tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *sessions) List(ctx context.Context) ([]*Session, error) {
	records := make([]*Session, 0)
	err := r.db.NewSelect().
		Model(&records).
		Relation("Teacher").
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, internalErr(err, "failed to list sessions")
	}

	if err := loadParticipantsTx(ctx, r.db, records...); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sessions) Create(ctx context.Context, record *Session) (*Session, error) {
	var out *Session
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = r.CreateTx(ctx, tx, record)
		return err
	})
	return out, err
}

func (r *sessions) CreateTx(ctx context.Context, tx bun.IDB, record *Session) (*Session, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	syncTeacherID(record)

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, internalErr(err, "failed to create session")
	}

	if err := replaceParticipantsTx(ctx, tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update writes the scalar columns and replaces the participant list
func (r *sessions) Update(ctx context.Context, record *Session) (*Session, error) {
	var out *Session
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = r.UpdateTx(ctx, tx, record)
		return err
	})
	return out, err
}

func (r *sessions) UpdateTx(ctx context.Context, tx bun.IDB, record *Session) (*Session, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	syncTeacherID(record)

	res, err := tx.NewUpdate().
		Model(record).
		Column("name", "description", "date", "teacher_id", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, internalErr(err, "failed to update session")
	}
	if err := checkAffected(res, ErrSessionNotFound, map[string]any{"id": record.ID}); err != nil {
		return nil, err
	}

	if err := replaceParticipantsTx(ctx, tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *sessions) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.DeleteTx(ctx, tx, id)
	})
}

func (r *sessions) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	if _, err := tx.NewDelete().
		Model((*Participation)(nil)).
		Where("session_id = ?", id).
		Exec(ctx); err != nil {
		return internalErr(err, "failed to remove session participations")
	}

	res, err := tx.NewDelete().
		Model((*Session)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return internalErr(err, "failed to delete session")
	}
	return checkAffected(res, ErrSessionNotFound, map[string]any{"id": id})
}

// AddParticipant appends a single participation row after the current
// last position. Other participants are left untouched.
func (r *sessions) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	meta := map[string]any{"session_id": sessionID, "user_id": userID}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var next int
		err := tx.NewSelect().
			Model((*Participation)(nil)).
			ColumnExpr("COALESCE(MAX(position) + 1, 0)").
			Where("session_id = ?", sessionID).
			Scan(ctx, &next)
		if err != nil {
			return internalErr(err, "failed to read participant position")
		}

		row := &Participation{SessionID: sessionID, UserID: userID, Position: next}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return sentinelErr(err, ErrAlreadyParticipating, meta)
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to add participant").
				WithMetadata(meta)
		}
		return nil
	})
}

// RemoveParticipant deletes a single participation row
func (r *sessions) RemoveParticipant(ctx context.Context, sessionID, userID int64) error {
	res, err := r.db.NewDelete().
		Model((*Participation)(nil)).
		Where("session_id = ?", sessionID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return internalErr(err, "failed to remove participant")
	}
	return checkAffected(res, ErrNotParticipating, map[string]any{"session_id": sessionID, "user_id": userID})
}

func syncTeacherID(record *Session) {
	if record.Teacher != nil && record.Teacher.ID != 0 {
		id := record.Teacher.ID
		record.TeacherID = &id
	}
}

func replaceParticipantsTx(ctx context.Context, tx bun.IDB, record *Session) error {
	if _, err := tx.NewDelete().
		Model((*Participation)(nil)).
		Where("session_id = ?", record.ID).
		Exec(ctx); err != nil {
		return internalErr(err, "failed to clear participants")
	}

	ids := uniqueIDs(record.ParticipantIDs())
	if len(ids) == 0 {
		return nil
	}

	rows := make([]*Participation, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, &Participation{SessionID: record.ID, UserID: id, Position: i})
	}

	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return internalErr(err, "failed to store participants")
	}
	return nil
}

// loadParticipantsTx fills Users for every record in join order
func loadParticipantsTx(ctx context.Context, tx bun.IDB, records ...*Session) error {
	if len(records) == 0 {
		return nil
	}

	sessionIDs := make([]int64, 0, len(records))
	for _, s := range records {
		normalizeTeacher(s)
		s.Users = make([]*User, 0)
		sessionIDs = append(sessionIDs, s.ID)
	}

	links := make([]*Participation, 0)
	err := tx.NewSelect().
		Model(&links).
		Where("?TableAlias.session_id IN (?)", bun.In(sessionIDs)).
		Order("session_id ASC", "position ASC", "user_id ASC").
		Scan(ctx)
	if err != nil {
		return internalErr(err, "failed to load participants")
	}
	if len(links) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(links))
	for _, l := range links {
		userIDs = append(userIDs, l.UserID)
	}

	found := make([]*User, 0)
	err = tx.NewSelect().
		Model(&found).
		Where("?TableAlias.id IN (?)", bun.In(uniqueIDs(userIDs))).
		Scan(ctx)
	if err != nil {
		return internalErr(err, "failed to load participant users")
	}

	byID := make(map[int64]*User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	bySession := make(map[int64]*Session, len(records))
	for _, s := range records {
		bySession[s.ID] = s
	}

	for _, l := range links {
		s, ok := bySession[l.SessionID]
		if !ok {
			continue
		}
		if u, ok := byID[l.UserID]; ok {
			s.Users = append(s.Users, u)
		}
	}
	return nil
}

// normalizeTeacher drops the empty struct a left join leaves behind
func normalizeTeacher(s *Session) {
	if s.TeacherID == nil || (s.Teacher != nil && s.Teacher.ID == 0) {
		s.Teacher = nil
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
