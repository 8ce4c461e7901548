package yoga

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
)

type Users interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *users) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user", map[string]any{"id": id})
	}
	return record, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.GetByEmailTx(ctx, r.db, email)
}

func (r *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user", map[string]any{"email": email})
	}
	return record, nil
}

func (r *users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.ExistsByEmailTx(ctx, r.db, email)
}

func (r *users) ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	exists, err := tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Exists(ctx)
	if err != nil {
		return false, internalErr(err, "failed to check user email")
	}
	return exists, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, sentinelErr(err, ErrEmailTaken, map[string]any{"email": record.Email})
		}
		return nil, internalErr(err, "failed to create user")
	}
	return record, nil
}

// Delete removes the user and its participations
func (r *users) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.DeleteTx(ctx, tx, id)
	})
}

func (r *users) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	if _, err := tx.NewDelete().
		Model((*Participation)(nil)).
		Where("user_id = ?", id).
		Exec(ctx); err != nil {
		return internalErr(err, "failed to remove user participations")
	}

	res, err := tx.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return internalErr(err, "failed to delete user")
	}
	return checkAffected(res, ErrUserNotFound, map[string]any{"id": id})
}
