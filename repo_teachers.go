package yoga

import (
	"context"

	"github.com/uptrace/bun"
)

type Teachers interface {
	GetByID(ctx context.Context, id int64) (*Teacher, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Teacher, error)
	List(ctx context.Context) ([]*Teacher, error)
	Create(ctx context.Context, record *Teacher) (*Teacher, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Teacher) (*Teacher, error)
}

type teachers struct {
	db *bun.DB
}

var _ Teachers = (*teachers)(nil)

func NewTeachersRepository(db *bun.DB) Teachers {
	return &teachers{db: db}
}

func (r *teachers) GetByID(ctx context.Context, id int64) (*Teacher, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *teachers) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Teacher, error) {
	record := &Teacher{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, ErrTeacherNotFound, "failed to load teacher", map[string]any{"id": id})
	}
	return record, nil
}

func (r *teachers) List(ctx context.Context) ([]*Teacher, error) {
	records := make([]*Teacher, 0)
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, internalErr(err, "failed to list teachers")
	}
	return records, nil
}

func (r *teachers) Create(ctx context.Context, record *Teacher) (*Teacher, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *teachers) CreateTx(ctx context.Context, tx bun.IDB, record *Teacher) (*Teacher, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, internalErr(err, "failed to create teacher")
	}
	return record, nil
}
