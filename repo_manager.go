package yoga

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/lib/pq"
	"github.com/uptrace/bun"
)

const pgUniqueViolation = "23505"

// TransactionManager runs f inside a database transaction
type TransactionManager interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	TransactionManager
	Validate() error
	MustValidate()
	Users() Users
	Teachers() Teachers
	Sessions() Sessions
}

type mngr struct {
	db       *bun.DB
	users    Users
	teachers Teachers
	sessions Sessions
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		teachers: NewTeachersRepository(db),
		sessions: NewSessionsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.db == nil {
		return errors.New("repository db should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.teachers == nil {
		return errors.New("repository teachers should be initialized")
	}

	if m.sessions == nil {
		return errors.New("repository sessions should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Teachers() Teachers {
	return m.teachers
}

func (m mngr) Sessions() Sessions {
	return m.sessions
}

// notFound turns sql.ErrNoRows into a fresh copy of sentinel carrying
// metadata. Other errors are wrapped as internal failures.
func notFound(err error, sentinel *goerrors.Error, msg string, metadata map[string]any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinelErr(err, sentinel, metadata)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg).
		WithMetadata(metadata)
}

// sentinelErr wraps err in a copy of sentinel so the shared value is never mutated
func sentinelErr(err error, sentinel *goerrors.Error, metadata map[string]any) error {
	return goerrors.Wrap(err, sentinel.Category, sentinel.Message).
		WithTextCode(sentinel.TextCode).
		WithCode(sentinel.Code).
		WithMetadata(metadata)
}

// isUniqueViolation detects unique and primary key conflicts on postgres
// and sqlite
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

func internalErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}

func checkAffected(res sql.Result, sentinel *goerrors.Error, metadata map[string]any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return internalErr(err, "failed to read affected rows")
	}
	if n == 0 {
		return notFound(sql.ErrNoRows, sentinel, "", metadata)
	}
	return nil
}
