package yoga

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RegisterUserMessage is the input of RegisterUserHandler
type RegisterUserMessage struct {
	SignupRequest
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler creates accounts, refusing duplicate emails
type RegisterUserHandler struct {
	repo   RepositoryManager
	hasher PasswordAuthenticator
	logger Logger
}

func NewRegisterUserHandler(repo RepositoryManager, hasher PasswordAuthenticator) *RegisterUserHandler {
	if hasher == nil {
		hasher = Hasher{}
	}
	return &RegisterUserHandler{repo: repo, hasher: hasher, logger: defLogger{}}
}

func (h *RegisterUserHandler) WithLogger(l Logger) *RegisterUserHandler {
	if l != nil {
		h.logger = l
	}
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	req := event.normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var user *User
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		taken, err := h.repo.Users().ExistsByEmailTx(ctx, tx, req.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		hash, err := h.hasher.HashPassword(req.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		record, err := NewUser(req.Email, req.FirstName, req.LastName, hash, false)
		if err != nil {
			return err
		}

		if user, err = h.repo.Users().CreateTx(ctx, tx, record); err != nil {
			// a concurrent registration can pass the existence check
			if HasTextCode(err, TextCodeEmailTaken) {
				return err
			}
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	h.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}
