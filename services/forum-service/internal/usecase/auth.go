package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/repository"
	"github.com/vasapolrittideah/recipe-forum/shared/security"
	"github.com/vasapolrittideah/recipe-forum/shared/validation"
)

// AuthUsecase defines the interface for account registration and login.
type AuthUsecase interface {
	// Register creates a user. Conflicts and password problems are reported
	// together as *RegistrationError, missing fields as *validation.Error.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*model.User, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name            string
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

const (
	MinPasswordLength = 8

	MsgUserExists       = "User already exists."
	MsgEmailExists      = "Email already exists."
	MsgPasswordMismatch = "Passwords do not match."
	MsgPasswordTooShort = "Enter a password that is at least 8 characters long."
	MsgPasswordNoNumber = "Enter a password that contains at least one number."
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegistrationError carries one message per registration check. Empty
// fields passed their check.
type RegistrationError struct {
	UserName         string
	Email            string
	PasswordMismatch string
	PasswordLength   string
	PasswordNumber   string
}

func (e *RegistrationError) Error() string {
	var msgs []string
	for _, m := range []string{e.UserName, e.Email, e.PasswordMismatch, e.PasswordLength, e.PasswordNumber} {
		if m != "" {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, " ")
}

func (e *RegistrationError) hasErrors() bool {
	return e.Error() != ""
}

type authUsecase struct {
	userRepo     repository.UserRepository
	validator    *validation.Validator
	hashPassword func(password string) (string, error)
}

func NewAuthUsecase(userRepo repository.UserRepository, validator *validation.Validator) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		validator:    validator,
		hashPassword: security.HashPassword,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	user := &model.User{
		Name:     params.Name,
		UserName: params.UserName,
		Email:    params.Email,
	}
	user.Normalize()

	regErr := &RegistrationError{}

	if exists, err := u.exists(ctx, u.userRepo.GetUserByUserName, user.UserName); err != nil {
		return nil, err
	} else if exists {
		regErr.UserName = MsgUserExists
	}

	if exists, err := u.exists(ctx, u.userRepo.GetUserByEmail, user.Email); err != nil {
		return nil, err
	} else if exists {
		regErr.Email = MsgEmailExists
	}

	if params.Password != params.ConfirmPassword {
		regErr.PasswordMismatch = MsgPasswordMismatch
	}

	if utf8.RuneCountInString(params.Password) < MinPasswordLength {
		regErr.PasswordLength = MsgPasswordTooShort
	}

	if !containsDigit(params.Password) {
		regErr.PasswordNumber = MsgPasswordNoNumber
	}

	if regErr.hasErrors() {
		return nil, regErr
	}

	user.Password = params.Password
	if err := u.validator.Struct(user); err != nil {
		return nil, err
	}

	passwordHash, err := u.hashPassword(params.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	created, err := u.userRepo.CreateUser(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyRegistrationError(err)
		}

		return nil, err
	}

	return created, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, strings.TrimSpace(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.Password); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (u *authUsecase) exists(
	ctx context.Context,
	lookup func(context.Context, string) (*model.User, error),
	value string,
) (bool, error) {
	_, err := lookup(ctx, value)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// duplicateKeyRegistrationError covers the window between the existence
// checks and the insert, where the unique index is the last line. The
// colliding index is named in the write error; anything else is reported
// against the user name.
func duplicateKeyRegistrationError(err error) *RegistrationError {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if strings.Contains(we.Message, "index: "+repository.EmailIndex+" ") {
				return &RegistrationError{Email: MsgEmailExists}
			}
		}
	}
	return &RegistrationError{UserName: MsgUserExists}
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
