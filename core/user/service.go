package user

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username, email string) error
		CreateUser(ctx context.Context, user User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByUsernameOrEmail(ctx context.Context, username string) (User, error)
		SetLastLogin(ctx context.Context, id string, at time.Time) error
	}

	// Service owns the portal accounts. It is the credential check behind the login form.
	Service struct {
		repo       Repository
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{repo: repo, validate: validate, translator: translator}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname, email string) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, email); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.validate.Struct(nu); err != nil {
		return User{}, core.TranslateValidationErrors(err, svc.translator)
	}
	if err := svc.checkUniqueness(ctx, nu.Username, nu.Email); err != nil {
		return User{}, err
	}
	usr := User{
		Name:         nu.Name,
		Username:     nu.Username,
		Email:        nu.Email,
		IsActive:     true,
		Roles:        nu.Roles,
		PasswordHash: []byte(nu.PasswordHash),
		CreatedAt:    nowFunc().UTC(),
	}
	return svc.repo.CreateUser(ctx, usr)
}

// SeedAccounts creates a user for every configured account.
func (svc *Service) SeedAccounts(ctx context.Context, accounts []core.AccountConfig) error {
	for i, acc := range accounts {
		if _, err := svc.Create(ctx, NewUserFromAccount(acc)); err != nil {
			return errors.Wrapf(err, "seeding account %d (%s)", i, acc.Username)
		}
	}
	return nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

// Authenticate implements portal.Authenticator: it checks a username (or email) & password
// and grants the portal role of the account's highest priority role.
// Unknown users, inactive users and wrong passwords all fail with portal.ErrInvalidCredentials.
func (svc *Service) Authenticate(ctx context.Context, creds portal.Credentials) (portal.Role, error) {
	usr, err := svc.repo.GetUserByUsernameOrEmail(ctx, core.CleanString(creds.Username, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return "", portal.ErrInvalidCredentials
		}
		return "", err
	}
	if !usr.IsActive || usr.CheckPassword(creds.Password) != nil {
		return "", portal.ErrInvalidCredentials
	}
	role, err := usr.PortalRole()
	if err != nil {
		return "", portal.ErrInvalidCredentials
	}
	if err := svc.repo.SetLastLogin(ctx, usr.ID, nowFunc().UTC()); err != nil {
		return "", errors.Wrap(err, "saving last login")
	}
	return role, nil
}
