package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"storefront/internal/domain"
	"storefront/internal/logging"
	userrepo "storefront/internal/repository/user"
	"storefront/internal/service/access"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes and x/crypto refuses to hash longer input.
	maxPasswordBytes = 72
)

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
	Logger     *zap.Logger
}

// Service handles registration, login and token verification.
type Service struct {
	repo       userrepo.Repository
	tokens     *tokenManager
	bcryptCost int
	validate   *validator.Validate
	logger     *zap.Logger

	dummyOnce sync.Once
	dummy     []byte
}

func New(repo userrepo.Repository, opts Options) *Service {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	cost := opts.BcryptCost
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     newTokenManager(opts.Secret, ttl),
		bcryptCost: cost,
		validate:   validator.New(),
		logger:     logging.OrNop(opts.Logger).Named("auth"),
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateInput holds optional profile changes. Nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	Password *string
}

// Register creates a user with role user and returns a token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, domain.Identity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", domain.Identity{}, domain.Invalid("name required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", domain.Identity{}, domain.Invalid("a valid email is required")
	}
	if err := validatePassword(in.Password); err != nil {
		return "", domain.Identity{}, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return "", domain.Identity{}, err
	}
	u, err := s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return "", domain.Identity{}, domain.ErrDuplicateEmail
		}
		return "", domain.Identity{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", u.ID))
	return s.issue(*u)
}

// Login returns ErrInvalidCredentials for both unknown emails and wrong passwords.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.Identity{}, domain.ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison so timing does not reveal
			// whether the email is registered.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
			return "", domain.Identity{}, domain.ErrInvalidCredentials
		}
		return "", domain.Identity{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", domain.Identity{}, domain.ErrInvalidCredentials
	}
	return s.issue(*u)
}

// VerifyToken is stateless: the returned identity carries only ID and Role.
func (s *Service) VerifyToken(_ context.Context, token string) (domain.Identity, error) {
	return s.tokens.Validate(token)
}

// Profile re-reads the user behind id so name and email are current.
func (s *Service) Profile(ctx context.Context, id domain.Identity) (domain.Identity, error) {
	u, err := s.repo.GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, domain.ErrUserNotFound
		}
		return domain.Identity{}, err
	}
	return u.Identity(), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.Identity, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, u.Identity())
	}
	return out, nil
}

// UpdateUser lets a user change their own name or password; admins may change anyone's.
func (s *Service) UpdateUser(ctx context.Context, actor domain.Identity, id string, in UpdateInput) (domain.Identity, error) {
	if !access.CanManageUser(actor, id) {
		return domain.Identity{}, domain.ErrForbidden
	}

	var upd userrepo.UpdateInput
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Identity{}, domain.Invalid("name must not be empty")
		}
		upd.Name = &name
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return domain.Identity{}, err
		}
		hash, err := s.hash(*in.Password)
		if err != nil {
			return domain.Identity{}, err
		}
		upd.PasswordHash = &hash
	}

	u, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, domain.ErrUserNotFound
		}
		return domain.Identity{}, err
	}
	s.logger.Info("user updated",
		zap.String("user_id", u.ID),
		zap.String("actor_id", actor.ID),
		zap.Bool("password_changed", upd.PasswordHash != nil),
	)
	return u.Identity(), nil
}

func (s *Service) issue(u domain.User) (string, domain.Identity, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", domain.Identity{}, err
	}
	return token, u.Identity(), nil
}

func (s *Service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// dummyHash is computed once at the configured cost.
func (s *Service) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("storefront-unknown-user"), s.bcryptCost)
		if err != nil {
			s.logger.Error("dummy hash", zap.Error(err))
			return
		}
		s.dummy = h
	})
	return s.dummy
}

func validatePassword(p string) error {
	if len(p) < minPasswordLen {
		return domain.Invalid("password must be at least %d characters", minPasswordLen)
	}
	if len(p) > maxPasswordBytes {
		return domain.Invalid("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}
