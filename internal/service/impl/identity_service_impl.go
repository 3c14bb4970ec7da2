package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"carmeet/internal/domain"
	"carmeet/internal/dto"
	"carmeet/internal/observability/metrics"
	"carmeet/internal/service"
	"carmeet/internal/store"

	"github.com/google/uuid"
)

// codeTTL is the validity window of a two-factor verification code.
const codeTTL = 5 * time.Minute

const codeSentMessage = "Verification code sent to your email"

type IdentityServiceImpl struct {
	Store     dataStore
	Passwords service.PasswordService
	Tokens    service.TokenService
	Codes     service.CodeGenerator
	Mailer    service.EmailNotifier
	BaseURL   string
	Files     FileRemover

	// Detach runs a side effect without blocking the caller's response.
	// Tests swap in an inline runner.
	Detach func(fn func())
}

func NewIdentityService(st *store.Store, passwords service.PasswordService, tokens service.TokenService, codes service.CodeGenerator, mailer service.EmailNotifier, baseURL string) *IdentityServiceImpl {
	return &IdentityServiceImpl{
		Store:     gormStoreAdapter{store: st},
		Passwords: passwords,
		Tokens:    tokens,
		Codes:     codes,
		Mailer:    mailer,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Files:     osFileRemover{},
		Detach:    func(fn func()) { go fn() },
	}
}

// Narrow store contracts so tests can substitute an in-memory store.

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type storeTx interface {
	Users() userStore
	Photos() photoStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	// GetByEmail and GetByID return (nil, nil) when no row matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	Update(ctx context.Context, id domain.UserID, fields map[string]any) error
	FindOrCreateRole(ctx context.Context, slug string) (*domain.Role, error)
}

type photoStore interface {
	GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Photo, error)
	Upsert(ctx context.Context, p *domain.Photo) error
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Users() userStore   { return g.tx.Users() }
func (g gormTxAdapter) Photos() photoStore { return g.tx.Photos() }

// FileRemover deletes a stored photo asset. Failures are logged, never
// surfaced: the database record is authoritative.
type FileRemover interface {
	Remove(path string) error
}

type osFileRemover struct{}

func (osFileRemover) Remove(path string) error { return os.Remove(path) }

func (s *IdentityServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.UserResponse, error) {
	result := "failure"
	defer func() { metrics.RegistrationsTotal.WithLabelValues(result).Inc() }()

	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return nil, ErrEmptyName
	}
	email := normalizeEmail(r.Email)
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if r.Password == "" {
		return nil, ErrEmptyPassword
	}
	if len(r.Password) < 8 {
		return nil, ErrPasswordLength
	}

	var out *dto.UserResponse
	var created *domain.User
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		existing, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}

		role, err := tx.Users().FindOrCreateRole(ctx, domain.DefaultRoleSlug)
		if err != nil {
			return err
		}

		hash, err := s.Passwords.Hash(r.Password)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		var phone *string
		if p := strings.TrimSpace(r.Phone); p != "" {
			phone = &p
		}
		u := &domain.User{
			ID:           uuid.New(),
			FirstName:    strings.TrimSpace(r.FirstName),
			LastName:     strings.TrimSpace(r.LastName),
			Email:        email,
			Phone:        phone,
			PasswordHash: hash,
			IsActive:     false, // stays false until ActivateAccount succeeds
			RoleID:       role.ID,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return err // unique constraint on email is the final backstop
		}

		photoPath := r.PhotoPath
		if photoPath == "" {
			photoPath = domain.DefaultPhotoPath
		}
		if err := tx.Photos().Upsert(ctx, &domain.Photo{
			ID:        uuid.New(),
			UserID:    u.ID,
			Path:      photoPath,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		created = u
		out = sanitizeUser(u, photoPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.Tokens.IssueActivationToken(created.ID, created.Email)
	if err != nil {
		return nil, err
	}
	activationURL := fmt.Sprintf("%s/api/auth/activate/%s", s.BaseURL, token)
	to, name := created.Email, fullName(created)
	s.notify("activation", func(ctx context.Context) error {
		return s.Mailer.SendActivationEmail(ctx, to, name, activationURL)
	})

	result = "success"
	return out, nil
}

func (s *IdentityServiceImpl) ActivateAccount(ctx context.Context, token string) (*dto.UserResponse, error) {
	result := "failure"
	defer func() { metrics.ActivationsTotal.WithLabelValues(result).Inc() }()

	claims, err := s.Tokens.Verify(token, service.TokenKindActivation)
	if err != nil {
		return nil, err
	}

	var out *dto.UserResponse
	var activated *domain.User
	err = s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, claims.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		// The token binds a user/email pair at signing time. If the email
		// changed since, the token no longer proves anything.
		if !strings.EqualFold(u.Email, claims.Email) {
			return domain.ErrInvalidToken
		}
		if u.IsActive {
			return domain.ErrAccountAlreadyActive
		}
		if err := tx.Users().Update(ctx, u.ID, map[string]any{"is_active": true}); err != nil {
			return err
		}
		u.IsActive = true

		photo, err := tx.Photos().GetByUserID(ctx, u.ID)
		if err != nil {
			return err
		}
		activated = u
		out = sanitizeUser(u, photoPathOrDefault(photo))
		return nil
	})
	if err != nil {
		return nil, err
	}

	to, name := activated.Email, fullName(activated)
	s.notify("activation_success", func(ctx context.Context) error {
		return s.Mailer.SendActivationSuccessEmail(ctx, to, name)
	})

	result = "success"
	return out, nil
}

func (s *IdentityServiceImpl) LoginStep1(ctx context.Context, email, password string) (*dto.LoginStep1Response, error) {
	result := "failure"
	defer func() { metrics.LoginsTotal.WithLabelValues(result).Inc() }()

	user, code, err := s.checkCredentialsAndStageCode(ctx, email, password, nil)
	if err != nil {
		return nil, err
	}
	s.sendCode(user, code)

	result = "success"
	return &dto.LoginStep1Response{Message: codeSentMessage, Email: user.Email}, nil
}

func (s *IdentityServiceImpl) AdminLoginStep1(ctx context.Context, email, password string) (*dto.AdminLoginStep1Response, error) {
	result := "failure"
	defer func() { metrics.LoginsTotal.WithLabelValues(result).Inc() }()

	user, code, err := s.checkCredentialsAndStageCode(ctx, email, password, func(u *domain.User) error {
		if u.Role == nil || u.Role.Slug != domain.AdminRoleSlug {
			return domain.ErrNotAdmin
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.sendCode(user, code)

	result = "success"
	return &dto.AdminLoginStep1Response{Message: codeSentMessage, Email: user.Email, Role: user.Role.Slug}, nil
}

// checkCredentialsAndStageCode is the shared first login step: credential
// check, optional role gate, then code issuance. The staged code is
// returned so the caller can dispatch it after the transaction commits.
func (s *IdentityServiceImpl) checkCredentialsAndStageCode(ctx context.Context, email, password string, gate func(*domain.User) error) (*domain.User, string, error) {
	email = normalizeEmail(email)

	var user *domain.User
	var code string
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		// Same error for unknown email and wrong password, so callers
		// cannot probe which emails are registered.
		if u == nil || !s.Passwords.Compare(password, u.PasswordHash) {
			return domain.ErrInvalidCredentials
		}
		if !u.IsActive {
			return domain.ErrAccountNotActivated
		}
		if gate != nil {
			if err := gate(u); err != nil {
				return err
			}
		}
		c, err := s.stageCode(ctx, tx, u)
		if err != nil {
			return err
		}
		user, code = u, c
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return user, code, nil
}

func (s *IdentityServiceImpl) VerifyCode(ctx context.Context, email, code string) (*dto.AuthResponse, error) {
	result := "failure"
	defer func() { metrics.VerificationCodesTotal.WithLabelValues("verify", result).Inc() }()

	email = normalizeEmail(email)

	var user *domain.User
	var photoPath string
	var expired bool
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrInvalidCredentials
		}
		if !u.IsActive {
			return domain.ErrAccountNotActivated
		}
		if !u.HasPendingCode() {
			return domain.ErrNoVerificationCode
		}
		if time.Now().UTC().After(*u.CodeExpiresAt) {
			// Lazy cleanup: the clear has to commit even though the call
			// fails, so the error is raised after the transaction.
			expired = true
			return clearCode(ctx, tx, u.ID)
		}
		if !s.Passwords.Compare(code, *u.VerificationCodeHash) {
			// Code stays on record; the caller may retry until expiry.
			return domain.ErrInvalidVerificationCode
		}
		if err := clearCode(ctx, tx, u.ID); err != nil { // single use
			return err
		}
		photo, err := tx.Photos().GetByUserID(ctx, u.ID)
		if err != nil {
			return err
		}
		user = u
		photoPath = photoPathOrDefault(photo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, domain.ErrVerificationCodeExpired
	}

	roleSlug := ""
	if user.Role != nil {
		roleSlug = user.Role.Slug
	}
	token, expiresIn, err := s.Tokens.IssueAccessToken(user.ID, user.Email, roleSlug)
	if err != nil {
		return nil, err
	}

	result = "success"
	return &dto.AuthResponse{
		User:      *sanitizeUser(user, photoPath),
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

func (s *IdentityServiceImpl) ResendVerificationCode(ctx context.Context, email string) (*dto.LoginStep1Response, error) {
	result := "failure"
	defer func() { metrics.VerificationCodesTotal.WithLabelValues("resend", result).Inc() }()

	email = normalizeEmail(email)

	var user *domain.User
	var code string
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		if !u.IsActive {
			return domain.ErrAccountNotActivated
		}
		if u.HasPendingCode() {
			if remaining := time.Until(*u.CodeExpiresAt); remaining > 0 {
				return &domain.CodeAlreadySentError{
					RemainingMinutes: int(math.Ceil(remaining.Minutes())),
				}
			}
			// Expired code: issue a fresh one immediately, no cooldown.
		}
		c, err := s.stageCode(ctx, tx, u)
		if err != nil {
			return err
		}
		user, code = u, c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.sendCode(user, code)

	result = "success"
	return &dto.LoginStep1Response{Message: codeSentMessage, Email: user.Email}, nil
}

func (s *IdentityServiceImpl) GetCurrentUser(ctx context.Context, userID domain.UserID) (*dto.UserResponse, error) {
	var out *dto.UserResponse
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		if !u.IsActive {
			return domain.ErrAccountNotActivated
		}
		photo, err := tx.Photos().GetByUserID(ctx, u.ID)
		if err != nil {
			return err
		}
		out = sanitizeUser(u, photoPathOrDefault(photo))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *IdentityServiceImpl) UpdateProfile(ctx context.Context, userID domain.UserID, r dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var out *dto.UserResponse
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}

		// Partial update: only supplied fields are merged.
		fields := map[string]any{}
		if r.FirstName != nil {
			if v := strings.TrimSpace(*r.FirstName); v != "" {
				fields["first_name"] = v
				u.FirstName = v
			}
		}
		if r.LastName != nil {
			if v := strings.TrimSpace(*r.LastName); v != "" {
				fields["last_name"] = v
				u.LastName = v
			}
		}
		if r.Phone != nil {
			if v := strings.TrimSpace(*r.Phone); v == "" {
				fields["phone"] = nil // empty phone clears the stored number
				u.Phone = nil
			} else {
				fields["phone"] = v
				u.Phone = &v
			}
		}

		existing, err := tx.Photos().GetByUserID(ctx, u.ID)
		if err != nil {
			return err
		}
		photoPath := photoPathOrDefault(existing)
		if r.PhotoPath != nil && *r.PhotoPath != "" {
			if existing != nil && existing.Path != domain.DefaultPhotoPath && existing.Path != *r.PhotoPath {
				// Best effort: the new path is authoritative even if the
				// old asset cannot be removed.
				if err := s.Files.Remove(existing.Path); err != nil {
					slog.Warn("removing old profile photo failed", "path", existing.Path, "error", err)
				}
			}
			now := time.Now().UTC()
			p := &domain.Photo{UserID: u.ID, Path: *r.PhotoPath, CreatedAt: now, UpdatedAt: now}
			if existing != nil {
				p.ID = existing.ID
				p.CreatedAt = existing.CreatedAt
			} else {
				p.ID = uuid.New()
			}
			if err := tx.Photos().Upsert(ctx, p); err != nil {
				return err
			}
			photoPath = *r.PhotoPath
		}

		if len(fields) > 0 {
			if err := tx.Users().Update(ctx, u.ID, fields); err != nil {
				return err
			}
		}
		out = sanitizeUser(u, photoPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ====== Helpers ======

func (s *IdentityServiceImpl) stageCode(ctx context.Context, tx storeTx, u *domain.User) (string, error) {
	code, err := s.Codes.Generate()
	if err != nil {
		return "", err
	}
	hash, err := s.Passwords.Hash(code)
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(codeTTL)
	// Last write wins: a concurrent step1 simply replaces the pending code.
	if err := tx.Users().Update(ctx, u.ID, map[string]any{
		"verification_code_hash": hash,
		"code_expires_at":        expires,
	}); err != nil {
		return "", err
	}
	metrics.VerificationCodesTotal.WithLabelValues("issue", "success").Inc()
	return code, nil
}

func (s *IdentityServiceImpl) sendCode(u *domain.User, code string) {
	to, name := u.Email, fullName(u)
	s.notify("verification_code", func(ctx context.Context) error {
		return s.Mailer.SendVerificationCode(ctx, to, name, code)
	})
}

// notify dispatches mail fire-and-forget. Failures are logged and counted,
// never propagated to the primary operation.
func (s *IdentityServiceImpl) notify(kind string, send func(ctx context.Context) error) {
	s.Detach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			slog.Warn("email dispatch failed", "kind", kind, "error", err)
			metrics.EmailsSentTotal.WithLabelValues(kind, "failure").Inc()
			return
		}
		metrics.EmailsSentTotal.WithLabelValues(kind, "success").Inc()
	})
}

func clearCode(ctx context.Context, tx storeTx, id domain.UserID) error {
	return tx.Users().Update(ctx, id, map[string]any{
		"verification_code_hash": nil,
		"code_expires_at":        nil,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fullName(u *domain.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func photoPathOrDefault(p *domain.Photo) string {
	if p == nil {
		return domain.DefaultPhotoPath
	}
	return p.Path
}

func sanitizeUser(u *domain.User, photoPath string) *dto.UserResponse {
	out := &dto.UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		PhotoPath: photoPath,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Role != nil {
		out.Role = dto.RoleResponse{ID: u.Role.ID.String(), Name: u.Role.Name, Slug: u.Role.Slug}
	}
	return out
}
