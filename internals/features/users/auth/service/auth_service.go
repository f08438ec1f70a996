package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	authHelper "clubfund_backend/internals/features/users/auth/helper"
	memberModel "clubfund_backend/internals/features/users/members/model"
	helpersAuth "clubfund_backend/internals/helpers/auth"
)

/* ==========================
   Ports
========================== */

type MemberStore interface {
	FindByEmail(ctx context.Context, email string) (*memberModel.MemberModel, error)
	FindByGoogleID(ctx context.Context, googleID string) (*memberModel.MemberModel, error)
	Create(ctx context.Context, m *memberModel.MemberModel) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

type GoogleVerifier interface {
	Verify(idToken string) (*GoogleIdentity, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, rawToken string, expiresAt time.Time) error
}

/* ==========================
   Google ID token (futurenda)
========================== */

type FuturendaVerifier struct {
	ClientID string
}

func (v FuturendaVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	if strings.TrimSpace(v.ClientID) == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID belum diset")
	}
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.ClientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleIdentity{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

/* ==========================
   Service
========================== */

type AuthService struct {
	Members MemberStore
	Google  GoogleVerifier
	Revoker TokenRevoker
	Secret  string
	TTL     time.Duration
	Now     func() time.Time
}

func NewAuthService(members MemberStore, google GoogleVerifier, revoker TokenRevoker, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		Members: members,
		Google:  google,
		Revoker: revoker,
		Secret:  secret,
		TTL:     ttl,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Member      memberModel.MemberModel
}

// Register member baru: PENDING + MEMBER sampai di-review admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*memberModel.MemberModel, error) {
	email := authHelper.NormalizeEmail(in.Email)
	if !authHelper.IsValidEmail(email) {
		return nil, fmt.Errorf("email: %w", constants.ErrInvalidInput)
	}
	if err := authHelper.ValidatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), constants.ErrInvalidInput)
	}
	if !constants.IsValidDepartment(in.Department) {
		return nil, fmt.Errorf("department %q: %w", in.Department, constants.ErrInvalidInput)
	}

	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	m := &memberModel.MemberModel{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		Password:   &hash,
		Department: in.Department,
		Role:       constants.RoleMember,
		Status:     constants.MemberStatusPending,
	}
	if err := s.Members.Create(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("[INFO] pendaftaran baru %s (%s)", m.Email, m.Department)
	return m, nil
}

func (s *AuthService) issue(m memberModel.MemberModel) (*LoginResult, error) {
	tok, exp, err := helpersAuth.SignAccessToken(s.Secret, m.ID, m.Role, m.Email, s.Now(), s.TTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, ExpiresAt: exp, Member: m}, nil
}

// Login email + password. Member REJECTED tidak boleh masuk.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	m, err := s.Members.FindByEmail(ctx, authHelper.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, constants.ErrNotFound) {
			return nil, fmt.Errorf("login: %w", constants.ErrUnauthorized)
		}
		return nil, err
	}
	if m.Password == nil || authHelper.CheckPasswordHash(*m.Password, password) != nil {
		return nil, fmt.Errorf("login: %w", constants.ErrUnauthorized)
	}
	if m.Status == constants.MemberStatusRejected {
		return nil, fmt.Errorf("login %s: %w", m.Email, constants.ErrInactiveMember)
	}
	return s.issue(*m)
}

// LoginGoogle: cari by google_id → by email (link) → buat baru PENDING.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken, department string) (*LoginResult, error) {
	if s.Google == nil {
		return nil, fmt.Errorf("google login: %w", constants.ErrUnauthorized)
	}
	id, err := s.Google.Verify(idToken)
	if err != nil {
		log.Printf("[WARN] google id token ditolak: %v", err)
		return nil, fmt.Errorf("google id token: %w", constants.ErrUnauthorized)
	}

	m, err := s.Members.FindByGoogleID(ctx, id.Sub)
	if errors.Is(err, constants.ErrNotFound) {
		m, err = s.linkOrCreateGoogle(ctx, id, department)
	}
	if err != nil {
		return nil, err
	}
	if m.Status == constants.MemberStatusRejected {
		return nil, fmt.Errorf("login %s: %w", m.Email, constants.ErrInactiveMember)
	}
	return s.issue(*m)
}

func (s *AuthService) linkOrCreateGoogle(ctx context.Context, id *GoogleIdentity, department string) (*memberModel.MemberModel, error) {
	email := authHelper.NormalizeEmail(id.Email)
	existing, err := s.Members.FindByEmail(ctx, email)
	switch {
	case err == nil:
		gid := id.Sub
		if err := s.Members.UpdateFields(ctx, existing.ID, map[string]any{"member_google_id": gid}); err != nil {
			return nil, err
		}
		existing.GoogleID = &gid
		return existing, nil
	case !errors.Is(err, constants.ErrNotFound):
		return nil, err
	}

	if !constants.IsValidDepartment(department) {
		department = constants.DepartmentSinging
	}
	gid := id.Sub
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = email
	}
	m := &memberModel.MemberModel{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		GoogleID:   &gid,
		Department: department,
		Role:       constants.RoleMember,
		Status:     constants.MemberStatusPending,
	}
	if err := s.Members.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Logout blacklist token sampai exp-nya.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		log.Println("[INFO] Logout tanpa access token")
		return nil
	}
	exp, ok := helpersAuth.ExpiryOf(s.Secret, rawToken)
	if !ok {
		ttl := s.TTL
		if ttl <= 0 {
			ttl = helpersAuth.AccessTTLDefault
		}
		exp = s.Now().Add(ttl)
	}
	return s.Revoker.Revoke(ctx, rawToken, exp.Add(time.Minute))
}
