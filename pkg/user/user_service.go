package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodloss-backend/domain"
	"foodloss-backend/entities"
	"foodloss-backend/internal/utils/mailing"
	"foodloss-backend/internal/utils/storage"
	"foodloss-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const verifyEmailTTL = 24 * time.Hour

type (
	UserService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		RegisterAdmin(ctx context.Context, email, password, name string) (domain.UserResponse, error)
		Me(ctx context.Context, identity domain.Identity) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, identity domain.Identity, req domain.UpdateProfileRequest) (domain.UserResponse, error)
		Logout(ctx context.Context, identity domain.Identity) error
		IsTokenRevoked(ctx context.Context, jti string) (bool, error)
		CheckSession(ctx context.Context, identity domain.Identity) error
		PurgeRevokedTokens(ctx context.Context, now time.Time) (int64, error)
		SendVerificationEmail(ctx context.Context, identity domain.Identity) error
		VerifyEmail(ctx context.Context, token string) error
		UploadAvatar(ctx context.Context, identity domain.Identity, req domain.UploadAvatarRequest) (domain.UserResponse, error)
		SetActive(ctx context.Context, identity domain.Identity, userID string, active bool) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		hasher         PasswordHasher
		s3             storage.AwsS3
		mailer         mailing.Mailer
		appURL         string
		now            func() time.Time
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	hasher PasswordHasher,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
	appURL string,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		hasher:         hasher,
		s3:             s3,
		mailer:         mailer,
		appURL:         appURL,
		now:            time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

func toUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:                   u.ID.String(),
		Email:                u.Email,
		Name:                 u.Name,
		Role:                 string(u.Role),
		Avatar:               u.Avatar,
		PhoneNumber:          u.PhoneNumber,
		NotificationSettings: u.NotificationSettings,
		IsActive:             u.IsActive,
		EmailVerified:        u.EmailVerified,
		LastLogin:            u.LastLogin,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (s *userService) issue(u *entities.User, message string) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return domain.AuthResponse{}, fmt.Errorf("issuing token: %w", err)
	}
	return domain.AuthResponse{
		Token:   token,
		User:    toUserResponse(u),
		Message: message,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.FindActiveByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return domain.AuthResponse{}, notFound(err)
	}

	if !s.hasher.Check(req.Password, user.Password) {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	user.LastLogin = &now
	if err := s.userRepository.Save(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}

	return s.issue(user, domain.MessageSuccessLogin)
}

func (s *userService) create(ctx context.Context, email, password, name string, role entities.UserRole) (*entities.User, error) {
	// the validator counts runes, bcrypt counts bytes
	if len(password) > MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyUsed
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:         email,
		Password:      hash,
		Name:          strings.TrimSpace(name),
		Role:          role,
		IsActive:      true,
		EmailVerified: false,
	}
	if err := s.userRepository.Create(ctx, user); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	role, ok := entities.ParseUserRole(req.Role)
	if !ok {
		return domain.AuthResponse{}, domain.ErrInvalidRole
	}
	if role == entities.RoleAdmin {
		return domain.AuthResponse{}, fmt.Errorf("%w: 管理者アカウントは自分で登録できません", domain.ErrForbidden)
	}

	user, err := s.create(ctx, normalizeEmail(req.Email), req.Password, req.Name, role)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	if err := s.sendVerification(user); err != nil {
		log.Warnf("verification mail to %s not sent: %v", user.Email, err)
	}

	return s.issue(user, domain.MessageSuccessRegister)
}

func (s *userService) RegisterAdmin(ctx context.Context, email, password, name string) (domain.UserResponse, error) {
	user, err := s.create(ctx, normalizeEmail(email), password, name, entities.RoleAdmin)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) current(ctx context.Context, identity domain.Identity) (*entities.User, error) {
	if identity.Email == "" {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepository.FindActiveByEmail(ctx, identity.Email)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, identity domain.Identity) (domain.UserResponse, error) {
	user, err := s.current(ctx, identity)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func applyNullable(dst **string, field domain.Optional[string]) {
	if !field.Present {
		return
	}
	if field.Null {
		*dst = nil
		return
	}
	v := field.Value
	*dst = &v
}

func (s *userService) UpdateProfile(ctx context.Context, identity domain.Identity, req domain.UpdateProfileRequest) (domain.UserResponse, error) {
	user, err := s.current(ctx, identity)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if req.Name.Present {
		name := strings.TrimSpace(req.Name.Value)
		if req.Name.Null || name == "" {
			return domain.UserResponse{}, domain.ErrNameRequired
		}
		user.Name = name
	}
	if req.NotificationSettings.Set() && !json.Valid([]byte(req.NotificationSettings.Value)) {
		return domain.UserResponse{}, domain.ErrInvalidNotification
	}

	applyNullable(&user.PhoneNumber, req.PhoneNumber)
	applyNullable(&user.Avatar, req.Avatar)
	applyNullable(&user.NotificationSettings, req.NotificationSettings)

	if err := s.userRepository.Save(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// Logout denylists the presented token until it expires.
func (s *userService) Logout(ctx context.Context, identity domain.Identity) error {
	if identity.TokenID == "" {
		return nil
	}
	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(24 * time.Hour)
	}
	return s.userRepository.RevokeToken(ctx, &entities.RevokedToken{
		JTI:       identity.TokenID,
		UserID:    identity.UserID,
		ExpiresAt: expiresAt.UTC(),
	})
}

func (s *userService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.userRepository.IsTokenRevoked(ctx, jti)
}

// CheckSession rejects logged-out tokens and tokens whose account was deactivated or removed.
func (s *userService) CheckSession(ctx context.Context, identity domain.Identity) error {
	revoked, err := s.IsTokenRevoked(ctx, identity.TokenID)
	if err != nil {
		return err
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	if _, err := uuid.Parse(identity.UserID); err != nil {
		return domain.ErrTokenInvalid
	}
	user, err := s.userRepository.FindByID(ctx, identity.UserID)
	if err != nil {
		return notFound(err)
	}
	if !user.IsActive {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *userService) PurgeRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	return s.userRepository.PurgeRevokedTokens(ctx, now.UTC())
}

func (s *userService) sendVerification(user *entities.User) error {
	if s.mailer == nil {
		return errors.New("mailer not configured")
	}
	token, err := s.jwtService.GenerateTokenVerifyEmail(user.Email, verifyEmailTTL)
	if err != nil {
		return err
	}
	subject, body := mailing.VerificationMail(s.appURL, user.Name, token)
	return s.mailer.SendMail(user.Email, subject, body)
}

func (s *userService) SendVerificationEmail(ctx context.Context, identity domain.Identity) error {
	user, err := s.current(ctx, identity)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return domain.ErrEmailAlreadyVerified
	}
	return s.sendVerification(user)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	email, err := s.jwtService.ValidateTokenVerifyEmail(token)
	if err != nil {
		return err
	}
	user, err := s.userRepository.FindActiveByEmail(ctx, email)
	if err != nil {
		return notFound(err)
	}
	if user.EmailVerified {
		return nil
	}
	user.EmailVerified = true
	return s.userRepository.Save(ctx, user)
}

func (s *userService) UploadAvatar(ctx context.Context, identity domain.Identity, req domain.UploadAvatarRequest) (domain.UserResponse, error) {
	user, err := s.current(ctx, identity)
	if err != nil {
		return domain.UserResponse{}, err
	}

	var objectKey string
	if user.Avatar != nil {
		objectKey = s.s3.GetObjectKeyFromLink(*user.Avatar)
	}
	if objectKey != "" {
		objectKey, err = s.s3.UpdateFile(ctx, objectKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, "user-"+user.ID.String(), req.Image, "avatars", storage.AllowImage...)
	}
	if err != nil {
		return domain.UserResponse{}, err
	}

	link := s.s3.GetPublicLinkKey(objectKey)
	user.Avatar = &link
	if err := s.userRepository.Save(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) SetActive(ctx context.Context, identity domain.Identity, userID string, active bool) (domain.UserResponse, error) {
	if !identity.HasRole(domain.RoleAdmin) {
		return domain.UserResponse{}, domain.ErrForbidden
	}
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, notFound(err)
	}
	user.IsActive = active
	if err := s.userRepository.Save(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}
