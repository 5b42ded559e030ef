package jwt

import (
	"errors"
	"fmt"
	"time"

	"foodloss-backend/domain"
	"foodloss-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	issuer             = "FOODLOSS"
	purposeVerifyEmail = "verify_email"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, email string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		ParseIdentity(token string) (domain.Identity, error)
		GenerateTokenVerifyEmail(email string, duration time.Duration) (string, error)
		ValidateTokenVerifyEmail(token string) (string, error)
	}

	jwtUserClaim struct {
		UserID  string `json:"user_id,omitempty"`
		Email   string `json:"email"`
		Role    string `json:"role,omitempty"`
		Purpose string `json:"purpose,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	secretKey := utils.GetConfig("JWT_SECRET")
	if secretKey == "" {
		log.Warn("JWT_SECRET is not set, using a random per-process secret")
		secretKey = uuid.NewString() + uuid.NewString()
	}
	return secretKey
}

func NewJWTService() JWTService {
	ttl := time.Duration(utils.GetConfigInt("JWT_TTL_MINUTES", 120)) * time.Minute
	return NewJWTServiceWithSecret(getSecretKey(), ttl)
}

func NewJWTServiceWithSecret(secret string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *jwtService) sign(claims jwtUserClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) GenerateTokenUser(userID string, email string, role string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return j.sign(claims)
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) claims(token string) (*jwtUserClaim, error) {
	if token == "" {
		return nil, domain.ErrTokenNotFound
	}
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || !t_Token.Valid || claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (j *jwtService) ParseIdentity(token string) (domain.Identity, error) {
	claims, err := j.claims(token)
	if err != nil {
		return domain.Identity{}, err
	}
	if claims.Purpose != "" || claims.UserID == "" {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	identity := domain.Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func (j *jwtService) GenerateTokenVerifyEmail(email string, duration time.Duration) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		Email:   email,
		Purpose: purposeVerifyEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return j.sign(claims)
}

func (j *jwtService) ValidateTokenVerifyEmail(token string) (string, error) {
	claims, err := j.claims(token)
	if err != nil {
		return "", err
	}
	if claims.Purpose != purposeVerifyEmail || claims.Email == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Email, nil
}
