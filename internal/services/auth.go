package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

const apiKeyPrefix = "yy_"

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,38}$`)

// Claims are the signed session token claims: userId (sub), tier, role,
// issued-at and expiry.
type Claims struct {
	Tier types.Tier `json:"tier"`
	Role types.Role `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string      `json:"token"`
	ApiKey    string      `json:"apiKey"`
	ExpiresIn int         `json:"expiresIn"`
	User      *types.User `json:"user"`
}

type AuthService interface {
	// Login exchanges a username/password credential for a session token and
	// a fresh API key. The principal is created on first successful login.
	Login(ctx context.Context, username, password, displayName string) (*LoginResult, error)
	// SetContextFromBearer resolves a bearer credential (signed session token
	// or opaque API key) to a principal and stores it in the context.
	SetContextFromBearer(ctx context.Context, bearer string) (context.Context, error)
	RequireRole(ctx context.Context, role types.Role) error
	RequireTier(ctx context.Context, minTier types.Tier) error
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	apiKeyRepo   repos.ApiKeyRepo
	jwtSecretKey string
	accessTTL    time.Duration
	apiKeyTTL    time.Duration
}

func NewAuthService(
	gdb *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	apiKeyRepo repos.ApiKeyRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	apiKeyTTL time.Duration,
) AuthService {
	return &authService{
		db:           gdb,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		apiKeyRepo:   apiKeyRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		apiKeyTTL:    apiKeyTTL,
	}
}

func (as *authService) Login(ctx context.Context, username, password, displayName string) (*LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, apierr.New(apierr.KindValidation, "username must be 2-39 chars of [a-z0-9_-], starting alphanumeric")
	}
	if len(password) < 8 {
		return nil, apierr.New(apierr.KindValidation, "password must be at least 8 characters")
	}

	now := time.Now().UTC()
	var user *types.User

	found, err := as.userRepo.GetByUsername(ctx, nil, username)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
			return nil, apierr.New(apierr.KindUnauthenticated, "invalid credentials")
		}
		user = found
	case db.IsNotFound(err):
		// First successful login creates the principal.
		hash, herr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if herr != nil {
			return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("hash password: %w", herr))
		}
		if displayName == "" {
			displayName = username
		}
		user = &types.User{
			ID:           uuid.New(),
			Username:     username,
			DisplayName:  displayName,
			PasswordHash: string(hash),
			Tier:         types.TierFree,
			Role:         types.RoleUser,
			CreatedAt:    now,
		}
		if cerr := as.userRepo.Create(ctx, nil, user); cerr != nil {
			if db.IsUniqueViolation(cerr) {
				// Lost a race with a concurrent first login for the same name.
				return nil, apierr.New(apierr.KindConflict, "username %q was just claimed, retry", username)
			}
			return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("create user: %w", cerr))
		}
		as.log.Info("Created principal on first login", "user_id", user.ID, "username", username)
	default:
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load user: %w", err))
	}

	token, err := as.signToken(user, now)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("sign token: %w", err))
	}

	rawKey, err := as.issueApiKey(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	if terr := as.userRepo.TouchLastLogin(ctx, nil, user.ID, now); terr != nil {
		as.log.Warn("Failed to record last login", "error", terr, "user_id", user.ID)
	}
	user.LastLoginAt = &now

	return &LoginResult{
		Token:     token,
		ApiKey:    rawKey,
		ExpiresIn: int(as.accessTTL.Seconds()),
		User:      user,
	}, nil
}

func (as *authService) signToken(user *types.User, now time.Time) (string, error) {
	claims := Claims{
		Tier: user.Tier,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) issueApiKey(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	raw := apiKeyPrefix + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	expiresAt := now.Add(as.apiKeyTTL)
	key := &types.ApiKey{
		ID:        uuid.New(),
		UserID:    userID,
		KeyHash:   hashCredential(raw),
		Prefix:    raw[:len(apiKeyPrefix)+4],
		CreatedAt: now,
		ExpiresAt: &expiresAt,
	}
	if err := as.apiKeyRepo.Create(ctx, nil, key); err != nil {
		return "", apierr.Wrap(apierr.KindSystem, fmt.Errorf("create api key: %w", err))
	}
	return raw, nil
}

// SetContextFromBearer dispatches on the shape of the credential: a JWT has
// three dot-separated segments, anything else is treated as an opaque API key.
func (as *authService) SetContextFromBearer(ctx context.Context, bearer string) (context.Context, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return ctx, apierr.New(apierr.KindUnauthenticated, "missing credentials")
	}
	if strings.Count(bearer, ".") == 2 {
		return as.contextFromToken(ctx, bearer)
	}
	return as.contextFromApiKey(ctx, bearer)
}

func (as *authService) contextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ctx, apierr.New(apierr.KindUnauthenticated, "session token expired")
		}
		return ctx, apierr.Wrap(apierr.KindUnauthenticated, fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return ctx, apierr.New(apierr.KindUnauthenticated, "invalid session token")
	}
	if claims.Subject == "" {
		return ctx, apierr.New(apierr.KindUnauthenticated, "token missing subject")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.New(apierr.KindUnauthenticated, "invalid user id in token")
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Tier:        claims.Tier,
		Role:        claims.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) contextFromApiKey(ctx context.Context, rawKey string) (context.Context, error) {
	key, err := as.apiKeyRepo.GetByHash(ctx, nil, hashCredential(rawKey))
	if err != nil {
		if db.IsNotFound(err) {
			return ctx, apierr.New(apierr.KindUnauthenticated, "unknown api key")
		}
		return ctx, apierr.Wrap(apierr.KindSystem, fmt.Errorf("lookup api key: %w", err))
	}
	now := time.Now().UTC()
	if key.Revoked {
		return ctx, apierr.New(apierr.KindUnauthenticated, "api key revoked")
	}
	if key.ExpiresAt != nil && key.ExpiresAt.Before(now) {
		return ctx, apierr.New(apierr.KindUnauthenticated, "api key expired")
	}
	user, err := as.userRepo.GetByID(ctx, nil, key.UserID)
	if err != nil {
		return ctx, apierr.New(apierr.KindUnauthenticated, "api key principal no longer exists")
	}
	// Best effort; losing a last-used update is harmless.
	if terr := as.apiKeyRepo.TouchLastUsed(ctx, nil, key.ID, now); terr != nil {
		as.log.Debug("Failed to touch api key", "error", terr)
	}
	rd := &requestdata.RequestData{
		TokenString: rawKey,
		UserID:      user.ID,
		Tier:        user.Tier,
		Role:        user.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) RequireRole(ctx context.Context, role types.Role) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	if rd.Role != role && rd.Role != types.RoleAdmin {
		return apierr.New(apierr.KindForbidden, "requires role %q", role)
	}
	return nil
}

func (as *authService) RequireTier(ctx context.Context, minTier types.Tier) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	if rd.Tier.Rank() < minTier.Rank() {
		return apierr.New(apierr.KindForbidden, "requires tier %q or above", minTier)
	}
	return nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

func hashCredential(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
