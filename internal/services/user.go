package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

// getMe cache TTL; short so tier/role changes propagate quickly.
const meCacheTTL = 30 * time.Second

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	cache    *redis.Client // nil disables the read-through cache
}

func NewUserService(gdb *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, cache *redis.Client) UserService {
	return &userService{
		db:       gdb,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
		cache:    cache,
	}
}

// GetMe resolves the caller's principal row, read-through cached keyed by the
// hash of the presented credential.
func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}

	cacheKey := ""
	if us.cache != nil {
		cacheKey = "yigyaps:me:" + hashCredential(rd.TokenString)
		if raw, err := us.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached types.User
			if jerr := json.Unmarshal(raw, &cached); jerr == nil {
				return &cached, nil
			}
		}
	}

	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindUnauthenticated, "principal no longer exists")
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load principal: %w", err))
	}

	if us.cache != nil {
		if raw, jerr := json.Marshal(user); jerr == nil {
			if serr := us.cache.Set(ctx, cacheKey, raw, meCacheTTL).Err(); serr != nil {
				us.log.Debug("Failed to cache principal", "error", serr)
			}
		}
	}
	return user, nil
}
