package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"order-management/internal/repositories"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
)

// AuthzService отдает актуальную роль пользователя, кешируя её в Redis.
// TTL короткий: смена роли вступает в силу максимум через RoleCacheTTL.
type AuthzService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthzService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AuthzService {
	return &AuthzService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *AuthzService) ResolveRole(ctx context.Context, userID uint64) (constants.Role, error) {
	key := fmt.Sprintf(constants.CacheKeyUserRole, userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil && constants.IsValidRole(cached) {
		return constants.Role(cached), nil
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", apperrors.ErrForbidden
	}

	// Ошибки кеша не фатальны: роль у нас уже есть.
	if err := s.cacheRepo.Set(ctx, key, string(user.Role), s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать роль пользователя",
			zap.Uint64("userID", userID), zap.Error(err))
	}

	return user.Role, nil
}
