package auth

import (
	"context"
	"errors"

	"github.com/vuhoang/dev-connector/internal/domain/user"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/auth"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

// AuthenticateUseCase resolves an extracted bearer credential to a
// principal. Bad or expired tokens and tokens whose subject matches no
// user are both unauthenticated; only a lookup-layer fault surfaces as
// an internal error.
type AuthenticateUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewAuthenticateUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, token string) (*user.User, error) {
	userID, err := uc.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperror.NewUnauthorized("token rejected", err)
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewUnauthorized("no user for token subject", nil)
		}
		return nil, apperror.NewInternal("user lookup failed during authentication", err)
	}

	return u, nil
}
