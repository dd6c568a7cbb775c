package service

import (
	"context"
	"fmt"
	"time"

	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService: the gate every
// facade operation passes before touching a wallet.
type AuthServiceImpl struct {
	userRepo   ports.UserRepository
	walletRepo ports.WalletRepository
	hashSvc    ports.HashService
	keyGen     ports.KeyGenerator
	tokenSvc   ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	walletRepo ports.WalletRepository,
	hashSvc ports.HashService,
	keyGen ports.KeyGenerator,
	tokenSvc ports.TokenService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		hashSvc:    hashSvc,
		keyGen:     keyGen,
		tokenSvc:   tokenSvc,
	}
}

// Register creates a new user and issues their API key.
// The key is returned in plaintext only here.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*ports.RegisterResponse, error) {
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameTaken()
	}

	apiKey, err := s.keyGen.NewAPIKey()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate api key: %w", err))
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		APIKey:       apiKey,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	return &ports.RegisterResponse{
		UserID: user.ID,
		APIKey: apiKey,
	}, nil
}

// Login verifies the password and returns the user's API key plus a
// session token for the dashboard routes.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*ports.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(user.ID, user.APIKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return &ports.LoginResponse{
		UserID:    user.ID,
		APIKey:    user.APIKey,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Resolve maps an API key to its user. Unknown keys fail with the
// 403-mapped unauthorized error and never reveal whether the key was
// close to a real one.
func (s *AuthServiceImpl) Resolve(ctx context.Context, apiKey string) (*domain.User, error) {
	if apiKey == "" {
		return nil, apperror.ErrUnauthorized()
	}
	user, err := s.userRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve api key: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized()
	}
	return user, nil
}

// AuthorizeWalletAccess returns the wallet at address when it exists
// and belongs to userID. The not-found check runs first so a valid
// owner probing a bogus address gets 404, not 403.
func (s *AuthServiceImpl) AuthorizeWalletAccess(ctx context.Context, userID int64, address string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.Get(ctx, address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if !wallet.OwnedBy(userID) {
		return nil, apperror.ErrForbidden()
	}
	return wallet, nil
}

// Profile returns the user behind an authenticated session. A token
// for a user that no longer exists counts as stale.
func (s *AuthServiceImpl) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}
	return user, nil
}
