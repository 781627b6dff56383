package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fssotc/website/config"
	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/repository"
	"github.com/fssotc/website/pkg/jwt"
)

// ── auth errors ──

var (
	// ErrInvalidCredentials reports unknown username, wrong password or a disabled admin account.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenInvalid reports a token that fails signature, expiry or type checks.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrTokenRevoked reports a token whose id is on the logout blacklist.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenBlacklist stores revoked token ids. *redis.Client implements it.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService back-office authentication.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh rotates the pair; the presented refresh token is revoked.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout revokes the access token and, when given, the refresh token.
	Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error
	// BootstrapAdmin creates the configured admin when no account exists.
	BootstrapAdmin(ctx context.Context) error
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	cfg       *config.AuthConfig
	logger    *zap.Logger
}

// NewAuthService creates an AuthService. blacklist may be nil, in which
// case revocation is skipped.
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.repo.Admin.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("get admin failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("admin logged in", zap.String("admin_id", admin.AdminID))
	return s.issue(admin)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TypeRefresh {
		return nil, ErrTokenInvalid
	}
	if s.revoked(ctx, claims.ID) {
		return nil, ErrTokenRevoked
	}

	admin, err := s.repo.Admin.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		s.logger.Error("get admin failed", zap.Error(err))
		return nil, err
	}

	s.revoke(ctx, claims)
	return s.issue(admin)
}

func (s *authService) Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error {
	if access != nil {
		s.revoke(ctx, access)
	}
	if refreshToken != "" {
		if claims, err := s.jwtMgr.ParseToken(refreshToken); err == nil && claims.TokenType == jwt.TypeRefresh {
			s.revoke(ctx, claims)
		}
	}
	return nil
}

func (s *authService) BootstrapAdmin(ctx context.Context) error {
	n, err := s.repo.Admin.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 || s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.Admin{
		Username:     s.cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         model.AdminRoleAdmin,
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("bootstrap admin created", zap.String("username", admin.Username))
	return nil
}

func (s *authService) issue(admin *model.Admin) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(admin.AdminID, admin.Role)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(admin.AdminID, admin.Role)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Admin: dto.AdminResponse{
			ID:       admin.AdminID,
			Username: admin.Username,
			Role:     admin.Role,
		},
	}, nil
}

// revoke blacklists the token until it would have expired anyway.
func (s *authService) revoke(ctx context.Context, claims *jwt.Claims) {
	if s.blacklist == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("blacklist token failed", zap.String("jti", claims.ID), zap.Error(err))
	}
}

func (s *authService) revoked(ctx context.Context, jti string) bool {
	if s.blacklist == nil {
		return false
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, jti)
	if err != nil {
		s.logger.Warn("check token blacklist failed", zap.Error(err))
		return false
	}
	return revoked
}
