package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/repository"
	"dues-tracker-backend/internal/security"
)

type authService struct {
	memberRepo repository.MemberRepository
	tokens     security.TokenManager
}

// NewAuthService creates an authentication service backed by the member store.
func NewAuthService(memberRepo repository.MemberRepository, tokens security.TokenManager) AuthService {
	return &authService{memberRepo: memberRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, *domain.Member, error) {
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", nil, ErrBadCredentials
		}
		return "", "", nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if member.PasswordHash == "" {
		return "", "", nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrBadCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(member.ID, member.Email, string(member.Role))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(member.ID, member.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	logger.Info("Member logged in", "member_id", member.ID, "role", member.Role)
	return accessToken, refreshToken, member, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrBadCredentials
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", ErrBadCredentials
	}

	// Re-read the member so a role change or removal invalidates old tokens.
	member, err := s.memberRepo.GetByID(ctx, claims.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrBadCredentials
		}
		return "", fmt.Errorf("failed to look up member: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(member.ID, member.Email, string(member.Role))
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}
