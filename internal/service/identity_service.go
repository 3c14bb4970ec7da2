package service

import (
	"context"

	"carmeet/internal/domain"
	"carmeet/internal/dto"
)

type IdentityService interface {
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.UserResponse, error)
	ActivateAccount(ctx context.Context, token string) (*dto.UserResponse, error)
	LoginStep1(ctx context.Context, email, password string) (*dto.LoginStep1Response, error)
	AdminLoginStep1(ctx context.Context, email, password string) (*dto.AdminLoginStep1Response, error)
	VerifyCode(ctx context.Context, email, code string) (*dto.AuthResponse, error)
	ResendVerificationCode(ctx context.Context, email string) (*dto.LoginStep1Response, error)
	GetCurrentUser(ctx context.Context, userID domain.UserID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID domain.UserID, r dto.UpdateProfileRequest) (*dto.UserResponse, error)
}
