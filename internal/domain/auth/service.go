package auth

import (
	"context"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/employee"
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (employee.EmployeeResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
