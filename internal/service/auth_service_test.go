package service

import (
	"context"
	"errors"
	"testing"

	"private-chat-go/internal/config"
)

func TestLogin_WrongPasswordCreatesNoSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := NewAuthService(sessions, config.AuthConfig{MasterPassword: "right"})

	if _, err := svc.Login(context.Background(), "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if len(sessions.tokens) != 0 {
		t.Fatalf("failed login must not create a session")
	}
}

func TestLogin_UnsetMasterPassword(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := NewAuthService(sessions, config.AuthConfig{})

	if _, err := svc.Login(context.Background(), ""); !errors.Is(err, ErrMasterPasswordNotSet) {
		t.Fatalf("expected ErrMasterPasswordNotSet, got %v", err)
	}
}

func TestLogin_SuccessIssuesToken(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := NewAuthService(sessions, config.AuthConfig{MasterPassword: "right"})

	token, err := svc.Login(context.Background(), "right")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty token")
	}
	if err := svc.Check(context.Background(), token); err != nil {
		t.Fatalf("check issued token: %v", err)
	}

	other, err := svc.Login(context.Background(), "right")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if other == token {
		t.Fatalf("each login must issue a fresh token")
	}
}

func TestCheck_RejectsUnknownAndEmptyTokens(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := NewAuthService(sessions, config.AuthConfig{MasterPassword: "right"})

	if err := svc.Check(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token: expected ErrInvalidToken, got %v", err)
	}
	if err := svc.Check(context.Background(), "never-issued"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unknown token: expected ErrInvalidToken, got %v", err)
	}
}
