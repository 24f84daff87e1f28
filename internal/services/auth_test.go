package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/requestdata"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func newAuthServiceForTest(t *testing.T, gdb *gorm.DB) AuthService {
	t.Helper()
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(gdb, log)
	tokenRepo := repos.NewUserTokenRepo(gdb, log)
	return NewAuthService(gdb, log, userRepo, tokenRepo, nil, "test-secret", time.Hour, 24*time.Hour)
}

func registerTestUser(t *testing.T, svc AuthService, email string) (*types.User, string, string) {
	t.Helper()
	user := &types.User{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	}
	access, refresh, err := svc.RegisterUser(context.Background(), user)
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	return user, access, refresh
}

func TestRegisterUserIssuesTokens(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)

	user, access, refresh := registerTestUser(t, svc, "New@Example.com")
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty token pair")
	}
	if user.Email != "new@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.Password == "password123" {
		t.Error("password stored in plaintext")
	}

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken failed: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("context user = %+v, want %s", rd, user.ID)
	}
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)

	registerTestUser(t, svc, "dup@example.com")
	dup := &types.User{Name: "Other", Email: "dup@example.com", Password: "password456"}
	if _, _, err := svc.RegisterUser(context.Background(), dup); err == nil {
		t.Fatal("expected duplicate email registration to fail")
	}
}

func TestLoginUser(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)
	user, _, _ := registerTestUser(t, svc, "login@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "login@example.com", password: "password123"},
		{name: "case insensitive email", email: "LOGIN@example.com", password: "password123"},
		{name: "wrong password", email: "login@example.com", password: "nope12345", wantErr: true},
		{name: "unknown email", email: "ghost@example.com", password: "password123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, refresh, err := svc.LoginUser(context.Background(), tt.email, tt.password)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected login to fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoginUser failed: %v", err)
			}
			if access == "" || refresh == "" {
				t.Fatal("expected non-empty token pair")
			}
		})
	}

	// A later login replaced the registration token row.
	var count int64
	if err := gdb.Model(&types.UserToken{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("token rows = %d, want 1", count)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)
	_, access, _ := registerTestUser(t, svc, "logout@example.com")

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken failed: %v", err)
	}
	if err := svc.LogoutUser(ctx); err != nil {
		t.Fatalf("LogoutUser failed: %v", err)
	}
	if _, err := svc.SetContextFromToken(context.Background(), access); err == nil {
		t.Fatal("expected token to be rejected after logout")
	}
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)
	_, access, refresh := registerTestUser(t, svc, "refresh@example.com")

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken failed: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	rd.RefreshToken = refresh

	newAccess, newRefresh, err := svc.RefreshUser(ctx)
	if err != nil {
		t.Fatalf("RefreshUser failed: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatal("expected non-empty rotated pair")
	}
	if _, err := svc.SetContextFromToken(context.Background(), newAccess); err != nil {
		t.Fatalf("rotated access token rejected: %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)

	for _, token := range []string{"", "not-a-jwt", strings.Repeat("x", 64)} {
		if _, err := svc.SetContextFromToken(context.Background(), token); err == nil {
			t.Errorf("token %q unexpectedly accepted", token)
		}
	}
}

func TestGoogleLoginWithoutVerifier(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthServiceForTest(t, gdb)

	if _, _, err := svc.GoogleLogin(context.Background(), "some-id-token"); err != ErrGoogleAuthNotConfigured {
		t.Fatalf("GoogleLogin error = %v, want ErrGoogleAuthNotConfigured", err)
	}
}
