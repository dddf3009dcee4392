package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamedeals/internal/client/policy"
	"github.com/dmitrijs2005/gamedeals/internal/common"
)

func registerInput(email string) []string {
	return []string{email, "Abcdef1!", "Abcdef1!", "Pet name?", "Rex"}
}

func TestRegister_Success(t *testing.T) {
	app := newTestApp(t, lines(registerInput("u@test.com")...))

	require.NoError(t, app.Register(context.Background()))
	assert.Contains(t, app.out.String(), "Registration successful")
	assert.Equal(t, 1, app.store.Saves())
	assert.True(t, app.authService.IsRegistered("u@test.com"))
}

func TestRegister_InvalidEmailStopsBeforePassword(t *testing.T) {
	app := newTestApp(t, lines("not-an-email", "Abcdef1!"))

	err := app.Register(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidEmailFormat)
	assert.Contains(t, app.out.String(), "Invalid email format")
	assert.NotContains(t, app.out.String(), "Enter password")
}

func TestRegister_DuplicateStopsBeforePassword(t *testing.T) {
	app := newTestApp(t, lines(append(registerInput("u@test.com"), "u@test.com")...))
	ctx := context.Background()
	require.NoError(t, app.Register(ctx))
	app.out.Reset()

	err := app.Register(ctx)
	require.ErrorIs(t, err, common.ErrEmailAlreadyRegistered)
	assert.Contains(t, app.out.String(), "Email already registered")
	assert.NotContains(t, app.out.String(), "Enter password")
}

func TestRegister_PasswordProblemsStopBeforeQuestion(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "mismatch",
			input:   []string{"u@test.com", "Abcdef1!", "Abcdef1?"},
			wantErr: common.ErrPasswordMismatch,
			wantMsg: "Passwords do not match!",
		},
		{
			name:    "weak",
			input:   []string{"u@test.com", "abcdef1!", "abcdef1!"},
			wantErr: common.ErrWeakPassword,
			wantMsg: policy.ReasonUppercase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, lines(tt.input...))

			err := app.Register(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, app.out.String(), tt.wantMsg)
			assert.NotContains(t, app.out.String(), "Enter security question")
			assert.Zero(t, app.store.Saves())
		})
	}
}

func TestRegister_StorageFailure(t *testing.T) {
	app := newTestApp(t, lines(registerInput("u@test.com")...))
	app.store.SaveErr = common.StorageError("write users", io.ErrShortWrite)

	err := app.Register(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Contains(t, app.out.String(), "Could not save changes")
	assert.False(t, app.authService.IsRegistered("u@test.com"))
}

func TestLogin_Success(t *testing.T) {
	input := append(registerInput("u@test.com"), "u@test.com", "5", "Abcdef1!")
	app := newTestApp(t, lines(input...))
	ctx := context.Background()
	require.NoError(t, app.Register(ctx))

	require.NoError(t, app.Login(ctx))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "u@test.com", app.currentUser())
	assert.Contains(t, app.out.String(), "What is 2 + 3?")
	assert.Contains(t, app.out.String(), "Login successful")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name       string
		input      []string
		wantErr    error
		wantMsg    string
		noPassword bool
	}{
		{name: "unknown email", input: []string{"ghost@test.com"}, wantErr: common.ErrEmailNotFound, wantMsg: "Email not found", noPassword: true},
		{name: "wrong captcha", input: []string{"u@test.com", "6"}, wantErr: common.ErrChallengeFailed, wantMsg: "CAPTCHA verification failed", noPassword: true},
		{name: "wrong password", input: []string{"u@test.com", "5", "Abcdef1?"}, wantErr: common.ErrInvalidPassword, wantMsg: "Invalid password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, lines(append(registerInput("u@test.com"), tt.input...)...))
			ctx := context.Background()
			require.NoError(t, app.Register(ctx))
			app.out.Reset()

			err := app.Login(ctx)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, app.out.String(), tt.wantMsg)
			assert.False(t, app.isLoggedIn())
			if tt.noPassword {
				assert.NotContains(t, app.out.String(), "Enter password")
			}
		})
	}
}

func TestResetPassword_Success(t *testing.T) {
	input := append(registerInput("u@test.com"),
		"u@test.com", "REX", "Newpass9#", "Newpass9#",
		"u@test.com", "5", "Newpass9#")
	app := newTestApp(t, lines(input...))
	ctx := context.Background()
	require.NoError(t, app.Register(ctx))

	require.NoError(t, app.ResetPassword(ctx))
	assert.Contains(t, app.out.String(), "Security Question: Pet name?")
	assert.Contains(t, app.out.String(), "Password reset successful")
	assert.False(t, app.isLoggedIn())

	require.NoError(t, app.Login(ctx))
}

func TestResetPassword_WrongAnswer(t *testing.T) {
	input := append(registerInput("u@test.com"), "u@test.com", "Max")
	app := newTestApp(t, lines(input...))
	ctx := context.Background()
	require.NoError(t, app.Register(ctx))

	err := app.ResetPassword(ctx)
	require.ErrorIs(t, err, common.ErrSecurityAnswerMismatch)
	assert.Contains(t, app.out.String(), "Incorrect security answer")
	assert.NotContains(t, app.out.String(), "Enter new password")
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, "")
	app.userName = "u@test.com"

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, app.out.String(), "Logged out")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.ErrInvalidEmailFormat, "Invalid email format"},
		{common.ErrEmailAlreadyRegistered, "Email already registered"},
		{common.ErrPasswordMismatch, "Passwords do not match!"},
		{&common.WeakPasswordError{Reason: policy.ReasonDigit}, policy.ReasonDigit},
		{common.ErrWeakPassword, "Password does not meet requirements"},
		{common.ErrEmailNotFound, "Email not found"},
		{common.ErrChallengeFailed, "CAPTCHA verification failed"},
		{common.ErrInvalidPassword, "Invalid password"},
		{common.ErrSecurityAnswerMismatch, "Incorrect security answer"},
		{fmt.Errorf("save: %w", common.StorageError("rename", io.ErrUnexpectedEOF)), "Could not save changes, please try again later"},
		{errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, userMessage(tt.err))
	}
}
