package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gamedeals/internal/client/policy"
	"github.com/dmitrijs2005/gamedeals/internal/client/services"
	"github.com/dmitrijs2005/gamedeals/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// userMessage turns a service error into the line shown to the user.
func userMessage(err error) string {
	var weak *common.WeakPasswordError
	switch {
	case errors.As(err, &weak):
		return weak.Reason
	case errors.Is(err, common.ErrInvalidEmailFormat):
		return "Invalid email format"
	case errors.Is(err, common.ErrEmailAlreadyRegistered):
		return "Email already registered"
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match!"
	case errors.Is(err, common.ErrWeakPassword):
		return "Password does not meet requirements"
	case errors.Is(err, common.ErrEmailNotFound):
		return "Email not found"
	case errors.Is(err, common.ErrChallengeFailed):
		return "CAPTCHA verification failed"
	case errors.Is(err, common.ErrInvalidPassword):
		return "Invalid password"
	case errors.Is(err, common.ErrSecurityAnswerMismatch):
		return "Incorrect security answer"
	case errors.Is(err, common.ErrStorage):
		return "Could not save changes, please try again later"
	default:
		return "Error: " + err.Error()
	}
}

// reportError prints the user message for err and logs unexpected failures.
func (a *App) reportError(ctx context.Context, op string, err error) {
	a.println(userMessage(err))
	if !errors.Is(err, common.ErrValidation) && !errors.Is(err, common.ErrAuthentication) {
		a.log.Error(ctx, op+" failed", "error", err)
	}
}

// Register collects the sign-up fields. The email is checked before any
// password is asked for, and the password before the security question.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if !policy.ValidateEmail(email) {
		a.println(userMessage(common.ErrInvalidEmailFormat))
		return common.ErrInvalidEmailFormat
	}
	if a.authService.IsRegistered(email) {
		a.println(userMessage(common.ErrEmailAlreadyRegistered))
		return common.ErrEmailAlreadyRegistered
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := services.CheckNewPassword(password, confirm); err != nil {
		a.println(userMessage(err))
		return err
	}

	question, err := getSimpleText(a.reader, "Enter security question", a.out)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Enter security answer", a.out)
	if err != nil {
		return err
	}

	err = a.authService.Register(ctx, services.RegisterRequest{
		Email:            email,
		Password:         password,
		PasswordConfirm:  confirm,
		SecurityQuestion: question,
		SecurityAnswer:   answer,
	})
	if err != nil {
		a.reportError(ctx, "registration", err)
		return err
	}

	a.println("Registration successful")
	return nil
}

// terminalPrompter answers the service prompts from the App's input.
type terminalPrompter struct {
	a *App
}

func (p terminalPrompter) AnswerChallenge(ctx context.Context, question string) (string, error) {
	return getSimpleText(p.a.reader, question, p.a.out)
}

func (p terminalPrompter) Password(ctx context.Context) ([]byte, error) {
	return getPassword(p.a.reader, "Enter password", p.a.out)
}

func (p terminalPrompter) AnswerSecurityQuestion(ctx context.Context, question string) (string, error) {
	p.a.printf("Security Question: %s\n", question)
	return getSimpleText(p.a.reader, "Enter security answer", p.a.out)
}

func (p terminalPrompter) NewPassword(ctx context.Context) ([]byte, []byte, error) {
	password, err := getPassword(p.a.reader, "Enter new password", p.a.out)
	if err != nil {
		return nil, nil, err
	}
	confirm, err := getPassword(p.a.reader, "Confirm new password", p.a.out)
	if err != nil {
		common.WipeByteArray(password)
		return nil, nil, err
	}
	return password, confirm, nil
}

// Login authenticates the user; on success the session switches to the
// logged-in menu.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, email, terminalPrompter{a: a})
	if err != nil {
		a.reportError(ctx, "login", err)
		return err
	}

	a.userName = user
	a.println("Login successful")
	return nil
}

// ResetPassword runs the forgot-password flow. It never logs the user in.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.ResetPassword(ctx, email, terminalPrompter{a: a}); err != nil {
		a.reportError(ctx, "password reset", err)
		return err
	}

	a.println("Password reset successful")
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.log.Info(ctx, "user logged out", "email", a.userName)
	a.userName = ""
	a.println("Logged out")
	return nil
}
