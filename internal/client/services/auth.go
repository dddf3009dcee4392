// Package services contains application services for the gamedeals client.
// This file defines the authentication service: registration, login with a
// human-verification challenge, and password reset via a security question.
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gamedeals/internal/client/captcha"
	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/client/policy"
	"github.com/dmitrijs2005/gamedeals/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/gamedeals/internal/common"
	"github.com/dmitrijs2005/gamedeals/internal/cryptox"
	"github.com/dmitrijs2005/gamedeals/internal/logging"
)

// RegisterRequest carries everything collected from the user at sign-up.
type RegisterRequest struct {
	Email            string
	Password         []byte
	PasswordConfirm  []byte
	SecurityQuestion string
	SecurityAnswer   string
}

// LoginPrompter supplies interactive input during Login.
type LoginPrompter interface {
	// AnswerChallenge shows question and returns the user's answer line.
	AnswerChallenge(ctx context.Context, question string) (string, error)
	// Password returns the password typed by the user.
	Password(ctx context.Context) ([]byte, error)
}

// ResetPrompter supplies interactive input during ResetPassword.
type ResetPrompter interface {
	// AnswerSecurityQuestion shows the stored question and returns the answer.
	AnswerSecurityQuestion(ctx context.Context, question string) (string, error)
	// NewPassword returns the new password and its confirmation.
	NewPassword(ctx context.Context) (password, confirm []byte, err error)
}

// ChallengeGenerator produces a fresh human-verification challenge.
type ChallengeGenerator interface {
	Generate() captcha.Challenge
}

// AuthService defines the credential lifecycle used by the CLI.
//
// Contract:
//   - Register: validate input, hash the password, persist a new record.
//   - Login: challenge, then password; returns the authenticated email.
//   - ResetPassword: security question, then a new password; persists it.
//   - IsRegistered: membership test for early feedback in prompts.
//
// None of the methods print; all outcomes are reported as errors from
// package common.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, email string, prompter LoginPrompter) (string, error)
	ResetPassword(ctx context.Context, email string, prompter ResetPrompter) error
	IsRegistered(email string) bool
}

// authService keeps the loaded credential table in memory and writes it back
// in full through store on every mutation.
type authService struct {
	mu      sync.Mutex
	store   credentials.Store
	table   models.CredentialTable
	captcha ChallengeGenerator
	hasher  cryptox.PasswordHasher
	log     logging.Logger
}

// NewAuthService constructs an AuthService over an already loaded table.
func NewAuthService(store credentials.Store, table models.CredentialTable,
	gen ChallengeGenerator, hasher cryptox.PasswordHasher, log logging.Logger) AuthService {
	if table == nil {
		table = models.CredentialTable{}
	}
	return &authService{
		store:   store,
		table:   table,
		captcha: gen,
		hasher:  hasher,
		log:     log,
	}
}

// CheckNewPassword validates a new password against its confirmation and
// the password policy. Mismatch is reported before strength. Passwords
// longer than policy.MaxPasswordBytes cannot be hashed and are rejected as
// weak.
func CheckNewPassword(password, confirm []byte) error {
	if !bytes.Equal(password, confirm) {
		return common.ErrPasswordMismatch
	}
	if ok, reason := policy.ValidatePassword(string(password)); !ok {
		return &common.WeakPasswordError{Reason: reason}
	}
	if len(password) > policy.MaxPasswordBytes {
		return &common.WeakPasswordError{Reason: policy.ReasonTooLong}
	}
	return nil
}

func (s *authService) IsRegistered(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Has(email)
}

func (s *authService) lookup(email string) (models.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.table[email]
	return rec, ok
}

// commit applies mutate to a clone of the table, saves the clone and swaps
// it in. The in-memory table is left as is when the save fails.
func (s *authService) commit(ctx context.Context, mutate func(models.CredentialTable) error) error {
	next := s.table.Clone()
	if err := mutate(next); err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	s.table = next
	return nil
}

// Register validates req and persists a new account. Checks run in order:
// email format, duplicate email, confirmation mismatch, password strength.
func (s *authService) Register(ctx context.Context, req RegisterRequest) error {
	if !policy.ValidateEmail(req.Email) {
		return common.ErrInvalidEmailFormat
	}
	if s.IsRegistered(req.Email) {
		return common.ErrEmailAlreadyRegistered
	}
	if err := CheckNewPassword(req.Password, req.PasswordConfirm); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.commit(ctx, func(t models.CredentialTable) error {
		if t.Has(req.Email) {
			return common.ErrEmailAlreadyRegistered
		}
		t[req.Email] = models.UserRecord{
			Email:            req.Email,
			PasswordHash:     hash,
			SecurityQuestion: req.SecurityQuestion,
			SecurityAnswer:   req.SecurityAnswer,
		}
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "registration failed", "email", req.Email, "error", err)
		return err
	}

	s.log.Info(ctx, "user registered", "email", req.Email)
	return nil
}

// Login authenticates email. A fresh challenge is answered first; the
// password is requested only when the challenge is passed.
func (s *authService) Login(ctx context.Context, email string, prompter LoginPrompter) (string, error) {
	rec, ok := s.lookup(email)
	if !ok {
		s.log.Info(ctx, "login rejected", "email", email, "reason", "unknown email")
		return "", common.ErrEmailNotFound
	}

	ch := s.captcha.Generate()
	answer, err := prompter.AnswerChallenge(ctx, ch.Question)
	if err != nil {
		return "", fmt.Errorf("read challenge answer: %w", err)
	}
	if !captcha.Verify(answer, ch.Answer) {
		s.log.Info(ctx, "login rejected", "email", email, "reason", "challenge failed")
		return "", common.ErrChallengeFailed
	}

	password, err := prompter.Password(ctx)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	match, err := s.hasher.Verify(password, rec.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.log.Info(ctx, "login rejected", "email", email, "reason", "invalid password")
		return "", common.ErrInvalidPassword
	}

	s.log.Info(ctx, "user logged in", "email", email)
	return email, nil
}

// ResetPassword replaces the password of email after the stored security
// question is answered (case-insensitive) and a valid new password is given.
func (s *authService) ResetPassword(ctx context.Context, email string, prompter ResetPrompter) error {
	rec, ok := s.lookup(email)
	if !ok {
		return common.ErrEmailNotFound
	}

	answer, err := prompter.AnswerSecurityQuestion(ctx, rec.SecurityQuestion)
	if err != nil {
		return fmt.Errorf("read security answer: %w", err)
	}
	if !strings.EqualFold(answer, rec.SecurityAnswer) {
		s.log.Info(ctx, "password reset rejected", "email", email, "reason", "wrong answer")
		return common.ErrSecurityAnswerMismatch
	}

	password, confirm, err := prompter.NewPassword(ctx)
	if err != nil {
		return fmt.Errorf("read new password: %w", err)
	}
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	if err := CheckNewPassword(password, confirm); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.commit(ctx, func(t models.CredentialTable) error {
		r, ok := t[email]
		if !ok {
			return common.ErrEmailNotFound
		}
		r.PasswordHash = hash
		t[email] = r
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "password reset failed", "email", email, "error", err)
		return err
	}

	s.log.Info(ctx, "password reset", "email", email)
	return nil
}
