package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dwisatya/go-auth-service/internal/domain/entity"
	repo "github.com/dwisatya/go-auth-service/internal/domain/repository"
	"github.com/dwisatya/go-auth-service/pkg/helpers"
	"github.com/dwisatya/go-auth-service/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrOTPMismatch        = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrSamePassword       = errors.New("new password matches current password")
)

// EmailPublisher enqueues transactional email jobs. Delivery is fire-and-forget
// from the service's perspective.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service orchestrates registration, login, OTP verification, and password
// reset over the user store. OTP state lives on the user row; the unique email
// index is the only concurrency guard.
type Service struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Mail        EmailPublisher
	Logger      *logrus.Logger
	OTPTTL      time.Duration
	AppName     string
	MailEnabled bool

	// Now is the clock used for OTP expiry checks; injectable for tests.
	Now func() time.Time
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, mail EmailPublisher, logger *logrus.Logger, otpTTL time.Duration, appName string, mailEnabled bool) *Service {
	return &Service{
		Repo:        repo,
		JWT:         jwt,
		Mail:        mail,
		Logger:      logger,
		OTPTTL:      otpTTL,
		AppName:     appName,
		MailEnabled: mailEnabled,
		Now:         time.Now,
	}
}

// Session is an issued session token with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and issues a session token.
// The welcome email is enqueued best-effort: a delivery failure never rolls
// back the created user.
func (s *Service) Register(ctx context.Context, name, email, password string) (*entity.User, Session, error) {
	email = normalizeEmail(email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, Session{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, Session{}, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Session{}, err
	}

	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// A concurrent register can slip past the existence check; the unique
		// index settles the race.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, Session{}, ErrEmailTaken
		}
		return nil, Session{}, err
	}

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name":    u.Name,
			"Email":   u.Email,
			"AppName": s.AppName,
		},
	})

	return u, sess, nil
}

// Login validates credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, Session{}, ErrUserNotFound
		}
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, ErrInvalidCredentials
	}
	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// SendVerifyOTP issues a fresh verification code for an unverified account.
// A previously outstanding code is overwritten.
func (s *Service) SendVerifyOTP(ctx context.Context, userID string) error {
	u, err := s.getByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	exp := s.Now().Add(s.OTPTTL)
	u.VerifyOTP = code
	u.VerifyOTPExpiresAt = &exp
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyOTP,
		Data: map[string]any{
			"Name":    u.Name,
			"Email":   u.Email,
			"Code":    code,
			"AppName": s.AppName,
			"Minutes": int(s.OTPTTL.Minutes()),
		},
	})
	return nil
}

// VerifyAccount matches the submitted code against the outstanding one and,
// within the validity window, flips the account to verified and clears the
// OTP fields.
func (s *Service) VerifyAccount(ctx context.Context, userID, otp string) (*entity.User, error) {
	u, err := s.getByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if otp == "" || u.VerifyOTP == "" || otp != u.VerifyOTP {
		return nil, ErrOTPMismatch
	}
	if u.VerifyOTPExpiresAt == nil || s.Now().After(*u.VerifyOTPExpiresAt) {
		return nil, ErrOTPExpired
	}

	u.IsVerified = true
	u.ClearVerifyOTP()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ForgotPassword issues a reset code for the account with the given email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	exp := s.Now().Add(s.OTPTTL)
	u.ResetOTP = code
	u.ResetOTPExpiresAt = &exp
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateResetOTP,
		Data: map[string]any{
			"Name":    u.Name,
			"Email":   u.Email,
			"Code":    code,
			"AppName": s.AppName,
			"Minutes": int(s.OTPTTL.Minutes()),
		},
	})
	return nil
}

// ResetPassword validates the reset code and stores the new password hash.
// Resetting to the current password is rejected.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if otp == "" || u.ResetOTP == "" || otp != u.ResetOTP {
		return ErrOTPMismatch
	}
	if u.ResetOTPExpiresAt == nil || s.Now().After(*u.ResetOTPExpiresAt) {
		return ErrOTPExpired
	}
	if helpers.CompareHashAndPassword(u.Password, newPassword) {
		return ErrSamePassword
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ClearResetOTP()
	return s.Repo.Update(ctx, u)
}

// GetProfile returns the user record for an authenticated identity.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.getByID(ctx, userID)
}

func (s *Service) getByID(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issueSession(u *entity.User) (Session, error) {
	token, exp, err := s.JWT.GenerateSessionToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

func (s *Service) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if !s.MailEnabled || s.Mail == nil {
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
		}).Warn("failed to enqueue email job")
	}
}
