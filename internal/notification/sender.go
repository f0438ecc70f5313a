package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SMSClient and EmailClient are the delivery channels the sender fans out
// to. Both are satisfied by the Semaphore and Mailtrap clients.
type SMSClient interface {
	Send(ctx context.Context, number, message string) error
}

type EmailClient interface {
	Send(ctx context.Context, to, subject, text, category string) error
}

// Sender is everything the rest of the app needs from the notification
// layer. Delivery is always best-effort: callers run it after their own
// writes have committed and only log failures.
type Sender interface {
	ReservationApproved(ctx context.Context, phone string) error
	ReservationDeclined(ctx context.Context, phone, reason string) error
	AccountApproved(ctx context.Context, phone string) error
	AccountDeclined(ctx context.Context, phone, reason string) error
	PasswordResetSMS(ctx context.Context, phone, resetURL string) error
	PasswordResetEmail(ctx context.Context, email, resetURL string) error
}

type Service struct {
	sms    SMSClient
	email  EmailClient
	logger *zap.Logger
}

func NewService(sms SMSClient, email EmailClient, logger *zap.Logger) *Service {
	return &Service{sms: sms, email: email, logger: logger}
}

func (s *Service) sendSMS(ctx context.Context, kind, phone, message string) error {
	s.logger.Debug("sending sms", zap.String("kind", kind), zap.String("phone", phone))
	return s.sms.Send(ctx, phone, message)
}

func (s *Service) ReservationApproved(ctx context.Context, phone string) error {
	return s.sendSMS(ctx, "reservation.approved", phone,
		"Your reservation has been approved. For more details login, then go to track reservations page.")
}

func (s *Service) ReservationDeclined(ctx context.Context, phone, reason string) error {
	return s.sendSMS(ctx, "reservation.declined", phone,
		fmt.Sprintf("Reservation declined: %s. For more details login, then go to track reservations page.", reason))
}

func (s *Service) AccountApproved(ctx context.Context, phone string) error {
	return s.sendSMS(ctx, "account.approved", phone,
		"Your resident account has been approved. You can now login to your account.")
}

func (s *Service) AccountDeclined(ctx context.Context, phone, reason string) error {
	return s.sendSMS(ctx, "account.declined", phone,
		fmt.Sprintf("Registration declined: %s. Retry by creating a new account.", reason))
}

func (s *Service) PasswordResetSMS(ctx context.Context, phone, resetURL string) error {
	return s.sendSMS(ctx, "password.reset", phone,
		fmt.Sprintf("Go to this link to reset your password: %s.", resetURL))
}

func (s *Service) PasswordResetEmail(ctx context.Context, email, resetURL string) error {
	s.logger.Debug("sending email", zap.String("kind", "password.reset"), zap.String("to", email))
	return s.email.Send(ctx, email,
		"Reset your password",
		fmt.Sprintf("Go to this link to reset your password: %s", resetURL),
		"Forgot Password")
}

// NoopSender is used in development when no provider keys are configured,
// and in tests. It logs what would have been sent.
type NoopSender struct {
	Logger *zap.Logger
}

func (n *NoopSender) log(kind string, fields ...zap.Field) error {
	if n.Logger != nil {
		n.Logger.Info("notification suppressed (no provider configured)",
			append([]zap.Field{zap.String("kind", kind)}, fields...)...)
	}
	return nil
}

func (n *NoopSender) ReservationApproved(_ context.Context, phone string) error {
	return n.log("reservation.approved", zap.String("phone", phone))
}

func (n *NoopSender) ReservationDeclined(_ context.Context, phone, reason string) error {
	return n.log("reservation.declined", zap.String("phone", phone), zap.String("reason", reason))
}

func (n *NoopSender) AccountApproved(_ context.Context, phone string) error {
	return n.log("account.approved", zap.String("phone", phone))
}

func (n *NoopSender) AccountDeclined(_ context.Context, phone, reason string) error {
	return n.log("account.declined", zap.String("phone", phone), zap.String("reason", reason))
}

func (n *NoopSender) PasswordResetSMS(_ context.Context, phone, _ string) error {
	return n.log("password.reset.sms", zap.String("phone", phone))
}

func (n *NoopSender) PasswordResetEmail(_ context.Context, email, _ string) error {
	return n.log("password.reset.email", zap.String("email", email))
}
