package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSMS struct {
	numbers  []string
	messages []string
}

func (f *fakeSMS) Send(ctx context.Context, number, message string) error {
	f.numbers = append(f.numbers, number)
	f.messages = append(f.messages, message)
	return nil
}

type fakeEmail struct {
	to       []string
	subjects []string
}

func (f *fakeEmail) Send(ctx context.Context, to, subject, text, category string) error {
	f.to = append(f.to, to)
	f.subjects = append(f.subjects, subject)
	return nil
}

func TestService_SMSDispatch(t *testing.T) {
	sms := &fakeSMS{}
	svc := NewService(sms, &fakeEmail{}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.ReservationApproved(ctx, "09171234567"))
	require.NoError(t, svc.ReservationDeclined(ctx, "09171234567", "date conflict"))
	require.NoError(t, svc.AccountApproved(ctx, "09179876543"))

	require.Len(t, sms.messages, 3)
	assert.Contains(t, sms.messages[0], "approved")
	assert.Contains(t, sms.messages[1], "date conflict")
	assert.Equal(t, "09179876543", sms.numbers[2])
}

func TestService_PasswordResetChannels(t *testing.T) {
	sms := &fakeSMS{}
	email := &fakeEmail{}
	svc := NewService(sms, email, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.PasswordResetSMS(ctx, "09171234567", "http://x/reset-password?token=abc"))
	require.NoError(t, svc.PasswordResetEmail(ctx, "cap@canbrs.local", "http://x/reset-password?token=abc"))

	require.Len(t, sms.messages, 1)
	assert.Contains(t, sms.messages[0], "token=abc")
	require.Len(t, email.to, 1)
	assert.Equal(t, "cap@canbrs.local", email.to[0])
	assert.Equal(t, "Reset your password", email.subjects[0])
}
