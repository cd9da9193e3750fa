package email

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"campobook/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@campobook.app",
		fromName: "CampoBook",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
	}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)

	err := svc.Send(ctx, "user@example.com", "User", "Hello", "Test body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBookingConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*booking_confirmation.*`).SetVal(1)

	svc := newTestService(db)

	svc.SendBookingConfirmation(ctx, "user@example.com", "User", "Centro Sportivo", "2025-06-02", "18:00", "19:00")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBookingCancelled(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*booking_cancelled.*`).SetVal(1)

	svc := newTestService(db)

	svc.SendBookingCancelled(ctx, "user@example.com", "User", "2025-06-02", "18:00")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen(queueKey).SetVal(4)

	svc := newTestService(db)
	assert.Equal(t, int64(4), svc.QueueLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
