package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/infra/events"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings/models"
)

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type cancelCall struct {
	status domain.BookingStatus
	reason string
}

type paymentCall struct {
	status        domain.BookingStatus
	paymentStatus domain.PaymentStatus
}

type fakeBookingRepo struct {
	booking *domain.Booking

	cancels  []cancelCall
	payments []paymentCall
	statuses []domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByStudentID(ctx context.Context, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetByMentorWithFilter(ctx context.Context, filter domain.MentorBookingsFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeBookingRepo) UpdateStatusAndPayment(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus) error {
	f.payments = append(f.payments, paymentCall{status: status, paymentStatus: paymentStatus})
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	f.cancels = append(f.cancels, cancelCall{status: status, reason: reason})
	return nil
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) Publish(ctx context.Context, key string, payload interface{}) {
	f.keys = append(f.keys, key)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		MentorID:      100,
		StudentID:     200,
		ScheduleID:    10,
		BookingDate:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func paymentFixture(booking *domain.Booking) (*Service, *fakeBookingRepo, *fakePublisher) {
	repo := &fakeBookingRepo{booking: booking}
	pub := &fakePublisher{}
	svc := NewService(repo, &fakeTxManager{}, pub, nopLogger{})
	return svc, repo, pub
}

func TestHandlePaymentEvent_PaidConfirmsPending(t *testing.T) {
	svc, repo, pub := paymentFixture(pendingBooking())

	err := svc.HandlePaymentEvent(context.Background(), &models.PaymentEventRequest{
		BookingID:     1,
		PaymentStatus: "paid",
	})
	require.NoError(t, err)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, domain.StatusConfirmed, repo.payments[0].status)
	assert.Equal(t, domain.PaymentPaid, repo.payments[0].paymentStatus)
	assert.Empty(t, repo.cancels)
	assert.Equal(t, []string{events.KeyBookingConfirmed}, pub.keys)
}

func TestHandlePaymentEvent_FailedPaymentRecordsCancellation(t *testing.T) {
	svc, repo, pub := paymentFixture(pendingBooking())

	err := svc.HandlePaymentEvent(context.Background(), &models.PaymentEventRequest{
		BookingID:     1,
		PaymentStatus: "failed",
	})
	require.NoError(t, err)

	// Причина и время отмены записываются, как и при явной отмене
	require.Len(t, repo.cancels, 1)
	assert.Equal(t, domain.StatusCancelledByStudent, repo.cancels[0].status)
	assert.Equal(t, cancellationReasonPaymentFailed, repo.cancels[0].reason)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, domain.StatusCancelledByStudent, repo.payments[0].status)
	assert.Equal(t, domain.PaymentFailed, repo.payments[0].paymentStatus)
	assert.Equal(t, []string{events.KeyBookingCancelled}, pub.keys)
}

func TestHandlePaymentEvent_NonPendingKeepsStatus(t *testing.T) {
	confirmed := pendingBooking()
	confirmed.Status = domain.StatusConfirmed
	confirmed.PaymentStatus = domain.PaymentPaid

	svc, repo, pub := paymentFixture(confirmed)

	err := svc.HandlePaymentEvent(context.Background(), &models.PaymentEventRequest{
		BookingID:     1,
		PaymentStatus: "refunded",
	})
	require.NoError(t, err)

	// Меняется только платёжный статус, событий нет
	require.Len(t, repo.payments, 1)
	assert.Equal(t, domain.StatusConfirmed, repo.payments[0].status)
	assert.Equal(t, domain.PaymentRefunded, repo.payments[0].paymentStatus)
	assert.Empty(t, repo.cancels)
	assert.Empty(t, pub.keys)
}
