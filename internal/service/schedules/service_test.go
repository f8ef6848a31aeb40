package schedules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

type txMarkerKey struct{}

// fakeTxManager помечает контекст, чтобы проверить выполнение внутри транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(context.WithValue(ctx, txMarkerKey{}, true))
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule

	replaceErr    error
	replacedInTx  bool
	replacedCount int
}

func (f *fakeScheduleRepo) CreateSchedule(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	return s, nil
}

func (f *fakeScheduleRepo) GetScheduleByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return f.schedule, nil
}

func (f *fakeScheduleRepo) GetSchedulesByMentor(ctx context.Context, mentorID int64, includeInactive bool) ([]*domain.Schedule, error) {
	return []*domain.Schedule{f.schedule}, nil
}

func (f *fakeScheduleRepo) UpdateSchedule(ctx context.Context, id int64, s *domain.Schedule) (*domain.Schedule, error) {
	return s, nil
}

func (f *fakeScheduleRepo) DeactivateSchedule(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeScheduleRepo) GetWindowsBySchedule(ctx context.Context, scheduleID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ReplaceWindows(ctx context.Context, scheduleID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error) {
	f.replacedInTx, _ = ctx.Value(txMarkerKey{}).(bool)
	f.replacedCount = len(windows)
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	return windows, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetMaterials(ctx context.Context, ids []int64) ([]*catalogservice.Material, error) {
	materials := make([]*catalogservice.Material, 0, len(ids))
	for _, id := range ids {
		materials = append(materials, &catalogservice.Material{ID: id, IsActive: true})
	}
	return materials, nil
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

func replaceWindowsFixture(replaceErr error) (*Service, *fakeScheduleRepo, *fakeTxManager, *fakePublisher) {
	repo := &fakeScheduleRepo{
		schedule: &domain.Schedule{
			ID:              1,
			MentorID:        100,
			DurationMinutes: 60,
			MaxCapacity:     1,
			IsActive:        true,
		},
		replaceErr: replaceErr,
	}
	txm := &fakeTxManager{}
	pub := &fakePublisher{}
	svc := NewService(repo, txm, fakeCatalog{}, pub, nopLogger{})
	return svc, repo, txm, pub
}

func TestReplaceWindows_RunsInTransaction(t *testing.T) {
	svc, repo, txm, pub := replaceWindowsFixture(nil)

	resp, err := svc.ReplaceWindows(context.Background(), 1, &models.ReplaceWindowsRequest{
		UserID: 100,
		Windows: []models.WindowInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsRecurring: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 1)

	// Деактивация и вставка выполняются внутри одной транзакции
	assert.Equal(t, 1, txm.calls)
	assert.True(t, repo.replacedInTx)
	assert.Equal(t, 1, repo.replacedCount)
	assert.Contains(t, pub.keys, "schedule.updated")
}

func TestReplaceWindows_RepoErrorRollsBack(t *testing.T) {
	svc, _, txm, pub := replaceWindowsFixture(errors.New("insert failed"))

	_, err := svc.ReplaceWindows(context.Background(), 1, &models.ReplaceWindowsRequest{
		UserID: 100,
		Windows: []models.WindowInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsRecurring: true},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	// Ошибка дошла из транзакции, событие не публикуется
	assert.Equal(t, 1, txm.calls)
	assert.Empty(t, pub.keys)
}

func TestReplaceWindows_AccessDenied(t *testing.T) {
	svc, _, txm, _ := replaceWindowsFixture(nil)

	_, err := svc.ReplaceWindows(context.Background(), 1, &models.ReplaceWindowsRequest{
		UserID: 999,
		Windows: []models.WindowInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsRecurring: true},
		},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, txm.calls)
}
