package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MNT-BookingService/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id",
	"mentor_id",
	"title",
	"description",
	"duration_minutes",
	"max_capacity",
	"meeting_type",
	"material_ids",
	"required_level",
	"is_active",
	"created_at",
	"updated_at",
}

var windowColumns = []string{
	"id",
	"mentor_id",
	"schedule_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_recurring",
	"specific_date",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями и окнами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateSchedule создает новое расписание
func (r *Repository) CreateSchedule(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns(
			"mentor_id",
			"title",
			"description",
			"duration_minutes",
			"max_capacity",
			"meeting_type",
			"material_ids",
			"required_level",
			"is_active",
		).
		Values(
			s.MentorID,
			s.Title,
			s.Description,
			s.DurationMinutes,
			s.MaxCapacity,
			s.MeetingType,
			pq.Array(s.MaterialIDs),
			s.RequiredLevel,
			s.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSchedule - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetScheduleByID получает расписание по ID
func (r *Repository) GetScheduleByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Schedule
	var createdAt, updatedAt sql.NullTime
	var materialIDs pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.MentorID,
		&s.Title,
		&s.Description,
		&s.DurationMinutes,
		&s.MaxCapacity,
		&s.MeetingType,
		&materialIDs,
		&s.RequiredLevel,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleByID - scan schedule: %v", ErrScanRow, err)
	}

	s.MaterialIDs = materialIDs
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetSchedulesByMentor получает расписания ментора
// По умолчанию возвращает только активные
func (r *Repository) GetSchedulesByMentor(ctx context.Context, mentorID int64, includeInactive bool) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("created_at DESC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedulesByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedulesByMentor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		var createdAt, updatedAt sql.NullTime
		var materialIDs pq.Int64Array

		err := rows.Scan(
			&s.ID,
			&s.MentorID,
			&s.Title,
			&s.Description,
			&s.DurationMinutes,
			&s.MaxCapacity,
			&s.MeetingType,
			&materialIDs,
			&s.RequiredLevel,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSchedulesByMentor - scan row: %v", ErrScanRow, err)
		}

		s.MaterialIDs = materialIDs
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSchedulesByMentor - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// UpdateSchedule обновляет редактируемые поля расписания
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, s *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("title", s.Title).
		Set("description", s.Description).
		Set("duration_minutes", s.DurationMinutes).
		Set("max_capacity", s.MaxCapacity).
		Set("meeting_type", s.MeetingType).
		Set("material_ids", pq.Array(s.MaterialIDs)).
		Set("required_level", s.RequiredLevel).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	s.ID = id
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// DeactivateSchedule логически удаляет расписание и его окна доступности
func (r *Repository) DeactivateSchedule(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeactivateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeactivateSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	// Деактивируем связанные окна, чтобы Expander их больше не видел
	windowsQuery, windowsArgs, err := psqlbuilder.Update("availability_windows").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"schedule_id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateSchedule - build windows update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, windowsQuery, windowsArgs...); err != nil {
		return fmt.Errorf("%w: DeactivateSchedule - deactivate windows: %v", ErrExecQuery, err)
	}

	return nil
}

// GetWindowsBySchedule получает окна доступности расписания
func (r *Repository) GetWindowsBySchedule(ctx context.Context, scheduleID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("day_of_week ASC, start_time ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsBySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// ReplaceWindows заменяет окна доступности расписания новым набором
// Старые окна деактивируются, новые вставляются; выполняется в транзакции
// на уровне сервиса
func (r *Repository) ReplaceWindows(ctx context.Context, scheduleID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deactivateQuery, deactivateArgs, err := psqlbuilder.Update("availability_windows").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWindows - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceWindows - deactivate old windows: %v", ErrExecQuery, err)
	}

	result := make([]*domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		query, args, err := psqlbuilder.Insert("availability_windows").
			Columns(
				"mentor_id",
				"schedule_id",
				"day_of_week",
				"start_time",
				"end_time",
				"is_recurring",
				"specific_date",
				"is_active",
			).
			Values(
				w.MentorID,
				w.ScheduleID,
				int(w.DayOfWeek),
				w.StartTime,
				w.EndTime,
				w.IsRecurring,
				w.SpecificDate,
				w.IsActive,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceWindows - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ReplaceWindows - execute insert: %v", ErrExecQuery, err)
		}

		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		result = append(result, w)
	}

	return result, nil
}

// scanWindows сканирует результаты запроса в слайс окон доступности
func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var w domain.AvailabilityWindow
		var dayOfWeek int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.MentorID,
			&w.ScheduleID,
			&dayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&w.IsRecurring,
			&w.SpecificDate,
			&w.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		w.DayOfWeek = time.Weekday(dayOfWeek)
		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
