package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/infra/events"
	scheduleRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

// Service сервис для работы с расписаниями и окнами доступности
type Service struct {
	scheduleRepo  ScheduleRepository
	txManager     TxManager
	catalogClient CatalogServiceClient
	publisher     EventPublisher
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TxManager,
	catalogClient CatalogServiceClient,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		txManager:     txManager,
		catalogClient: catalogClient,
		publisher:     publisher,
		logger:        logger,
	}
}

// Create создаёт новое расписание ментора
// Материалы проверяются в каталоге до записи
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for mentor=%d, title=%q", req.MentorID, req.Title)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed for mentor=%d: %v", req.MentorID, err)
		return nil, err
	}

	if err := s.validateMaterials(ctx, req.MaterialIDs); err != nil {
		return nil, err
	}

	schedule := &domain.Schedule{
		MentorID:        req.MentorID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		MaxCapacity:     req.MaxCapacity,
		MeetingType:     domain.MeetingType(req.MeetingType),
		MaterialIDs:     req.MaterialIDs,
		RequiredLevel:   req.RequiredLevel,
		IsActive:        true,
	}

	created, err := s.scheduleRepo.CreateSchedule(ctx, schedule)
	if err != nil {
		s.logger.Error("Create: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created schedule id=%d for mentor=%d", created.ID, created.MentorID)
	s.publisher.Publish(ctx, events.KeyScheduleCreated, scheduleEvent(created))

	return models.FromDomainSchedule(created), nil
}

// GetByID получает расписание по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetByID: fetching schedule id=%d", id)

	schedule, err := s.getSchedule(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainSchedule(schedule), nil
}

// GetMentorSchedules получает расписания ментора
// includeInactive=true доступен только самому ментору (решается на уровне handler)
func (s *Service) GetMentorSchedules(ctx context.Context, mentorID int64, includeInactive bool) (*models.ScheduleListResponse, error) {
	s.logger.Info("GetMentorSchedules: fetching schedules for mentor=%d, includeInactive=%t", mentorID, includeInactive)

	schedules, err := s.scheduleRepo.GetSchedulesByMentor(ctx, mentorID, includeInactive)
	if err != nil {
		s.logger.Error("GetMentorSchedules: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: GetMentorSchedules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorSchedules: successfully fetched %d schedules for mentor=%d", len(schedules), mentorID)
	return models.FromDomainScheduleList(schedules), nil
}

// Update обновляет расписание
// Доступно только владельцу; обновляются только переданные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule id=%d by user=%d", id, req.UserID)

	schedule, err := s.getSchedule(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	if schedule.MentorID != req.UserID {
		s.logger.Warn("Update: access denied for user=%d to schedule id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	applyUpdate(schedule, req)

	if err := validateSchedule(schedule); err != nil {
		s.logger.Warn("Update: validation failed for schedule id=%d: %v", id, err)
		return nil, err
	}

	if req.MaterialIDs != nil {
		if err := s.validateMaterials(ctx, schedule.MaterialIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.scheduleRepo.UpdateSchedule(ctx, id, schedule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Update: schedule id=%d not found during update", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule id=%d", id)
	s.publisher.Publish(ctx, events.KeyScheduleUpdated, scheduleEvent(updated))

	return models.FromDomainSchedule(updated), nil
}

// Deactivate деактивирует расписание вместе с его окнами доступности
// Существующие бронирования не затрагиваются
func (s *Service) Deactivate(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Deactivate: deactivating schedule id=%d by user=%d", id, userID)

	schedule, err := s.getSchedule(ctx, id, "Deactivate")
	if err != nil {
		return err
	}

	if schedule.MentorID != userID {
		s.logger.Warn("Deactivate: access denied for user=%d to schedule id=%d", userID, id)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.DeactivateSchedule(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Deactivate: schedule id=%d not found during deactivation", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("Deactivate: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated schedule id=%d", id)
	s.publisher.Publish(ctx, events.KeyScheduleDeleted, scheduleEvent(schedule))

	return nil
}

// GetWindows получает активные окна доступности расписания
func (s *Service) GetWindows(ctx context.Context, scheduleID int64) (*models.WindowListResponse, error) {
	s.logger.Info("GetWindows: fetching windows for schedule id=%d", scheduleID)

	if _, err := s.getSchedule(ctx, scheduleID, "GetWindows"); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.GetWindowsBySchedule(ctx, scheduleID, true)
	if err != nil {
		s.logger.Error("GetWindows: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: GetWindows - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindowList(windows), nil
}

// ReplaceWindows полностью заменяет окна доступности расписания
// Старые окна деактивируются, новые применяются атомарно
func (s *Service) ReplaceWindows(ctx context.Context, scheduleID int64, req *models.ReplaceWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("ReplaceWindows: replacing windows for schedule id=%d by user=%d, count=%d",
		scheduleID, req.UserID, len(req.Windows))

	schedule, err := s.getSchedule(ctx, scheduleID, "ReplaceWindows")
	if err != nil {
		return nil, err
	}

	if schedule.MentorID != req.UserID {
		s.logger.Warn("ReplaceWindows: access denied for user=%d to schedule id=%d", req.UserID, scheduleID)
		return nil, ErrAccessDenied
	}

	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))
	for i, input := range req.Windows {
		window, err := toValidatedWindow(&input, schedule.MentorID, scheduleID)
		if err != nil {
			s.logger.Warn("ReplaceWindows: invalid window #%d for schedule id=%d: %v", i, scheduleID, err)
			return nil, err
		}
		windows = append(windows, window)
	}

	// Деактивация старых окон и вставка новых в одной транзакции:
	// при ошибке вставки прежние окна остаются действующими
	var replaced []*domain.AvailabilityWindow
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		replaced, err = s.scheduleRepo.ReplaceWindows(txCtx, scheduleID, windows)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceWindows: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: ReplaceWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWindows: successfully replaced windows for schedule id=%d, count=%d",
		scheduleID, len(replaced))
	s.publisher.Publish(ctx, events.KeyScheduleUpdated, scheduleEvent(schedule))

	return models.FromDomainWindowList(replaced), nil
}

// Вспомогательные методы

func (s *Service) getSchedule(ctx context.Context, id int64, op string) (*domain.Schedule, error) {
	schedule, err := s.scheduleRepo.GetScheduleByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: schedule id=%d not found", op, id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("%s: repository error for schedule id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return schedule, nil
}

// validateMaterials проверяет, что все материалы существуют и опубликованы
func (s *Service) validateMaterials(ctx context.Context, materialIDs []int64) error {
	materials, err := s.catalogClient.GetMaterials(ctx, materialIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMaterialNotFound) {
			s.logger.Warn("validateMaterials: material not found in catalog: %v", materialIDs)
			return ErrMaterialNotFound
		}
		s.logger.Error("validateMaterials: failed to get materials: %v", err)
		return fmt.Errorf("%w: failed to get materials: %v", ErrInternal, err)
	}

	for _, material := range materials {
		if !material.IsActive {
			s.logger.Warn("validateMaterials: material id=%d is inactive", material.ID)
			return fmt.Errorf("%w: material %d is not active", ErrInvalidInput, material.ID)
		}
	}

	return nil
}

func applyUpdate(schedule *domain.Schedule, req *models.UpdateScheduleRequest) {
	if req.Title != nil {
		schedule.Title = *req.Title
	}
	if req.Description != nil {
		schedule.Description = req.Description
	}
	if req.DurationMinutes != nil {
		schedule.DurationMinutes = *req.DurationMinutes
	}
	if req.MaxCapacity != nil {
		schedule.MaxCapacity = *req.MaxCapacity
	}
	if req.MeetingType != nil {
		schedule.MeetingType = domain.MeetingType(*req.MeetingType)
	}
	if req.MaterialIDs != nil {
		schedule.MaterialIDs = *req.MaterialIDs
	}
	if req.RequiredLevel != nil {
		schedule.RequiredLevel = req.RequiredLevel
	}
}

func scheduleEvent(s *domain.Schedule) events.ScheduleEvent {
	return events.ScheduleEvent{
		ScheduleID: s.ID,
		MentorID:   s.MentorID,
		Title:      s.Title,
		OccurredAt: time.Now().Format(time.RFC3339),
	}
}
