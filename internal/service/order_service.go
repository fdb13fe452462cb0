package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gvcargo/internal/database"
	"gvcargo/internal/domain"
	"gvcargo/internal/events"
	"gvcargo/internal/metrics"
	"gvcargo/internal/models"

	"github.com/rs/zerolog"
)

// OrderService runs the commit pipeline: applicant-code allocation,
// durable insert, event publication and ledger-mirror scheduling.
type OrderService struct {
	repo         domain.Repository
	eventBus     domain.EventPublisher
	sheetsWorker domain.SyncWorker
	logger       *zerolog.Logger

	// Сериализует выделение кода заявителя между конкурентными коммитами.
	allocMu sync.Mutex
}

func NewOrderService(repo domain.Repository, eventBus domain.EventPublisher, sheetsWorker domain.SyncWorker, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		repo:         repo,
		eventBus:     eventBus,
		sheetsWorker: sheetsWorker,
		logger:       logger,
	}
}

// Commit allocates an applicant code and persists the order. The mirror
// task is best-effort: its failure never rolls the commit back.
func (s *OrderService) Commit(ctx context.Context, order *models.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	s.allocMu.Lock()
	err := s.insertWithFreshCode(ctx, order)
	if err != nil && errors.Is(err, database.ErrDuplicateApplicantCode) {
		// Код уже занят (гонка или ручная правка базы) — выделяем заново один раз.
		s.logger.Warn().Str("applicant_code", order.ApplicantCode).Msg("applicant code collision, reallocating")
		err = s.insertWithFreshCode(ctx, order)
	}
	s.allocMu.Unlock()
	if err != nil {
		return err
	}

	metrics.IncOrderCommitted()
	s.publishCreated(order)
	s.enqueueMirror(ctx, order)

	return nil
}

func (s *OrderService) insertWithFreshCode(ctx context.Context, order *models.Order) error {
	code, err := s.nextApplicantCode(ctx)
	if err != nil {
		return err
	}
	order.ApplicantCode = code
	return s.repo.CreateOrder(ctx, order)
}

// nextApplicantCode derives the next code from the current order count.
// Caller holds allocMu.
func (s *OrderService) nextApplicantCode(ctx context.Context) (string, error) {
	count, err := s.repo.CountOrders(ctx)
	if err != nil {
		return "", fmt.Errorf("count orders: %w", err)
	}
	return fmt.Sprintf("%s%d", models.ApplicantCodePrefix, models.ApplicantCodeBase+count+1), nil
}

func (s *OrderService) FindByApplicantCode(ctx context.Context, code string) (*models.Order, error) {
	return s.repo.GetOrderByApplicantCode(ctx, code)
}

func (s *OrderService) ListByOwner(ctx context.Context, telegramID int64) ([]models.Order, error) {
	return s.repo.GetOrdersByTelegramID(ctx, telegramID)
}

func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.CountOrders(ctx)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.GetAllOrders(ctx)
}

func (s *OrderService) publishCreated(order *models.Order) {
	if s.eventBus == nil {
		return
	}

	payload := events.OrderEventPayload{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TelegramID:    order.TelegramID,
		ApplicantCode: order.ApplicantCode,
		OrderNumber:   order.OrderNumber,
	}

	if err := s.eventBus.PublishJSON(events.EventOrderCreated, payload); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("publish event error")
	}
}

func (s *OrderService) enqueueMirror(ctx context.Context, order *models.Order) {
	if s.sheetsWorker == nil {
		return
	}

	if err := s.sheetsWorker.EnqueueAppend(ctx, order); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("sheets enqueue error")
	}
}
