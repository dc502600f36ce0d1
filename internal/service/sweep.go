package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"webshop-backend/internal/client"
	"webshop-backend/internal/dto"
	"webshop-backend/internal/repository"

	"go.uber.org/zap"
)

const (
	abandonedAfter = 24 * time.Hour
	sweepBatchSize = 200
)

// SweepService reminds customers about stale unpaid orders. An order is
// reminded at most once; the timestamp claim is the gate.
type SweepService interface {
	Run(ctx context.Context, origin string) (*dto.SweepResponse, error)
}

type sweepServiceImpl struct {
	orderRepo repository.OrderRepository
	mailer    client.Mailer
	siteURL   string
	log       *zap.SugaredLogger
}

func NewSweepService(
	orderRepo repository.OrderRepository,
	mailer client.Mailer,
	siteURL string,
	log *zap.SugaredLogger,
) SweepService {
	return &sweepServiceImpl{
		orderRepo: orderRepo,
		mailer:    mailer,
		siteURL:   siteURL,
		log:       log,
	}
}

func (s *sweepServiceImpl) Run(ctx context.Context, origin string) (*dto.SweepResponse, error) {
	cutoff := time.Now().Add(-abandonedAfter)

	orders, err := s.orderRepo.FindAbandoned(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return nil, fmt.Errorf("select abandoned orders: %w", err)
	}

	if origin == "" {
		origin = s.siteURL
	}

	result := &dto.SweepResponse{
		Processed: len(orders),
		Cutoff:    cutoff,
	}

	for _, order := range orders {
		email := strings.TrimSpace(order.Email)
		if email == "" {
			result.Skipped++
			continue
		}

		payload := BuildAbandonedEmail(&AbandonedEmailInput{
			Name:        order.FullName,
			ProductName: order.ProductName,
			ContinueURL: origin + "/continue?orderId=" + order.ID,
		})
		payload.To = email

		if err := s.mailer.Send(ctx, payload); err != nil {
			s.log.Warnw("abandoned email send failed", "order_id", order.ID, "err", err)
			result.Skipped++
			continue
		}

		claimed, err := s.orderRepo.MarkAbandonedEmailSent(ctx, order.ID, time.Now())
		if err != nil {
			s.log.Warnw("mark abandoned email sent failed", "order_id", order.ID, "err", err)
			result.Skipped++
			continue
		}
		if !claimed {
			// an overlapping sweep run claimed this order first
			result.Skipped++
			continue
		}

		result.Sent++
	}

	return result, nil
}
