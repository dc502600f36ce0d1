package service

import (
	"context"
	"fmt"
	"strings"

	"webshop-backend/internal/model"
	"webshop-backend/internal/repository"
)

const (
	minPhoneDigits = 9
	maxPhoneDigits = 12
)

const defaultCallRequestSource = "header"

// NormalizePhone strips every non-digit character and accepts only 9-12
// remaining digits.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", false
	}

	return digits, true
}

type CallRequestService interface {
	Create(ctx context.Context, phone, source string) (bool, error)
}

type callRequestServiceImpl struct {
	callRequestRepo repository.CallRequestRepository
}

func NewCallRequestService(callRequestRepo repository.CallRequestRepository) CallRequestService {
	return &callRequestServiceImpl{
		callRequestRepo: callRequestRepo,
	}
}

func (s *callRequestServiceImpl) Create(ctx context.Context, phone, source string) (bool, error) {
	digits, ok := NormalizePhone(phone)
	if !ok {
		return false, invalidInput("Invalid phone number")
	}

	if source == "" {
		source = defaultCallRequestSource
	}

	duplicate, err := s.callRequestRepo.Upsert(ctx, &model.CallRequest{
		Phone:  digits,
		Source: source,
	})
	if err != nil {
		return false, fmt.Errorf("store call request: %w", err)
	}

	return duplicate, nil
}
