package service

import (
	"context"
	"testing"

	"webshop-backend/internal/model"
	"webshop-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw    string
		digits string
		ok     bool
	}{
		{"+31 6 1234 5678", "31612345678", true},
		{"061234567", "061234567", true},           // 9 digits, lower bound
		{"+1 (234) 567-89012", "123456789012", true}, // 12 digits, upper bound
		{"06123456", "", false},                    // 8 digits
		{"+12 345 678 901 23", "", false},          // 13 digits
		{"geen nummer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		digits, ok := NormalizePhone(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		assert.Equal(t, tt.digits, digits, "raw %q", tt.raw)
	}
}

func TestCallRequest_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewCallRequestService(repository.NewCallRequestRepository(db))

	duplicate, err := svc.Create(context.Background(), "+31 6 1234 5678", "")
	require.NoError(t, err)
	assert.False(t, duplicate)

	var got model.CallRequest
	require.NoError(t, db.First(&got, "phone = ?", "31612345678").Error)
	assert.Equal(t, "header", got.Source, "source defaults")
}

func TestCallRequest_DuplicateIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewCallRequestService(repository.NewCallRequestRepository(db))

	_, err := svc.Create(context.Background(), "+31 6 1234 5678", "footer")
	require.NoError(t, err)

	// same number, different formatting
	duplicate, err := svc.Create(context.Background(), "31-6-1234-5678", "footer")
	require.NoError(t, err)
	assert.True(t, duplicate)

	var n int64
	require.NoError(t, db.Model(&model.CallRequest{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCallRequest_InvalidPhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewCallRequestService(repository.NewCallRequestRepository(db))

	_, err := svc.Create(context.Background(), "12345678", "header")

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)

	var n int64
	require.NoError(t, db.Model(&model.CallRequest{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
