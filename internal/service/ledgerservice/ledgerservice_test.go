package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	return New(repo, txManager), repo, txManager
}

func runInTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) })
}

func TestGetBalance(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name            string
		prepareMock     func()
		expectedBalance int64
		expectedError   error
	}{
		{
			name: "Balance returned",
			prepareMock: func() {
				repo.EXPECT().Balance(gomock.Any(), 1).Return(int64(120), nil)
			},
			expectedBalance: 120,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().Balance(gomock.Any(), 1).Return(int64(0), errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			balance, err := service.GetBalance(context.Background(), 1)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, balance)
		})
	}
}

func TestGetHistory(t *testing.T) {
	service, repo, _ := NewMock(t)
	entries := []domain.LedgerEntry{{ID: 2, UserID: 1, Delta: -5, Reason: domain.ReasonRedeem}, {ID: 1, UserID: 1, Delta: 10, Reason: domain.ReasonSignin}}

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "Default limit", limit: 0, expectedLimit: 50},
		{name: "Requested limit", limit: 10, expectedLimit: 10},
		{name: "Capped limit", limit: 1000, expectedLimit: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.EXPECT().History(gomock.Any(), 1, tt.expectedLimit).Return(entries, nil)

			got, err := service.GetHistory(context.Background(), 1, tt.limit)
			assert.NoError(t, err)
			assert.Equal(t, entries, got)
		})
	}

	t.Run("Repository error", func(t *testing.T) {
		repo.EXPECT().History(gomock.Any(), 1, 50).Return(nil, errors.New("db error"))

		got, err := service.GetHistory(context.Background(), 1, 0)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestAdjust(t *testing.T) {
	service, repo, txManager := NewMock(t)

	tests := []struct {
		name            string
		delta           int64
		note            string
		prepareMock     func()
		expectedBalance int64
		expectedError   error
	}{
		{
			name:          "Zero delta",
			delta:         0,
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "Unknown user",
			delta: 10,
			prepareMock: func() {
				runInTx(txManager)
				repo.EXPECT().LockAccount(gomock.Any(), 7).Return(false, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:  "Debit below zero",
			delta: -50,
			prepareMock: func() {
				runInTx(txManager)
				repo.EXPECT().LockAccount(gomock.Any(), 7).Return(true, nil)
				repo.EXPECT().Balance(gomock.Any(), 7).Return(int64(20), nil)
			},
			expectedError: domain.ErrInsufficientPoints,
		},
		{
			name:  "Credit applied",
			delta: 15,
			note:  "  lost sign-in  ",
			prepareMock: func() {
				runInTx(txManager)
				repo.EXPECT().LockAccount(gomock.Any(), 7).Return(true, nil)
				repo.EXPECT().Balance(gomock.Any(), 7).Return(int64(20), nil)
				repo.EXPECT().Append(gomock.Any(), &domain.LedgerEntry{
					UserID:  7,
					Delta:   15,
					Reason:  domain.ReasonAdjust,
					RefType: domain.RefUser,
					RefID:   1,
					Note:    "lost sign-in",
				}).Return(int64(99), nil)
			},
			expectedBalance: 35,
		},
		{
			name:  "Debit to exactly zero",
			delta: -20,
			prepareMock: func() {
				runInTx(txManager)
				repo.EXPECT().LockAccount(gomock.Any(), 7).Return(true, nil)
				repo.EXPECT().Balance(gomock.Any(), 7).Return(int64(20), nil)
				repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(100), nil)
			},
			expectedBalance: 0,
		},
		{
			name:  "Append fails",
			delta: 5,
			prepareMock: func() {
				runInTx(txManager)
				repo.EXPECT().LockAccount(gomock.Any(), 7).Return(true, nil)
				repo.EXPECT().Balance(gomock.Any(), 7).Return(int64(0), nil)
				repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			balance, err := service.Adjust(context.Background(), 1, 7, tt.delta, tt.note)
			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, domain.ErrValidation) || errors.Is(tt.expectedError, domain.ErrNotFound) ||
					errors.Is(tt.expectedError, domain.ErrInsufficientPoints) {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.EqualError(t, err, tt.expectedError.Error())
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, balance)
		})
	}
}
