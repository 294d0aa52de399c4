package target_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/target"
)

func TestService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *target.MockRepository)
		want      int64
		wantErr   bool
	}{
		{
			name: "Stored",
			setupMock: func(m *target.MockRepository) {
				m.EXPECT().GetTarget(gomock.Any()).Return(&target.Config{Amount: 10_000_000}, nil)
			},
			want: 10_000_000,
		},
		{
			name: "LazilyCreated",
			setupMock: func(m *target.MockRepository) {
				m.EXPECT().GetTarget(gomock.Any()).Return(nil, apperr.ErrNotFound)
				m.EXPECT().
					SaveTarget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cfg *target.Config) error {
						assert.Zero(t, cfg.Amount)
						assert.False(t, cfg.UpdatedAt.IsZero())
						return nil
					})
			},
			want: 0,
		},
		{
			name: "StoreFailure",
			setupMock: func(m *target.MockRepository) {
				m.EXPECT().GetTarget(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name: "InitFailure",
			setupMock: func(m *target.MockRepository) {
				m.EXPECT().GetTarget(gomock.Any()).Return(nil, apperr.ErrNotFound)
				m.EXPECT().SaveTarget(gomock.Any(), gomock.Any()).Return(apperr.ErrPermission)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := target.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := target.NewService(repo).Get(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Set(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		setupMock func(m *target.MockRepository)
		wantValid bool
	}{
		{
			name:   "Positive",
			amount: 10_000_000,
			setupMock: func(m *target.MockRepository) {
				m.EXPECT().
					SaveTarget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cfg *target.Config) error {
						assert.Equal(t, int64(10_000_000), cfg.Amount)
						return nil
					})
			},
			wantValid: true,
		},
		{name: "Zero", amount: 0},
		{name: "Negative", amount: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := target.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := target.NewService(repo).Set(context.Background(), tt.amount)
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}

			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, "amount")
		})
	}
}

func TestService_SubscribeSeesSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := target.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().GetTarget(gomock.Any()).Return(&target.Config{Amount: 5_000_000}, nil),
		repo.EXPECT().SaveTarget(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().GetTarget(gomock.Any()).Return(&target.Config{Amount: 10_000_000}, nil),
	)

	svc := target.NewService(repo)

	sub, err := svc.Subscribe(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	assert.Equal(t, int64(5_000_000), (<-sub.Updates()).Value)

	require.NoError(t, svc.Set(context.Background(), 10_000_000))
	assert.Equal(t, int64(10_000_000), (<-sub.Updates()).Value)
}
