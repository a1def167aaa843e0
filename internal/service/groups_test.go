package service

import (
	"context"
	"testing"

	"microblog/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGroupService_CreateGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreateGroupRequest
		setup   func(groups *MockGroupStorage)
		wantErr error
	}{
		{
			name:    "missing title",
			req:     CreateGroupRequest{Slug: "cats"},
			setup:   func(*MockGroupStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "missing slug",
			req:     CreateGroupRequest{Title: "Cats"},
			setup:   func(*MockGroupStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "success",
			req:  CreateGroupRequest{Title: "Cats", Slug: "cats", Description: "cat posts"},
			setup: func(groups *MockGroupStorage) {
				groups.EXPECT().
					CreateGroup(gomock.Any(), model.Group{Title: "Cats", Slug: "cats", Description: "cat posts"}).
					Return(model.Group{ID: 1, Title: "Cats", Slug: "cats", Description: "cat posts"}, nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			groups := NewMockGroupStorage(ctrl)
			tt.setup(groups)

			got, err := NewGroupService(groups).CreateGroup(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), got.ID)
		})
	}
}

func TestGroupService_GetGroupBySlug(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := NewMockGroupStorage(ctrl)
	svc := NewGroupService(groups)

	_, err := svc.GetGroupBySlug(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidRequest)

	groups.EXPECT().
		GetGroupBySlug(gomock.Any(), "cats").
		Return(model.Group{ID: 1, Slug: "cats"}, nil)

	got, err := svc.GetGroupBySlug(context.Background(), "cats")
	require.NoError(t, err)
	require.Equal(t, "cats", got.Slug)
}

func TestGroupService_DeleteGroup(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := NewMockGroupStorage(ctrl)
	svc := NewGroupService(groups)

	require.ErrorIs(t, svc.DeleteGroup(context.Background(), 0), ErrInvalidRequest)

	groups.EXPECT().DeleteGroup(gomock.Any(), int64(1)).Return(nil)
	require.NoError(t, svc.DeleteGroup(context.Background(), 1))
}
