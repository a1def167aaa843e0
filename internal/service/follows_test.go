package service

import (
	"context"
	"testing"

	"microblog/internal/auth"
	"microblog/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		actor    auth.Context
		username string
		setup    func(follows *MockFollowStorage, users *MockUserStorage)
		wantErr  error
	}{
		{
			name:     "unauthenticated",
			actor:    auth.Anonymous(),
			username: "leo",
			setup:    func(*MockFollowStorage, *MockUserStorage) {},
			wantErr:  ErrUnauthenticated,
		},
		{
			name:     "unknown author",
			actor:    auth.Authenticated(9),
			username: "ghost",
			setup: func(_ *MockFollowStorage, users *MockUserStorage) {
				users.EXPECT().
					GetUserByUsername(gomock.Any(), "ghost").
					Return(model.User{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:     "self follow is silently ignored",
			actor:    auth.Authenticated(4),
			username: "leo",
			setup: func(_ *MockFollowStorage, users *MockUserStorage) {
				users.EXPECT().
					GetUserByUsername(gomock.Any(), "leo").
					Return(model.User{ID: 4, Username: "leo"}, nil)
			},
			wantErr: nil,
		},
		{
			name:     "success",
			actor:    auth.Authenticated(9),
			username: "leo",
			setup: func(follows *MockFollowStorage, users *MockUserStorage) {
				users.EXPECT().
					GetUserByUsername(gomock.Any(), "leo").
					Return(model.User{ID: 4, Username: "leo"}, nil)
				follows.EXPECT().
					CreateFollow(gomock.Any(), model.Follow{UserID: 9, AuthorID: 4}).
					Return(nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			follows := NewMockFollowStorage(ctrl)
			users := NewMockUserStorage(ctrl)
			tt.setup(follows, users)

			err := NewFollowService(follows, users).Follow(context.Background(), tt.actor, tt.username)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	follows := NewMockFollowStorage(ctrl)
	users := NewMockUserStorage(ctrl)
	svc := NewFollowService(follows, users)

	err := svc.Unfollow(context.Background(), auth.Anonymous(), "leo")
	require.ErrorIs(t, err, ErrUnauthenticated)

	users.EXPECT().
		GetUserByUsername(gomock.Any(), "leo").
		Return(model.User{ID: 4, Username: "leo"}, nil)
	follows.EXPECT().
		DeleteFollow(gomock.Any(), model.Follow{UserID: 9, AuthorID: 4}).
		Return(nil)

	require.NoError(t, svc.Unfollow(context.Background(), auth.Authenticated(9), "leo"))
}
