package postgres

import (
	"context"
	"errors"
	"testing"

	"microblog/internal/adapter/out/storage/postgres/mocks"
	"microblog/internal/model"
	"microblog/internal/service"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGroupStorage_CreateGroup(t *testing.T) {
	tests := []struct {
		name  string
		input model.Group
		setup func(m *mocks.MockDB)
		check func(t *testing.T, got model.Group, err error)
	}{
		{
			name:  "success",
			input: model.Group{Title: "Cats", Slug: "cats", Description: "cat posts"},
			setup: func(m *mocks.MockDB) {
				m.EXPECT().
					QueryRow(
						gomock.Any(),
						gomock.Any(),
						"Cats", "cats", "cat posts",
					).
					Return(fakeRow{
						// RETURNING: id, title, slug, description
						scan: func(dest ...any) error {
							*(dest[0].(*int64)) = 1
							*(dest[1].(*string)) = "Cats"
							*(dest[2].(*string)) = "cats"
							*(dest[3].(*string)) = "cat posts"
							return nil
						},
					})
			},
			check: func(t *testing.T, got model.Group, err error) {
				require.NoError(t, err)
				require.Equal(t, int64(1), got.ID)
				require.Equal(t, "cats", got.Slug)
			},
		},
		{
			name:  "missing slug rejected before any query",
			input: model.Group{Title: "Cats"},
			setup: func(*mocks.MockDB) {},
			check: func(t *testing.T, _ model.Group, err error) {
				require.ErrorIs(t, err, ErrInvalidRequest)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := mocks.NewMockDB(ctrl)
			tt.setup(mockDB)

			st := NewGroupStorage(mockDB, trmpgx.DefaultCtxGetter)
			got, err := st.CreateGroup(context.Background(), tt.input)
			tt.check(t, got, err)
		})
	}
}

func TestGroupStorage_GetGroupBySlug(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *mocks.MockDB)
		check func(t *testing.T, got model.Group, err error)
	}{
		{
			name: "success",
			setup: func(m *mocks.MockDB) {
				m.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), "cats").
					Return(fakeRow{
						scan: func(dest ...any) error {
							*(dest[0].(*int64)) = 1
							*(dest[1].(*string)) = "Cats"
							*(dest[2].(*string)) = "cats"
							*(dest[3].(*string)) = ""
							return nil
						},
					})
			},
			check: func(t *testing.T, got model.Group, err error) {
				require.NoError(t, err)
				require.Equal(t, int64(1), got.ID)
				require.Equal(t, "Cats", got.Title)
			},
		},
		{
			name: "not found",
			setup: func(m *mocks.MockDB) {
				m.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), "cats").
					Return(fakeRow{
						scan: func(dest ...any) error { return pgx.ErrNoRows },
					})
			},
			check: func(t *testing.T, _ model.Group, err error) {
				require.ErrorIs(t, err, service.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := mocks.NewMockDB(ctrl)
			tt.setup(mockDB)

			st := NewGroupStorage(mockDB, trmpgx.DefaultCtxGetter)
			got, err := st.GetGroupBySlug(context.Background(), "cats")
			tt.check(t, got, err)
		})
	}
}

func TestGroupStorage_ListGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mocks.NewMockDB(ctrl)

	rows := pgxmock.NewRows([]string{"id", "title", "slug", "description"}).
		AddRow(int64(2), "Apple", "apple", "").
		AddRow(int64(1), "Zebra", "zebra", "").
		Kind()

	mockDB.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(rows, nil)

	st := NewGroupStorage(mockDB, trmpgx.DefaultCtxGetter)

	got, err := st.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Apple", got[0].Title)
}

func TestGroupStorage_DeleteGroup(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *mocks.MockDB)
		wantErr error
	}{
		{
			name: "success",
			setup: func(m *mocks.MockDB) {
				m.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), int64(1)).
					Return(fakeRow{
						scan: func(dest ...any) error {
							*(dest[0].(*int64)) = 1
							return nil
						},
					})
			},
		},
		{
			name: "not found",
			setup: func(m *mocks.MockDB) {
				m.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), int64(1)).
					Return(fakeRow{
						scan: func(dest ...any) error { return pgx.ErrNoRows },
					})
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "db error",
			setup: func(m *mocks.MockDB) {
				m.EXPECT().
					QueryRow(gomock.Any(), gomock.Any(), int64(1)).
					Return(fakeRow{
						scan: func(dest ...any) error { return errors.New("db down") },
					})
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := mocks.NewMockDB(ctrl)
			tt.setup(mockDB)

			st := NewGroupStorage(mockDB, trmpgx.DefaultCtxGetter)
			err := st.DeleteGroup(context.Background(), 1)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, service.ErrNotFound) {
					require.ErrorIs(t, err, service.ErrNotFound)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}
