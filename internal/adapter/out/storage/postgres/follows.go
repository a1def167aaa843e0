package postgres

import (
	"context"
	"fmt"

	"microblog/internal/model"
	"microblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/go-playground/validator/v10"
)

type FollowStorage struct {
	db     DB
	getter *trmpgx.CtxGetter
}

func NewFollowStorage(db DB, getter *trmpgx.CtxGetter) *FollowStorage {
	return &FollowStorage{
		db:     db,
		getter: getter,
	}
}

type followRow struct {
	UserID   int64 `validate:"required,gt=0"`
	AuthorID int64 `validate:"required,gt=0"`
}

// CreateFollow inserts the edge. ON CONFLICT DO NOTHING on the unique
// (user_id, author_id) pair makes a duplicate insert a no-op.
func (s *FollowStorage) CreateFollow(ctx context.Context, follow model.Follow) error {
	if err := validator.New().Struct(followRow(follow)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	query, args, err := sq.
		Insert(tableinfo.FollowsTableName).
		Columns(
			tableinfo.FollowUserIDColumn,
			tableinfo.FollowAuthorIDColumn,
		).
		Values(follow.UserID, follow.AuthorID).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec error creating follow: %w", err)
	}
	return nil
}

// DeleteFollow removes the edge; deleting a missing edge is a no-op.
func (s *FollowStorage) DeleteFollow(ctx context.Context, follow model.Follow) error {
	if err := validator.New().Struct(followRow(follow)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	query, args, err := sq.
		Delete(tableinfo.FollowsTableName).
		Where(sq.Eq{
			tableinfo.FollowUserIDColumn:   follow.UserID,
			tableinfo.FollowAuthorIDColumn: follow.AuthorID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec error deleting follow: %w", err)
	}
	return nil
}

func (s *FollowStorage) FollowExists(ctx context.Context, follow model.Follow) (bool, error) {
	query, args, err := sq.
		Select("COUNT(*)").
		From(tableinfo.FollowsTableName).
		Where(sq.Eq{
			tableinfo.FollowUserIDColumn:   follow.UserID,
			tableinfo.FollowAuthorIDColumn: follow.AuthorID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var count int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("exec count follow: %w", err)
	}
	return count > 0, nil
}
