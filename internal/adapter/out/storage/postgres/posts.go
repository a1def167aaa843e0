package postgres

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/adapter/out/storage"
	"microblog/internal/model"
	"microblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

type PostStorage struct {
	db     DB
	getter *trmpgx.CtxGetter
}

func NewPostStorage(db DB, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{
		db:     db,
		getter: getter,
	}
}

type createPostRow struct {
	Text     string `validate:"required"`
	AuthorID int64  `validate:"required,gt=0"`
}

func (s *PostStorage) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	var out model.Post

	if err := validator.New().Struct(createPostRow{Text: post.Text, AuthorID: post.AuthorID}); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTextColumn,
			tableinfo.PostAuthorIDColumn,
			tableinfo.PostGroupIDColumn,
			tableinfo.PostImageColumn,
		).
		Values(post.Text, post.AuthorID, post.GroupID, post.Image).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTextColumn,
			tableinfo.PostAuthorIDColumn,
			tableinfo.PostGroupIDColumn,
			tableinfo.PostImageColumn,
			tableinfo.PostPubDateColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Text,
		&out.AuthorID,
		&out.GroupID,
		&out.Image,
		&out.PubDate,
	); err != nil {
		return out, fmt.Errorf("exec error creating post: %w", err)
	}

	return out, nil
}

func (s *PostStorage) UpdatePost(ctx context.Context, params storage.UpdatePostParams) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostTextColumn, params.Text).
		Set(tableinfo.PostGroupIDColumn, params.GroupID).
		Set(tableinfo.PostImageColumn, params.Image).
		Where(sq.Eq{tableinfo.PostIDColumn: params.PostID}).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTextColumn,
			tableinfo.PostAuthorIDColumn,
			tableinfo.PostGroupIDColumn,
			tableinfo.PostImageColumn,
			tableinfo.PostPubDateColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Text,
		&out.AuthorID,
		&out.GroupID,
		&out.Image,
		&out.PubDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("exec update post: %w", err)
	}

	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Text,
		&out.AuthorID,
		&out.GroupID,
		&out.Image,
		&out.PubDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("exec select post by id: %w", err)
	}

	return out, nil
}

func (s *PostStorage) GetPostAuthorID(ctx context.Context, postID int64) (int64, error) {
	query, args, err := sq.
		Select(tableinfo.PostAuthorIDColumn).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var authorID int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("exec select author_id: %w", err)
	}
	return authorID, nil
}

func (s *PostStorage) GetPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	qb := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName)
	return s.listPosts(ctx, qb, params)
}

func (s *PostStorage) GetPostsByGroup(ctx context.Context, groupID int64, params storage.ListPostsParams) ([]model.Post, error) {
	qb := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostGroupIDColumn: groupID})
	return s.listPosts(ctx, qb, params)
}

func (s *PostStorage) GetPostsByAuthor(ctx context.Context, authorID int64, params storage.ListPostsParams) ([]model.Post, error) {
	qb := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostAuthorIDColumn: authorID})
	return s.listPosts(ctx, qb, params)
}

// GetFollowedPosts lists posts whose author is followed by userID.
func (s *PostStorage) GetFollowedPosts(ctx context.Context, userID int64, params storage.ListPostsParams) ([]model.Post, error) {
	cols := make([]string, 0, len(postColumns))
	for _, c := range postColumns {
		cols = append(cols, fmt.Sprintf("%s.%s", tableinfo.PostsTableName, c))
	}

	qb := sq.
		Select(cols...).
		From(tableinfo.PostsTableName).
		Join(fmt.Sprintf("%s ON %s.%s = %s.%s",
			tableinfo.FollowsTableName,
			tableinfo.FollowsTableName, tableinfo.FollowAuthorIDColumn,
			tableinfo.PostsTableName, tableinfo.PostAuthorIDColumn,
		)).
		Where(sq.Eq{
			fmt.Sprintf("%s.%s", tableinfo.FollowsTableName, tableinfo.FollowUserIDColumn): userID,
		})
	return s.listPosts(ctx, qb, params)
}

func (s *PostStorage) CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	query, args, err := sq.
		Select("COUNT(*)").
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostAuthorIDColumn: authorID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var count int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("exec count posts: %w", err)
	}
	return count, nil
}

func (s *PostStorage) listPosts(ctx context.Context, qb sq.SelectBuilder, params storage.ListPostsParams) ([]model.Post, error) {
	if params.Limit <= 0 {
		return nil, fmt.Errorf("limit must be > 0: %w", ErrInvalidRequest)
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	query, args, err := qb.
		OrderBy(postOrderNewestFirst()...).
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting posts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0, params.Limit)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID,
			&p.Text,
			&p.AuthorID,
			&p.GroupID,
			&p.Image,
			&p.PubDate,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}
