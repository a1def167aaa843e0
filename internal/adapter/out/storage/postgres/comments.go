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

var commentColumns = []string{
	tableinfo.CommentIDColumn,
	tableinfo.CommentPostIDColumn,
	tableinfo.CommentAuthorIDColumn,
	tableinfo.CommentTextColumn,
	tableinfo.CommentCreatedColumn,
}

type CommentStorage struct {
	db     DB
	getter *trmpgx.CtxGetter
}

func NewCommentStorage(db DB, getter *trmpgx.CtxGetter) *CommentStorage {
	return &CommentStorage{
		db:     db,
		getter: getter,
	}
}

type createCommentRow struct {
	PostID   int64  `validate:"required,gt=0"`
	AuthorID int64  `validate:"required,gt=0"`
	Text     string `validate:"required"`
}

func (s *CommentStorage) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	var out model.Comment

	row := createCommentRow{
		PostID:   comment.PostID,
		AuthorID: comment.AuthorID,
		Text:     comment.Text,
	}
	if err := validator.New().Struct(row); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	query, args, err := sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentAuthorIDColumn,
			tableinfo.CommentTextColumn,
		).
		Values(comment.PostID, comment.AuthorID, comment.Text).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s",
			tableinfo.CommentIDColumn,
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentAuthorIDColumn,
			tableinfo.CommentTextColumn,
			tableinfo.CommentCreatedColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.PostID,
		&out.AuthorID,
		&out.Text,
		&out.Created,
	); err != nil {
		return out, fmt.Errorf("exec error creating comment: %w", err)
	}

	return out, nil
}

// GetCommentsByPost returns every comment of the post, newest-first.
// The detail view is unpaginated.
func (s *CommentStorage) GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query, args, err := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		OrderBy(
			fmt.Sprintf("%s DESC", tableinfo.CommentCreatedColumn),
			fmt.Sprintf("%s DESC", tableinfo.CommentIDColumn),
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting comments: %w", err)
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.AuthorID,
			&c.Text,
			&c.Created,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}
