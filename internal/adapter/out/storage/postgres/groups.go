package postgres

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/model"
	"microblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

var groupColumns = []string{
	tableinfo.GroupIDColumn,
	tableinfo.GroupTitleColumn,
	tableinfo.GroupSlugColumn,
	tableinfo.GroupDescriptionColumn,
}

type GroupStorage struct {
	db     DB
	getter *trmpgx.CtxGetter
}

func NewGroupStorage(db DB, getter *trmpgx.CtxGetter) *GroupStorage {
	return &GroupStorage{
		db:     db,
		getter: getter,
	}
}

type createGroupRow struct {
	Title string `validate:"required"`
	Slug  string `validate:"required"`
}

func (s *GroupStorage) CreateGroup(ctx context.Context, group model.Group) (model.Group, error) {
	var out model.Group

	if err := validator.New().Struct(createGroupRow{Title: group.Title, Slug: group.Slug}); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	query, args, err := sq.
		Insert(tableinfo.GroupsTableName).
		Columns(
			tableinfo.GroupTitleColumn,
			tableinfo.GroupSlugColumn,
			tableinfo.GroupDescriptionColumn,
		).
		Values(group.Title, group.Slug, group.Description).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s",
			tableinfo.GroupIDColumn,
			tableinfo.GroupTitleColumn,
			tableinfo.GroupSlugColumn,
			tableinfo.GroupDescriptionColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Title,
		&out.Slug,
		&out.Description,
	); err != nil {
		return out, fmt.Errorf("exec error creating group: %w", err)
	}

	return out, nil
}

func (s *GroupStorage) GetGroupByID(ctx context.Context, groupID int64) (model.Group, error) {
	return s.getGroup(ctx, sq.Eq{tableinfo.GroupIDColumn: groupID})
}

func (s *GroupStorage) GetGroupBySlug(ctx context.Context, slug string) (model.Group, error) {
	return s.getGroup(ctx, sq.Eq{tableinfo.GroupSlugColumn: slug})
}

func (s *GroupStorage) getGroup(ctx context.Context, where sq.Eq) (model.Group, error) {
	var out model.Group

	query, args, err := sq.
		Select(groupColumns...).
		From(tableinfo.GroupsTableName).
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Title,
		&out.Slug,
		&out.Description,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("exec select group: %w", err)
	}

	return out, nil
}

func (s *GroupStorage) ListGroups(ctx context.Context) ([]model.Group, error) {
	query, args, err := sq.
		Select(groupColumns...).
		From(tableinfo.GroupsTableName).
		OrderBy(fmt.Sprintf("%s ASC", tableinfo.GroupTitleColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting groups: %w", err)
	}
	defer rows.Close()

	var out []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}

// DeleteGroup removes the group row. The posts.group_id FK is declared
// ON DELETE SET NULL, so the group's posts survive with their group
// reference cleared.
func (s *GroupStorage) DeleteGroup(ctx context.Context, groupID int64) error {
	query, args, err := sq.
		Delete(tableinfo.GroupsTableName).
		Where(sq.Eq{tableinfo.GroupIDColumn: groupID}).
		Suffix(fmt.Sprintf("RETURNING %s", tableinfo.GroupIDColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("exec delete group: %w", err)
	}
	return nil
}
