package repository

import (
	"context"
	"icpac/shared/dto"
)

func (repo *Repository[T]) SelectQuery(ctx context.Context, columns ...string) string {
	return repo.getSelectQuery(ctx, columns...)
}

func (repo *Repository[T]) InsertQuery() string {
	return repo.insertQuery()
}

func (repo *Repository[T]) UpdateWith(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, exec, mod, filter)
}
