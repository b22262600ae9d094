package studio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/pkg/dbmetrics"
	"github.com/m04kA/InkStudio-BookingService/pkg/psqlbuilder"
)

// Repository мастера студий и сотрудники с правами управления
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetArtist возвращает мастера по ID
func (r *Repository) GetArtist(ctx context.Context, artistID int64) (*domain.Artist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "studio_id", "name", "is_active").
		From("artists").
		Where(squirrel.Eq{"id": artistID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetArtist - build select query: %v", ErrBuildQuery, err)
	}

	var artist domain.Artist
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&artist.ID,
		&artist.StudioID,
		&artist.Name,
		&artist.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetArtist - scan artist: %v", ErrExecQuery, err)
	}

	return &artist, nil
}

// IsStaff проверяет, что пользователь может управлять студией
func (r *Repository) IsStaff(ctx context.Context, studioID, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("studio_staff").
		Where(squirrel.Eq{"studio_id": studioID, "user_id": userID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsStaff - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsStaff - scan: %v", ErrExecQuery, err)
	}

	return exists, nil
}
