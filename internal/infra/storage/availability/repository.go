package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/pkg/dbmetrics"
	"github.com/m04kA/InkStudio-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

const table = "artist_availability"

// Repository хранит рабочее расписание мастеров
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает сохранённое расписание мастера.
// NULL-колонки остаются nil, подстановка значений по умолчанию выполняется в домене.
func (r *Repository) Get(ctx context.Context, artistID int64) (*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"artist_id",
		"studio_id",
		"work_start",
		"work_end",
		"days_off",
		"explicit_slots",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"artist_id": artistID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg           domain.AvailabilityConfig
		workStart     sql.NullString
		workEnd       sql.NullString
		daysOff       pq.Int64Array
		explicitSlots pq.StringArray
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ArtistID,
		&cfg.StudioID,
		&workStart,
		&workEnd,
		&daysOff,
		&explicitSlots,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	if cfg.WorkStart, err = parseTime(workStart); err != nil {
		return nil, fmt.Errorf("%w: Get - work_start: %v", ErrScanRow, err)
	}
	if cfg.WorkEnd, err = parseTime(workEnd); err != nil {
		return nil, fmt.Errorf("%w: Get - work_end: %v", ErrScanRow, err)
	}
	if daysOff != nil {
		cfg.DaysOff = make([]int, len(daysOff))
		for i, d := range daysOff {
			cfg.DaysOff[i] = int(d)
		}
	}
	if explicitSlots != nil {
		cfg.ExplicitSlots = []string(explicitSlots)
	}

	return &cfg, nil
}

// Upsert создаёт или полностью заменяет расписание мастера.
// nil DaysOff сохраняется как NULL (выходные по умолчанию), пустой слайс как пустой массив.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var daysOff pq.Int64Array
	if cfg.DaysOff != nil {
		daysOff = make(pq.Int64Array, len(cfg.DaysOff))
		for i, d := range cfg.DaysOff {
			daysOff[i] = int64(d)
		}
	}

	var explicitSlots pq.StringArray
	if cfg.ExplicitSlots != nil {
		explicitSlots = pq.StringArray(cfg.ExplicitSlots)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("artist_id", "studio_id", "work_start", "work_end", "days_off", "explicit_slots").
		Values(cfg.ArtistID, cfg.StudioID, cfg.WorkStart, cfg.WorkEnd, daysOff, explicitSlots).
		Suffix(`ON CONFLICT (artist_id) DO UPDATE SET
			studio_id = EXCLUDED.studio_id,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			days_off = EXCLUDED.days_off,
			explicit_slots = EXCLUDED.explicit_slots,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return cfg, nil
}

// Delete удаляет расписание, после чего мастер работает по расписанию по умолчанию
func (r *Repository) Delete(ctx context.Context, artistID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"artist_id": artistID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// parseTime разбирает TIME из Postgres ("10:00:00") в TimeString
func parseTime(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
