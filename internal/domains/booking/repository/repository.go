package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"icpac/infras/otel"
	"icpac/infras/postgres"
	"icpac/internal/domains/booking/model"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	gRepo "icpac/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// lockRoomQuery serialises conflict checks per room until the surrounding transaction ends.
const lockRoomQuery = "SELECT pg_advisory_xact_lock($1)"

// ConflictCheck receives the room's live bookings that overlap the candidate's dates and
// returns an error to abort the write.
type ConflictCheck func(existing []model.Booking) error

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID string) ([]model.Booking, error)
	InsertExclusive(ctx context.Context, booking model.Booking, check ConflictCheck) error
	UpdateExclusive(ctx context.Context, current model.Booking, start, end time.Time, req map[string]any, check ConflictCheck) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter selects the non-cancelled bookings of roomID touching any day in [start, end].
func OverlapFilter(roomID int64, start, end time.Time, excludeID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCancelledAt, Operator: gDto.FilterIsNull, Table: model.TableName},
			gDto.Filter{
				ArgName:  "range_end",
				Field:    model.FieldStartDate,
				Value:    end.Format(time.DateOnly),
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_start",
				Field:    model.FieldEndDate,
				Value:    start.Format(time.DateOnly),
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	if excludeID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return filter
}

func overlapParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}
}

func (r *repositoryImpl) FindOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapping")
	defer scope.End()

	return r.GetAll(ctx, overlapParams(), OverlapFilter(roomID, start, end, excludeID)) //nolint:wrapcheck
}

func (r *repositoryImpl) lockedOverlaps(ctx context.Context, tx *sqlx.Tx, roomID int64, start, end time.Time, excludeID string) ([]model.Booking, error) {
	if _, err := tx.ExecContext(ctx, lockRoomQuery, roomID); err != nil {
		return nil, fmt.Errorf("failed to lock room %d: %w", roomID, err)
	}

	return r.GetAllTx(ctx, tx, overlapParams(), OverlapFilter(roomID, start, end, excludeID)) //nolint:wrapcheck
}

// InsertExclusive runs check and the insert under the room's lock, so two requests for the
// same slot cannot both pass the check.
func (r *repositoryImpl) InsertExclusive(ctx context.Context, booking model.Booking, check ConflictCheck) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertExclusive")
	defer scope.End()

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := r.lockedOverlaps(ctx, tx, booking.RoomID, booking.StartDate, booking.EndDate, constant.Empty)
		if err != nil {
			return err
		}

		if err = check(existing); err != nil {
			return err
		}

		return r.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)
	}

	return err //nolint:wrapcheck
}

// UpdateExclusive is InsertExclusive for schedule edits; the booking itself is left out of the
// overlap set.
func (r *repositoryImpl) UpdateExclusive(ctx context.Context, current model.Booking, start, end time.Time, req map[string]any, check ConflictCheck) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateExclusive")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: current.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCancelledAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := r.lockedOverlaps(ctx, tx, current.RoomID, start, end, current.ID)
		if err != nil {
			return err
		}

		if err = check(existing); err != nil {
			return err
		}

		return r.UpdateTx(ctx, tx, req, filter) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)
	}

	return err //nolint:wrapcheck
}
