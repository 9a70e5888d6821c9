package holiday

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	holidayerrors "github.com/Satyam6458/HR-Management/internal/holiday/errors"
	"github.com/Satyam6458/HR-Management/internal/shared/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	HolidayAllKey = "holidays:all"

	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	list   *cache.ListCache[HolidayResponse]
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		list:   cache.NewList[HolidayResponse](rdb, HolidayAllKey, cache.DefaultTTL, l),
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item := &Holiday{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
	}

	if err := qtx.Create(ctx, item); err != nil {
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	s.list.Invalidate(ctx)
	return mapToResponse(*item), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	return s.list.Get(ctx, func(ctx context.Context) ([]HolidayResponse, error) {
		items, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(items), nil
	})
}

func (s *service) GetByID(ctx context.Context, id string) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*item), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item, err := qtx.FindByID(ctx, id)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Date = date
	item.Description = strings.TrimSpace(req.Description)

	if err := qtx.Update(ctx, item); err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	s.list.Invalidate(ctx)
	return mapToResponse(*item), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.list.Invalidate(ctx)
	s.logger.Info("holiday deleted", zap.String("holiday_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}
	return err
}

func parseDate(v string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidHolidayDate
	}
	return d, nil
}

func mapToResponse(item Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Date:        item.Date.Format(dateLayout),
		Description: item.Description,
	}
	if !item.CreatedAt.IsZero() {
		resp.CreatedAt = item.CreatedAt.Format(time.RFC3339)
	}
	if !item.UpdatedAt.IsZero() {
		resp.UpdatedAt = item.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(items []Holiday) []HolidayResponse {
	res := make([]HolidayResponse, len(items))
	for i, d := range items {
		res[i] = mapToResponse(d)
	}
	return res
}
