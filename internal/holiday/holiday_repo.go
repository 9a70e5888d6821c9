package holiday

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, item *Holiday) error
	FindAll(ctx context.Context) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	Update(ctx context.Context, item *Holiday) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, item *Holiday) error {
	return r.conn(ctx).Create(item).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var items []Holiday
	err := r.conn(ctx).Order("date ASC").Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var item Holiday
	err := r.conn(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *repository) Update(ctx context.Context, item *Holiday) error {
	res := r.conn(ctx).
		Model(item).
		Select("name", "date", "description", "updated_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
