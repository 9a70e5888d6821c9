package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Satyam6458/HR-Management/internal/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string, forUpdate bool) (*Leave, error)
	FindAllWithEmployee(ctx context.Context) ([]Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	// UpdateStatus moves a Pending request to status. A request that is no
	// longer Pending is left alone and reported as gorm.ErrRecordNotFound.
	UpdateStatus(ctx context.Context, id, status string) error
	// FindOverlapping returns the most recent active request of the employee
	// intersecting [start, end], or nil when there is none.
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time) (*Leave, error)
	FindEmployee(ctx context.Context, employeeID string, forUpdate bool) (*EmployeeAccount, error)
	UpdateBalance(ctx context.Context, employeeID string, balance ledger.Balance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string, forUpdate bool) (*Leave, error) {
	db := r.conn(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var l Leave
	err := db.First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllWithEmployee(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		InnerJoins("Employee").
		Order("leaves.created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusRejected, StatusWithdrawn}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("created_at DESC").
		Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string, forUpdate bool) (*EmployeeAccount, error) {
	db := r.conn(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var emp EmployeeAccount
	err := db.
		Select("id", "name", "email", "leave_balance").
		Take(&emp, "id = ?", employeeID).Error
	return &emp, err
}

// UpdateBalance does not treat zero affected rows as not-found: MySQL
// reports zero when the stored value is unchanged.
func (r *repository) UpdateBalance(ctx context.Context, employeeID string, balance ledger.Balance) error {
	return r.conn(ctx).
		Model(&EmployeeAccount{}).
		Where("id = ?", employeeID).
		Update("leave_balance", balance).Error
}
