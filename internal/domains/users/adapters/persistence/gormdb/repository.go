package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users through GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRecord maps the user aggregate to the users table. Seq preserves registration order.
type UserRecord struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement;column:seq"`
	ID        string    `gorm:"column:id;size:36;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Role      string    `gorm:"column:role;size:32"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UserRecord) TableName() string { return "users" }

// Save inserts a user or refreshes the stored row for an existing identifier.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "address"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record UserRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// List returns all users in registration order.
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []UserRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		user, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("gorm user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) UserRecord {
	return UserRecord{
		ID:        user.ID.String(),
		Name:      strings.TrimSpace(user.Name),
		Email:     strings.TrimSpace(user.Email),
		Role:      string(user.Role),
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}
}

func (r UserRecord) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", r.ID, err)
	}
	return &domain.User{
		ID:        id,
		Name:      r.Name,
		Email:     r.Email,
		Role:      domain.Role(r.Role),
		Address:   r.Address,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}
