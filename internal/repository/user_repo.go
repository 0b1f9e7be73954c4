package repository

import (
	"context"
	"errors"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserListFilter struct {
	Role   *models.Role
	Query  string // by email/name
	Limit  int
	Offset int
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (bool, error)
	List(ctx context.Context, f UserListFilter) ([]models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("lower(email) = lower(?)", email).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	return tx.RowsAffected > 0, tx.Error
}

func (r *userRepo) List(ctx context.Context, f UserListFilter) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("lower(email) LIKE lower(?) OR lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.User
	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&cnt).Error
	return cnt, err
}
