package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	GetByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*Credential, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *repository) GetByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}
