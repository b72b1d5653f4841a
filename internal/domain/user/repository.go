package user

import (
	"context"
)

// UserRepository - user identity lookups, implemented by the persistence layer
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByDepartment(ctx context.Context, department string) ([]User, error)
}
