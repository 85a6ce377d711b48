package repository

import (
	"context"

	"urlaubsverwaltung/internal/model"
)

// PersonRepository defines data access for persons.
type PersonRepository interface {
	Create(ctx context.Context, p *model.Person) (*model.Person, error)
	Update(ctx context.Context, p *model.Person) (*model.Person, error)
	FindByID(ctx context.Context, id string) (*model.Person, error)
	FindByUsername(ctx context.Context, username string) (*model.Person, error)
	// FindAll returns every person ordered by first and last name.
	FindAll(ctx context.Context) ([]model.Person, error)
	// List returns a page of persons ordered by first and last name.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Person], error)
}

// DepartmentRepository defines data access for departments and their members.
type DepartmentRepository interface {
	// Create inserts the department together with its members, heads and second stage authorities.
	Create(ctx context.Context, d *model.Department) (*model.Department, error)
	// Update replaces the department row and all of its memberships.
	Update(ctx context.Context, d *model.Department) (*model.Department, error)
	FindByID(ctx context.Context, id string) (*model.Department, error)
	FindAll(ctx context.Context) ([]model.Department, error)
	// Delete removes a department by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
