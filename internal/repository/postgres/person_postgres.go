package postgres

import (
	"context"
	"database/sql"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

// PersonPostgres is a PostgreSQL implementation of repository.PersonRepository.
// Permissions and notifications are stored as comma separated text.
type PersonPostgres struct {
	db *sql.DB
}

// NewPersonPostgres creates a new PersonPostgres repository.
func NewPersonPostgres(db *sql.DB) *PersonPostgres {
	return &PersonPostgres{db: db}
}

var _ repository.PersonRepository = (*PersonPostgres)(nil)

const personColumns = `id, username, password_hash, first_name, last_name, email, permissions, notifications, created_at`

func scanPerson(s rowScanner) (*model.Person, error) {
	var (
		p             model.Person
		permissions   string
		notifications string
	)
	if err := s.Scan(
		&p.ID,
		&p.Username,
		&p.PasswordHash,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&permissions,
		&notifications,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Permissions = splitRoles(permissions)
	p.Notifications = splitNotifications(notifications)
	return &p, nil
}

// Create inserts a new person row and returns the stored record.
func (r *PersonPostgres) Create(ctx context.Context, p *model.Person) (*model.Person, error) {
	const q = `
		INSERT INTO persons (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + personColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Username,
		p.PasswordHash,
		p.FirstName,
		p.LastName,
		p.Email,
		joinRoles(p.Permissions),
		joinNotifications(p.Notifications),
		p.CreatedAt,
	)
	return scanPerson(row)
}

// Update overwrites the mutable columns of a person.
func (r *PersonPostgres) Update(ctx context.Context, p *model.Person) (*model.Person, error) {
	const q = `
		UPDATE persons
		SET username = $2, password_hash = $3, first_name = $4, last_name = $5,
		    email = $6, permissions = $7, notifications = $8
		WHERE id = $1
		RETURNING ` + personColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Username,
		p.PasswordHash,
		p.FirstName,
		p.LastName,
		p.Email,
		joinRoles(p.Permissions),
		joinNotifications(p.Notifications),
	)
	return scanPerson(row)
}

// FindByID fetches a single person by its ID.
func (r *PersonPostgres) FindByID(ctx context.Context, id string) (*model.Person, error) {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	return scanPerson(r.db.QueryRowContext(ctx, q, id))
}

// FindByUsername fetches a single person by its login name.
func (r *PersonPostgres) FindByUsername(ctx context.Context, username string) (*model.Person, error) {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE username = $1`
	return scanPerson(r.db.QueryRowContext(ctx, q, username))
}

// FindAll returns all persons.
func (r *PersonPostgres) FindAll(ctx context.Context) ([]model.Person, error) {
	const q = `SELECT ` + personColumns + ` FROM persons ORDER BY first_name, last_name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPersons(rows)
}

// List returns persons using LIMIT/OFFSET pagination and a total count.
func (r *PersonPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Person], error) {
	const qCount = `SELECT COUNT(*) FROM persons`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + personColumns + `
		FROM persons
		ORDER BY first_name, last_name, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectPersons(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Person]{Items: items, Total: total}, nil
}

func collectPersons(rows *sql.Rows) ([]model.Person, error) {
	items := make([]model.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
