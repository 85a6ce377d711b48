package postgres

import (
	"context"
	"database/sql"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

const (
	memberRoleMember = "MEMBER"
	memberRoleHead   = "HEAD"
	memberRoleSSA    = "SECOND_STAGE_AUTHORITY"
)

// DepartmentPostgres is a PostgreSQL implementation of repository.DepartmentRepository.
// Members, heads and second stage authorities live in department_members.
type DepartmentPostgres struct {
	db *sql.DB
}

// NewDepartmentPostgres creates a new DepartmentPostgres repository.
func NewDepartmentPostgres(db *sql.DB) *DepartmentPostgres {
	return &DepartmentPostgres{db: db}
}

var _ repository.DepartmentRepository = (*DepartmentPostgres)(nil)

// Create inserts the department and its memberships in one transaction.
func (r *DepartmentPostgres) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	const q = `
		INSERT INTO departments (id, name, description, two_stage_approval, last_modification)
		VALUES ($1, $2, $3, $4, $5)
	`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, q, d.ID, d.Name, d.Description, d.TwoStageApproval, d.LastModification); err != nil {
		return nil, err
	}
	if err := insertMembers(ctx, tx, d); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *d
	return &out, nil
}

// Update replaces the department row and all memberships in one transaction.
func (r *DepartmentPostgres) Update(ctx context.Context, d *model.Department) (*model.Department, error) {
	const q = `
		UPDATE departments
		SET name = $2, description = $3, two_stage_approval = $4, last_modification = $5
		WHERE id = $1
	`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, q, d.ID, d.Name, d.Description, d.TwoStageApproval, d.LastModification)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, sql.ErrNoRows
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM department_members WHERE department_id = $1`, d.ID); err != nil {
		return nil, err
	}
	if err := insertMembers(ctx, tx, d); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *d
	return &out, nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, d *model.Department) error {
	const q = `INSERT INTO department_members (department_id, person_id, role) VALUES ($1, $2, $3)`
	groups := []struct {
		role string
		ids  []string
	}{
		{memberRoleMember, d.MemberIDs},
		{memberRoleHead, d.DepartmentHeadIDs},
		{memberRoleSSA, d.SecondStageAuthorityIDs},
	}
	for _, g := range groups {
		for _, id := range g.ids {
			if _, err := tx.ExecContext(ctx, q, d.ID, id, g.role); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindByID fetches a department with its memberships.
func (r *DepartmentPostgres) FindByID(ctx context.Context, id string) (*model.Department, error) {
	const q = `
		SELECT id, name, description, two_stage_approval, last_modification
		FROM departments
		WHERE id = $1
	`
	var d model.Department
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.TwoStageApproval,
		&d.LastModification,
	); err != nil {
		return nil, err
	}

	members, err := r.members(ctx, `WHERE department_id = $1`, id)
	if err != nil {
		return nil, err
	}
	assignMembers(&d, members[d.ID])
	return &d, nil
}

// FindAll returns all departments ordered by name.
func (r *DepartmentPostgres) FindAll(ctx context.Context) ([]model.Department, error) {
	const q = `
		SELECT id, name, description, two_stage_approval, last_modification
		FROM departments
		ORDER BY name, id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.TwoStageApproval, &d.LastModification); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.members(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range items {
		assignMembers(&items[i], members[items[i].ID])
	}
	return items, nil
}

// Delete removes a department by ID. Memberships cascade.
func (r *DepartmentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM departments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

type membership struct {
	personID string
	role     string
}

func (r *DepartmentPostgres) members(ctx context.Context, where string, args ...any) (map[string][]membership, error) {
	q := `SELECT department_id, person_id, role FROM department_members ` + where + ` ORDER BY department_id, role, person_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]membership)
	for rows.Next() {
		var depID string
		var m membership
		if err := rows.Scan(&depID, &m.personID, &m.role); err != nil {
			return nil, err
		}
		out[depID] = append(out[depID], m)
	}
	return out, rows.Err()
}

func assignMembers(d *model.Department, ms []membership) {
	d.MemberIDs = make([]string, 0)
	d.DepartmentHeadIDs = make([]string, 0)
	d.SecondStageAuthorityIDs = make([]string, 0)
	for _, m := range ms {
		switch m.role {
		case memberRoleMember:
			d.MemberIDs = append(d.MemberIDs, m.personID)
		case memberRoleHead:
			d.DepartmentHeadIDs = append(d.DepartmentHeadIDs, m.personID)
		case memberRoleSSA:
			d.SecondStageAuthorityIDs = append(d.SecondStageAuthorityIDs, m.personID)
		}
	}
}
