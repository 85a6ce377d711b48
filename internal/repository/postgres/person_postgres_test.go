package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

var personRowColumns = []string{"id", "username", "password_hash", "first_name", "last_name", "email", "permissions", "notifications", "created_at"}

func TestPersonPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPersonPostgres(db)
	now := time.Now().UTC()
	p := &model.Person{
		ID:            "p-1",
		Username:      "muster",
		PasswordHash:  "hash",
		FirstName:     "Max",
		LastName:      "Muster",
		Email:         "max@example.org",
		Permissions:   []model.Role{model.RoleUser, model.RoleOffice},
		Notifications: []model.MailNotification{model.NotificationUser},
		CreatedAt:     now,
	}

	mock.ExpectQuery("INSERT INTO persons").
		WithArgs("p-1", "muster", "hash", "Max", "Muster", "max@example.org", "USER,OFFICE", "NOTIFICATION_USER", now).
		WillReturnRows(sqlmock.NewRows(personRowColumns).
			AddRow("p-1", "muster", "hash", "Max", "Muster", "max@example.org", "USER,OFFICE", "NOTIFICATION_USER", now))

	out, err := repo.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RoleUser, model.RoleOffice}, out.Permissions)
	assert.True(t, out.HasNotification(model.NotificationUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonPostgres_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPersonPostgres(db)

	t.Run("found with empty permissions", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM persons WHERE username = ?").
			WithArgs("muster").
			WillReturnRows(sqlmock.NewRows(personRowColumns).
				AddRow("p-1", "muster", "", "Max", "Muster", "", "", "", time.Now()))

		p, err := repo.FindByUsername(context.Background(), "muster")

		require.NoError(t, err)
		assert.Empty(t, p.Permissions)
		assert.Empty(t, p.Notifications)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM persons WHERE username = ?").
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByUsername(context.Background(), "nobody")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, p)
	})
}

func TestPersonPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPersonPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM persons").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM persons ORDER BY (.+) LIMIT").
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows(personRowColumns).
			AddRow("p-2", "zoe", "", "Zoe", "Zett", "", "USER", "", time.Now()))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 1, Offset: 1})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentPostgres(db)
	now := time.Now().UTC()
	d := &model.Department{
		ID:                      "d-1",
		Name:                    "Entwicklung",
		MemberIDs:               []string{"p-1", "p-2"},
		DepartmentHeadIDs:       []string{"p-2"},
		SecondStageAuthorityIDs: []string{},
		LastModification:        now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO departments").
		WithArgs("d-1", "Entwicklung", "", false, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO department_members").
		WithArgs("d-1", "p-1", "MEMBER").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO department_members").
		WithArgs("d-1", "p-2", "MEMBER").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO department_members").
		WithArgs("d-1", "p-2", "HEAD").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := repo.Create(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, "d-1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentPostgres_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentPostgres(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE departments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	out, err := repo.Update(context.Background(), &model.Department{ID: "missing"})

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM departments WHERE id = ?").
		WithArgs("d-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "two_stage_approval", "last_modification"}).
			AddRow("d-1", "Entwicklung", "", true, time.Now()))
	mock.ExpectQuery("SELECT department_id, person_id, role FROM department_members WHERE department_id = ?").
		WithArgs("d-1").
		WillReturnRows(sqlmock.NewRows([]string{"department_id", "person_id", "role"}).
			AddRow("d-1", "p-2", "HEAD").
			AddRow("d-1", "p-1", "MEMBER").
			AddRow("d-1", "p-3", "SECOND_STAGE_AUTHORITY"))

	d, err := repo.FindByID(context.Background(), "d-1")

	require.NoError(t, err)
	assert.True(t, d.TwoStageApproval)
	assert.Equal(t, []string{"p-1"}, d.MemberIDs)
	assert.Equal(t, []string{"p-2"}, d.DepartmentHeadIDs)
	assert.Equal(t, []string{"p-3"}, d.SecondStageAuthorityIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
