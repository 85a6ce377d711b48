package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var sentinelQuery = regexp.QuoteMeta("SELECT to_regclass('public.persons') IS NOT NULL")

func TestEnsureMigrated(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(mock sqlmock.Sqlmock)
		wantErr    string
		wantLog    string
	}{
		{
			name: "schema exists",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantLog: "db_migration_skip",
		},
		{
			name: "runs all steps",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				for _, step := range steps {
					mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				}
			},
			wantLog: "db_migration_success",
		},
		{
			name: "sentinel check fails",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sentinelQuery).WillReturnError(errors.New("connection refused"))
			},
			wantErr: "failed to check sentinel table: connection refused",
			wantLog: "db_migration_failed",
		},
		{
			name: "step fails",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(regexp.QuoteMeta(steps[0].SQL)).WillReturnError(errors.New("permission denied"))
			},
			wantErr: "migration step create_table_persons failed: permission denied",
			wantLog: "db_migration_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMocks(mock)

			core, logs := observer.New(zap.DebugLevel)
			err = EnsureMigrated(context.Background(), db, zap.New(core), "localhost")

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, logs.FilterMessage(tt.wantLog).Len())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
