package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"urlaubsverwaltung/internal/config"
	serviceMocks "urlaubsverwaltung/internal/service/mocks"
)

type observation struct {
	job   string
	items int
	err   error
}

type recordingObserver struct {
	runs []observation
}

func (o *recordingObserver) ObserveJob(job string, items int, err error, _ time.Duration) {
	o.runs = append(o.runs, observation{job: job, items: items, err: err})
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		run       func(ctx context.Context) (int, error)
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{
			name:      "success",
			run:       func(context.Context) (int, error) { return 3, nil },
			wantLevel: zapcore.InfoLevel,
			wantMsg:   "job finished",
		},
		{
			name:      "failure",
			run:       func(context.Context) (int, error) { return 1, errors.New("db down") },
			wantLevel: zapcore.ErrorLevel,
			wantMsg:   "job failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			obs := &recordingObserver{}
			s := New(time.UTC, zap.New(core), obs)

			s.Run(context.Background(), Job{Name: "test_job", Spec: "@daily", Run: tt.run})

			require.Len(t, obs.runs, 1)
			assert.Equal(t, "test_job", obs.runs[0].job)

			entries := logs.FilterMessage(tt.wantMsg).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, "test_job", entries[0].ContextMap()["job"])
		})
	}
}

func TestAdd_InvalidSpec(t *testing.T) {
	s := New(time.UTC, nil, nil)
	err := s.Add(Job{Name: "broken", Spec: "every tuesday", Run: func(context.Context) (int, error) { return 0, nil }})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestStartStop(t *testing.T) {
	s := New(time.UTC, nil, nil)
	require.NoError(t, s.Add(Job{Name: "noop", Spec: "@hourly", Run: func(context.Context) (int, error) { return 0, nil }}))

	s.Start(context.Background())
	s.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
	assert.NoError(t, s.Stop(ctx))
}

func TestJobs(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2025, time.January, 1, 5, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	apps := new(serviceMocks.MockApplicationService)
	sickNotes := new(serviceMocks.MockSickNoteService)
	accounts := new(serviceMocks.MockAccountService)

	apps.On("RemindWaitingApplications", mock.Anything).Return(2, nil)
	apps.On("RemindUpcomingApplications", mock.Anything).Return(1, nil)
	sickNotes.On("SendEndOfSickPayNotification", mock.Anything).Return(0, nil)
	accounts.On("CreateAccountsForNextYear", mock.Anything, 2024).Return(5, nil)

	cfg := config.SchedulerConfig{
		RemindWaitingSpec:    "0 7 * * *",
		RemindUpcomingSpec:   "0 6 * * *",
		EndOfSickPaySpec:     "0 6 * * *",
		NextYearAccountsSpec: "0 5 1 1 *",
	}
	jobs := Jobs(cfg, apps, sickNotes, accounts, time.UTC)
	require.Len(t, jobs, 4)

	obs := &recordingObserver{}
	s := New(time.UTC, nil, obs)
	for _, j := range jobs {
		require.NoError(t, s.Add(j))
		s.Run(context.Background(), j)
	}

	assert.Equal(t, []observation{
		{job: JobRemindWaiting, items: 2},
		{job: JobRemindUpcoming, items: 1},
		{job: JobEndOfSickPay, items: 0},
		{job: JobNextYearAccounts, items: 5},
	}, obs.runs)
	apps.AssertExpectations(t)
	sickNotes.AssertExpectations(t)
	accounts.AssertExpectations(t)
}
