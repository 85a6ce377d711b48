package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	repoMocks "urlaubsverwaltung/internal/repository/mocks"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/service/mocks"
)

type calculationMocks struct {
	accounts     *repoMocks.MockAccountRepository
	accountSvc   *mocks.MockAccountService
	vacationDays *mocks.MockVacationDaysService
	workDays     *mocks.MockWorkDaysService
}

func TestCalculationService_CheckApplication(t *testing.T) {
	ctx := context.Background()
	may := &model.Application{PersonID: "p1", DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.May, 6), EndDate: period.Date(2024, time.May, 10)}
	march := &model.Application{PersonID: "p1", DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.March, 4), EndDate: period.Date(2024, time.March, 8)}
	acc := &model.Account{ID: "acc", PersonID: "p1", ValidFrom: period.FirstDayOfYear(2024), ValidTo: period.LastDayOfYear(2024)}

	left := func(vacation, remaining, notExpiring, usedNextYear string) *model.VacationDaysLeft {
		return &model.VacationDaysLeft{
			VacationDays:                     dec(vacation),
			RemainingVacationDays:            dec(remaining),
			RemainingVacationDaysNotExpiring: dec(notExpiring),
			VacationDaysUsedNextYear:         dec(usedNextYear),
		}
	}

	tests := []struct {
		name       string
		app        *model.Application
		setupMocks func(m calculationMocks)
		want       bool
	}{
		{
			name: "enough vacation days",
			app:  may,
			setupMocks: func(m calculationMocks) {
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(acc, nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(nil, sql.ErrNoRows)
				m.vacationDays.On("GetVacationDaysLeft", ctx, acc, mock.Anything).Return(left("5", "0", "0", "0"), nil)
			},
			want: true,
		},
		{
			name: "not enough vacation days",
			app:  may,
			setupMocks: func(m calculationMocks) {
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(acc, nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(nil, sql.ErrNoRows)
				m.vacationDays.On("GetVacationDaysLeft", ctx, acc, mock.Anything).Return(left("4.5", "0", "0", "0"), nil)
			},
			want: false,
		},
		{
			name: "expiring remaining days count before april",
			app:  march,
			setupMocks: func(m calculationMocks) {
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, march.StartDate, march.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(acc, nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(nil, sql.ErrNoRows)
				m.vacationDays.On("GetVacationDaysLeft", ctx, acc, mock.Anything).Return(left("3", "2", "0", "0"), nil)
			},
			want: true,
		},
		{
			name: "expiring remaining days do not count from april on",
			app:  may,
			setupMocks: func(m calculationMocks) {
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(acc, nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(nil, sql.ErrNoRows)
				m.vacationDays.On("GetVacationDaysLeft", ctx, acc, mock.Anything).Return(left("3", "2", "1", "0"), nil)
			},
			want: false,
		},
		{
			name: "days used next year are reserved",
			app:  may,
			setupMocks: func(m calculationMocks) {
				next := &model.Account{ID: "next", PersonID: "p1", ValidFrom: period.FirstDayOfYear(2025)}
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(acc, nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(next, nil)
				m.vacationDays.On("GetVacationDaysLeft", ctx, acc, next).Return(left("10", "0", "0", "6"), nil)
			},
			want: false,
		},
		{
			name: "no account at all",
			app:  may,
			setupMocks: func(m calculationMocks) {
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(nil, sql.ErrNoRows)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2023).Return(nil, sql.ErrNoRows)
			},
			want: false,
		},
		{
			name: "account is created from the previous year",
			app:  may,
			setupMocks: func(m calculationMocks) {
				previous := &model.Account{ID: "prev", PersonID: "p1", ValidFrom: period.FirstDayOfYear(2023)}
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").Return(dec("5"), nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(nil, sql.ErrNoRows)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2023).Return(previous, nil)
				m.accountSvc.On("AutoCreateOrUpdateNextYearsHolidaysAccount", ctx, previous).Return(acc, nil)
				m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(nil, sql.ErrNoRows)
				m.vacationDays.On("GetVacationDaysLeft", ctx, acc, mock.Anything).Return(left("30", "0", "0", "0"), nil)
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := calculationMocks{
				accounts:     new(repoMocks.MockAccountRepository),
				accountSvc:   new(mocks.MockAccountService),
				vacationDays: new(mocks.MockVacationDaysService),
				workDays:     new(mocks.MockWorkDaysService),
			}
			tt.setupMocks(m)

			svc := service.NewCalculationService(m.accounts, m.accountSvc, m.vacationDays, m.workDays)
			got, err := svc.CheckApplication(ctx, tt.app)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			m.accounts.AssertExpectations(t)
			m.accountSvc.AssertExpectations(t)
			m.vacationDays.AssertExpectations(t)
		})
	}
}

func TestCalculationService_CheckApplication_AcrossYears(t *testing.T) {
	ctx := context.Background()
	app := &model.Application{PersonID: "p1", DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.December, 30), EndDate: period.Date(2025, time.January, 3)}
	acc24 := &model.Account{ID: "24", PersonID: "p1", ValidFrom: period.FirstDayOfYear(2024)}
	acc25 := &model.Account{ID: "25", PersonID: "p1", ValidFrom: period.FirstDayOfYear(2025)}

	m := calculationMocks{
		accounts:     new(repoMocks.MockAccountRepository),
		accountSvc:   new(mocks.MockAccountService),
		vacationDays: new(mocks.MockVacationDaysService),
		workDays:     new(mocks.MockWorkDaysService),
	}
	m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, app.StartDate, period.LastDayOfYear(2024), "p1").Return(dec("2"), nil)
	m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, period.FirstDayOfYear(2025), app.EndDate, "p1").Return(dec("2"), nil)
	m.accounts.On("FindByPersonAndYear", ctx, "p1", 2024).Return(acc24, nil)
	m.accounts.On("FindByPersonAndYear", ctx, "p1", 2025).Return(acc25, nil)
	m.accounts.On("FindByPersonAndYear", ctx, "p1", 2026).Return(nil, sql.ErrNoRows)
	m.vacationDays.On("GetVacationDaysLeft", ctx, acc24, acc25).Return(&model.VacationDaysLeft{VacationDays: dec("2")}, nil)
	m.vacationDays.On("GetVacationDaysLeft", ctx, acc25, mock.Anything).Return(&model.VacationDaysLeft{VacationDays: dec("1")}, nil)

	got, err := service.NewCalculationService(m.accounts, m.accountSvc, m.vacationDays, m.workDays).CheckApplication(ctx, app)

	assert.NoError(t, err)
	assert.False(t, got)
}
