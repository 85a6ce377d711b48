package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	repoMocks "urlaubsverwaltung/internal/repository/mocks"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/service/mocks"
)

func account2024() *model.Account {
	return &model.Account{
		ID:                               "acc",
		PersonID:                         "p1",
		ValidFrom:                        period.FirstDayOfYear(2024),
		ValidTo:                          period.LastDayOfYear(2024),
		AnnualVacationDays:               dec("30"),
		VacationDays:                     dec("30"),
		RemainingVacationDays:            dec("5"),
		RemainingVacationDaysNotExpiring: dec("2"),
	}
}

func setupUsedDays(ctx context.Context, apps *repoMocks.MockApplicationRepository, wd *mocks.MockWorkDaysService) {
	jan := model.Application{ID: "a1", PersonID: "p1", VacationType: model.VacationHoliday, DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.January, 8), EndDate: period.Date(2024, time.January, 10)}
	special := model.Application{ID: "a2", PersonID: "p1", VacationType: model.VacationSpecialLeave, DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.February, 5), EndDate: period.Date(2024, time.February, 5)}
	noWorkingTime := model.Application{ID: "a3", PersonID: "p1", VacationType: model.VacationHoliday, DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.March, 4), EndDate: period.Date(2024, time.March, 4)}
	may := model.Application{ID: "a4", PersonID: "p1", VacationType: model.VacationHoliday, DayLength: model.DayLengthFull,
		StartDate: period.Date(2024, time.May, 6), EndDate: period.Date(2024, time.May, 9)}

	apps.On("FindByPersonAndPeriod", ctx, "p1", period.FirstDayOfYear(2024), period.LastDayOfYear(2024), model.ActiveApplicationStatuses).
		Return([]model.Application{jan, special, noWorkingTime, may}, nil)

	wd.On("GetWorkDaysSplitByApril", ctx, model.DayLengthFull, jan.StartDate, jan.EndDate, "p1").
		Return(dec("3"), decimal.Zero, nil)
	wd.On("GetWorkDaysSplitByApril", ctx, model.DayLengthFull, noWorkingTime.StartDate, noWorkingTime.EndDate, "p1").
		Return(decimal.Zero, decimal.Zero, model.ErrNoValidWorkingTime)
	wd.On("GetWorkDaysSplitByApril", ctx, model.DayLengthFull, may.StartDate, may.EndDate, "p1").
		Return(decimal.Zero, dec("4"), nil)
}

func TestVacationDaysService_GetVacationDaysLeft(t *testing.T) {
	ctx := context.Background()
	apps := new(repoMocks.MockApplicationRepository)
	wd := new(mocks.MockWorkDaysService)
	setupUsedDays(ctx, apps, wd)

	svc := service.NewVacationDaysService(apps, wd)

	before, after, err := svc.GetUsedDaysBeforeAndAfterApril(ctx, account2024())
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(before))
	assert.True(t, dec("4").Equal(after))

	left, err := svc.GetVacationDaysLeft(ctx, account2024(), nil)
	require.NoError(t, err)
	assert.True(t, dec("28").Equal(left.VacationDays), "vacation days %s", left.VacationDays)
	assert.True(t, left.RemainingVacationDays.IsZero())
	assert.True(t, left.RemainingVacationDaysNotExpiring.IsZero())
	assert.True(t, left.VacationDaysUsedNextYear.IsZero())

	total, err := svc.CalculateTotalLeftVacationDays(ctx, account2024())
	require.NoError(t, err)
	assert.True(t, dec("28").Equal(total))

	used, err := svc.GetRemainingVacationDaysAlreadyUsed(ctx, account2024())
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(used))

	wd.AssertNotCalled(t, "GetWorkDaysSplitByApril", ctx, model.DayLengthFull,
		period.Date(2024, time.February, 5), period.Date(2024, time.February, 5), "p1")
}

func TestVacationDaysService_GetRemainingVacationDaysAlreadyUsed_NoAccount(t *testing.T) {
	svc := service.NewVacationDaysService(new(repoMocks.MockApplicationRepository), new(mocks.MockWorkDaysService))

	used, err := svc.GetRemainingVacationDaysAlreadyUsed(context.Background(), nil)

	assert.NoError(t, err)
	assert.True(t, used.IsZero())
}
