package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
)

type mockSettings struct{ mock.Mock }

func (m *mockSettings) GetSettings(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

type mockWorkingTimes struct{ mock.Mock }

func (m *mockWorkingTimes) GetByPersonAndValidityDateEqualsOrMinorDate(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error) {
	args := m.Called(ctx, personID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

type mockWorkDays struct{ mock.Mock }

func (m *mockWorkDays) GetWorkDays(ctx context.Context, dayLength model.DayLength, start, end time.Time, personID string) (decimal.Decimal, error) {
	args := m.Called(ctx, dayLength, start, end, personID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockOverlap struct{ mock.Mock }

func (m *mockOverlap) CheckOverlap(ctx context.Context, app *model.Application) (model.OverlapCase, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(model.OverlapCase), args.Error(1)
}

func (m *mockOverlap) CheckOverlapForSickNote(ctx context.Context, s *model.SickNote) (model.OverlapCase, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(model.OverlapCase), args.Error(1)
}

type mockCalculation struct{ mock.Mock }

func (m *mockCalculation) CheckApplication(ctx context.Context, app *model.Application) (bool, error) {
	args := m.Called(ctx, app)
	return args.Bool(0), args.Error(1)
}

type applicationMocks struct {
	settings     *mockSettings
	workingTimes *mockWorkingTimes
	workDays     *mockWorkDays
	overlap      *mockOverlap
	calculation  *mockCalculation
}

func TestApplicationValidator_Validate(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	start := period.Date(2024, 3, 11)
	end := period.Date(2024, 3, 15)

	validApp := func() *model.Application {
		return &model.Application{
			PersonID:     "p-1",
			StartDate:    start,
			EndDate:      end,
			VacationType: model.VacationHoliday,
			DayLength:    model.DayLengthFull,
		}
	}
	persisted := func(m applicationMocks) {
		m.workingTimes.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(&model.WorkingTime{}, nil)
		m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, start, end, "p-1").Return(decimal.NewFromInt(5), nil)
	}

	tests := []struct {
		name       string
		modify     func(a *model.Application, s *model.Settings)
		comment    string
		setupMocks func(m applicationMocks)
		wantGlobal string
		wantField  string
		wantCode   string
		wantErr    bool
	}{
		{
			name: "valid holiday",
			setupMocks: func(m applicationMocks) {
				persisted(m)
				m.overlap.On("CheckOverlap", ctx, mock.Anything).Return(model.NoOverlapping, nil)
				m.calculation.On("CheckApplication", ctx, mock.Anything).Return(true, nil)
			},
		},
		{
			name:      "start date mandatory",
			modify:    func(a *model.Application, s *model.Settings) { a.StartDate = time.Time{} },
			wantField: "start_date",
			wantCode:  ErrorMandatory,
		},
		{
			name:       "end before start",
			modify:     func(a *model.Application, s *model.Settings) { a.EndDate = period.Date(2024, 3, 10) },
			wantGlobal: ErrorInvalidPeriod,
		},
		{
			name:       "half day spanning several days",
			modify:     func(a *model.Application, s *model.Settings) { a.DayLength = model.DayLengthMorning },
			wantGlobal: ErrorHalfDayPeriod,
		},
		{
			name: "half days not allowed",
			modify: func(a *model.Application, s *model.Settings) {
				a.DayLength = model.DayLengthNoon
				a.EndDate = a.StartDate
				s.ApplicationSettings.AllowHalfDays = false
			},
			wantField: "day_length",
			wantCode:  ErrorHalfDayNotAllowed,
		},
		{
			name: "too far in the past",
			modify: func(a *model.Application, s *model.Settings) {
				a.StartDate = period.Date(2023, 2, 28)
				a.EndDate = period.Date(2023, 3, 2)
			},
			wantGlobal: ErrorTooFarInThePast,
		},
		{
			name: "too far in the future",
			modify: func(a *model.Application, s *model.Settings) {
				a.StartDate = period.Date(2025, 3, 1)
				a.EndDate = period.Date(2025, 3, 2)
			},
			wantGlobal: ErrorTooFarInTheFuture,
		},
		{
			name:      "special leave without reason",
			modify:    func(a *model.Application, s *model.Settings) { a.VacationType = model.VacationSpecialLeave },
			wantField: "reason",
			wantCode:  ErrorMissingReasonForSpecialLeave,
		},
		{
			name: "overtime without hours",
			modify: func(a *model.Application, s *model.Settings) {
				a.VacationType = model.VacationOvertime
				s.OvertimeSettings.OvertimeActive = true
			},
			wantField: "hours",
			wantCode:  ErrorMissingHoursForOvertime,
		},
		{
			name: "negative hours",
			modify: func(a *model.Application, s *model.Settings) {
				h := decimal.NewFromInt(-1)
				a.Hours = &h
			},
			wantField: "hours",
			wantCode:  ErrorInvalidHoursForOvertime,
		},
		{
			name:      "comment too long",
			modify:    func(a *model.Application, s *model.Settings) {},
			comment:   string(make([]byte, 201)),
			wantField: "comment.text",
			wantCode:  ErrorTooManyChars,
		},
		{
			name: "no valid working time",
			setupMocks: func(m applicationMocks) {
				m.workingTimes.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(nil, model.ErrNoValidWorkingTime)
			},
			wantGlobal: ErrorNoValidWorkingTime,
		},
		{
			name: "zero days",
			setupMocks: func(m applicationMocks) {
				m.workingTimes.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(&model.WorkingTime{}, nil)
				m.workDays.On("GetWorkDays", ctx, model.DayLengthFull, start, end, "p-1").Return(decimal.Zero, nil)
			},
			wantGlobal: ErrorZeroDays,
		},
		{
			name: "overlapping",
			setupMocks: func(m applicationMocks) {
				persisted(m)
				m.overlap.On("CheckOverlap", ctx, mock.Anything).Return(model.PartlyOverlapping, nil)
			},
			wantGlobal: ErrorOverlap,
		},
		{
			name: "not enough vacation days",
			setupMocks: func(m applicationMocks) {
				persisted(m)
				m.overlap.On("CheckOverlap", ctx, mock.Anything).Return(model.NoOverlapping, nil)
				m.calculation.On("CheckApplication", ctx, mock.Anything).Return(false, nil)
			},
			wantGlobal: ErrorNotEnoughVacationDays,
		},
		{
			name:   "unpaid leave skips vacation days check",
			modify: func(a *model.Application, s *model.Settings) { a.VacationType = model.VacationUnpaidLeave },
			setupMocks: func(m applicationMocks) {
				persisted(m)
				m.overlap.On("CheckOverlap", ctx, mock.Anything).Return(model.NoOverlapping, nil)
			},
		},
		{
			name: "lookup failure",
			setupMocks: func(m applicationMocks) {
				m.workingTimes.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := applicationMocks{
				settings:     new(mockSettings),
				workingTimes: new(mockWorkingTimes),
				workDays:     new(mockWorkDays),
				overlap:      new(mockOverlap),
				calculation:  new(mockCalculation),
			}
			settings := model.DefaultSettings()
			app := validApp()
			if tt.modify != nil {
				tt.modify(app, &settings)
			}
			m.settings.On("GetSettings", ctx).Return(&settings, nil)
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			v := NewApplicationValidator(m.settings, m.workingTimes, m.workDays, m.overlap, m.calculation)
			v.now = func() time.Time { return fixedNow }

			errs, err := v.Validate(ctx, app, tt.comment)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch {
			case tt.wantGlobal != "":
				assert.True(t, errs.HasGlobalError(tt.wantGlobal), errs.Error())
			case tt.wantField != "":
				assert.True(t, errs.HasFieldError(tt.wantField, tt.wantCode), errs.Error())
			default:
				assert.False(t, errs.HasErrors(), errs.Error())
			}

			m.workingTimes.AssertExpectations(t)
			m.workDays.AssertExpectations(t)
			m.overlap.AssertExpectations(t)
			m.calculation.AssertExpectations(t)
		})
	}
}

func TestSickNoteValidator_Validate(t *testing.T) {
	ctx := context.Background()
	start := period.Date(2024, 4, 8)
	end := period.Date(2024, 4, 12)
	day := func(d int) *time.Time {
		v := period.Date(2024, 4, d)
		return &v
	}

	tests := []struct {
		name       string
		modify     func(s *model.SickNote)
		setupMocks func(wt *mockWorkingTimes, o *mockOverlap)
		wantGlobal string
		wantField  string
		wantCode   string
	}{
		{
			name: "valid",
			setupMocks: func(wt *mockWorkingTimes, o *mockOverlap) {
				wt.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(&model.WorkingTime{}, nil)
				o.On("CheckOverlapForSickNote", ctx, mock.Anything).Return(model.NoOverlapping, nil)
			},
		},
		{
			name:      "type mandatory",
			modify:    func(s *model.SickNote) { s.Type = "" },
			wantField: "type",
			wantCode:  ErrorMandatory,
		},
		{
			name:      "half day period",
			modify:    func(s *model.SickNote) { s.DayLength = model.DayLengthMorning },
			wantField: "end_date",
			wantCode:  ErrorSickNoteHalfDayPeriod,
		},
		{
			name:      "aub end missing",
			modify:    func(s *model.SickNote) { s.AubStartDate = day(8) },
			wantField: "aub_end_date",
			wantCode:  ErrorMandatory,
		},
		{
			name: "aub outside sick note",
			modify: func(s *model.SickNote) {
				s.AubStartDate = day(7)
				s.AubEndDate = day(9)
			},
			wantField: "aub_start_date",
			wantCode:  ErrorAubInvalidPeriod,
		},
		{
			name: "no working time",
			setupMocks: func(wt *mockWorkingTimes, o *mockOverlap) {
				wt.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(nil, model.ErrNoValidWorkingTime)
			},
			wantGlobal: ErrorSickNoteNoValidWorkingTime,
		},
		{
			name: "overlap",
			setupMocks: func(wt *mockWorkingTimes, o *mockOverlap) {
				wt.On("GetByPersonAndValidityDateEqualsOrMinorDate", ctx, "p-1", start).Return(&model.WorkingTime{}, nil)
				o.On("CheckOverlapForSickNote", ctx, mock.Anything).Return(model.FullyOverlapping, nil)
			},
			wantGlobal: ErrorOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wt := new(mockWorkingTimes)
			o := new(mockOverlap)
			if tt.setupMocks != nil {
				tt.setupMocks(wt, o)
			}
			note := &model.SickNote{
				PersonID:  "p-1",
				Type:      model.SickNoteTypeSick,
				StartDate: start,
				EndDate:   end,
				DayLength: model.DayLengthFull,
			}
			if tt.modify != nil {
				tt.modify(note)
			}

			errs, err := NewSickNoteValidator(wt, o).Validate(ctx, note, "")

			require.NoError(t, err)
			switch {
			case tt.wantGlobal != "":
				assert.True(t, errs.HasGlobalError(tt.wantGlobal), errs.Error())
			case tt.wantField != "":
				assert.True(t, errs.HasFieldError(tt.wantField, tt.wantCode), errs.Error())
			default:
				assert.False(t, errs.HasErrors(), errs.Error())
			}
			wt.AssertExpectations(t)
			o.AssertExpectations(t)
		})
	}
}
