package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
)

// WorkingTimeService maintains the weekly working times of persons.
type WorkingTimeService interface {
	// Touch updates the working time starting at validFrom or creates it. The
	// given weekdays become FULL, all others ZERO. A nil override removes it.
	Touch(ctx context.Context, workingDays []time.Weekday, federalStateOverride *model.FederalState, validFrom time.Time, personID string) (*model.WorkingTime, error)

	GetByPerson(ctx context.Context, personID string) ([]model.WorkingTime, error)

	// GetByPersonAndValidityDateEqualsOrMinorDate returns the working time valid
	// at date or model.ErrNoValidWorkingTime.
	GetByPersonAndValidityDateEqualsOrMinorDate(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error)

	// GetFederalStateForPerson returns the override of the working time valid at
	// date, falling back to the federal state of the settings.
	GetFederalStateForPerson(ctx context.Context, personID string, date time.Time) (model.FederalState, error)

	// CreateDefaultWorkingTime stores the working time of the settings, valid from
	// the first day of the current year.
	CreateDefaultWorkingTime(ctx context.Context, personID string) (*model.WorkingTime, error)
}

type workingTimeService struct {
	repo     repository.WorkingTimeRepository
	settings SettingsService
}

func NewWorkingTimeService(repo repository.WorkingTimeRepository, settings SettingsService) WorkingTimeService {
	return &workingTimeService{repo: repo, settings: settings}
}

func (s *workingTimeService) Touch(ctx context.Context, workingDays []time.Weekday, federalStateOverride *model.FederalState,
	validFrom time.Time, personID string) (*model.WorkingTime, error) {
	if personID == "" {
		return nil, ErrIDRequired
	}
	validFrom = period.DateOf(validFrom)

	existing, err := s.repo.FindByPersonAndValidFrom(ctx, personID, validFrom)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find working time: %w", err)
	}

	wt := existing
	if wt == nil {
		wt = &model.WorkingTime{ID: uuid.New().String(), PersonID: personID, ValidFrom: validFrom}
	}
	wt.SetWorkingDays(workingDays, model.DayLengthFull)
	wt.FederalStateOverride = federalStateOverride

	if existing != nil {
		return s.repo.Update(ctx, wt)
	}
	return s.repo.Create(ctx, wt)
}

func (s *workingTimeService) GetByPerson(ctx context.Context, personID string) ([]model.WorkingTime, error) {
	return s.repo.FindByPerson(ctx, personID)
}

func (s *workingTimeService) GetByPersonAndValidityDateEqualsOrMinorDate(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error) {
	wt, err := s.repo.FindByPersonValidAt(ctx, personID, period.DateOf(date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNoValidWorkingTime
	}
	return wt, err
}

func (s *workingTimeService) GetFederalStateForPerson(ctx context.Context, personID string, date time.Time) (model.FederalState, error) {
	wt, err := s.GetByPersonAndValidityDateEqualsOrMinorDate(ctx, personID, date)
	switch {
	case err == nil && wt.FederalStateOverride != nil:
		return *wt.FederalStateOverride, nil
	case err != nil && !errors.Is(err, model.ErrNoValidWorkingTime):
		return "", err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.WorkingTimeSettings.FederalState, nil
}

func (s *workingTimeService) CreateDefaultWorkingTime(ctx context.Context, personID string) (*model.WorkingTime, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	wt := settings.WorkingTimeSettings.WorkingTime()
	wt.ID = uuid.New().String()
	wt.PersonID = personID
	wt.ValidFrom = period.FirstDayOfYear(today().Year())
	return s.repo.Create(ctx, &wt)
}
