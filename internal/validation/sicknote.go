package validation

import (
	"context"
	"errors"

	"urlaubsverwaltung/internal/model"
)

const (
	ErrorSickNoteHalfDayPeriod      = "sicknote.error.halfDayPeriod"
	ErrorAubInvalidPeriod           = "sicknote.error.aubInvalidPeriod"
	ErrorSickNoteNoValidWorkingTime = "sicknote.error.noValidWorkingTime"
)

// SickNoteOverlapChecker compares a sick note with the existing absences of its person.
type SickNoteOverlapChecker interface {
	CheckOverlapForSickNote(ctx context.Context, sickNote *model.SickNote) (model.OverlapCase, error)
}

// SickNoteValidator validates sick notes before they are created or edited.
type SickNoteValidator struct {
	workingTimes WorkingTimeFinder
	overlap      SickNoteOverlapChecker
}

func NewSickNoteValidator(workingTimes WorkingTimeFinder, overlap SickNoteOverlapChecker) *SickNoteValidator {
	return &SickNoteValidator{workingTimes: workingTimes, overlap: overlap}
}

func (v *SickNoteValidator) Validate(ctx context.Context, s *model.SickNote, comment string) (*Errors, error) {
	errs := &Errors{}

	if s.PersonID == "" {
		errs.RejectValue("person_id", ErrorMandatory)
	}
	if !s.Type.Valid() {
		errs.RejectValue("type", ErrorMandatory)
	}
	if !s.DayLength.Valid() || s.DayLength == model.DayLengthZero {
		errs.RejectValue("day_length", ErrorMandatory)
	}
	validateSickNotePeriod(s, errs)
	errs.Merge("comment", ValidateComment(comment, false))

	if errs.HasErrors() {
		return errs, nil
	}

	if _, err := v.workingTimes.GetByPersonAndValidityDateEqualsOrMinorDate(ctx, s.PersonID, s.StartDate); err != nil {
		if errors.Is(err, model.ErrNoValidWorkingTime) {
			errs.Reject(ErrorSickNoteNoValidWorkingTime)
			return errs, nil
		}
		return nil, err
	}

	overlap, err := v.overlap.CheckOverlapForSickNote(ctx, s)
	if err != nil {
		return nil, err
	}
	if overlap != model.NoOverlapping {
		errs.Reject(ErrorOverlap)
	}
	return errs, nil
}

func validateSickNotePeriod(s *model.SickNote, errs *Errors) {
	if s.StartDate.IsZero() {
		errs.RejectValue("start_date", ErrorMandatory)
	}
	if s.EndDate.IsZero() {
		errs.RejectValue("end_date", ErrorMandatory)
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return
	}
	if s.EndDate.Before(s.StartDate) {
		errs.RejectValue("end_date", ErrorInvalidPeriod)
		return
	}
	if s.DayLength.IsHalfDay() && !s.StartDate.Equal(s.EndDate) {
		errs.RejectValue("end_date", ErrorSickNoteHalfDayPeriod)
	}

	aubStart, aubEnd := s.AubStartDate, s.AubEndDate
	switch {
	case aubStart == nil && aubEnd == nil:
		return
	case aubStart == nil:
		errs.RejectValue("aub_start_date", ErrorMandatory)
	case aubEnd == nil:
		errs.RejectValue("aub_end_date", ErrorMandatory)
	case aubEnd.Before(*aubStart):
		errs.RejectValue("aub_end_date", ErrorInvalidPeriod)
	case aubStart.Before(s.StartDate) || aubEnd.After(s.EndDate):
		errs.RejectValue("aub_start_date", ErrorAubInvalidPeriod)
	}
}
