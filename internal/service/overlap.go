package service

import (
	"context"
	"time"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
)

// OverlapService compares new absences with the existing absences of a person.
type OverlapService interface {
	CheckOverlap(ctx context.Context, app *model.Application) (model.OverlapCase, error)
	CheckOverlapForSickNote(ctx context.Context, sickNote *model.SickNote) (model.OverlapCase, error)
}

type overlapService struct {
	applications repository.ApplicationRepository
	sickNotes    repository.SickNoteRepository
}

func NewOverlapService(applications repository.ApplicationRepository, sickNotes repository.SickNoteRepository) OverlapService {
	return &overlapService{applications: applications, sickNotes: sickNotes}
}

// occupied is an existing absence of the person.
type occupied struct {
	start, end time.Time
	dayLength  model.DayLength
}

func (s *overlapService) CheckOverlap(ctx context.Context, app *model.Application) (model.OverlapCase, error) {
	existing, err := s.absences(ctx, app.PersonID, app.StartDate, app.EndDate, app.ID, "")
	if err != nil {
		return "", err
	}
	return overlapCase(app.StartDate, app.EndDate, app.DayLength, existing), nil
}

func (s *overlapService) CheckOverlapForSickNote(ctx context.Context, sickNote *model.SickNote) (model.OverlapCase, error) {
	existing, err := s.absences(ctx, sickNote.PersonID, sickNote.StartDate, sickNote.EndDate, "", sickNote.ID)
	if err != nil {
		return "", err
	}
	return overlapCase(sickNote.StartDate, sickNote.EndDate, sickNote.DayLength, existing), nil
}

func (s *overlapService) absences(ctx context.Context, personID string, start, end time.Time, skipApplication, skipSickNote string) ([]occupied, error) {
	apps, err := s.applications.FindByPersonAndPeriod(ctx, personID, start, end, model.ActiveApplicationStatuses...)
	if err != nil {
		return nil, err
	}
	notes, err := s.sickNotes.FindByPersonAndPeriod(ctx, personID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]occupied, 0, len(apps)+len(notes))
	for _, a := range apps {
		if a.ID == skipApplication && skipApplication != "" {
			continue
		}
		out = append(out, occupied{start: a.StartDate, end: a.EndDate, dayLength: a.DayLength})
	}
	for _, n := range notes {
		if !n.IsActive() || (n.ID == skipSickNote && skipSickNote != "") {
			continue
		}
		out = append(out, occupied{start: n.StartDate, end: n.EndDate, dayLength: n.DayLength})
	}
	return out, nil
}

func overlapCase(start, end time.Time, dayLength model.DayLength, existing []occupied) model.OverlapCase {
	if len(existing) == 0 {
		return model.NoOverlapping
	}

	if dayLength.IsHalfDay() {
		for _, e := range existing {
			if !period.Overlaps(start, end, e.start, e.end) {
				continue
			}
			if e.dayLength == model.DayLengthFull || e.dayLength == dayLength {
				return model.FullyOverlapping
			}
		}
		return model.NoOverlapping
	}

	days := period.Days(start, end)
	taken := 0
	for _, day := range days {
		for _, e := range existing {
			if period.Overlaps(day, day, e.start, e.end) {
				taken++
				break
			}
		}
	}
	switch {
	case taken == 0:
		return model.NoOverlapping
	case taken == len(days):
		return model.FullyOverlapping
	default:
		return model.PartlyOverlapping
	}
}
