package ical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
)

func absence(start, end time.Time, allDay bool) model.Absence {
	return model.Absence{
		PersonID:   "p1",
		PersonName: "Marlene Muster",
		Kind:       model.AbsenceVacation,
		Start:      start,
		End:        end,
		AllDay:     allDay,
	}
}

func TestGenerateCalendar(t *testing.T) {
	tests := []struct {
		name     string
		absences []model.Absence
		contains []string
	}{
		{
			name: "one full day",
			absences: []model.Absence{
				absence(time.Date(2019, 3, 26, 0, 0, 0, 0, time.UTC), time.Date(2019, 3, 27, 0, 0, 0, 0, time.UTC), true),
			},
			contains: []string{
				"X-MICROSOFT-CDO-ALLDAYEVENT:TRUE",
				"DTSTART;VALUE=DATE:20190326",
				"DTEND;VALUE=DATE:20190327",
			},
		},
		{
			name: "multiple full days end exclusive",
			absences: []model.Absence{
				absence(time.Date(2019, 3, 26, 0, 0, 0, 0, time.UTC), time.Date(2019, 4, 2, 0, 0, 0, 0, time.UTC), true),
			},
			contains: []string{
				"DTSTART;VALUE=DATE:20190326",
				"DTEND;VALUE=DATE:20190402",
			},
		},
		{
			name: "half day morning",
			absences: []model.Absence{
				absence(time.Date(2019, 4, 26, 8, 0, 0, 0, time.UTC), time.Date(2019, 4, 26, 12, 0, 0, 0, time.UTC), false),
			},
			contains: []string{
				"DTSTART:20190426T080000Z",
				"DTEND:20190426T120000Z",
			},
		},
		{
			name: "half day noon converted to utc",
			absences: []model.Absence{
				absence(
					time.Date(2019, 5, 26, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
					time.Date(2019, 5, 26, 18, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
					false,
				),
			},
			contains: []string{
				"DTSTART:20190526T120000Z",
				"DTEND:20190526T160000Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := GenerateCalendar("Abwesenheitskalender", tt.absences)
			require.NoError(t, err)

			for _, s := range []string{
				"VERSION:2.0",
				"CALSCALE:GREGORIAN",
				"PRODID:" + productID,
				"X-MICROSOFT-CALSCALE:GREGORIAN",
				"X-WR-CALNAME:Abwesenheitskalender",
				"SUMMARY:Marlene Muster abwesend",
			} {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestGenerateCalendar_NoAbsences(t *testing.T) {
	out, err := GenerateCalendar("Abwesenheitskalender", nil)

	assert.ErrorIs(t, err, ErrNoAbsences)
	assert.Empty(t, out)
}
