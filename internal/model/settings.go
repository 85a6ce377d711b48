package model

// Settings holds the system wide configuration of the leave management.
// Numeric fields are pointers: nil means the value was not provided.
type Settings struct {
	ID                  int                 `json:"id"`
	AccountSettings     AccountSettings     `json:"account_settings"`
	ApplicationSettings ApplicationSettings `json:"application_settings"`
	SickNoteSettings    SickNoteSettings    `json:"sick_note_settings"`
	WorkingTimeSettings WorkingTimeSettings `json:"working_time_settings"`
	OvertimeSettings    OvertimeSettings    `json:"overtime_settings"`
	TimeSettings        TimeSettings        `json:"time_settings"`
	CalendarSettings    CalendarSettings    `json:"calendar_settings"`
}

type AccountSettings struct {
	MaximumAnnualVacationDays *int `json:"maximum_annual_vacation_days"`
	DefaultVacationDays       *int `json:"default_vacation_days"`
}

type ApplicationSettings struct {
	MaximumMonthsToApplyForLeaveInAdvance   *int `json:"maximum_months_to_apply_for_leave_in_advance"`
	AllowHalfDays                           bool `json:"allow_half_days"`
	RemindForWaitingApplications            bool `json:"remind_for_waiting_applications"`
	DaysBeforeRemindForWaitingApplications  *int `json:"days_before_remind_for_waiting_applications"`
	RemindForUpcomingApplications           bool `json:"remind_for_upcoming_applications"`
	DaysBeforeRemindForUpcomingApplications *int `json:"days_before_remind_for_upcoming_applications"`
}

type SickNoteSettings struct {
	MaximumSickPayDays                 *int `json:"maximum_sick_pay_days"`
	DaysBeforeEndOfSickPayNotification *int `json:"days_before_end_of_sick_pay_notification"`
}

type WorkingTimeSettings struct {
	Monday                         DayLength    `json:"monday"`
	Tuesday                        DayLength    `json:"tuesday"`
	Wednesday                      DayLength    `json:"wednesday"`
	Thursday                       DayLength    `json:"thursday"`
	Friday                         DayLength    `json:"friday"`
	Saturday                       DayLength    `json:"saturday"`
	Sunday                         DayLength    `json:"sunday"`
	WorkingDurationForChristmasEve DayLength    `json:"working_duration_for_christmas_eve"`
	WorkingDurationForNewYearsEve  DayLength    `json:"working_duration_for_new_years_eve"`
	FederalState                   FederalState `json:"federal_state"`
}

// WorkingTime returns the default working time described by the settings.
func (s WorkingTimeSettings) WorkingTime() WorkingTime {
	return WorkingTime{
		Monday:    s.Monday,
		Tuesday:   s.Tuesday,
		Wednesday: s.Wednesday,
		Thursday:  s.Thursday,
		Friday:    s.Friday,
		Saturday:  s.Saturday,
		Sunday:    s.Sunday,
	}
}

type OvertimeSettings struct {
	OvertimeActive  bool `json:"overtime_active"`
	MaximumOvertime *int `json:"maximum_overtime"`
	MinimumOvertime *int `json:"minimum_overtime"`
}

// TimeSettings delimits the working day; half day absences are split at its middle.
type TimeSettings struct {
	TimeZoneID       string `json:"time_zone_id"`
	WorkDayBeginHour *int   `json:"work_day_begin_hour"`
	WorkDayEndHour   *int   `json:"work_day_end_hour"`
}

// CalendarSettings configures a calendar provider. Only validated and stored.
type CalendarSettings struct {
	Provider         string                   `json:"provider"`
	ExchangeSettings ExchangeCalendarSettings `json:"exchange_settings"`
	GoogleSettings   GoogleCalendarSettings   `json:"google_settings"`

	// RestrictCompanyCalendar limits company calendars to CompanyCalendarRoles.
	RestrictCompanyCalendar bool `json:"restrict_company_calendar"`
}

// CompanyCalendarRoles may hold a company calendar while it is restricted.
var CompanyCalendarRoles = []Role{RoleBoss, RoleOffice}

const (
	CalendarProviderNone     = "NoopCalendarSyncProvider"
	CalendarProviderExchange = "ExchangeCalendarProvider"
	CalendarProviderGoogle   = "GoogleCalendarSyncProvider"
)

type ExchangeCalendarSettings struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	Calendar             string `json:"calendar"`
	TimeZoneID           string `json:"time_zone_id"`
	SendInvitationActive bool   `json:"send_invitation_active"`
}

type GoogleCalendarSettings struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	CalendarID   string `json:"calendar_id"`
}

func intPtr(i int) *int { return &i }

// DefaultSettings returns the settings used until an office user changes them.
func DefaultSettings() Settings {
	return Settings{
		ID: 1,
		AccountSettings: AccountSettings{
			MaximumAnnualVacationDays: intPtr(40),
			DefaultVacationDays:       intPtr(20),
		},
		ApplicationSettings: ApplicationSettings{
			MaximumMonthsToApplyForLeaveInAdvance:   intPtr(12),
			AllowHalfDays:                           true,
			DaysBeforeRemindForWaitingApplications:  intPtr(2),
			DaysBeforeRemindForUpcomingApplications: intPtr(3),
		},
		SickNoteSettings: SickNoteSettings{
			MaximumSickPayDays:                 intPtr(42),
			DaysBeforeEndOfSickPayNotification: intPtr(7),
		},
		WorkingTimeSettings: WorkingTimeSettings{
			Monday:                         DayLengthFull,
			Tuesday:                        DayLengthFull,
			Wednesday:                      DayLengthFull,
			Thursday:                       DayLengthFull,
			Friday:                         DayLengthFull,
			Saturday:                       DayLengthZero,
			Sunday:                         DayLengthZero,
			WorkingDurationForChristmasEve: DayLengthMorning,
			WorkingDurationForNewYearsEve:  DayLengthMorning,
			FederalState:                   BadenWuerttemberg,
		},
		OvertimeSettings: OvertimeSettings{
			MaximumOvertime: intPtr(100),
			MinimumOvertime: intPtr(5),
		},
		TimeSettings: TimeSettings{
			TimeZoneID:       "Europe/Berlin",
			WorkDayBeginHour: intPtr(8),
			WorkDayEndHour:   intPtr(16),
		},
		CalendarSettings: CalendarSettings{
			Provider: CalendarProviderNone,
			ExchangeSettings: ExchangeCalendarSettings{
				TimeZoneID: "Europe/Berlin",
			},
		},
	}
}
