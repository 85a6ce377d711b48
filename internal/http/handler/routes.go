package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

// Deps are the collaborators of the HTTP routes.
type Deps struct {
	DB        *sql.DB
	Tokens    middleware.TokenVerifier
	Blacklist auth.TokenBlacklist

	Auth         service.AuthService
	Persons      service.PersonService
	Departments  service.DepartmentService
	Accounts     service.AccountService
	VacationDays service.VacationDaysService
	WorkingTimes service.WorkingTimeService
	WorkDays     service.WorkDaysService
	Applications service.ApplicationService
	SickNotes    service.SickNoteService
	Attachments  service.SickNoteAttachmentService
	Settings     service.SettingsService
	Absences     service.AbsenceService
	Availability service.AvailabilityService
	Holidays     service.PublicHolidaysService
	Calendars    service.CalendarService
}

func (d Deps) info() InfoServices {
	return InfoServices{
		Persons:      d.Persons,
		Departments:  d.Departments,
		Applications: d.Applications,
		Absences:     d.Absences,
		Availability: d.Availability,
		Holidays:     d.Holidays,
		WorkDays:     d.WorkDays,
		WorkingTimes: d.WorkingTimes,
		Settings:     d.Settings,
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessCheck())

	// iCal feeds are protected by their secret, not by a token.
	web := app.Group("/web")
	web.Get("/company/persons/:id/calendar", CalendarFeed(d.Calendars, model.CalendarKindCompany))
	web.Get("/persons/:id/calendar", CalendarFeed(d.Calendars, model.CalendarKindPersonal))

	api := app.Group("/api")
	api.Post("/auth/login", Login(d.Auth))

	api.Use(middleware.Authenticate(d.Tokens, d.Blacklist, d.Persons))
	office := middleware.RequireRole(model.RoleOffice)
	privileged := middleware.RequireRole(model.RoleOffice, model.RoleBoss, model.RoleDepartmentHead, model.RoleSecondStageAuthority)

	api.Post("/auth/logout", Logout(d.Auth))
	api.Get("/me", Me())

	persons := api.Group("/persons")
	persons.Get("/", privileged, ListPersons(d.Persons))
	persons.Post("/", office, CreatePerson(d.Persons))
	persons.Get("/:id", GetPerson(d.Persons, d.Departments))
	persons.Put("/:id", office, UpdatePerson(d.Persons))
	persons.Get("/:id/accounts/:year", GetAccount(d.Persons, d.Departments, d.Accounts, d.VacationDays))
	persons.Put("/:id/accounts/:year", office, PutAccount(d.Accounts))
	persons.Get("/:id/workingtime", GetWorkingTimes(d.Persons, d.Departments, d.WorkingTimes))
	persons.Put("/:id/workingtime", office, PutWorkingTime(d.WorkingTimes))
	persons.Post("/:id/calendar/:kind", CreateCalendar(d.Calendars))
	persons.Get("/:id/calendar/:kind", GetCalendar(d.Calendars))
	persons.Delete("/:id/calendar/:kind", DeleteCalendar(d.Calendars))

	departments := api.Group("/departments")
	departments.Get("/", ListDepartments(d.Departments))
	departments.Get("/:id", GetDepartment(d.Departments))
	departments.Post("/", office, CreateDepartment(d.Departments))
	departments.Put("/:id", office, UpdateDepartment(d.Departments))
	departments.Delete("/:id", office, DeleteDepartment(d.Departments))

	apps := api.Group("/applications")
	apps.Get("/", privileged, WaitingApplications(d.Applications))
	apps.Post("/", Apply(d.Applications))
	apps.Get("/:id", GetApplication(d.Applications, d.Persons, d.Departments))
	apps.Post("/:id/allow", privileged, AllowApplication(d.Applications))
	apps.Post("/:id/reject", privileged, RejectApplication(d.Applications))
	apps.Post("/:id/cancel", CancelApplication(d.Applications))
	apps.Post("/:id/refer", privileged, ReferApplication(d.Applications))
	apps.Post("/:id/remind", RemindApplication(d.Applications))
	apps.Get("/:id/comments", ApplicationComments(d.Applications, d.Persons, d.Departments))
	apps.Post("/:id/comments", AddApplicationComment(d.Applications))

	sick := api.Group("/sicknotes")
	sick.Get("/", ListSickNotes(d.SickNotes, d.Persons, d.Departments))
	sick.Post("/", office, CreateSickNote(d.SickNotes))
	sick.Get("/:id", GetSickNote(d.SickNotes, d.Persons, d.Departments))
	sick.Put("/:id", office, UpdateSickNote(d.SickNotes))
	sick.Post("/:id/cancel", office, CancelSickNote(d.SickNotes))
	sick.Post("/:id/convert", office, ConvertSickNote(d.SickNotes))
	sick.Get("/:id/comments", SickNoteComments(d.SickNotes, d.Persons, d.Departments))
	sick.Post("/:id/attachments", office, UploadAttachment(d.Attachments))
	sick.Get("/:id/attachments", ListAttachments(d.Attachments, d.SickNotes, d.Persons, d.Departments))
	sick.Get("/:id/attachments/:attachmentId", AttachmentDownloadURL(d.Attachments, d.SickNotes, d.Persons, d.Departments))
	sick.Delete("/:id/attachments/:attachmentId", office, DeleteAttachment(d.Attachments))

	api.Get("/settings", office, GetSettings(d.Settings))
	api.Put("/settings", office, SaveSettings(d.Settings, d.Calendars))

	info := d.info()
	api.Get("/vacations", Vacations(info))
	api.Get("/absences", Absences(info))
	api.Get("/holidays", Holidays(info))
	api.Get("/workdays", WorkDays(info))
	api.Get("/availabilities", Availabilities(info))
}
