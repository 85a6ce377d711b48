package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"urlaubsverwaltung/internal/config"
	"urlaubsverwaltung/internal/database"
	"urlaubsverwaltung/internal/database/migration"
	"urlaubsverwaltung/internal/event"
	handlers "urlaubsverwaltung/internal/http/handler"
	"urlaubsverwaltung/internal/logger"
	"urlaubsverwaltung/internal/repository/postgres"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/storage"
	"urlaubsverwaltung/internal/validation"
)

const settingsCacheTTL = time.Minute

// app holds the long-lived resources shared by all commands.
type app struct {
	cfg *config.AppConfig
	log *zap.Logger
	db  *sql.DB
}

func newApp(ctx context.Context) (*app, error) {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.Log)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	service.SetLocation(cfg.Location())
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) migrate(ctx context.Context) error {
	return migration.EnsureMigrated(ctx, a.db, a.log, a.cfg.Database.Host)
}

// services wires repositories and services. store and events may be nil for
// commands that do not serve HTTP; authentication is left to the caller.
func (a *app) services(store storage.Storage, events event.Publisher) handlers.Deps {
	persons := a.persons()
	accountRepo := postgres.NewAccountPostgres(a.db)
	workingTimeRepo := postgres.NewWorkingTimePostgres(a.db)
	departmentRepo := postgres.NewDepartmentPostgres(a.db)
	applicationRepo := postgres.NewApplicationPostgres(a.db)
	applicationComments := postgres.NewApplicationCommentPostgres(a.db)
	sickNoteRepo := postgres.NewSickNotePostgres(a.db)
	sickNoteComments := postgres.NewSickNoteCommentPostgres(a.db)
	attachmentRepo := postgres.NewSickNoteAttachmentPostgres(a.db)
	settingsRepo := postgres.NewSettingsPostgres(a.db)
	calendarRepo := postgres.NewCalendarPostgres(a.db)

	if events == nil {
		events = event.NewLogPublisher(a.log)
	}

	settings := service.NewSettingsService(settingsRepo, settingsCacheTTL)
	holidays := service.NewPublicHolidaysService(settings)
	workingTimes := service.NewWorkingTimeService(workingTimeRepo, settings)
	workDays := service.NewWorkDaysService(holidays, workingTimes)
	vacationDays := service.NewVacationDaysService(applicationRepo, workDays)
	accounts := service.NewAccountService(accountRepo, persons, vacationDays, settings, a.log)
	departments := service.NewDepartmentService(departmentRepo, persons)
	personSvc := service.NewPersonService(persons, departments, workingTimes, accounts, settings, events, a.log)
	overlap := service.NewOverlapService(applicationRepo, sickNoteRepo)
	calculation := service.NewCalculationService(accountRepo, accounts, vacationDays, workDays)

	applications := service.NewApplicationService(service.ApplicationDeps{
		Repo:        applicationRepo,
		Comments:    applicationComments,
		Persons:     personSvc,
		Departments: departments,
		Accounts:    accounts,
		Validator:   validation.NewApplicationValidator(settings, workingTimes, workDays, overlap, calculation),
		Settings:    settings,
		Events:      events,
		Log:         a.log,
	})
	sickNotes := service.NewSickNoteService(service.SickNoteDeps{
		Repo:                sickNoteRepo,
		Comments:            sickNoteComments,
		Applications:        applicationRepo,
		ApplicationComments: applicationComments,
		Persons:             personSvc,
		Accounts:            accounts,
		Validator:           validation.NewSickNoteValidator(workingTimes, overlap),
		Settings:            settings,
		Events:              events,
		Log:                 a.log,
	})
	absences := service.NewAbsenceService(applicationRepo, sickNoteRepo, settings)

	d := handlers.Deps{
		DB:           a.db,
		Persons:      personSvc,
		Departments:  departments,
		Accounts:     accounts,
		VacationDays: vacationDays,
		WorkingTimes: workingTimes,
		WorkDays:     workDays,
		Applications: applications,
		SickNotes:    sickNotes,
		Settings:     settings,
		Absences:     absences,
		Availability: service.NewAvailabilityService(applicationRepo, sickNoteRepo, holidays, workingTimes),
		Holidays:     holidays,
		Calendars:    service.NewCalendarService(calendarRepo, personSvc, departments, absences, settings),
	}
	if store != nil {
		d.Attachments = service.NewSickNoteAttachmentService(store, attachmentRepo, sickNoteRepo)
	}

	return d
}

func (a *app) persons() *postgres.PersonPostgres {
	return postgres.NewPersonPostgres(a.db)
}

func migrate(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.migrate(ctx)
}
