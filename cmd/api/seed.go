package main

import (
	"context"
	"fmt"
	"time"

	"urlaubsverwaltung/internal/seed"
)

func runSeed(ctx context.Context, file string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := seed.Load(file, time.Now().In(a.cfg.Location()))
	if err != nil {
		return err
	}
	if err := a.migrate(ctx); err != nil {
		return err
	}

	deps := a.services(nil, nil)
	res, err := seed.NewSeeder(deps.Persons, deps.Departments, a.log).Apply(ctx, data)
	if err != nil {
		return err
	}

	fmt.Printf("persons: %d created, %d skipped; departments: %d created, %d skipped\n",
		res.PersonsCreated, res.PersonsSkipped, res.DepartmentsCreated, res.DepartmentsSkipped)
	return nil
}
