package handler

import (
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

// accessiblePerson loads the person with id and checks that the signed in
// person may see its data.
func accessiblePerson(c *fiber.Ctx, persons service.PersonService, departments service.DepartmentService, id string) (*model.Person, error) {
	ctx := c.UserContext()
	target, err := persons.GetPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureAccess(c, departments, target); err != nil {
		return nil, err
	}
	return target, nil
}

func ensureAccess(c *fiber.Ctx, departments service.DepartmentService, target *model.Person) error {
	signedIn := middleware.CurrentPerson(c)
	if signedIn == nil {
		return fiber.ErrUnauthorized
	}
	ok, err := departments.IsSignedInUserAllowedToAccessPersonData(c.UserContext(), signedIn, target)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrAccessDenied
	}
	return nil
}

// ownPerson allows only the signed in person itself.
func ownPerson(c *fiber.Ctx, id string) (*model.Person, error) {
	signedIn := middleware.CurrentPerson(c)
	if signedIn == nil {
		return nil, fiber.ErrUnauthorized
	}
	if signedIn.ID != id {
		return nil, service.ErrAccessDenied
	}
	return signedIn, nil
}
