package handler

import (
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

// ListPersons returns a page of persons.
//
// @Summary  List persons
// @Tags     persons
// @Produce  json
// @Param    limit  query int false "page size" default(20)
// @Param    offset query int false "offset"    default(0)
// @Success  200 {object} service.PersonListResult
// @Security BearerAuth
// @Router   /api/persons [get]
func ListPersons(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetPerson returns a person the signed in person may see.
//
// @Summary  Get person
// @Tags     persons
// @Param    id path string true "person id"
// @Success  200 {object} model.Person
// @Failure  403 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /api/persons/{id} [get]
func GetPerson(persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := accessiblePerson(c, persons, departments, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// CreatePerson stores a person with its working time and holidays account.
//
// @Summary  Create person
// @Tags     persons
// @Accept   json
// @Param    body body model.PersonForm true "person"
// @Success  201 {object} model.Person
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /api/persons [post]
func CreatePerson(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form model.PersonForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		p, err := svc.Create(c.UserContext(), &form)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdatePerson replaces the data of a person.
//
// @Summary  Update person
// @Tags     persons
// @Accept   json
// @Param    id   path string           true "person id"
// @Param    body body model.PersonForm true "person"
// @Success  200 {object} model.Person
// @Security BearerAuth
// @Router   /api/persons/{id} [put]
func UpdatePerson(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form model.PersonForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		p, err := svc.Update(c.UserContext(), c.Params("id"), &form)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}
