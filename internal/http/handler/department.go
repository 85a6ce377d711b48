package handler

import (
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

// ListDepartments returns all departments to the office and the boss, and
// the departments a person belongs to or manages to everyone else.
func ListDepartments(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			deps []model.Department
			err  error
		)
		p := middleware.CurrentPerson(c)
		if p.HasAnyRole(model.RoleOffice, model.RoleBoss) {
			deps, err = svc.GetAllDepartments(c.UserContext())
		} else {
			deps, err = svc.GetAllowedDepartmentsOfPerson(c.UserContext(), p)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": deps})
	}
}

func GetDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.GetDepartment(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(d)
	}
}

// CreateDepartment stores a new department.
//
// @Summary  Create department
// @Tags     departments
// @Accept   json
// @Param    body body model.Department true "department"
// @Success  201 {object} model.Department
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /api/departments [post]
func CreateDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d model.Department
		if err := c.BodyParser(&d); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		created, err := svc.Create(c.UserContext(), &d)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

func UpdateDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d model.Department
		if err := c.BodyParser(&d); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		d.ID = c.Params("id")
		updated, err := svc.Update(c.UserContext(), &d)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

func DeleteDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
