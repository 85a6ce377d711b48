package handler

import (
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/service"
)

type downloadURLResponse struct {
	URL string `json:"url"`
}

// sickNoteAccess checks that the signed in person may see the sick note with id.
func sickNoteAccess(c *fiber.Ctx, sickNotes service.SickNoteService, persons service.PersonService,
	departments service.DepartmentService, id string) error {
	sn, err := sickNotes.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	_, err = accessiblePerson(c, persons, departments, sn.PersonID)
	return err
}

// UploadAttachment stores a certificate (multipart/form-data, field name: file).
//
// @Summary  Upload certificate
// @Tags     sicknotes
// @Accept   multipart/form-data
// @Param    id   path     string true "sick note id"
// @Param    file formData file   true "certificate (pdf, png, jpeg)"
// @Success  201 {object} model.SickNoteAttachment
// @Failure  415 {object} errorPayload
// @Security BearerAuth
// @Router   /api/sicknotes/{id}/attachments [post]
func UploadAttachment(svc service.SickNoteAttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		a, err := svc.Upload(c.UserContext(), c.Params("id"), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ListAttachments returns a page of the certificates of a sick note.
func ListAttachments(svc service.SickNoteAttachmentService, sickNotes service.SickNoteService,
	persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := sickNoteAccess(c, sickNotes, persons, departments, c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.List(c.UserContext(), c.Params("id"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// AttachmentDownloadURL returns a short lived link to a certificate.
func AttachmentDownloadURL(svc service.SickNoteAttachmentService, sickNotes service.SickNoteService,
	persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		a, err := svc.Get(ctx, c.Params("attachmentId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := sickNoteAccess(c, sickNotes, persons, departments, a.SickNoteID); err != nil {
			return writeServiceError(c, err)
		}
		u, err := svc.DownloadURL(ctx, a.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(downloadURLResponse{URL: u})
	}
}

func DeleteAttachment(svc service.SickNoteAttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("attachmentId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
