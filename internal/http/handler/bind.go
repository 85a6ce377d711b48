package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/validation"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// bind parses the JSON body into dst and checks its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.ErrBadRequest
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fiber.ErrBadRequest
		}
		out := &validation.Errors{}
		for _, fe := range verrs {
			out.RejectValue(fe.Field(), messageKey(fe.Tag()))
		}
		return out
	}
	return nil
}

func messageKey(tag string) string {
	switch tag {
	case "required":
		return validation.ErrorMandatory
	case "max":
		return validation.ErrorTooManyChars
	case "email":
		return validation.ErrorMail
	default:
		return validation.ErrorInvalid
	}
}

// pagination reads limit and offset query parameters.
func pagination(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		return 0, 0, invalidValue("limit")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, invalidValue("offset")
	}
	return limit, offset, nil
}

// dateRange reads the "from" and "to" query parameters as a filter period
// (02.01.2006 or 2006-01-02). Missing bounds default to the current year.
func dateRange(c *fiber.Ctx) (from, to time.Time, err error) {
	p, err := period.NewFilterPeriod(c.Query("from"), c.Query("to"), service.Location())
	if err != nil {
		var dateErr *period.DateError
		if errors.As(err, &dateErr) {
			if dateErr.Bound == "start" {
				return time.Time{}, time.Time{}, invalidValue("from")
			}
			return time.Time{}, time.Time{}, invalidValue("to")
		}
		return time.Time{}, time.Time{}, err
	}
	return p.Start, p.End, nil
}

// parseDate parses an optional date; empty yields the zero time.
func parseDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := period.ParseISO(s)
	if err != nil {
		return time.Time{}, invalidValue(field)
	}
	return t, nil
}

func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := period.ParseISO(*s)
	if err != nil {
		return nil, invalidValue(field)
	}
	return &t, nil
}

func yearParam(c *fiber.Ctx) (int, error) {
	year, err := c.ParamsInt("year")
	if err != nil || year < 1900 || year > 9999 {
		return 0, invalidValue("year")
	}
	return year, nil
}

func invalidValue(name string) error {
	errs := &validation.Errors{}
	errs.RejectValue(name, validation.ErrorInvalid)
	return errs
}
