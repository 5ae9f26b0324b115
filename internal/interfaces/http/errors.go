package http

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
)

var validate = validator.New()

// bindJSON parsea el body y valida los tags `validate`. Cualquier fallo es ErrInvalidInput.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return validateStruct(dst)
}

// bindQuery parsea y valida los parámetros de consulta.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fmt.Errorf("%w: parámetros inválidos", domain.ErrInvalidInput)
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: campos inválidos: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
}

// writeError traduce errores de dominio a status HTTP y cuerpo {success:false, code, message}.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	} else {
		log.Debug().Err(err).Str("path", c.Path()).Msg("petición rechazada")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return fiber.StatusConflict, "CONCURRENT_UPDATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// ok respuesta exitosa con datos.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.ActionResponse{Success: true, Data: data})
}

// done respuesta exitosa sin datos (borrados).
func done(c *fiber.Ctx, message string) error {
	return c.JSON(dto.ActionResponse{Success: true, Message: message})
}

// ErrorHandler manejador de errores de Fiber (rutas inexistentes, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Success: false, Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
