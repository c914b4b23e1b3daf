package handler

import (
	"github.com/gofiber/fiber/v2"

	"printhub/internal/model"
	"printhub/internal/service"
)

type registerPrinterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateAddressRequest struct {
	Address     string            `json:"address"`
	PostalCode  string            `json:"postal_code"`
	Coordinates model.Coordinates `json:"coordinates"`
}

// RegisterPrinter creates a print-shop account and returns a bearer token.
func RegisterPrinter(svc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerPrinterRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		printer, res, err := svc.Register(c.UserContext(), req.Name, req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token":      res.Token,
			"expires_in": res.ExpiresIn,
			"printer":    printer,
		})
	}
}

// LoginPrinter authenticates a printer and returns a bearer token.
func LoginPrinter(svc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		printer, res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"token":      res.Token,
			"expires_in": res.ExpiresIn,
			"printer":    printer,
		})
	}
}

// PrinterProfile returns the authenticated printer including received document ids.
func PrinterProfile(svc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		printer, err := svc.Profile(c.UserContext(), authID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(printer)
	}
}

// ListPrinters returns all printers, or those matching ?postal_code=.
func ListPrinters(svc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			printers []model.Printer
			err      error
		)
		if pc := c.Query("postal_code"); pc != "" {
			printers, err = svc.SearchByPostalCode(c.UserContext(), pc)
		} else {
			printers, err = svc.All(c.UserContext())
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(printers)
	}
}

// UpdatePrinterAddress replaces the authenticated printer's address and coordinates.
func UpdatePrinterAddress(svc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateAddressRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.UpdateAddress(c.UserContext(), authID(c), req.Address, req.PostalCode, req.Coordinates); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "address updated"})
	}
}

// ChangePrinterPassword replaces the authenticated printer's password.
func ChangePrinterPassword(svc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req changePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.ChangePassword(c.UserContext(), authID(c), req.OldPassword, req.NewPassword); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "password updated"})
	}
}
