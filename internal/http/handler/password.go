package handler

import (
	"github.com/gofiber/fiber/v2"

	"printhub/internal/service"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ForgotPassword issues a reset token for the user or printer matching the email.
func ForgotPassword(svc service.PasswordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req forgotPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.Forgot(c.UserContext(), req.Email); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "reset email sent"})
	}
}

// ResetPassword consumes a reset token and replaces the password.
func ResetPassword(svc service.PasswordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.Reset(c.UserContext(), c.Params("token"), req.NewPassword); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "password reset"})
	}
}
