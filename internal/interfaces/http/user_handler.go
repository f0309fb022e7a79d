package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// UserHandler expone el actor autenticado (protegido).
type UserHandler struct {
	repo repository.UserRepository
}

// NewUserHandler construye el handler.
func NewUserHandler(repo repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Me devuelve los datos del usuario del token.
// GET /api/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.repo.GetByID(GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}
