package handlers

import (
	"akun/internal/apperr"
	"akun/internal/middleware"
	"akun/internal/repositories"
	"akun/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for profiles and the directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the protected profile and directory routes.
// The wildcard profile route must come last so it does not shadow the
// fixed paths.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/getme", h.HandleGetMe)
	router.Get("/users", h.HandleListUsers)
	router.Get("/:userId", h.HandleGetProfile)
}

// HandleGetMe returns the calling identity's own account.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		return respondError(c, apperr.ErrUnauthenticated)
	}

	user, err := h.userService.GetProfile(identity, "")
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile retrieved", user)
}

// HandleGetProfile returns a profile by id. Admins may target any
// account; for Staff the target is ignored and their own account is
// returned.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		return respondError(c, apperr.ErrUnauthenticated)
	}

	user, err := h.userService.GetProfile(identity, c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile retrieved", user)
}

// HandleListUsers returns the filtered account directory, Admins only.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		return respondError(c, apperr.ErrUnauthenticated)
	}

	filter := repositories.UserFilter{
		Username: c.Query("username"),
		Email:    c.Query("email"),
		Country:  c.Query("country"),
	}
	users, err := h.userService.ListUsers(identity, filter)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Users retrieved", users)
}
