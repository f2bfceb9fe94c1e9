package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AccountHandler exposes profile data for the authenticated user.
type AccountHandler struct{}

func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// GetUserData returns the authenticated user's profile.
//
// @Summary      Get the authenticated user's profile
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userDataResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/account/getUserData [get]
func (h *AccountHandler) GetUserData(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userDataResponse{
		ID:          identity.ID,
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		Username:    identity.Username(),
		Email:       identity.Email,
		PhoneNumber: identity.PhoneNumber,
	})
}
