package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

// DirectoryHandler handles HTTP requests for the user and client directory.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

type updateContractorRequest struct {
	ManagerID    *int     `json:"manager_id"`
	HourlyRate   *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone"`
	ServiceTitle *string  `json:"service_title"`
	ClientID     *int     `json:"client_id"`
}

type clientRequest struct {
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

type clientsResponse struct {
	Clients []domain.Client `json:"clients"`
}

// Users handles GET /v1/users.
//
// @Summary      List all directory users
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Router       /v1/users [get]
func (h *DirectoryHandler) Users(c echo.Context) error {
	return c.JSON(http.StatusOK, usersResponse{Users: h.service.Users(c.Request().Context())})
}

// UpdateContractor handles PUT /v1/users/:id.
//
// @Summary      Update a contractor's admin-editable fields
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Contractor id"
// @Param        body  body      updateContractorRequest  true  "Fields to update; omitted fields are untouched"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *DirectoryHandler) UpdateContractor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}

	var req updateContractorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.service.UpdateContractor(c.Request().Context(), id, ports.ContractorDetails{
		ManagerID:    req.ManagerID,
		HourlyRate:   req.HourlyRate,
		Email:        req.Email,
		Phone:        req.Phone,
		ServiceTitle: req.ServiceTitle,
		ClientID:     req.ClientID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Clients handles GET /v1/clients.
//
// @Summary      List all billing clients
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientsResponse
// @Router       /v1/clients [get]
func (h *DirectoryHandler) Clients(c echo.Context) error {
	return c.JSON(http.StatusOK, clientsResponse{Clients: h.service.Clients(c.Request().Context())})
}

// CreateClient handles POST /v1/clients.
//
// @Summary      Add a billing client
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Router       /v1/clients [post]
func (h *DirectoryHandler) CreateClient(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	client, err := h.service.AddClient(c.Request().Context(), ports.ClientInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// UpdateClient handles PUT /v1/clients/:id.
//
// @Summary      Update a billing client
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/clients/{id} [put]
func (h *DirectoryHandler) UpdateClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid client id"})
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	client, err := h.service.UpdateClient(c.Request().Context(), id, ports.ClientInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /v1/clients/:id.
//
// @Summary      Delete a billing client
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Client id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/clients/{id} [delete]
func (h *DirectoryHandler) DeleteClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid client id"})
	}

	if err := h.service.DeleteClient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
