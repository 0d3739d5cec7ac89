package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nysc-services/internal/domain"
	"nysc-services/internal/middleware"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/servicerequest"
)

type ServiceRequestHandler struct {
	requestService servicerequest.Service
}

func NewServiceRequestHandler(requestService servicerequest.Service) *ServiceRequestHandler {
	return &ServiceRequestHandler{requestService: requestService}
}

func (h *ServiceRequestHandler) SubmitDirectPosting(c *fiber.Ctx) error {
	var form domain.DirectPostingForm
	if err := c.BodyParser(&form); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	draft, err := h.requestService.SubmitDirectPosting(c.Context(), middleware.GetSessionID(c), form)
	if err != nil {
		return translateIntakeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *ServiceRequestHandler) SubmitRelocation(c *fiber.Ctx) error {
	var form domain.RelocationForm
	if err := c.BodyParser(&form); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	draft, err := h.requestService.SubmitRelocation(c.Context(), middleware.GetSessionID(c), form)
	if err != nil {
		return translateIntakeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *ServiceRequestHandler) SubmitPPAChange(c *fiber.Ctx) error {
	var form domain.PPAChangeForm
	if err := c.BodyParser(&form); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	draft, err := h.requestService.SubmitPPAChange(c.Context(), middleware.GetSessionID(c), form)
	if err != nil {
		return translateIntakeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *ServiceRequestHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.requestService.GetDraft(c.Context(), middleware.GetSessionID(c))
	if err != nil {
		if errors.Is(err, repository.ErrDraftNotFound) {
			return middleware.NotFound("No draft for this session")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(draft)
}

// ListMine returns the authenticated customer's own requests, newest first.
func (h *ServiceRequestHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requests, err := h.requestService.ListByUser(c.Context(), userID.String())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": requests})
}

func (h *ServiceRequestHandler) GetMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.requestService.GetByID(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.NotFound("Request not found")
		}
		return err
	}

	if req.UserID != userID.String() {
		return middleware.NotFound("Request not found")
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func translateIntakeError(err error) error {
	switch {
	case errors.Is(err, servicerequest.ErrNoDestination),
		errors.Is(err, servicerequest.ErrUnknownState),
		errors.Is(err, servicerequest.ErrLetterRequired):
		return middleware.UnprocessableEntity(err.Error())
	}
	return validationError(err)
}
