package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nysc-services/internal/domain"
	"nysc-services/internal/middleware"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/payment"
)

type PaymentHandler struct {
	paymentService payment.Service
	validate       *validator.Validate
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

func (h *PaymentHandler) ListMethods(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"methods": h.paymentService.EnabledMethods(),
	})
}

func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	var input domain.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Struct(input); err != nil {
		return validationError(err)
	}

	req, err := h.paymentService.StartCheckout(c.Context(), middleware.GetSessionID(c), h.payerID(c), input)
	if err != nil {
		return translatePaymentError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *PaymentHandler) StartBankTransfer(c *fiber.Ctx) error {
	var input domain.StartTransferInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Struct(input); err != nil {
		return validationError(err)
	}

	summary, err := h.paymentService.StartBankTransfer(c.Context(), middleware.GetSessionID(c), input)
	if err != nil {
		return translatePaymentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *PaymentHandler) ConfirmBankTransfer(c *fiber.Ctx) error {
	var input domain.ConfirmTransferInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.paymentService.ConfirmBankTransfer(c.Context(), middleware.GetSessionID(c), h.payerID(c), input)
	if err != nil {
		return translatePaymentError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

// payerID is the account ID when authenticated, a fresh guest ID otherwise.
func (h *PaymentHandler) payerID(c *fiber.Ctx) string {
	if user := middleware.GetCurrentUser(c); user != nil {
		return user.ID.String()
	}
	return payment.GuestUserID()
}

func translatePaymentError(err error) error {
	var declined *payment.GatewayDeclinedError
	switch {
	case errors.As(err, &declined):
		return middleware.PaymentRequired(declined.Reason)
	case errors.Is(err, repository.ErrDraftNotFound):
		return middleware.NotFound("No draft for this session; submit a service form first")
	case errors.Is(err, payment.ErrMethodDisabled):
		return middleware.Forbidden("This payment method is not enabled")
	case errors.Is(err, payment.ErrEmptyReference):
		return middleware.UnprocessableEntity("Transaction reference is required")
	case errors.Is(err, payment.ErrDraftIncomplete):
		return middleware.UnprocessableEntity("Draft is incomplete; resubmit the service form")
	}
	return err
}
