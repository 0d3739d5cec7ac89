package handler

import (
	"github.com/gofiber/fiber/v2"

	"nysc-services/internal/domain"
	"nysc-services/internal/middleware"
	"nysc-services/internal/service/pricing"
)

type PricingHandler struct {
	pricingService pricing.Service
}

func NewPricingHandler(pricingService pricing.Service) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

func (h *PricingHandler) ListStates(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"states": h.pricingService.States(),
	})
}

// Quote resolves a live price preview while the customer fills the form, so
// the UI shows the exact amount before anything is submitted.
func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	svc := domain.ServiceType(c.Query("service"))
	if !svc.IsValid() {
		return middleware.BadRequest("Unknown service type")
	}

	state := c.Query("state")
	if state != "" && !h.pricingService.IsKnownState(state) {
		return middleware.BadRequest("Unknown destination state")
	}

	quote := h.pricingService.Quote(svc, state)
	return c.Status(fiber.StatusOK).JSON(quote)
}
