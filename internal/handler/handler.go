package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nysc-services/internal/domain"
	"nysc-services/internal/middleware"
	"nysc-services/internal/service"
)

type Handlers struct {
	Auth           *AuthHandler
	Pricing        *PricingHandler
	ServiceRequest *ServiceRequestHandler
	Payment        *PaymentHandler
	Document       *DocumentHandler
	Admin          *AdminHandler
	Notification   *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:           NewAuthHandler(services.Auth),
		Pricing:        NewPricingHandler(services.Pricing),
		ServiceRequest: NewServiceRequestHandler(services.ServiceRequest),
		Payment:        NewPaymentHandler(services.Payment),
		Document:       NewDocumentHandler(services.Document),
		Admin:          NewAdminHandler(services.ServiceRequest, services.Dashboard, services.Export, services.Audit),
		Notification:   NewNotificationHandler(services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if page := c.QueryInt("page"); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size"); pageSize > 0 {
		params.PageSize = pageSize
	}
	params.Validate()
	return params
}

// validationError turns validator failures into a 422 naming the first bad
// field, leaving other errors untouched for the caller to map.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return middleware.UnprocessableEntity("Field '" + first.Field() + "' failed validation on '" + first.Tag() + "'")
	}
	return err
}
