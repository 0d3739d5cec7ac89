package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nysc-services/internal/domain"
	"nysc-services/internal/middleware"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/audit"
	"nysc-services/internal/service/dashboard"
	"nysc-services/internal/service/export"
	"nysc-services/internal/service/servicerequest"
)

// AdminHandler is the review console surface: search and filter the request
// queue, inspect a request, dispose of it, and read the running totals.
type AdminHandler struct {
	requestService   servicerequest.Service
	dashboardService dashboard.Service
	exportService    export.Service
	auditService     audit.Service
}

func NewAdminHandler(
	requestService servicerequest.Service,
	dashboardService dashboard.Service,
	exportService export.Service,
	auditService audit.Service,
) *AdminHandler {
	return &AdminHandler{
		requestService:   requestService,
		dashboardService: dashboardService,
		exportService:    exportService,
		auditService:     auditService,
	}
}

func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	filter := requestFilterFromQuery(c)

	result, err := h.requestService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) GetRequest(c *fiber.Ctx) error {
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

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.dispose(c, h.requestService.Approve)
}

func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	return h.dispose(c, h.requestService.Reject)
}

type disposeFunc func(ctx context.Context, id uuid.UUID, reviewer *domain.User, meta *servicerequest.RequestMeta) (*domain.ServiceRequest, error)

func (h *AdminHandler) dispose(c *fiber.Ctx, action disposeFunc) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	meta := &servicerequest.RequestMeta{
		IPAddress: middleware.GetRequestIP(c),
		UserAgent: middleware.GetRequestUserAgent(c),
	}

	req, err := action(c.Context(), requestID, user, meta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.NotFound("Request not found")
		}
		if errors.Is(err, servicerequest.ErrAlreadyFinalized) {
			return middleware.Conflict("Request is already in a final state")
		}
		return err
	}

	h.dashboardService.InvalidateStats(c.Context())

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	filter := requestFilterFromQuery(c)

	data, err := h.exportService.ExportCSV(c.Context(), filter)
	if err != nil {
		return err
	}

	filename := "service_requests_" + time.Now().Format("2006-01-02") + ".csv"
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *AdminHandler) RequestHistory(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	logs, err := h.auditService.GetRequestHistory(c.Context(), requestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": logs})
}

func (h *AdminHandler) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	logs, err := h.auditService.GetRecentActivities(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": logs})
}

func requestFilterFromQuery(c *fiber.Ctx) domain.RequestFilter {
	filter := domain.RequestFilter{Search: c.Query("search")}

	if s := c.Query("status"); s != "" {
		status := domain.RequestStatus(s)
		if status.IsValid() {
			filter.Status = &status
		}
	}
	if s := c.Query("service"); s != "" {
		svc := domain.ServiceType(s)
		if svc.IsValid() {
			filter.Service = &svc
		}
	}

	return filter
}
