package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"nysc-services/internal/config"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/audit"
	"nysc-services/internal/service/auth"
	"nysc-services/internal/service/dashboard"
	"nysc-services/internal/service/document"
	"nysc-services/internal/service/email"
	"nysc-services/internal/service/export"
	"nysc-services/internal/service/notification"
	"nysc-services/internal/service/payment"
	"nysc-services/internal/service/pricing"
	"nysc-services/internal/service/servicerequest"
)

type Services struct {
	Auth           auth.Service
	Pricing        pricing.Service
	ServiceRequest servicerequest.Service
	Payment        payment.Service
	Document       document.Service
	Email          email.Service
	Notification   notification.Service
	Dashboard      dashboard.Service
	Audit          audit.Service
	Export         export.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, cfg)
	pricingService := pricing.NewService()
	notificationService := notification.NewService(repos.Notification, repos.User)
	documentService := document.NewService(repos.Document, minioClient, cfg)
	auditService := audit.NewService(repos.AuditLog)
	dashboardService := dashboard.NewService(repos.ServiceRequest, redis)
	exportService := export.NewService(repos.ServiceRequest)

	// Without a gateway secret the stub approves every charge, which keeps
	// local and staging environments off the network.
	var gateway payment.Gateway
	if cfg.FlutterwaveSecretKey != "" {
		gateway = payment.NewFlutterwaveGateway(cfg.FlutterwaveSecretKey, cfg.GatewayTimeout)
	} else {
		gateway = payment.NewStubGateway()
	}

	paymentService := payment.NewService(cfg, repos.Draft, repos.ServiceRequest, gateway, emailService, notificationService)

	serviceRequestService := servicerequest.NewService(
		repos.ServiceRequest,
		repos.Draft,
		repos.Document,
		repos.AuditLog,
		pricingService,
		emailService,
		notificationService,
	)

	return &Services{
		Auth:           authService,
		Pricing:        pricingService,
		ServiceRequest: serviceRequestService,
		Payment:        paymentService,
		Document:       documentService,
		Email:          emailService,
		Notification:   notificationService,
		Dashboard:      dashboardService,
		Audit:          auditService,
		Export:         exportService,
	}
}
