package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nysc-services/internal/domain"
)

// ServiceRequestRepository is the persistence gateway for committed requests.
// Consumers depend on this interface only; the active backing store is chosen
// once at startup, never per call.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.ServiceRequest, int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.ServiceRequest, error)
	Stats(ctx context.Context) (*domain.RequestStats, error)
}

type serviceRequestRepository struct {
	db *sqlx.DB
}

func NewServiceRequestRepository(db *sqlx.DB) ServiceRequestRepository {
	return &serviceRequestRepository{db: db}
}

func (r *serviceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	query := `
		INSERT INTO service_requests
			(id, user_id, service, amount, form_data, customer_name, customer_email, payment_method, payment_reference, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.Service, req.Amount, req.FormData,
		req.CustomerName, req.CustomerEmail, req.PaymentMethod, req.PaymentReference, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	query := `SELECT * FROM service_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *serviceRequestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.ServiceRequest, int64, error) {
	params.Validate()

	conditions := []string{}
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(customer_name ILIKE $%d OR customer_email ILIKE $%d OR service ILIKE $%d OR payment_reference ILIKE $%d)",
			n, n, n, n))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Service != nil {
		args = append(args, *filter.Service)
		conditions = append(conditions, fmt.Sprintf("service = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM service_requests"+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(
		"SELECT * FROM service_requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var requests []domain.ServiceRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

func (r *serviceRequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.ServiceRequest, error) {
	var requests []domain.ServiceRequest
	query := `SELECT * FROM service_requests WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

// UpdateStatus moves a request out of a non-terminal state in a single
// guarded UPDATE, so two admins racing on the same request cannot both win.
// A no-row result means the request is gone or already terminal; the caller
// decides which by re-reading.
func (r *serviceRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	query := `
		UPDATE service_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'pending_verification')
		RETURNING *`

	err := r.db.GetContext(ctx, &req, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *serviceRequestRepository) Stats(ctx context.Context) (*domain.RequestStats, error) {
	var stats domain.RequestStats
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'pending_verification') AS pending_verification,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0) AS revenue
		FROM service_requests`

	err := r.db.GetContext(ctx, &stats, query)
	return &stats, err
}
