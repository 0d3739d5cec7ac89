package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"nysc-services/internal/domain"
	"nysc-services/internal/repository"
)

type Service interface {
	ExportCSV(ctx context.Context, filter domain.RequestFilter) ([]byte, error)
}

type service struct {
	requestRepo repository.ServiceRequestRepository
}

func NewService(requestRepo repository.ServiceRequestRepository) Service {
	return &service{
		requestRepo: requestRepo,
	}
}

// ExportCSV writes the filtered request list, newest first, as a CSV
// document. It pages through the repository so a large table does not need to
// fit in a single query result.
func (s *service) ExportCSV(ctx context.Context, filter domain.RequestFilter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "service", "amount", "customer_name", "customer_email", "payment_method", "payment_reference", "status", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	params := domain.PaginationParams{Page: 1, PageSize: 100}
	for {
		requests, total, err := s.requestRepo.List(ctx, filter, params)
		if err != nil {
			return nil, err
		}

		for _, req := range requests {
			record := []string{
				req.ID.String(),
				string(req.Service),
				strconv.FormatInt(req.Amount, 10),
				req.CustomerName,
				req.CustomerEmail,
				string(req.PaymentMethod),
				req.PaymentReference,
				string(req.Status),
				req.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}

		if int64(params.Page*params.PageSize) >= total || len(requests) == 0 {
			break
		}
		params.Page++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
