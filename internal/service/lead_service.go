package service

import (
	"context"

	"propdastak/internal/domain"
	"propdastak/internal/repository"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

// LeadService captures service enquiries.
type LeadService struct {
	leads repository.LeadRepository
	log   *logger.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(leads repository.LeadRepository, log *logger.Logger) *LeadService {
	return &LeadService{
		leads: leads,
		log:   log,
	}
}

// Capture stores a lead for the given service type. Fields beyond
// city/pincode/phone are folded into the extra column.
func (s *LeadService) Capture(ctx context.Context, serviceType domain.LeadServiceType, req *domain.LeadRequest) (*domain.Lead, error) {
	extra := make(map[string]string)
	if req.MoveType != "" {
		extra["moveType"] = req.MoveType
	}
	if req.ConsultationType != "" {
		extra["consultationType"] = req.ConsultationType
	}
	if len(extra) == 0 {
		extra = nil
	}

	lead := &domain.Lead{
		ServiceType: serviceType,
		City:        req.City,
		Pincode:     req.Pincode,
		Phone:       req.Phone,
		Extra:       extra,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.NewInternalError("Failed to capture lead", err)
	}

	s.log.WithFields(map[string]interface{}{
		"lead_id":      lead.ID,
		"service_type": serviceType,
	}).Info("Lead captured")

	return lead, nil
}
