package handler

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"propdastak/internal/domain"
	"propdastak/internal/service"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// LeadHandler handles home-service enquiry submissions.
type LeadHandler struct {
	leads  *service.LeadService
	logger *logger.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leads *service.LeadService, logger *logger.Logger) *LeadHandler {
	return &LeadHandler{
		leads:  leads,
		logger: logger,
	}
}

// MoversPackers handles POST /api/leads/movers-packers
func (h *LeadHandler) MoversPackers(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, domain.LeadMoversPackers)
}

// InteriorDesigners handles POST /api/leads/interior-designers
func (h *LeadHandler) InteriorDesigners(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, domain.LeadInteriorDesigners)
}

// HomeLoan handles POST /api/leads/home-loan
func (h *LeadHandler) HomeLoan(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, domain.LeadHomeLoan)
}

// Vastu handles POST /api/leads/vastu
func (h *LeadHandler) Vastu(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, domain.LeadVastu)
}

func (h *LeadHandler) capture(w http.ResponseWriter, r *http.Request, serviceType domain.LeadServiceType) {
	var req domain.LeadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if msg := validateLeadRequest(serviceType, &req); msg != "" {
		writeError(w, apperrors.NewValidationError(msg, nil), h.logger)
		return
	}

	lead, err := h.leads.Capture(r.Context(), serviceType, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, lead, h.logger)
}

// validateLeadRequest checks the shared fields plus the per-service extras.
func validateLeadRequest(serviceType domain.LeadServiceType, req *domain.LeadRequest) string {
	if strings.TrimSpace(req.City) == "" {
		return "City is required"
	}
	if !pincodePattern.MatchString(req.Pincode) {
		return "Pincode must be 6 digits"
	}
	if !phonePattern.MatchString(req.Phone) {
		return "Phone number must be a valid international format"
	}

	switch serviceType {
	case domain.LeadMoversPackers:
		if req.MoveType != "local" && req.MoveType != "intercity" {
			return "moveType must be one of: local, intercity"
		}
	case domain.LeadVastu:
		if req.ConsultationType != "online" && req.ConsultationType != "offline" {
			return "consultationType must be one of: online, offline"
		}
	}
	return ""
}

// RegisterRoutes registers lead routes with the router.
func (h *LeadHandler) RegisterRoutes(r chi.Router) {
	r.Route("/leads", func(r chi.Router) {
		r.Post("/movers-packers", h.MoversPackers)
		r.Post("/interior-designers", h.InteriorDesigners)
		r.Post("/home-loan", h.HomeLoan)
		r.Post("/vastu", h.Vastu)
	})
}
