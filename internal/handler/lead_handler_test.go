package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propdastak/internal/domain"
)

func TestValidateLeadRequest(t *testing.T) {
	tests := []struct {
		name        string
		serviceType domain.LeadServiceType
		req         domain.LeadRequest
		wantMsg     string
	}{
		{
			name:        "valid movers lead",
			serviceType: domain.LeadMoversPackers,
			req:         domain.LeadRequest{City: "Pune", Pincode: "411045", Phone: "+919876543210", MoveType: "local"},
		},
		{
			name:        "valid vastu lead",
			serviceType: domain.LeadVastu,
			req:         domain.LeadRequest{City: "Pune", Pincode: "411045", Phone: "+919876543210", ConsultationType: "online"},
		},
		{
			name:        "home loan needs no extras",
			serviceType: domain.LeadHomeLoan,
			req:         domain.LeadRequest{City: "Pune", Pincode: "411045", Phone: "+919876543210"},
		},
		{
			name:        "city required",
			serviceType: domain.LeadInteriorDesigners,
			req:         domain.LeadRequest{Pincode: "411045", Phone: "+919876543210"},
			wantMsg:     "City is required",
		},
		{
			name:        "short pincode",
			serviceType: domain.LeadHomeLoan,
			req:         domain.LeadRequest{City: "Pune", Pincode: "4110", Phone: "+919876543210"},
			wantMsg:     "Pincode must be 6 digits",
		},
		{
			name:        "bad phone",
			serviceType: domain.LeadHomeLoan,
			req:         domain.LeadRequest{City: "Pune", Pincode: "411045", Phone: "abc"},
			wantMsg:     "Phone number must be a valid international format",
		},
		{
			name:        "movers with unknown move type",
			serviceType: domain.LeadMoversPackers,
			req:         domain.LeadRequest{City: "Pune", Pincode: "411045", Phone: "+919876543210", MoveType: "international"},
			wantMsg:     "moveType must be one of: local, intercity",
		},
		{
			name:        "vastu with unknown consultation type",
			serviceType: domain.LeadVastu,
			req:         domain.LeadRequest{City: "Pune", Pincode: "411045", Phone: "+919876543210", ConsultationType: "phone"},
			wantMsg:     "consultationType must be one of: online, offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, validateLeadRequest(tt.serviceType, &tt.req))
		})
	}
}
