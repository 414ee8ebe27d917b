package domain

import "time"

// LeadServiceType identifies which partner service a lead is for.
type LeadServiceType string

const (
	LeadMoversPackers     LeadServiceType = "movers_packers"
	LeadInteriorDesigners LeadServiceType = "interior_designers"
	LeadHomeLoan          LeadServiceType = "home_loan"
	LeadVastu             LeadServiceType = "vastu"
)

// Lead is a captured service enquiry. Fields beyond city/pincode/phone are
// folded into Extra and stored as JSON.
type Lead struct {
	ID          int64             `json:"id"`
	ServiceType LeadServiceType   `json:"service_type"`
	City        string            `json:"city"`
	Pincode     string            `json:"pincode"`
	Phone       string            `json:"phone"`
	Extra       map[string]string `json:"extra,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// LeadRequest is the inbound payload for the lead capture endpoints.
type LeadRequest struct {
	City             string `json:"city"`
	Pincode          string `json:"pincode"`
	Phone            string `json:"phone"`
	MoveType         string `json:"moveType,omitempty"`
	ConsultationType string `json:"consultationType,omitempty"`
}
