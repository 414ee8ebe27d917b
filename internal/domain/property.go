package domain

import "time"

// Listing intent of a property.
type PropertyFor string

const (
	PropertyForSell      PropertyFor = "sell"
	PropertyForLeaseRent PropertyFor = "lease/rent"
	PropertyForPGHotel   PropertyFor = "pg/hotel"
)

// AvailabilityStatus of a property.
type AvailabilityStatus string

const (
	AvailabilityReadyToMove       AvailabilityStatus = "ready_to_move"
	AvailabilityUnderConstruction AvailabilityStatus = "under_construction"
)

// Ownership model of a property.
type Ownership string

const (
	OwnershipFreehold        Ownership = "freehold"
	OwnershipLeasehold       Ownership = "leasehold"
	OwnershipCoOperative     Ownership = "co-operative"
	OwnershipPowerOfAttorney Ownership = "power_of_attorney"
)

// ParkingType of a parking slot.
type ParkingType string

const (
	ParkingCovered ParkingType = "covered"
	ParkingOpen    ParkingType = "open"
)

// PropertyDetails holds the optional room breakdown of a property.
type PropertyDetails struct {
	PropertyID int64   `json:"property_id"`
	Rooms      *int    `json:"rooms"`
	Bathrooms  *int    `json:"bathrooms"`
	Balconies  *int    `json:"balconies"`
	OtherRooms *string `json:"other_rooms"`
	Floors     *int    `json:"floors"`
}

// Parking holds the optional parking information of a property.
type Parking struct {
	PropertyID   int64       `json:"property_id"`
	ParkingCount *int        `json:"parking_count"`
	ParkingType  ParkingType `json:"parking_type,omitempty"`
}

// Property is a real-estate listing together with its optional detail and
// parking rows.
type Property struct {
	ID                 int64                  `json:"id"`
	Title              *string                `json:"title"`
	PropertyFor        PropertyFor            `json:"property_for"`
	PropertyType       string                 `json:"property_type"`
	City               string                 `json:"city"`
	Locality           string                 `json:"locality"`
	SubLocality        *string                `json:"sub_locality"`
	Apartment          *string                `json:"apartment"`
	PropertySize       map[string]interface{} `json:"property_size,omitempty"`
	AvailabilityStatus AvailabilityStatus     `json:"availability_status"`
	PropertyAge        *int                   `json:"property_age"`
	Ownership          *Ownership             `json:"ownership"`
	Price              *float64               `json:"price"`
	PricePerSqft       *float64               `json:"price_per_sqft"`
	BrokerageCharge    *float64               `json:"brokerage_charge"`
	Description        *string                `json:"description"`
	PropertyFeatures   []string               `json:"property_features"`
	PropertyAmenities  []string               `json:"property_amenities"`
	CreatedBy          string                 `json:"created_by,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	Details            *PropertyDetails       `json:"property_details,omitempty"`
	Parking            *Parking               `json:"parking,omitempty"`
}

// PropertyUpdate carries the optional fields of PUT /api/properties/{id}.
// Nil fields are left unchanged; Details and Parking, when present, are
// upserted whole.
type PropertyUpdate struct {
	Title              *string                `json:"title"`
	PropertyFor        *PropertyFor           `json:"property_for"`
	PropertyType       *string                `json:"property_type"`
	City               *string                `json:"city"`
	Locality           *string                `json:"locality"`
	SubLocality        *string                `json:"sub_locality"`
	Apartment          *string                `json:"apartment"`
	PropertySize       map[string]interface{} `json:"property_size"`
	AvailabilityStatus *AvailabilityStatus    `json:"availability_status"`
	PropertyAge        *int                   `json:"property_age"`
	Ownership          *Ownership             `json:"ownership"`
	Price              *float64               `json:"price"`
	PricePerSqft       *float64               `json:"price_per_sqft"`
	BrokerageCharge    *float64               `json:"brokerage_charge"`
	Description        *string                `json:"description"`
	PropertyFeatures   []string               `json:"property_features"`
	PropertyAmenities  []string               `json:"property_amenities"`
	Details            *PropertyDetails       `json:"property_details"`
	Parking            *Parking               `json:"parking"`
}

// MediaType of an attached media row.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaItem is one media row attached to a property.
type MediaItem struct {
	ID         int64     `json:"id,omitempty"`
	PropertyID int64     `json:"property_id,omitempty"`
	MediaType  MediaType `json:"media_type"`
	URL        string    `json:"url"`
}

// SavedProperty links a user to a bookmarked property.
type SavedProperty struct {
	UserID     int64 `json:"userId"`
	PropertyID int64 `json:"propertyId"`
}
