package http

import (
	"time"

	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
)

// Request bodies. Validation tags are checked with go-playground/validator
// before any command is constructed.

// SelectNextRequest carries the driver's live position, if the app has one.
// Both coordinates absent means "use the last recorded sample".
type SelectNextRequest struct {
	Lat  *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Long *float64 `json:"long" validate:"omitempty,min=-180,max=180"`
}

// CheckOtpRequest pre-validates a code without consuming it.
type CheckOtpRequest struct {
	Code string `json:"code" validate:"required,numeric"`
}

// MarkDeliveredRequest settles a delivery with proof and the receiver's code.
type MarkDeliveredRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Code     string `json:"code" validate:"required,numeric"`
}

// MarkFailedRequest records a failed attempt with a free-text reason.
type MarkFailedRequest struct {
	FailureReason string `json:"failureReason" validate:"required"`
}

// CompleteTransferRequest confirms a transfer handover with proof.
type CompleteTransferRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// RecordLocationRequest appends one position sample for a shipment.
type RecordLocationRequest struct {
	Lat  float64 `json:"lat" validate:"min=-90,max=90"`
	Long float64 `json:"long" validate:"min=-180,max=180"`
}

// Response bodies.

// NextPackageResponse names the suggested next stop; null when every leg is
// settled.
type NextPackageResponse struct {
	PackageID *string `json:"packageId"`
}

// MessageResponse is a human-readable acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// CheckOtpResponse answers pre-validation without a reason.
type CheckOtpResponse struct {
	IsValid bool `json:"isValid"`
}

// PackageResponse renders a settled or failed parcel.
type PackageResponse struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	ReceptionMode      string     `json:"receptionMode"`
	FailedAttempts     int        `json:"failedAttempts"`
	ProofOfDeliveryURL *string    `json:"proofOfDeliveryUrl"`
	SettledAt          *time.Time `json:"settledAt"`
}

// TransferShipmentResponse renders a completed transfer shipment.
type TransferShipmentResponse struct {
	ID                 string              `json:"id"`
	Kind               string              `json:"kind"`
	Status             string              `json:"status"`
	DestinationParty   string              `json:"destinationParty"`
	ProofOfTransferURL *string             `json:"proofOfTransferUrl"`
	Legs               []ParcelLegResponse `json:"legs"`
}

// ParcelLegResponse renders one member leg of a shipment.
type ParcelLegResponse struct {
	PackageID string `json:"packageId"`
	Status    string `json:"status"`
}

// LocationResponse renders one position sample.
type LocationResponse struct {
	Lat       float64   `json:"lat"`
	Long      float64   `json:"long"`
	CreatedAt time.Time `json:"createdAt"`
}

func newPackageResponse(p *parcel.Parcel) PackageResponse {
	return PackageResponse{
		ID:                 p.ID().String(),
		Status:             p.Status().String(),
		ReceptionMode:      p.ReceptionMode().String(),
		FailedAttempts:     p.FailedAttempts(),
		ProofOfDeliveryURL: p.ProofOfDeliveryURL(),
		SettledAt:          p.SettledAt(),
	}
}

func newTransferShipmentResponse(s *shipment.Shipment) TransferShipmentResponse {
	legs := make([]ParcelLegResponse, 0, len(s.Legs()))
	for _, leg := range s.Legs() {
		legs = append(legs, ParcelLegResponse{
			PackageID: leg.ParcelID().String(),
			Status:    leg.Status().String(),
		})
	}

	return TransferShipmentResponse{
		ID:                 s.ID().String(),
		Kind:               s.Kind().String(),
		Status:             s.Status().String(),
		DestinationParty:   s.DestinationPartyName(),
		ProofOfTransferURL: s.ProofOfTransferURL(),
		Legs:               legs,
	}
}
