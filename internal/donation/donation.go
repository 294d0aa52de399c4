package donation

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinimumAmount is the smallest accepted donation, in rupiah.
	MinimumAmount int64 = 2_000
	// AutoApprovalThreshold is the largest amount approved without admin review.
	AutoApprovalThreshold int64 = 1_000_000
	// LargeDonationThreshold is exceeded by donations that qualify for a
	// certificate and are invoiced as cash waqf.
	LargeDonationThreshold int64 = 1_000_000
)

// Method is how the donor paid.
type Method string

const (
	MethodQRIS     Method = "qris"
	MethodTransfer Method = "transfer"
	// MethodGateway is a third-party payment gateway redirect. No proof of
	// payment is ever attached to these.
	MethodGateway Method = "trypay"
)

// Methods lists every accepted payment method.
var Methods = []Method{MethodQRIS, MethodTransfer, MethodGateway}

func (m Method) Valid() bool {
	switch m {
	case MethodQRIS, MethodTransfer, MethodGateway:
		return true
	}

	return false
}

// Label is the capitalized method name used on documents and messages.
func (m Method) Label() string {
	switch m {
	case MethodQRIS:
		return "Qris"
	case MethodTransfer:
		return "Transfer"
	case MethodGateway:
		return "Trypay"
	}

	return "N/A"
}

// Status is the review state of a donation. There is no rejected state:
// rejecting deletes the donation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	}

	return string(s)
}

// InitialStatus applies the auto-approval rule.
func InitialStatus(amount int64) Status {
	if amount <= AutoApprovalThreshold {
		return StatusApproved
	}

	return StatusPending
}

// Donation is a single contribution to the campaign.
type Donation struct {
	ID             uuid.UUID
	DonorName      string
	Phone          string
	Amount         int64 // Rupiah
	Method         Method
	SubmittedAt    time.Time
	Status         Status
	ProofReference *string
}

// Large reports whether the donation exceeds LargeDonationThreshold.
func (d *Donation) Large() bool {
	return d.Amount > LargeDonationThreshold
}
