package donation

import (
	"time"

	"github.com/google/uuid"

	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/importer"
	"github.com/rqsn/donasi/internal/notify"
)

type donationResponse struct {
	ID             uuid.UUID       `json:"id"`
	DonorName      string          `json:"donor_name"`
	Phone          string          `json:"phone"`
	Amount         int64           `json:"amount"`
	Method         donation.Method `json:"method"`
	Status         donation.Status `json:"status"`
	ProofReference *string         `json:"proof_reference,omitempty"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	Large          bool            `json:"large"`
}

type whatsappResponse struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type createResponse struct {
	Donation donationResponse `json:"donation"`
	WhatsApp whatsappResponse `json:"whatsapp"`
}

type importResponse struct {
	Charset   string             `json:"charset"`
	Profile   string             `json:"profile"`
	Imported  int                `json:"imported"`
	Donations []donationResponse `json:"donations"`
	Failures  []importer.Failure `json:"failures"`
}

func toResponse(d *donation.Donation) donationResponse {
	return donationResponse{
		ID:             d.ID,
		DonorName:      d.DonorName,
		Phone:          d.Phone,
		Amount:         d.Amount,
		Method:         d.Method,
		Status:         d.Status,
		ProofReference: d.ProofReference,
		SubmittedAt:    d.SubmittedAt,
		Large:          d.Large(),
	}
}

func toResponseList(ds []*donation.Donation) []donationResponse {
	resp := make([]donationResponse, len(ds))
	for i, d := range ds {
		resp[i] = toResponse(d)
	}

	return resp
}

func toCreateResponse(d *donation.Donation, msg notify.Message) createResponse {
	return createResponse{
		Donation: toResponse(d),
		WhatsApp: whatsappResponse{Text: msg.Text, Link: msg.Link},
	}
}

func toImportResponse(res *importer.Result) importResponse {
	return importResponse{
		Charset:   string(res.Charset),
		Profile:   res.Profile,
		Imported:  len(res.Created),
		Donations: toResponseList(res.Created),
		Failures:  res.Failures,
	}
}
