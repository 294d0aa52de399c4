package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rqsn/donasi/internal/apperr"
)

func TestCreateParams_Validate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+6281234567890", true},
		{"6281234567890", true},
		{"+62812345678", true},
		{"+6281234567", false},
		{"+62812345678901", false},
		{"081234567890", false},
		{"+62 812 3456 7890", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			p := CreateParams{DonorName: "Ahmad", Phone: tt.phone, Amount: MinimumAmount, Method: MethodTransfer}

			err := p.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Fields, 1)
			assert.Contains(t, ve.Fields, "phone")
		})
	}
}

func TestCreateParams_Validate_AmountFloor(t *testing.T) {
	p := CreateParams{DonorName: "Ahmad", Phone: "+6281234567890", Method: MethodQRIS}

	p.Amount = MinimumAmount - 1
	assert.True(t, apperr.IsValidation(p.Validate()))

	p.Amount = MinimumAmount
	assert.NoError(t, p.Validate())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, InitialStatus(MinimumAmount))
	assert.Equal(t, StatusApproved, InitialStatus(AutoApprovalThreshold))
	assert.Equal(t, StatusPending, InitialStatus(AutoApprovalThreshold+1))
}
