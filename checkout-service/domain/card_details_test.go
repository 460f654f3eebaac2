package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildCard(t *testing.T, fields map[string]string) CardDetails {
	t.Helper()
	card := CardDetails{}
	var err error
	for name, value := range fields {
		card, err = card.WithField(name, value)
		assert.NoError(t, err)
	}
	return card
}

func TestCardDetails_WithField(t *testing.T) {
	tests := []struct {
		name          string
		field         string
		value         string
		expectedError string
	}{
		{
			name:  "set card number",
			field: CardFieldNumber,
			value: "4242424242424242",
		},
		{
			name:  "set expiration month",
			field: CardFieldExpMonth,
			value: "12",
		},
		{
			name:  "set expiration year",
			field: CardFieldExpYear,
			value: "2030",
		},
		{
			name:  "set cvc",
			field: CardFieldCVC,
			value: "123",
		},
		{
			name:  "value is trimmed",
			field: CardFieldNumber,
			value: "  4242424242424242  ",
		},
		{
			name:          "non-numeric month",
			field:         CardFieldExpMonth,
			value:         "dec",
			expectedError: "expiration month must be numeric",
		},
		{
			name:          "non-numeric year",
			field:         CardFieldExpYear,
			value:         "20x0",
			expectedError: "expiration year must be numeric",
		},
		{
			name:          "unknown field",
			field:         "cardholder_name",
			value:         "John Doe",
			expectedError: "unknown card field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := CardDetails{}.WithField(tt.field, tt.value)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.False(t, card.IsEmpty())
		})
	}
}

func TestCardDetails_Immutability(t *testing.T) {
	base := buildCard(t, map[string]string{CardFieldNumber: "4242424242424242"})

	updated, err := base.WithField(CardFieldCVC, "123")
	assert.NoError(t, err)

	// original snapshot is untouched
	assert.Empty(t, base.CVC())
	assert.Equal(t, "123", updated.CVC())
	assert.Equal(t, base.Number(), updated.Number())
}

func TestCardDetails_IsComplete(t *testing.T) {
	complete := map[string]string{
		CardFieldNumber:   "4242424242424242",
		CardFieldExpMonth: "12",
		CardFieldExpYear:  "2030",
		CardFieldCVC:      "123",
	}

	tests := []struct {
		name     string
		fields   map[string]string
		complete bool
	}{
		{
			name:     "all fields valid",
			fields:   complete,
			complete: true,
		},
		{
			name:     "no fields",
			fields:   map[string]string{},
			complete: false,
		},
		{
			name: "missing cvc",
			fields: map[string]string{
				CardFieldNumber:   "4242424242424242",
				CardFieldExpMonth: "12",
				CardFieldExpYear:  "2030",
			},
			complete: false,
		},
		{
			name: "non-numeric card number",
			fields: map[string]string{
				CardFieldNumber:   "4242-4242-4242-4242",
				CardFieldExpMonth: "12",
				CardFieldExpYear:  "2030",
				CardFieldCVC:      "123",
			},
			complete: false,
		},
		{
			name: "month out of range",
			fields: map[string]string{
				CardFieldNumber:   "4242424242424242",
				CardFieldExpMonth: "13",
				CardFieldExpYear:  "2030",
				CardFieldCVC:      "123",
			},
			complete: false,
		},
		{
			name: "expired year",
			fields: map[string]string{
				CardFieldNumber:   "4242424242424242",
				CardFieldExpMonth: "12",
				CardFieldExpYear:  "2019",
				CardFieldCVC:      "123",
			},
			complete: false,
		},
		{
			name: "two-digit year accepted",
			fields: map[string]string{
				CardFieldNumber:   "4242424242424242",
				CardFieldExpMonth: "12",
				CardFieldExpYear:  "99",
				CardFieldCVC:      "123",
			},
			complete: true,
		},
		{
			name: "four-digit cvc accepted",
			fields: map[string]string{
				CardFieldNumber:   "378282246310005",
				CardFieldExpMonth: "6",
				CardFieldExpYear:  "2031",
				CardFieldCVC:      "1234",
			},
			complete: true,
		},
		{
			name: "cvc too short",
			fields: map[string]string{
				CardFieldNumber:   "4242424242424242",
				CardFieldExpMonth: "12",
				CardFieldExpYear:  "2030",
				CardFieldCVC:      "12",
			},
			complete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := buildCard(t, tt.fields)
			assert.Equal(t, tt.complete, card.IsComplete())
		})
	}
}

func TestCardDetails_Last4(t *testing.T) {
	card := buildCard(t, map[string]string{CardFieldNumber: "4242424242424242"})
	assert.Equal(t, "4242", card.Last4())

	short := buildCard(t, map[string]string{CardFieldNumber: "42"})
	assert.Empty(t, short.Last4())

	assert.Empty(t, CardDetails{}.Last4())
}

func TestCardDetails_StringMasksNumber(t *testing.T) {
	card := buildCard(t, map[string]string{CardFieldNumber: "4242424242424242"})
	assert.Equal(t, "card(****4242)", card.String())
	assert.NotContains(t, card.String(), "424242424242")

	assert.Equal(t, "card()", CardDetails{}.String())
}
