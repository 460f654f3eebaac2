package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/pkg/errors"
)

// ProcessDelegatedResultCommand carries a provider outcome received on the
// callback surface (webhook or redirect)
type ProcessDelegatedResultCommand struct {
	ProviderRef string `json:"provider_ref"`
	Success     bool   `json:"success"`
	PaymentID   string `json:"payment_id,omitempty"`
	OrderID     string `json:"order_id,omitempty"`
	Signature   string `json:"signature,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProcessDelegatedResult use case forwards a provider outcome to the callback
// registration held for the launch. No business logic beyond forwarding; a
// delivery for a released registration is dropped.
type ProcessDelegatedResult struct {
	delegatedClient domain.DelegatedCheckoutClient
}

// NewProcessDelegatedResult creates a new ProcessDelegatedResult use case
func NewProcessDelegatedResult(delegatedClient domain.DelegatedCheckoutClient) *ProcessDelegatedResult {
	return &ProcessDelegatedResult{
		delegatedClient: delegatedClient,
	}
}

// Execute delivers the outcome; exactly one callback fires per launch
func (uc *ProcessDelegatedResult) Execute(ctx context.Context, cmd *ProcessDelegatedResultCommand) error {
	if cmd.ProviderRef == "" {
		return errors.New("provider ref is required")
	}

	if cmd.Success {
		uc.delegatedClient.Deliver(ctx, cmd.ProviderRef, &domain.DelegatedSuccess{
			PaymentID: cmd.PaymentID,
			OrderID:   cmd.OrderID,
			Signature: cmd.Signature,
		}, nil)
		return nil
	}

	uc.delegatedClient.Deliver(ctx, cmd.ProviderRef, nil, &domain.DelegatedFailure{
		Code:        cmd.Code,
		Description: cmd.Description,
	})
	return nil
}
