package infrastructure

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
)

// StaticBillingProfileProvider serves a fixed billing profile from
// configuration. It stands in for a customer-profile service; the
// orchestration core only ever sees the BillingProfileProvider port.
type StaticBillingProfileProvider struct {
	profile domain.BillingProfile
}

// NewStaticBillingProfileProvider creates a provider returning the given profile
func NewStaticBillingProfileProvider(profile domain.BillingProfile) *StaticBillingProfileProvider {
	return &StaticBillingProfileProvider{profile: profile}
}

// BillingProfile returns the configured profile regardless of customer ref
func (p *StaticBillingProfileProvider) BillingProfile(ctx context.Context, customerRef string) (domain.BillingProfile, error) {
	return p.profile, nil
}
