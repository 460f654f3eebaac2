package config

import (
	"context"
	"fmt"
	"log"

	"github.com/draftea/checkout-gateway/checkout-service/application"
	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/checkout-service/handlers"
	"github.com/draftea/checkout-gateway/checkout-service/infrastructure"
	"github.com/draftea/checkout-gateway/shared/events"
	sharedinfra "github.com/draftea/checkout-gateway/shared/infrastructure"
	"github.com/draftea/checkout-gateway/shared/telemetry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	SessionRepository *infrastructure.MemorySessionRepository

	// Provider clients
	TokenizationClient *infrastructure.StripeTokenizationClient
	IntentConfirmer    *infrastructure.StripeIntentConfirmer
	DelegatedClient    *infrastructure.StripeDelegatedClient

	// Use Cases
	StartCheckout             *application.StartCheckout
	GetCheckout               *application.GetCheckout
	UpdateCardField           *application.UpdateCardField
	MarkHostedComplete        *application.MarkHostedComplete
	SubmitCheckout            *application.SubmitCheckout
	LaunchDelegatedCheckout   *application.LaunchDelegatedCheckout
	DisposeCheckout           *application.DisposeCheckout
	ProcessConfirmationResult *application.ProcessConfirmationResult
	ProcessDelegatedResult    *application.ProcessDelegatedResult

	// HTTP Handlers
	CheckoutHandlers *handlers.CheckoutHandlers

	// Event Handlers
	CheckoutEventHandlers *handlers.CheckoutEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter
	EventStore      *sharedinfra.PostgresEventStore

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.CheckoutServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Published events are appended to the postgres trail before delivery
	deps.EventStore = sharedinfra.NewPostgresEventStore(db)
	var publisher events.Publisher = infrastructure.NewAuditEventPublisher(eventPublisher, deps.EventStore)

	// Initialize repositories and provider clients
	deps.SessionRepository = infrastructure.NewMemorySessionRepository()
	deps.TokenizationClient = infrastructure.NewStripeTokenizationClient(config.Stripe.SecretKey)
	deps.IntentConfirmer = infrastructure.NewStripeIntentConfirmer(config.Stripe.SecretKey, config.Stripe.ReturnURL)
	deps.DelegatedClient = infrastructure.NewStripeDelegatedClient(config.Stripe.SecretKey, config.Stripe.SuccessURL, config.Stripe.CancelURL)

	billingProvider := infrastructure.NewStaticBillingProfileProvider(domain.BillingProfile{
		Email: config.Merchant.Email,
		Phone: config.Merchant.Phone,
		Address: domain.BillingAddress{
			Line1:      config.Merchant.Line1,
			City:       config.Merchant.City,
			State:      config.Merchant.State,
			PostalCode: config.Merchant.PostalCode,
			Country:    config.Merchant.Country,
		},
	})

	// Initialize use cases
	deps.StartCheckout = application.NewStartCheckout(deps.SessionRepository, billingProvider, publisher)
	deps.GetCheckout = application.NewGetCheckout(deps.SessionRepository)
	deps.UpdateCardField = application.NewUpdateCardField(deps.SessionRepository, publisher)
	deps.MarkHostedComplete = application.NewMarkHostedComplete(deps.SessionRepository, publisher)
	deps.SubmitCheckout = application.NewSubmitCheckout(deps.SessionRepository, deps.TokenizationClient, deps.IntentConfirmer, publisher)
	deps.LaunchDelegatedCheckout = application.NewLaunchDelegatedCheckout(deps.SessionRepository, deps.DelegatedClient, publisher)
	deps.DisposeCheckout = application.NewDisposeCheckout(deps.SessionRepository, deps.DelegatedClient, publisher)
	deps.ProcessConfirmationResult = application.NewProcessConfirmationResult(deps.SessionRepository, publisher)
	deps.ProcessDelegatedResult = application.NewProcessDelegatedResult(deps.DelegatedClient)

	// Initialize handlers
	deps.CheckoutHandlers = handlers.NewCheckoutHandlers(
		deps.StartCheckout,
		deps.GetCheckout,
		deps.UpdateCardField,
		deps.MarkHostedComplete,
		deps.SubmitCheckout,
		deps.LaunchDelegatedCheckout,
		deps.DisposeCheckout,
		deps.ProcessDelegatedResult,
		deps.ProcessConfirmationResult,
	)
	deps.CheckoutEventHandlers = handlers.NewCheckoutEventHandlers(
		deps.ProcessConfirmationResult,
		deps.ProcessDelegatedResult,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
