package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/pinkeeper/internal/client/config"
	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
)

// Client is the remote backup service: a best-effort mirror of credential
// records in a content-addressed store.
type Client interface {
	// TestConnectivity probes the service with the configured credentials.
	// It reports false on any failure and never returns an error.
	TestConnectivity(ctx context.Context) bool

	// Upload stores payload as a JSON document and returns where it can be
	// retrieved. Failures match ErrUpload.
	Upload(ctx context.Context, payload any) (*models.Locator, error)

	Close() error
}

// New builds the Client selected by cfg.Backend. transport may be nil; tests
// pass a mock round tripper.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, transport http.RoundTripper) (Client, error) {
	switch cfg.Backend {
	case config.BackendPinata:
		return NewPinataClient(PinataOptions{
			APIURL:     cfg.PinataAPIURL,
			JWT:        cfg.PinataJWT,
			GatewayURL: cfg.EffectiveGatewayURL(),
			Timeout:    cfg.RequestTimeout,
			Transport:  transport,
		}, logger), nil
	case config.BackendS3:
		return NewS3Client(ctx, S3Options{
			Endpoint:   cfg.S3Endpoint,
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Prefix:     cfg.S3Prefix,
			GatewayURL: cfg.EffectiveGatewayURL(),
			Timeout:    cfg.RequestTimeout,
			Transport:  transport,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
