package azuread

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog"

	"genie-gateway/internal/config"
	"genie-gateway/internal/infrastructure/metrics"
	"genie-gateway/internal/utils/platformerrors"
)

const (
	flowOnBehalfOf        = "obo"
	flowClientCredentials = "app"
)

// TokenProvider mints Databricks-scoped access tokens from the gateway's
// Azure AD app registration. The client-credentials credential is built once
// and caches tokens internally (MSAL cache); OBO credentials are built per
// request because the user assertion is part of the credential.
type TokenProvider struct {
	cfg *config.Config
	log zerolog.Logger

	appCredential azcore.TokenCredential
	newOBO        func(userAssertion string) (azcore.TokenCredential, error)
}

// NewTokenProvider constructs the provider and its service-principal credential.
func NewTokenProvider(cfg *config.Config, log zerolog.Logger) (*TokenProvider, error) {
	appCredential, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("client secret credential: %w", err)
	}

	return &TokenProvider{
		cfg:           cfg,
		log:           log.With().Str("component", "azuread").Logger(),
		appCredential: appCredential,
		newOBO: func(userAssertion string) (azcore.TokenCredential, error) {
			return azidentity.NewOnBehalfOfCredentialWithSecret(
				cfg.TenantID, cfg.ClientID, userAssertion, cfg.ClientSecret, nil)
		},
	}, nil
}

// OnBehalfOf exchanges the inbound user assertion for a Databricks token.
func (p *TokenProvider) OnBehalfOf(ctx context.Context, userAssertion string) (string, error) {
	credential, err := p.newOBO(userAssertion)
	if err != nil {
		metrics.RecordTokenAcquisition(flowOnBehalfOf, "error")
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUnauthorized, "build on-behalf-of credential", err,
			"9f0f0f3e-3c45-48a2-a186-5a44ac57cd47")
	}

	token, err := credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{p.cfg.DatabricksResourceID + "/user_impersonation"},
	})
	if err != nil {
		metrics.RecordTokenAcquisition(flowOnBehalfOf, "denied")
		p.log.Error().Err(err).Msg("on-behalf-of token exchange failed")
		return "", p.mapCredentialError(ctx, err, "acquire on-behalf-of token")
	}

	metrics.RecordTokenAcquisition(flowOnBehalfOf, "ok")
	p.log.Debug().Time("expires_on", token.ExpiresOn).Msg("acquired on-behalf-of token")
	return token.Token, nil
}

// AppToken returns a service-principal token via client credentials.
func (p *TokenProvider) AppToken(ctx context.Context) (string, error) {
	token, err := p.appCredential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{p.cfg.DatabricksResourceID + "/.default"},
	})
	if err != nil {
		metrics.RecordTokenAcquisition(flowClientCredentials, "denied")
		p.log.Error().Err(err).Msg("client credentials token acquisition failed")
		return "", p.mapCredentialError(ctx, err, "acquire service principal token")
	}

	metrics.RecordTokenAcquisition(flowClientCredentials, "ok")
	return token.Token, nil
}

// mapCredentialError turns Azure AD failures into 401/403 platform errors.
// AAD reports bad assertions as 400 invalid_grant; callers only ever see an
// authentication failure, so anything but an explicit 403 maps to 401.
func (p *TokenProvider) mapCredentialError(ctx context.Context, err error, message string) error {
	errorType := platformerrors.ErrorTypeUnauthorized

	var authFailed *azidentity.AuthenticationFailedError
	if errors.As(err, &authFailed) && authFailed.RawResponse != nil &&
		authFailed.RawResponse.StatusCode == http.StatusForbidden {
		errorType = platformerrors.ErrorTypeForbidden
	}

	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, errorType, message, err,
		"c7efc68a-20dd-4064-a528-8081dcb06e8b")
}
