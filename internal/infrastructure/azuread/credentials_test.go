package azuread

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog"

	"genie-gateway/internal/config"
	"genie-gateway/internal/utils/platformerrors"
)

type fakeCredential struct {
	token  string
	err    error
	scopes []string
}

func (f *fakeCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: f.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newTestProvider(app *fakeCredential, obo *fakeCredential) *TokenProvider {
	return &TokenProvider{
		cfg: &config.Config{
			TenantID:             "tenant",
			ClientID:             "client",
			ClientSecret:         "secret",
			DatabricksResourceID: "2ff814a6-3304-4ab8-85cb-cd0e6f879c1d",
		},
		log:           zerolog.Nop(),
		appCredential: app,
		newOBO: func(userAssertion string) (azcore.TokenCredential, error) {
			return obo, nil
		},
	}
}

func TestAppToken_RequestsDefaultScope(t *testing.T) {
	app := &fakeCredential{token: "app-token"}
	provider := newTestProvider(app, nil)

	token, err := provider.AppToken(context.Background())
	if err != nil {
		t.Fatalf("AppToken() error = %v", err)
	}
	if token != "app-token" {
		t.Errorf("AppToken() = %q, want app-token", token)
	}
	wantScope := "2ff814a6-3304-4ab8-85cb-cd0e6f879c1d/.default"
	if len(app.scopes) != 1 || app.scopes[0] != wantScope {
		t.Errorf("scopes = %v, want [%s]", app.scopes, wantScope)
	}
}

func TestOnBehalfOf_RequestsImpersonationScope(t *testing.T) {
	obo := &fakeCredential{token: "obo-token"}
	provider := newTestProvider(nil, obo)

	token, err := provider.OnBehalfOf(context.Background(), "user-jwt")
	if err != nil {
		t.Fatalf("OnBehalfOf() error = %v", err)
	}
	if token != "obo-token" {
		t.Errorf("OnBehalfOf() = %q, want obo-token", token)
	}
	wantScope := "2ff814a6-3304-4ab8-85cb-cd0e6f879c1d/user_impersonation"
	if len(obo.scopes) != 1 || obo.scopes[0] != wantScope {
		t.Errorf("scopes = %v, want [%s]", obo.scopes, wantScope)
	}
}

func TestOnBehalfOf_ExchangeFailureMapsToUnauthorized(t *testing.T) {
	obo := &fakeCredential{err: errors.New("AADSTS50013: invalid assertion")}
	provider := newTestProvider(nil, obo)

	_, err := provider.OnBehalfOf(context.Background(), "bad-jwt")
	if err == nil {
		t.Fatal("OnBehalfOf() expected error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("error type = %v, want unauthorized", err)
	}
}

func TestMapCredentialError_ForbiddenResponse(t *testing.T) {
	provider := newTestProvider(nil, nil)
	authErr := &azidentity.AuthenticationFailedError{
		RawResponse: &http.Response{StatusCode: http.StatusForbidden},
	}

	err := provider.mapCredentialError(context.Background(), authErr, "acquire token")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("error type = %v, want forbidden", err)
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatal("expected a platform error")
	}
	if got := platformErr.HTTPStatus(); got != http.StatusForbidden {
		t.Errorf("HTTPStatus() = %d, want 403", got)
	}
}
