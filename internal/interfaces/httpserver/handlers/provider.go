package handlers

import (
	domain "genie-gateway/internal/domain/genie"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Genie *GenieHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(genieService domain.Service) *Provider {
	return &Provider{
		Genie: NewGenieHandler(genieService),
	}
}
