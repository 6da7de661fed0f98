package crm

import (
	"strings"

	"ar-sync/core/apierror"
)

const serviceName = "hubspot"

// DefaultBaseURL is the public HubSpot API host.
const DefaultBaseURL = "https://api.hubapi.com"

// Config holds HubSpot settings.
type Config struct {
	// AccessToken is the private-app bearer token.
	AccessToken string `mapstructure:"access_token" default:""`
	// BaseURL is the API host.
	BaseURL string `mapstructure:"base_url" default:"https://api.hubapi.com"`
	// TimeoutSeconds bounds each outbound call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks the bearer token.
func (c Config) Validate() error {
	if c.AccessToken == "" {
		return &apierror.AuthConfigError{Service: serviceName, Field: "access_token"}
	}
	if strings.ContainsAny(c.AccessToken, " \t\r\n") {
		return &apierror.AuthConfigError{Service: serviceName, Field: "access_token", Reason: "contains whitespace"}
	}
	return nil
}
