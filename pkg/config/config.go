// Package config defines the runtime configuration for the SDK: relay
// endpoint, credential material (private or public API key), storage gateways
// for ABI documents, debug mode, and operation timeouts. It also provides
// validation and defaulting helpers.
package config

import (
	"errors"
	"time"
)

// Config holds all SDK settings required to initialize the relay client.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// RelayAddr is the base URL of the signing relay (required),
	// e.g. "https://relay.cotrace.io".
	RelayAddr string `json:"relay_addr" yaml:"relay_addr"`
	// PrivateAPIKey selects admin (private-key) mode when set. Mutually
	// exclusive with PublicAPIKey.
	PrivateAPIKey string `json:"private_api_key" yaml:"private_api_key"`
	// PublicAPIKey selects client (public-key + JWT) mode when set. A JWT
	// source must be supplied to the session in this mode.
	PublicAPIKey string `json:"public_api_key" yaml:"public_api_key"`
	// IpfsURL is the HTTP API endpoint of the IPFS node used to read ABI
	// documents. Default: https://ipfs.cotrace.io:443
	IpfsURL string `json:"ipfs_url" yaml:"ipfs_url"`
	// GatewayURL is the HTTP gateway used to fetch ABI documents when no
	// IPFS node is reachable. Default: https://gateway.lighthouse.storage/ipfs/
	GatewayURL string `json:"gateway_url" yaml:"gateway_url"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Call        time.Duration // read-only contract call
	Submit      time.Duration // sendTransaction round trip
	JWTRefresh  time.Duration // credential source JWT fetch
	HistoryRead time.Duration // history listing
	StorageRead time.Duration // ABI document fetch
}

// Validate normalizes the configuration by applying implicit defaults for
// IpfsURL and GatewayURL and verifies that RelayAddr is provided and that at
// most one credential mode is selected. Returns an error when RelayAddr is
// empty or both API keys are set.
func (c *Config) Validate() error {

	if c.IpfsURL == "" {
		c.IpfsURL = "https://ipfs.cotrace.io:443"
	}

	if c.GatewayURL == "" {
		c.GatewayURL = "https://gateway.lighthouse.storage/ipfs/"
	}

	if c.RelayAddr == "" {
		return errors.New("relay address is required")
	}

	if c.PrivateAPIKey != "" && c.PublicAPIKey != "" {
		return errors.New("private and public API keys are mutually exclusive")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Call:        12s
//	Submit:      25s
//	JWTRefresh:  5s
//	HistoryRead: 12s
//	StorageRead: 5s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Call == 0 {
		tt.Call = 12 * time.Second
	}
	if tt.Submit == 0 {
		tt.Submit = 25 * time.Second
	}
	if tt.JWTRefresh == 0 {
		tt.JWTRefresh = 5 * time.Second
	}
	if tt.HistoryRead == 0 {
		tt.HistoryRead = 12 * time.Second
	}
	if tt.StorageRead == 0 {
		tt.StorageRead = 5 * time.Second
	}
	return tt
}
