// Package sdk provides the high-level entry point for interacting with the
// commodity-provenance signing relay.
//
// The SDK abstracts the relay's HTTP surface behind a fluent invocation
// builder: name a contract interface, bind it to a deployed address, pick a
// method, attach parameters, then dispatch a read-only call or a
// state-changing transaction. The relay holds the actual signing keys and
// submits transactions to the chain on the caller's behalf.
//
// # Quick Start
//
// Create an SDK instance with configuration, then build and dispatch
// invocations:
//
//	import (
//		"context"
//
//		"github.com/cotrace/relay-sdk-go/pkg/config"
//		"github.com/cotrace/relay-sdk-go/pkg/relay"
//		"github.com/cotrace/relay-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		cfg := &config.Config{
//			RelayAddr:     "https://relay.cotrace.io",
//			PrivateAPIKey: "YOUR_PRIVATE_API_KEY",
//			Debug:         true,
//		}
//
//		relaySDK := sdk.NewSDK(cfg)
//		defer relaySDK.Close()
//
//		mineral := relaySDK.Contract("Mineral").Address("0xABC...")
//
//		name, err := relay.CallAs[string](context.Background(), relaySDK.Relay(), mineral.Method("name"))
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("mineral:", name)
//	}
//
// # Authentication Modes
//
// Two mutually exclusive credential modes exist:
//
//   - Private-key mode (admin): set Config.PrivateAPIKey. Every request
//     carries the private API key; a 401 from the relay is fatal.
//   - Public-key mode (client): set Config.PublicAPIKey and supply a JWT via
//     sdk.WithJWT and/or a refresh hook via sdk.WithJWTSource. On a 401 the
//     SDK refreshes the JWT exactly once and retries the same invocation.
//
// # Core Components
//
// RelaySDK interface:
//   - Contract: build invocations fluently
//   - Call / CallInto: read-only dispatch
//   - SendTransaction / SendTransactionWithABI: state-changing dispatch with
//     optional receipt event decoding
//   - History: audit listing of prior invocations (admin only)
//   - Close: release resources
//
// Errors follow a small taxonomy (see package relay): ValidationError before
// any I/O, UnauthorizedError, HTTPError, NetworkError from the transport, and
// session.CredentialRefreshError when the JWT hook itself fails.
package sdk
