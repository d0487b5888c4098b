// Package relay implements the transport client for the signing relay. It
// turns a contract.Invocation into an HTTP request against the session's
// relay endpoint and parses the response into a typed result, with a single
// built-in recovery: a one-shot JWT refresh and retry on 401 in public-key
// mode.
package relay

const (
	// AuthTypeHeader announces the credential mode of the request.
	// Supported values are: "private", "public".
	AuthTypeHeader = "Auth-Type"
	// AuthTypePrivate is the AuthTypeHeader value for admin callers.
	AuthTypePrivate = "private"
	// AuthTypePublic is the AuthTypeHeader value for client callers.
	AuthTypePublic = "public"
	// PrivateAPIKeyHeader carries the private API key in admin mode.
	PrivateAPIKeyHeader = "Private-Api-Key"
	// PublicAPIKeyHeader carries the public API key in client mode.
	PublicAPIKeyHeader = "Public-Api-Key"
	// JWTHeader carries the current end-user token in client mode.
	JWTHeader = "Jwt"

	callPath            = "/call"
	sendTransactionPath = "/sendTransaction"
	historyPath         = "/history"
)
