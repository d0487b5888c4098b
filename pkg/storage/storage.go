// Package storage retrieves contract ABI documents from the decentralized
// backends the provenance platform publishes them to. Supported sources are
// IPFS (via a Kubo HTTP API client) and a plain HTTP gateway for
// Filecoin-pinned content.
package storage

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

const (
	// IpfsPrefix is the URI scheme prefix recognized for IPFS content.
	IpfsPrefix = "ipfs://"
	// FilecoinPrefix is the URI scheme prefix recognized for Filecoin/gateway content.
	FilecoinPrefix = "filecoin://"

	// defaultReadTimeout bounds document reads when no timeout is configured.
	defaultReadTimeout = 5 * time.Second
)

// GatewayFetcher fetches content from an HTTP gateway.
type GatewayFetcher interface {
	Fetch(endpoint, cid string) ([]byte, error)
}

// IPFSFetcher fetches content addressed by CID from IPFS.
type IPFSFetcher interface {
	Fetch(ctx context.Context, hash string) ([]byte, error)
}

// Client aggregates the configured storage backends.
type Client struct {
	// HttpApi is a connected Kubo HTTP API client used for IPFS reads.
	*rpc.HttpApi
	// GatewayURL is the base URL of the HTTP gateway.
	GatewayURL string

	gatewayFetcher GatewayFetcher
	ipfsFetcher    IPFSFetcher
}

// NewStorage constructs a storage client using the provided IPFS API endpoint
// and gateway URL. The timeout bounds every document read on both backends;
// zero selects defaultReadTimeout. If the IPFS client fails to initialize,
// the error is logged and the returned struct may have a nil HttpApi; gateway
// reads still work.
func NewStorage(ipfsURL, gatewayURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultReadTimeout
	}
	var err error
	s := new(Client)
	s.HttpApi, err = NewIPFSClient(ipfsURL, timeout)
	s.GatewayURL = gatewayURL
	s.gatewayFetcher = defaultGatewayFetcher{timeout: timeout}
	s.ipfsFetcher = newIPFSFetcher(s.HttpApi, timeout)
	if err != nil {
		zap.L().Error(err.Error())
	}
	return s
}

// ReadFile fetches content identified by the given hash/URI. If the input has
// the "filecoin://" prefix, it is retrieved via the HTTP gateway; otherwise,
// the content is fetched from IPFS using the Kubo client. The hash/URI is
// normalized with formatHash before retrieval.
func (s *Client) ReadFile(ctx context.Context, hash string) (rawFile []byte, err error) {
	if s.gatewayFetcher == nil {
		s.gatewayFetcher = defaultGatewayFetcher{timeout: defaultReadTimeout}
	}
	if s.ipfsFetcher == nil {
		s.ipfsFetcher = newIPFSFetcher(s.HttpApi, defaultReadTimeout)
	}

	if strings.HasPrefix(hash, FilecoinPrefix) {
		rawFile, err = s.gatewayFetcher.Fetch(s.GatewayURL, formatHash(hash))
	} else {
		rawFile, err = s.ipfsFetcher.Fetch(ctx, formatHash(hash))
	}
	return rawFile, err
}

// defaultGatewayFetcher is the production implementation of GatewayFetcher.
type defaultGatewayFetcher struct {
	timeout time.Duration
}

func (f defaultGatewayFetcher) Fetch(endpoint, cid string) ([]byte, error) {
	return GetGatewayFile(endpoint, cid, f.timeout)
}

// formatHash removes known URI scheme prefixes and any non-alphanumeric
// characters (except '=') from the supplied hash/URI to produce a clean CID
// string suitable for the underlying backends.
func formatHash(hash string) string {
	hash = strings.Replace(hash, IpfsPrefix, "", -1)
	hash = strings.Replace(hash, FilecoinPrefix, "", -1)
	hash = removeSpecialCharacters(hash)
	return hash
}

// removeSpecialCharacters strips all characters except ASCII letters, digits,
// and '=' from pString. Used to sanitize incoming CIDs/IDs.
func removeSpecialCharacters(pString string) string {
	reg := regexp.MustCompile("[^a-zA-Z0-9=]")
	return reg.ReplaceAllString(pString, "")
}
