package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

// ipfsFetcher is the concrete implementation of IPFSFetcher using Kubo HTTP API.
type ipfsFetcher struct {
	api     *rpc.HttpApi
	timeout time.Duration
}

// newIPFSFetcher creates a new IPFS fetcher with the given HTTP API client.
// The timeout applies when the caller supplies no context.
func newIPFSFetcher(api *rpc.HttpApi, timeout time.Duration) IPFSFetcher {
	return &ipfsFetcher{api: api, timeout: timeout}
}

// Fetch retrieves content by CID from IPFS using the configured Kubo HTTP API
// client. The supplied hash is parsed as a CID and retrieved via `ipfs cat`.
// The method then performs a best-effort verification by recomputing a CID
// from (original CID bytes + content) and comparing it with the requested CID.
//
// On success, it returns the file contents.
func (f *ipfsFetcher) Fetch(ctx context.Context, hash string) (content []byte, err error) {
	if ctx == nil {
		timeout := f.timeout
		if timeout == 0 {
			timeout = defaultReadTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
		defer cancel()
	}

	zap.L().Debug("Hash used to retrieve from IPFS", zap.String("hash", hash))

	if f.api == nil {
		return nil, fmt.Errorf("ipfs client not configured")
	}

	cID, err := cid.Parse(hash)
	if err != nil {
		zap.L().Error("error parsing the ipfs hash", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}

	req := f.api.Request("cat", cID.String())
	resp, err := req.Send(ctx)
	if err != nil {
		zap.L().Error("error executing the cat command in ipfs", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}
	defer func(resp *rpc.Response) {
		err = resp.Close()
		if err != nil {
			zap.L().Error("error closing response in ipfs", zap.String("hash", hash), zap.Error(err))
		}
	}(resp)

	if resp.Error != nil {
		zap.L().Error("ipfs cat command returned error", zap.String("hash", hash), zap.Error(resp.Error))
		return nil, resp.Error
	}
	fileContent, err := io.ReadAll(resp.Output)
	if err != nil {
		zap.L().Error("error reading the ipfs file", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}

	// Create a CID manually to check CID equivalence.
	_, c, err := cid.CidFromBytes(append(cID.Bytes(), fileContent...))
	if err != nil {
		zap.L().Error("error generating ipfs hash", zap.String("hash", hash), zap.Error(err))
		return fileContent, err
	}

	if !c.Equals(cID) {
		zap.L().Error("IPFS hash verification failed. Generated hash does not match with expected hash",
			zap.String("expectedHash", hash),
			zap.String("hashFromIPFSContent", c.String()))
	}

	return fileContent, err
}

// NewIPFSClient constructs a Kubo HTTP API client pointed at url with the
// given HTTP timeout.
func NewIPFSClient(url string, timeout time.Duration) (client *rpc.HttpApi, err error) {
	if timeout == 0 {
		timeout = defaultReadTimeout
	}
	httpClient := http.Client{
		Timeout: timeout,
	}
	client, err = rpc.NewURLApiWithClient(url, &httpClient)
	if err != nil {
		zap.L().Error("Connection failed to IPFS", zap.String("url", url), zap.Error(err))
	}
	return client, err
}
