package storage

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GetGatewayFile fetches a blob from an HTTP gateway.
//
// It performs an HTTP GET to {gatewayEndpoint}{cID} bounded by timeout and
// returns the response body as bytes. Non-2xx responses are rejected so a
// gateway error page is never mistaken for document content. The function
// logs the CID being requested for traceability.
func GetGatewayFile(gatewayEndpoint, cID string, timeout time.Duration) ([]byte, error) {
	zap.L().Debug("Getting gateway file", zap.String("cid", cID))
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(gatewayEndpoint + cID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Error("failed to close gateway response body", zap.Error(err))
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d for %s", resp.StatusCode, cID)
	}
	file, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return file, nil
}
