package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
)

// LoadABI fetches a contract ABI document by hash/URI and parses it. The
// returned ABI is ready to be handed to the relay client for receipt event
// decoding.
func (s *Client) LoadABI(ctx context.Context, hash string) (*abi.ABI, error) {
	raw, err := s.ReadFile(ctx, hash)
	if err != nil {
		zap.L().Error("failed to fetch ABI document", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse ABI document %s: %w", hash, err)
	}
	return &parsed, nil
}
