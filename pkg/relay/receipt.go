package relay

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/cotrace/relay-sdk-go/pkg/model"
)

// DecodeReceiptEvents decodes the receipt's raw logs against the contract ABI
// and fills DecodedLog (log order) and ParsedLog (keyed by event name).
// Indexed parameters are recovered from topics, non-indexed ones from the log
// data; all are bound by the names declared in the ABI.
//
// Logs whose first topic matches no event in the ABI are skipped: receipts
// routinely carry logs emitted by other contracts touched by the same
// transaction.
func DecodeReceiptEvents(receipt *model.TransactionReceipt, contractABI *abi.ABI) error {
	receipt.ParsedLog = make(map[string]model.Event)

	for _, lg := range receipt.Logs {
		if len(lg.Topics) == 0 {
			// Anonymous events carry no event ID topic and cannot be matched.
			zap.L().Debug("skipping log without topics", zap.String("address", lg.Address))
			continue
		}

		ev, err := contractABI.EventByID(common.HexToHash(lg.Topics[0]))
		if err != nil {
			zap.L().Debug("log does not match any ABI event",
				zap.String("topic", lg.Topics[0]), zap.String("address", lg.Address))
			continue
		}

		params := make(map[string]any)

		if lg.Data != "" && lg.Data != "0x" {
			data, err := hexutil.Decode(lg.Data)
			if err != nil {
				return fmt.Errorf("decode log data for event %s: %w", ev.Name, err)
			}
			if len(data) > 0 {
				if err := contractABI.UnpackIntoMap(params, ev.Name, data); err != nil {
					return fmt.Errorf("unpack event %s data: %w", ev.Name, err)
				}
			}
		}

		indexed := indexedArguments(ev.Inputs)
		if len(indexed) > 0 {
			topics := make([]common.Hash, 0, len(lg.Topics)-1)
			for _, t := range lg.Topics[1:] {
				topics = append(topics, common.HexToHash(t))
			}
			if err := abi.ParseTopicsIntoMap(params, indexed, topics); err != nil {
				return fmt.Errorf("parse event %s topics: %w", ev.Name, err)
			}
		}

		event := model.Event{
			Name:      ev.Name,
			Anonymous: ev.Anonymous,
			Params:    params,
		}
		receipt.DecodedLog = append(receipt.DecodedLog, event)
		receipt.ParsedLog[ev.Name] = event
	}

	return nil
}

// indexedArguments returns the indexed subset of the event inputs, preserving
// declaration order.
func indexedArguments(inputs abi.Arguments) abi.Arguments {
	var indexed abi.Arguments
	for _, arg := range inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}
