// Package model defines the data structures exchanged with the signing
// relay: transaction receipts, raw and decoded event logs, and invocation
// history records. These structs mirror the JSON documents the relay returns;
// they are produced by the relay client and never constructed by callers.
package model

// RawLog is one untouched log entry from a transaction receipt, exactly as
// the relay returns it. Topics and Data are 0x-prefixed hex strings.
type RawLog struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockNumber      uint64   `json:"blockNumber"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex uint     `json:"transactionIndex"`
	BlockHash        string   `json:"blockHash"`
	LogIndex         uint     `json:"logIndex"`
	Removed          bool     `json:"removed"`
}

// Event is one decoded log entry: the event name, whether the event is
// anonymous, and its input parameters bound by name. Indexed parameters are
// recovered from topics, the rest from the log data.
type Event struct {
	Name      string         `json:"name"`
	Anonymous bool           `json:"anonymous"`
	Params    map[string]any `json:"params"`
}

// TransactionReceipt is the result of a state-changing invocation. Block
// metadata, status and raw logs come from the relay verbatim; DecodedLog and
// ParsedLog are filled in only when the caller supplied a contract ABI.
type TransactionReceipt struct {
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex uint     `json:"transactionIndex"`
	BlockHash        string   `json:"blockHash"`
	BlockNumber      uint64   `json:"blockNumber"`
	From             string   `json:"from"`
	To               string   `json:"to"`
	GasUsed          uint64   `json:"gasUsed"`
	Status           bool     `json:"status"`
	Logs             []RawLog `json:"logs"`

	// DecodedLog holds the decoded events in log order.
	DecodedLog []Event `json:"decodedLog,omitempty"`
	// ParsedLog maps event name to the decoded event. When the same event
	// fires more than once in a transaction, the last occurrence wins.
	ParsedLog map[string]Event `json:"parsedLog,omitempty"`
}

// HistoryRecord is one prior invocation as reported by the relay's history
// endpoint, ordered oldest first.
type HistoryRecord struct {
	TransactionHash string `json:"transactionHash"`
	InterfaceName   string `json:"interfaceName"`
	InstanceAddress string `json:"instanceAddress"`
	Method          string `json:"method"`
	Params          []any  `json:"params"`
	BlockNumber     uint64 `json:"blockNumber"`
	Timestamp       int64  `json:"timestamp"`
	Caller          string `json:"caller"`
}
