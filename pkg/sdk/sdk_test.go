package sdk

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cotrace/relay-sdk-go/internal/testutil/relaytest"
	"github.com/cotrace/relay-sdk-go/pkg/config"
	"github.com/cotrace/relay-sdk-go/pkg/session"
)

func newTestSDK(t *testing.T, srv *relaytest.Server, opts ...Option) RelaySDK {
	t.Helper()
	t.Cleanup(session.Reset)

	cfg := &config.Config{
		RelayAddr:     srv.URL,
		PrivateAPIKey: "priv-key",
	}
	s := NewSDK(cfg, opts...)
	t.Cleanup(s.Close)
	return s
}

func TestSDKCallFlow(t *testing.T) {
	srv := relaytest.New(relaytest.Response{Status: 200, Body: `"CopperOre"`})
	defer srv.Close()

	s := newTestSDK(t, srv)

	var name string
	inv := s.Contract("Mineral").Address("0xABC").Method("name")
	if err := s.CallInto(context.Background(), inv, &name); err != nil {
		t.Fatalf("CallInto error: %v", err)
	}
	if name != "CopperOre" {
		t.Fatalf("unexpected result: %q", name)
	}
}

func TestSDKInstallsProcessSession(t *testing.T) {
	srv := relaytest.New()
	defer srv.Close()

	s := newTestSDK(t, srv)

	current, err := session.Current()
	if err != nil {
		t.Fatalf("Current error: %v", err)
	}
	if current != s.Session() {
		t.Fatal("SDK session must be installed as the process-wide session")
	}
	if current.RelayAddr() != srv.URL {
		t.Fatalf("unexpected relay addr: %s", current.RelayAddr())
	}
}

func TestSDKSendTransaction(t *testing.T) {
	srv := relaytest.New(relaytest.Response{Status: 200, Body: `{
		"transactionHash": "0x01",
		"blockHash": "0x02",
		"blockNumber": 7,
		"status": true,
		"logs": []
	}`})
	defer srv.Close()

	s := newTestSDK(t, srv)

	receipt, err := s.SendTransaction(context.Background(),
		s.Contract("Mineral").Address("0xABC").Method("createMineral").Params("CopperOre", common.Address{}.Hex()))
	if err != nil {
		t.Fatalf("SendTransaction error: %v", err)
	}
	if !receipt.Status || receipt.BlockNumber != 7 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestSDKHistory(t *testing.T) {
	srv := relaytest.New(relaytest.Response{Status: 200, Body: `[
		{"transactionHash":"0x01","method":"createMineral","blockNumber":7}
	]`})
	defer srv.Close()

	s := newTestSDK(t, srv)

	records, err := s.History(context.Background(), "tok", "0x01")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(records) != 1 || records[0].Method != "createMineral" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
