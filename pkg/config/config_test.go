package config

import (
	"testing"
	"time"
)

// TestConfigValidate_AppliesDefaults verifies that Validate applies default
// values for IpfsURL and GatewayURL when they are not explicitly set.
func TestConfigValidate_AppliesDefaults(t *testing.T) {
	cfg := &Config{
		RelayAddr: "https://relay.example",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if cfg.IpfsURL != "https://ipfs.cotrace.io:443" {
		t.Fatalf("unexpected IpfsURL: %s", cfg.IpfsURL)
	}
	if cfg.GatewayURL != "https://gateway.lighthouse.storage/ipfs/" {
		t.Fatalf("unexpected GatewayURL: %s", cfg.GatewayURL)
	}
}

// TestConfigValidate_RequiresRelay verifies that Validate returns an error
// when RelayAddr is not provided.
func TestConfigValidate_RequiresRelay(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing relay address")
	}
}

// TestConfigValidate_RejectsBothKeys verifies that supplying both a private
// and a public API key is rejected.
func TestConfigValidate_RejectsBothKeys(t *testing.T) {
	cfg := &Config{
		RelayAddr:     "https://relay.example",
		PrivateAPIKey: "priv",
		PublicAPIKey:  "pub",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mutually exclusive API keys")
	}
}

// TestTimeoutsWithDefaults verifies that WithDefaults preserves explicitly
// set timeout values and fills in defaults for zero values.
func TestTimeoutsWithDefaults(t *testing.T) {
	in := Timeouts{
		Submit: 3 * time.Second,
	}

	out := in.WithDefaults()

	if out.Submit != 3*time.Second {
		t.Fatalf("explicit Submit timeout overwritten: %v", out.Submit)
	}
	if out.Call != 12*time.Second {
		t.Fatalf("unexpected Call default: %v", out.Call)
	}
	if out.JWTRefresh != 5*time.Second {
		t.Fatalf("unexpected JWTRefresh default: %v", out.JWTRefresh)
	}
	if out.HistoryRead != 12*time.Second {
		t.Fatalf("unexpected HistoryRead default: %v", out.HistoryRead)
	}
	if out.StorageRead != 5*time.Second {
		t.Fatalf("unexpected StorageRead default: %v", out.StorageRead)
	}
}
