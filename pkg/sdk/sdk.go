// Package sdk exposes the high-level entry points of the provenance relay
// SDK. It wires together configuration, the credential session, the relay
// transport client, and ABI document storage.
package sdk

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"

	"github.com/cotrace/relay-sdk-go/pkg/config"
	"github.com/cotrace/relay-sdk-go/pkg/contract"
	"github.com/cotrace/relay-sdk-go/pkg/model"
	"github.com/cotrace/relay-sdk-go/pkg/relay"
	"github.com/cotrace/relay-sdk-go/pkg/session"
	"github.com/cotrace/relay-sdk-go/pkg/storage"
)

// RelaySDK is the public interface for dispatching contract invocations and
// releasing resources.
type RelaySDK interface {
	// Contract returns the interface descriptor for the named contract type.
	// Chain Address/Method/Params on it to build an invocation.
	Contract(name string) contract.Interface

	// Call performs a read-only invocation and returns the relay's JSON
	// payload verbatim.
	Call(ctx context.Context, inv contract.Invocation) (json.RawMessage, error)

	// CallInto performs a read-only invocation and decodes the result into out.
	CallInto(ctx context.Context, inv contract.Invocation, out any) error

	// SendTransaction performs a state-changing invocation and returns the
	// transaction receipt with raw, undecoded logs.
	SendTransaction(ctx context.Context, inv contract.Invocation) (*model.TransactionReceipt, error)

	// SendTransactionWithABI performs a state-changing invocation and decodes
	// the receipt logs against the supplied contract ABI.
	SendTransactionWithABI(ctx context.Context, inv contract.Invocation, contractABI *abi.ABI) (*model.TransactionReceipt, error)

	// SendTransactionWithABIDocument is like SendTransactionWithABI but loads
	// the ABI from storage by hash/URI first.
	SendTransactionWithABIDocument(ctx context.Context, inv contract.Invocation, abiHash string) (*model.TransactionReceipt, error)

	// History returns prior invocations recorded by the relay (admin only).
	History(ctx context.Context, token, tnx string) ([]model.HistoryRecord, error)

	// Session returns the credential session backing this SDK instance.
	Session() *session.Session

	// Relay returns the underlying transport client (advanced usage).
	Relay() *relay.Client

	// Storage returns the ABI document storage client.
	Storage() *storage.Client

	// Close releases resources associated with the SDK instance.
	Close()
}

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Option customizes SDK construction.
type Option func(*settings)

type settings struct {
	jwt       string
	jwtSource session.JWTSource
}

// WithJWT supplies the initial end-user token for public-key mode.
func WithJWT(token string) Option {
	return func(s *settings) { s.jwt = token }
}

// WithJWTSource supplies the hook that fetches a fresh JWT from the identity
// provider. Required for the refresh-on-401 behavior in public-key mode.
func WithJWTSource(src session.JWTSource) Option {
	return func(s *settings) { s.jwtSource = src }
}

// Core is the concrete SDK implementation.
type Core struct {
	*config.Config
	sess    *session.Session
	relay   *relay.Client
	storage *storage.Client
}

// NewSDK initializes the SDK Core with validated configuration, installs the
// process-wide session, and constructs the relay and storage clients. It
// aborts the process if the configuration or credentials are invalid.
func NewSDK(cfg *config.Config, opts ...Option) RelaySDK {
	if err := cfg.Validate(); err != nil {
		zap.L().Fatal("Invalid config", zap.Error(err))
	}

	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	sess, err := session.Init(cfg.RelayAddr, session.Credential{
		PrivateAPIKey: cfg.PrivateAPIKey,
		PublicAPIKey:  cfg.PublicAPIKey,
		JWT:           s.jwt,
		Source:        s.jwtSource,
	})
	if err != nil {
		zap.L().Fatal("Invalid credentials", zap.Error(err))
	}

	if cfg.Debug {
		zap.L().Debug("session initialized",
			zap.String("relay", sess.RelayAddr()), zap.Int("mode", int(sess.Mode())))
	}

	return &Core{
		Config:  cfg,
		sess:    sess,
		relay:   relay.NewClient(sess, cfg.Timeouts),
		storage: storage.NewStorage(cfg.IpfsURL, cfg.GatewayURL, cfg.Timeouts.StorageRead),
	}
}

// Contract returns the interface descriptor for the named contract type.
func (c *Core) Contract(name string) contract.Interface {
	return contract.New(name)
}

// Call performs a read-only invocation against the relay.
func (c *Core) Call(ctx context.Context, inv contract.Invocation) (json.RawMessage, error) {
	return c.relay.Call(ctx, inv)
}

// CallInto performs a read-only invocation and decodes the result into out.
func (c *Core) CallInto(ctx context.Context, inv contract.Invocation, out any) error {
	return c.relay.CallInto(ctx, inv, out)
}

// SendTransaction performs a state-changing invocation.
func (c *Core) SendTransaction(ctx context.Context, inv contract.Invocation) (*model.TransactionReceipt, error) {
	return c.relay.SendTransaction(ctx, inv)
}

// SendTransactionWithABI performs a state-changing invocation and decodes the
// receipt logs against the supplied ABI.
func (c *Core) SendTransactionWithABI(ctx context.Context, inv contract.Invocation, contractABI *abi.ABI) (*model.TransactionReceipt, error) {
	return c.relay.SendTransactionWithABI(ctx, inv, contractABI)
}

// SendTransactionWithABIDocument loads the contract ABI from storage and
// performs the invocation with receipt event decoding.
func (c *Core) SendTransactionWithABIDocument(ctx context.Context, inv contract.Invocation, abiHash string) (*model.TransactionReceipt, error) {
	contractABI, err := c.storage.LoadABI(ctx, abiHash)
	if err != nil {
		return nil, err
	}
	return c.relay.SendTransactionWithABI(ctx, inv, contractABI)
}

// History returns prior invocations recorded by the relay.
func (c *Core) History(ctx context.Context, token, tnx string) ([]model.HistoryRecord, error) {
	return c.relay.History(ctx, token, tnx)
}

// Session returns the credential session backing this SDK instance.
func (c *Core) Session() *session.Session {
	return c.sess
}

// Relay returns the underlying transport client.
func (c *Core) Relay() *relay.Client {
	return c.relay
}

// Storage returns the ABI document storage client.
func (c *Core) Storage() *storage.Client {
	return c.storage
}

// Close releases resources associated with the SDK instance.
func (c *Core) Close() {
	c.relay.Close()
}
