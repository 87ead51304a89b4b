// Command authtool decodes, inspects and signs EIP-2930 access lists and
// EIP-7702 authorizations given as hex wire bytes.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/eth2030/typedtx/core/types"
	"github.com/eth2030/typedtx/crypto"
)

var (
	version = "v0.1.0"
	commit  = "unknown"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	chainIDFlag = &cli.Uint64Flag{
		Name:  "chainid",
		Usage: "Chain id used for applicability checks and signing",
		Value: 1,
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Log level 0-5 (0=silent, 5=trace)",
		Value: 3,
	}
	lowSFlag = &cli.BoolFlag{
		Name:  "lows",
		Usage: "Report signatures with s above n/2",
	}
	cacheSizeFlag = &cli.IntFlag{
		Name:  "cache",
		Usage: "Number of recovered keys kept across list entries",
		Value: crypto.DefaultSigCacheSize,
	}

	keyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "Hex encoded secp256k1 private key",
		Required: true,
	}
	addressFlag = &cli.StringFlag{
		Name:     "address",
		Usage:    "Delegation target address",
		Required: true,
	}
	nonceFlag = &cli.Uint64Flag{
		Name:  "nonce",
		Usage: "Authority account nonce",
	}
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if err := newApp().Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "authtool",
		Usage:   "inspect access lists and set-code authorizations",
		Version: version + "-" + commit,
		Flags:   []cli.Flag{configFileFlag, chainIDFlag, verbosityFlag, lowSFlag, cacheSizeFlag},
		Commands: []*cli.Command{
			{
				Name:      "accesslist",
				Usage:     "Decode an RLP access list",
				ArgsUsage: "<hex>",
				Action:    accessListCmd,
			},
			{
				Name:      "auth",
				Usage:     "Decode a signed authorization and recover its authority",
				ArgsUsage: "<hex>",
				Action:    authCmd,
			},
			{
				Name:      "authlist",
				Usage:     "Decode an authorization list and recover every authority",
				ArgsUsage: "<hex>",
				Action:    authListCmd,
			},
			{
				Name:   "sign",
				Usage:  "Sign an authorization with a local key",
				Flags:  []cli.Flag{keyFlag, addressFlag, nonceFlag},
				Action: signCmd,
			},
		},
	}
}

func setupLogging(verbosity int) {
	var lvl slog.Level
	switch {
	case verbosity <= 1:
		lvl = slog.LevelError
	case verbosity == 2:
		lvl = slog.LevelWarn
	case verbosity == 3:
		lvl = slog.LevelInfo
	case verbosity == 4:
		lvl = slog.LevelDebug
	default:
		lvl = log.LevelTrace
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)))
}

// prepare loads the configuration and installs the logger.
func prepare(ctx *cli.Context) (authtoolConfig, error) {
	cfg, err := loadSettings(ctx)
	if err != nil {
		return cfg, err
	}
	setupLogging(cfg.Verbosity)
	return cfg, nil
}

var errMissingInput = errors.New("expected exactly one hex argument")

func hexArg(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, errMissingInput
	}
	s := strings.TrimSpace(ctx.Args().First())
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func writeJSON(ctx *cli.Context, v any) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type accessListReport struct {
	Tuples      int              `json:"tuples"`
	KeyCount    int              `json:"keyCount"`
	EncodedSize int              `json:"encodedSize"`
	AccessList  types.AccessList `json:"accessList"`
}

func accessListCmd(ctx *cli.Context) error {
	if _, err := prepare(ctx); err != nil {
		return err
	}
	input, err := hexArg(ctx)
	if err != nil {
		return err
	}
	al, err := types.DecodeAccessList(input)
	if err != nil {
		return err
	}
	log.Debug("Decoded access list", "tuples", al.Len(), "keys", al.StorageKeys())
	return writeJSON(ctx, accessListReport{
		Tuples:      al.Len(),
		KeyCount:    al.StorageKeys(),
		EncodedSize: al.EncodedSize(),
		AccessList:  al,
	})
}

type authReport struct {
	Index          *int                      `json:"index,omitempty"`
	Authorization  types.SignedAuthorization `json:"authorization"`
	SigningHash    common.Hash               `json:"signingHash"`
	Authority      *common.Address           `json:"authority,omitempty"`
	Error          string                    `json:"error,omitempty"`
	Policy         string                    `json:"policy,omitempty"`
	AppliesToChain bool                      `json:"appliesToChain"`
}

func newAuthReport(sa types.SignedAuthorization, authority types.RecoveredAuthority, cfg authtoolConfig) authReport {
	auth := sa.Authorization()
	r := authReport{
		Authorization:  sa,
		SigningHash:    auth.SigningHash(),
		AppliesToChain: auth.AppliesToChainID(cfg.ChainID),
	}
	if authority.Valid() {
		addr := authority.Address
		r.Authority = &addr
	} else {
		r.Error = authority.Err.Error()
	}
	if cfg.RequireLowS {
		if err := sa.Signature().ValidateValues(true); err != nil {
			r.Policy = err.Error()
		}
	}
	return r
}

func authCmd(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx)
	if err != nil {
		return err
	}
	sa, err := types.DecodeSignedAuthorization(input)
	if err != nil {
		return err
	}
	return writeJSON(ctx, newAuthReport(sa, sa.Recovered().Authority, cfg))
}

type authListReport struct {
	Entries    int          `json:"entries"`
	Applicable int          `json:"applicable"`
	Basic      string       `json:"basicValidation"`
	Results    []authReport `json:"results"`
}

func authListCmd(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx)
	if err != nil {
		return err
	}
	list, err := types.DecodeAuthorizationList(input)
	if err != nil {
		return err
	}
	report := authListReport{
		Entries:    len(list),
		Applicable: list.Applicable(uint256.NewInt(cfg.ChainID)),
		Basic:      "ok",
		Results:    make([]authReport, 0, len(list)),
	}
	if err := list.ValidateBasic(); err != nil {
		report.Basic = err.Error()
	}
	backend := crypto.NewCachedBackend(crypto.Secp256k1, cfg.CacheSize)
	for i, authority := range list.AuthoritiesWith(backend) {
		r := newAuthReport(list[i], authority, cfg)
		r.Index = &i
		report.Results = append(report.Results, r)
	}
	log.Debug("Recovered authorization list", "entries", len(list), "cached", backend.Len())
	return writeJSON(ctx, report)
}

type signReport struct {
	Authorization types.SignedAuthorization `json:"authorization"`
	Authority     common.Address            `json:"authority"`
	RLP           hexutil.Bytes             `json:"rlp"`
}

func signCmd(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(ctx.String(keyFlag.Name), "0x"))
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	target := ctx.String(addressFlag.Name)
	if !common.IsHexAddress(target) {
		return fmt.Errorf("invalid address %q", target)
	}
	auth := types.NewAuthorization(cfg.ChainID, common.HexToAddress(target), ctx.Uint64(nonceFlag.Name))
	sa, err := types.SignAuthorization(key, auth)
	if err != nil {
		return err
	}
	authority, err := sa.Authority()
	if err != nil {
		return err
	}
	log.Info("Signed authorization", "authority", authority, "target", auth.Address, "chain", cfg.ChainID, "nonce", auth.Nonce)
	return writeJSON(ctx, signReport{
		Authorization: sa,
		Authority:     authority,
		RLP:           types.EncodeSignedAuthorization(sa),
	})
}
