// tfwallet is a command-line wallet for ThreeFold Chain. It keeps an
// encrypted seed locally and talks to the public explorers only.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Klingon-tech/tfwallet/config"
	klog "github.com/Klingon-tech/tfwallet/internal/log"
)

var version = "0.1.0"

func main() {
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(1)
	}
	if flags.Version {
		fmt.Printf("tfwallet %s\n", version)
		return
	}
	if flags.Help {
		usage()
		return
	}
	if len(flags.Args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]
	if cmd == "help" {
		usage()
		return
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fatal("load config: %v", err)
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, a, cmd, cmdArgs)
	stop()
	if cerr := a.close(); cerr != nil {
		klog.Logger.Warn().Err(cerr).Msg("Shutdown")
	}
	if err != nil {
		fatal("%v", err)
	}
}

func run(ctx context.Context, a *app, cmd string, args []string) error {
	switch cmd {
	case "wallet":
		return cmdWallet(a, args)
	case "balance":
		return cmdBalance(ctx, a, args)
	case "history":
		return cmdHistory(ctx, a, args)
	case "pending":
		return cmdPending(ctx, a, args)
	case "outputs":
		return cmdOutputs(ctx, a, args)
	case "send":
		return cmdSend(ctx, a, args)
	case "erc20-convert":
		return cmdERC20Convert(ctx, a, args)
	case "erc20-register":
		return cmdERC20Register(ctx, a, args)
	case "block":
		return cmdBlock(ctx, a, args)
	case "tx":
		return cmdTx(ctx, a, args)
	case "cache":
		return cmdCache(a, args)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tfwallet [global flags] <command> [flags]

Global flags:
  --network <net>       mainnet (default) or testnet
  --testnet             Shorthand for --network=testnet
  --datadir <path>      Data directory (default: ~/.tfwallet)
  --config, -c <path>   Config file (default: <datadir>/tfwallet.conf)
  --provider <id>       Payment provider from providers.json
  --explorers <urls>    Explorer URLs, comma-separated
  --wallet <name>       Wallet name (default: default)
  --fee <coins>         Miner fee (default: provider miner fee)
  --no-cache            Do not read or write the snapshot cache
  --log-level <level>   debug, info, warn, error
  --log-file <path>     Also write JSON logs to this file
  --log-json            Log to stderr as JSON
  --version             Show version

Wallet:
  wallet create                          Create a wallet from a new mnemonic
  wallet import --mnemonic <words>       Import a wallet from a mnemonic
  wallet list                            List wallets of the network
  wallet address                         List the wallet's addresses
  wallet new-address                     Derive the next address
  wallet mnemonic                        Show the wallet's mnemonic

Queries:
  balance [--account N] [--offline] [address]
  history [--account N] [address]
  pending [--account N] [address]
  outputs [--account N] [--offline] [address]
  block [height]                         Latest block, or the block at height
  tx <id>                                Look up a transaction

Payments:
  send --to <address> --amount <coins> [--data <text>] [--account N] [--yes]
  erc20-convert --to <0x address> --amount <coins> [--account N] [--yes]
  erc20-register [--account N] [--yes]

Cache:
  cache list                             List cached addresses
  cache clear                            Drop the network's snapshot cache
`)
}
