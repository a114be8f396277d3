package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Klingon-tech/tfwallet/internal/explorer"
	klog "github.com/Klingon-tech/tfwallet/internal/log"
	"github.com/Klingon-tech/tfwallet/internal/wallet"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ── wallet ──────────────────────────────────────────────────────────────

const walletUsage = "Usage: tfwallet wallet <create|import|list|address|new-address|mnemonic> [flags]"

func cmdWallet(a *app, args []string) error {
	if len(args) < 1 {
		return errors.New(walletUsage)
	}
	switch args[0] {
	case "create":
		return cmdWalletCreate(a)
	case "import":
		return cmdWalletImport(a, args[1:])
	case "list":
		return cmdWalletList(a)
	case "address":
		return cmdWalletAddress(a)
	case "new-address":
		return cmdWalletNewAddress(a)
	case "mnemonic":
		return cmdWalletMnemonic(a)
	default:
		return fmt.Errorf("unknown wallet command: %s\n%s", args[0], walletUsage)
	}
}

func cmdWalletCreate(a *app) error {
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Mnemonic (write this down!):")
	fmt.Fprintf(a.out, "  %s\n\n", mnemonic)
	return createWallet(a, mnemonic)
}

func cmdWalletImport(a *app, args []string) error {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic (24 words); read from stdin when empty")
	fs.Parse(args)

	if *mnemonic == "" {
		fmt.Fprint(a.out, "Enter mnemonic: ")
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read mnemonic: %w", err)
		}
		*mnemonic = line
	}
	words := strings.Join(strings.Fields(*mnemonic), " ")
	if !wallet.ValidateMnemonic(words) {
		return wallet.ErrInvalidMnemonic
	}
	return createWallet(a, words)
}

func createWallet(a *app, mnemonic string) error {
	name := a.cfg.Wallet.Name
	seed, err := wallet.SeedFromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	defer wipe(seed)

	acct, err := wallet.DeriveAccount(seed, 0, "Default")
	if err != nil {
		return err
	}
	password, err := readNewPassword()
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.ks.Create(name, string(a.cfg.Network), seed, password, wallet.DefaultParams()); err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}
	if err := a.ks.AddAccount(name, acct.Entry()); err != nil {
		return fmt.Errorf("add account: %w", err)
	}
	klog.Wallet.Info().Str("wallet", name).Str("network", string(a.cfg.Network)).Msg("Wallet created")

	fmt.Fprintf(a.out, "Wallet created: %s (%s)\n", name, a.cfg.Network)
	fmt.Fprintf(a.out, "Address: %s\n", acct.Address)
	return nil
}

func cmdWalletList(a *app) error {
	names, err := a.ks.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, "No wallets found.")
		return nil
	}
	for _, name := range names {
		marker := " "
		if name == a.cfg.Wallet.Name {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", marker, name)
	}
	return nil
}

func cmdWalletAddress(a *app) error {
	name, err := a.openWallet()
	if err != nil {
		return err
	}
	accounts, err := a.ks.ListAccounts(name)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No addresses found.")
		return nil
	}
	for _, acct := range accounts {
		fmt.Fprintf(a.out, "  [%d] %s  %s\n", acct.Index, acct.Address, acct.Name)
	}
	return nil
}

func cmdWalletNewAddress(a *app) error {
	name, seed, err := a.loadSeed()
	if err != nil {
		return err
	}
	defer wipe(seed)

	next, err := a.ks.NextIndex(name)
	if err != nil {
		return err
	}
	acct, err := wallet.DeriveAccount(seed, next, fmt.Sprintf("Address %d", next))
	if err != nil {
		return err
	}
	if err := a.ks.AddAccount(name, acct.Entry()); err != nil {
		return fmt.Errorf("add account: %w", err)
	}
	fmt.Fprintf(a.out, "New address [%d]: %s\n", acct.Index, acct.Address)
	return nil
}

func cmdWalletMnemonic(a *app) error {
	_, seed, err := a.loadSeed()
	if err != nil {
		return err
	}
	defer wipe(seed)
	mnemonic, err := wallet.MnemonicFromSeed(seed)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, mnemonic)
	return nil
}

// ── queries ─────────────────────────────────────────────────────────────

func cmdBalance(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	account := fs.Uint64("account", 0, "Account index")
	offline := fs.Bool("offline", false, "Use the last cached snapshot")
	fs.Parse(args)

	addr, err := a.resolveAddress(fs.Args(), *account)
	if err != nil {
		return err
	}
	svc, err := a.service(nil)
	if err != nil {
		return err
	}
	if *offline {
		b, err := svc.CachedBalance(addr)
		if err != nil {
			return err
		}
		printBalance(a.out, b, a.provider)
		return nil
	}

	b, err := svc.Balance(ctx, addr)
	if errors.Is(err, explorer.ErrExplorerUnavailable) {
		cached, cerr := svc.CachedBalance(addr)
		if cerr != nil {
			return err
		}
		klog.Wallet.Warn().Err(err).Msg("Explorers unavailable, showing cached balance")
		b = cached
	} else if err != nil {
		return err
	}
	printBalance(a.out, b, a.provider)
	return nil
}

func cmdHistory(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	account := fs.Uint64("account", 0, "Account index")
	fs.Parse(args)

	addr, err := a.resolveAddress(fs.Args(), *account)
	if err != nil {
		return err
	}
	svc, err := a.service(nil)
	if err != nil {
		return err
	}
	entries, err := svc.History(ctx, addr)
	if err != nil {
		return err
	}
	printHistory(a.out, entries, a.provider)
	return nil
}

func cmdPending(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("pending", flag.ExitOnError)
	account := fs.Uint64("account", 0, "Account index")
	fs.Parse(args)

	addr, err := a.resolveAddress(fs.Args(), *account)
	if err != nil {
		return err
	}
	svc, err := a.service(nil)
	if err != nil {
		return err
	}
	pending, err := svc.Pending(ctx, addr)
	if err != nil {
		return err
	}
	printPending(a.out, pending, a.provider)
	return nil
}

func cmdOutputs(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("outputs", flag.ExitOnError)
	account := fs.Uint64("account", 0, "Account index")
	offline := fs.Bool("offline", false, "Use the outputs of the last cached snapshot")
	fs.Parse(args)

	addr, err := a.resolveAddress(fs.Args(), *account)
	if err != nil {
		return err
	}
	svc, err := a.service(nil)
	if err != nil {
		return err
	}
	if *offline {
		set, err := svc.CachedOutputs(addr)
		if err != nil {
			return err
		}
		printOutputs(a.out, set, a.provider)
		return nil
	}

	set, err := svc.Outputs(ctx, addr)
	if errors.Is(err, explorer.ErrExplorerUnavailable) {
		cached, cerr := svc.CachedOutputs(addr)
		if cerr != nil {
			return err
		}
		klog.Wallet.Warn().Err(err).Msg("Explorers unavailable, showing cached outputs")
		set = cached
	} else if err != nil {
		return err
	}
	printOutputs(a.out, set, a.provider)
	return nil
}

func cmdBlock(ctx context.Context, a *app, args []string) error {
	client, err := a.explorerClient()
	if err != nil {
		return err
	}
	var b *explorer.Block
	if len(args) > 0 {
		height, perr := strconv.ParseUint(args[0], 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid height %q", args[0])
		}
		b, err = client.Block(ctx, types.BlockHeight(height))
	} else {
		b, err = client.LatestBlock(ctx)
	}
	if err != nil {
		return err
	}
	printBlock(a.out, b)
	return nil
}

func cmdTx(ctx context.Context, a *app, args []string) error {
	if len(args) < 1 {
		return errors.New("Usage: tfwallet tx <id>")
	}
	client, err := a.explorerClient()
	if err != nil {
		return err
	}
	info, err := client.HashInfo(ctx, args[0])
	if errors.Is(err, explorer.ErrUnrecognizedHash) {
		return fmt.Errorf("transaction %s not found", args[0])
	}
	if err != nil {
		return err
	}
	et, err := info.Transaction()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID:       %s\n", et.ID)
	fmt.Fprintf(a.out, "Version:  %d\n", et.RawTransaction.Version())
	if et.Unconfirmed {
		fmt.Fprintln(a.out, "Height:   unconfirmed")
	} else {
		fmt.Fprintf(a.out, "Height:   %d\n", et.Height)
	}
	fmt.Fprintf(a.out, "Inputs:   %d\n", len(et.RawTransaction.Inputs()))
	for i, o := range et.RawTransaction.Outputs() {
		id := "?"
		if i < len(et.CoinOutputIDs) {
			id = et.CoinOutputIDs[i].String()
		}
		fmt.Fprintf(a.out, "Output:   %s  %s\n", id, formatCurrency(o.Value, a.provider))
	}
	return nil
}

// ── payments ────────────────────────────────────────────────────────────

// payment holds the flags shared by every payment command.
type payment struct {
	account *uint64
	yes     *bool
}

func paymentFlags(fs *flag.FlagSet) payment {
	return payment{
		account: fs.Uint64("account", 0, "Account index to spend from"),
		yes:     fs.Bool("yes", false, "Submit without asking for confirmation"),
	}
}

func cmdSend(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	p := paymentFlags(fs)
	to := fs.String("to", "", "Destination address")
	amount := fs.String("amount", "", "Amount in coins")
	data := fs.String("data", "", "Arbitrary data to attach")
	fs.Parse(args)

	if *to == "" || *amount == "" {
		return errors.New("Usage: tfwallet send --to <address> --amount <coins> [--data <text>]")
	}
	dest, err := types.ParseUnlockHash(*to)
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	value, err := parseAmount(*amount, a.provider)
	if err != nil {
		return err
	}
	req := wallet.Request{Kind: wallet.KindTransfer, To: dest, Amount: value}
	if *data != "" {
		req.ArbitraryData = []byte(*data)
	}
	return pay(ctx, a, p, req)
}

func cmdERC20Convert(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("erc20-convert", flag.ExitOnError)
	p := paymentFlags(fs)
	to := fs.String("to", "", "ERC20 withdrawal address (0x...)")
	amount := fs.String("amount", "", "Amount in coins")
	fs.Parse(args)

	if *to == "" || *amount == "" {
		return errors.New("Usage: tfwallet erc20-convert --to <0x address> --amount <coins>")
	}
	dest, err := types.ParseERC20Address(*to)
	if err != nil {
		return fmt.Errorf("invalid erc20 address: %w", err)
	}
	value, err := parseAmount(*amount, a.provider)
	if err != nil {
		return err
	}
	return pay(ctx, a, p, wallet.Request{Kind: wallet.KindERC20Conversion, ERC20Address: dest, Amount: value})
}

func cmdERC20Register(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("erc20-register", flag.ExitOnError)
	p := paymentFlags(fs)
	fs.Parse(args)

	return pay(ctx, a, p, wallet.Request{Kind: wallet.KindERC20AddressRegistration})
}

// pay unlocks the wallet, builds req from the selected account, shows it
// and submits it once confirmed.
func pay(ctx context.Context, a *app, p payment, req wallet.Request) error {
	from, err := a.accountAddress(*p.account)
	if err != nil {
		return err
	}
	fee, err := a.cfg.MinerFee()
	if err != nil {
		return err
	}
	kr, err := a.unlock()
	if err != nil {
		return err
	}
	defer kr.Zero()

	key, ok := kr.Key(from)
	if !ok {
		return fmt.Errorf("no key for account %d", *p.account)
	}
	req.From = from
	req.Fee = fee
	if req.Kind == wallet.KindERC20AddressRegistration {
		req.PublicKey = key.PublicKey()
	}

	svc, err := a.service(wallet.NewLocalSigner(kr))
	if err != nil {
		return err
	}
	u, err := svc.Prepare(ctx, req)
	if err != nil {
		return err
	}
	printUnsigned(a.out, u, a.provider)

	if !*p.yes {
		ok, err := confirm(a.in, a.out, "Submit transaction?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}
	id, err := svc.Submit(ctx, u)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Transaction submitted: %s\n", id)
	return nil
}

// ── cache ───────────────────────────────────────────────────────────────

func cmdCache(a *app, args []string) error {
	if len(args) < 1 {
		return errors.New("Usage: tfwallet cache <list|clear>")
	}
	cache, err := a.snapshots()
	if err != nil {
		return err
	}
	if cache == nil {
		return wallet.ErrNoCache
	}
	switch args[0] {
	case "list":
		addrs, err := cache.Addresses()
		if err != nil {
			return err
		}
		for _, addr := range addrs {
			s, err := cache.Load(addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "  %s  height %d  %d txs\n", addr, s.Clock.Height, len(s.History))
		}
		return nil
	case "clear":
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cleared %s snapshot cache.\n", a.cfg.Network)
		return nil
	default:
		return fmt.Errorf("unknown cache command: %s", args[0])
	}
}
