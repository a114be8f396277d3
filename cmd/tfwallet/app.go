package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Klingon-tech/tfwallet/config"
	"github.com/Klingon-tech/tfwallet/internal/explorer"
	klog "github.com/Klingon-tech/tfwallet/internal/log"
	"github.com/Klingon-tech/tfwallet/internal/metrics"
	"github.com/Klingon-tech/tfwallet/internal/snapshot"
	"github.com/Klingon-tech/tfwallet/internal/storage"
	"github.com/Klingon-tech/tfwallet/internal/wallet"
	"github.com/Klingon-tech/tfwallet/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
)

// app carries what every command needs. The explorer client and the
// snapshot cache are opened on first use.
type app struct {
	cfg      *config.Config
	provider config.Provider
	ks       *wallet.Keystore
	in       io.Reader
	out      io.Writer

	client *explorer.Client
	db     *storage.BadgerDB
	cache  *snapshot.Store
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	provider, err := cfg.ActiveProvider()
	if err != nil {
		return nil, err
	}
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}
	return &app{
		cfg:      cfg,
		provider: provider,
		ks:       ks,
		in:       os.Stdin,
		out:      out,
	}, nil
}

func (a *app) explorerClient() (*explorer.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	urls, err := a.cfg.ExplorerURLs()
	if err != nil {
		return nil, err
	}
	network := string(a.cfg.Network)
	c, err := explorer.New(explorer.Config{
		URLs:          urls,
		Timeout:       a.cfg.Explorer.Timeout,
		MaxAttempts:   a.cfg.Explorer.MaxAttempts,
		ResetInterval: a.cfg.Explorer.ResetInterval,
	},
		explorer.WithMetrics(metrics.NewExplorer(network)),
		explorer.WithLogger(klog.WithNetwork(klog.Explorer, network)),
	)
	if err != nil {
		return nil, fmt.Errorf("explorer client: %w", err)
	}
	a.client = c
	return c, nil
}

// snapshots returns the network's snapshot cache, or nil when caching is
// disabled.
func (a *app) snapshots() (*snapshot.Store, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}
	if a.cache != nil {
		return a.cache, nil
	}
	db, err := storage.NewBadger(a.cfg.CacheDir())
	if err != nil {
		return nil, err
	}
	a.db = db
	a.cache = snapshot.NewStore(storage.NewPrefixDB(db, []byte(string(a.cfg.Network)+"/")))
	return a.cache, nil
}

// service builds a wallet service. A nil signer makes it watch-only.
func (a *app) service(signer wallet.Signer) (*wallet.Service, error) {
	client, err := a.explorerClient()
	if err != nil {
		return nil, err
	}
	opts := []wallet.ServiceOption{
		wallet.WithLogger(klog.WithNetwork(klog.Wallet, string(a.cfg.Network))),
	}
	cache, err := a.snapshots()
	if err != nil {
		// An unusable cache only costs offline balances.
		klog.Storage.Warn().Err(err).Msg("Snapshot cache disabled")
	} else if cache != nil {
		opts = append(opts, wallet.WithCache(cache))
	}
	return wallet.NewService(client, signer, opts...), nil
}

func (a *app) close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.cfg.Metrics.TextFile != "" && a.client != nil {
		if err := prometheus.WriteToTextfile(a.cfg.Metrics.TextFile, prometheus.DefaultGatherer); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

// openWallet checks that the configured wallet exists and belongs to the
// active network.
func (a *app) openWallet() (string, error) {
	name := a.cfg.Wallet.Name
	network, err := a.ks.Network(name)
	if err != nil {
		return "", err
	}
	if network != string(a.cfg.Network) {
		return "", fmt.Errorf("wallet %q is a %s wallet, not %s", name, network, a.cfg.Network)
	}
	return name, nil
}

// accountAddress returns the address recorded at index.
func (a *app) accountAddress(index uint64) (types.UnlockHash, error) {
	name, err := a.openWallet()
	if err != nil {
		return types.UnlockHash{}, err
	}
	accounts, err := a.ks.ListAccounts(name)
	if err != nil {
		return types.UnlockHash{}, err
	}
	for _, acct := range accounts {
		if acct.Index == index {
			return types.ParseUnlockHash(acct.Address)
		}
	}
	return types.UnlockHash{}, fmt.Errorf("wallet %q has no account %d", name, index)
}

// resolveAddress returns the address given on the command line, or the
// wallet account when none is given.
func (a *app) resolveAddress(args []string, account uint64) (types.UnlockHash, error) {
	if len(args) > 0 {
		addr, err := types.ParseUnlockHash(args[0])
		if err != nil {
			return types.UnlockHash{}, fmt.Errorf("invalid address: %w", err)
		}
		return addr, nil
	}
	return a.accountAddress(account)
}

// loadSeed asks for the wallet password and decrypts the seed. The caller
// must wipe it.
func (a *app) loadSeed() (string, []byte, error) {
	name, err := a.openWallet()
	if err != nil {
		return "", nil, err
	}
	password, err := readPassword("Enter password: ")
	if err != nil {
		return "", nil, fmt.Errorf("read password: %w", err)
	}
	seed, err := a.ks.Load(name, password)
	wipe(password)
	if err != nil {
		return "", nil, fmt.Errorf("load wallet: %w", err)
	}
	return name, seed, nil
}

// unlock derives every recorded key of the wallet. The caller must Zero
// the ring.
func (a *app) unlock() (*wallet.KeyRing, error) {
	name, seed, err := a.loadSeed()
	if err != nil {
		return nil, err
	}
	defer wipe(seed)
	next, err := a.ks.NextIndex(name)
	if err != nil {
		return nil, err
	}
	return wallet.NewKeyRing(seed, next)
}
