// Package wallet builds, signs and submits transactions for addresses
// derived from a BIP-39 seed, and derives their balances from explorer data.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Klingon-tech/tfwallet/internal/explorer"
	"github.com/Klingon-tech/tfwallet/internal/ledger"
	klog "github.com/Klingon-tech/tfwallet/internal/log"
	"github.com/Klingon-tech/tfwallet/internal/snapshot"
	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ErrNoCache is returned by offline queries when the service has no cache.
var ErrNoCache = errors.New("no snapshot cache configured")

// Explorer is the part of the explorer API the wallet uses.
type Explorer interface {
	LatestBlock(ctx context.Context) (*explorer.Block, error)
	History(ctx context.Context, addr types.UnlockHash) ([]tx.ExplorerTransaction, error)
	TransactionPool(ctx context.Context, addr types.UnlockHash) ([]tx.Transaction, error)
	SubmitTransaction(ctx context.Context, t tx.Transaction) (types.TransactionID, error)
}

// Cache keeps the last snapshot of each address and the outputs it left
// spendable.
type Cache interface {
	Save(s *snapshot.Snapshot) error
	Load(addr types.UnlockHash) (*snapshot.Snapshot, error)
	Outputs(addr types.UnlockHash) (*utxo.Set, error)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache saves every fetched snapshot to c and enables offline queries.
func WithCache(c Cache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

// WithBuilder replaces the default transaction builder.
func WithBuilder(b *Builder) ServiceOption {
	return func(s *Service) { s.builder = b }
}

// WithLogger replaces the wallet component logger.
func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now for snapshot timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// Service answers wallet queries from a fresh explorer snapshot on every
// call. Nothing is kept between calls except in the optional cache.
type Service struct {
	explorer Explorer
	signer   Signer
	cache    Cache
	builder  *Builder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a Service. signer may be nil for a watch-only wallet.
func NewService(exp Explorer, signer Signer, opts ...ServiceOption) *Service {
	s := &Service{
		explorer: exp,
		signer:   signer,
		builder:  NewBuilder(),
		logger:   klog.Wallet,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch gets the chain tip, history and pool of addr in parallel.
func (s *Service) Fetch(ctx context.Context, addr types.UnlockHash) (*snapshot.Snapshot, error) {
	defer klog.Benchmark(s.logger, "fetch")()

	snap := &snapshot.Snapshot{Address: addr}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.explorer.LatestBlock(gctx)
		if err != nil {
			return err
		}
		snap.Clock = b.Clock()
		return nil
	})
	g.Go(func() error {
		history, err := s.explorer.History(gctx, addr)
		snap.History = history
		return err
	})
	g.Go(func() error {
		pool, err := s.explorer.TransactionPool(gctx, addr)
		snap.Pool = pool
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", addr, err)
	}
	snap.FetchedAt = s.now()

	if s.cache != nil {
		if err := s.cache.Save(snap); err != nil {
			s.logger.Warn().Err(err).Str("address", addr.String()).Msg("Failed to cache snapshot")
		}
	}
	return snap, nil
}

// Balance fetches addr and computes its balance.
func (s *Service) Balance(ctx context.Context, addr types.UnlockHash) (*Balance, error) {
	snap, err := s.Fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	return ComputeBalance(snap)
}

// CachedBalance computes the balance of addr from the last cached snapshot.
func (s *Service) CachedBalance(addr types.UnlockHash) (*Balance, error) {
	if s.cache == nil {
		return nil, ErrNoCache
	}
	snap, err := s.cache.Load(addr)
	if err != nil {
		return nil, err
	}
	return ComputeBalance(snap)
}

// CachedOutputs returns the spendable outputs of addr recorded with the last
// cached snapshot.
func (s *Service) CachedOutputs(addr types.UnlockHash) (*utxo.Set, error) {
	if s.cache == nil {
		return nil, ErrNoCache
	}
	if _, err := s.cache.Load(addr); err != nil {
		return nil, err
	}
	return s.cache.Outputs(addr)
}

// History returns the classified history of addr, unconfirmed first, then
// newest first.
func (s *Service) History(ctx context.Context, addr types.UnlockHash) ([]ledger.HistoryEntry, error) {
	snap, err := s.Fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	owned := utxo.ComputeOwnedOutputs(snap.History, addr, snap.Clock)
	return ledger.ClassifyHistory(snap.History, snap.Clock, addr, owned.All)
}

// Pending returns the pool transactions that touch addr.
func (s *Service) Pending(ctx context.Context, addr types.UnlockHash) ([]ledger.PendingTransaction, error) {
	snap, err := s.Fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	v, err := newView(snap)
	if err != nil {
		return nil, err
	}
	return v.pending, nil
}

// Outputs returns the outputs of addr a new transaction may spend.
func (s *Service) Outputs(ctx context.Context, addr types.UnlockHash) (*utxo.Set, error) {
	snap, err := s.Fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	v, err := newView(snap)
	if err != nil {
		return nil, err
	}
	return v.spendable(), nil
}

// Prepare builds req against a fresh snapshot of req.From without signing.
func (s *Service) Prepare(ctx context.Context, req Request) (*UnsignedTransaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.Fetch(ctx, req.From)
	if err != nil {
		return nil, err
	}
	v, err := newView(snap)
	if err != nil {
		return nil, err
	}
	u, err := s.builder.Build(req, snap.History, v.pendingTransactions(), snap.Clock)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("kind", req.Kind.String()).
		Str("from", req.From.String()).
		Int("inputs", len(u.Inputs)).
		Str("input_value", u.InputValue().String()).
		Str("change", u.Change().String()).
		Msg("Transaction built")
	return u, nil
}

// Submit signs u and posts it to the transaction pool.
func (s *Service) Submit(ctx context.Context, u *UnsignedTransaction) (types.TransactionID, error) {
	if s.signer == nil {
		return types.TransactionID{}, fmt.Errorf("%w: watch-only wallet", ErrSignatureFailed)
	}
	signed, err := s.signer.Sign(ctx, u)
	if err != nil {
		return types.TransactionID{}, err
	}
	id, err := s.explorer.SubmitTransaction(ctx, signed)
	if err != nil {
		return types.TransactionID{}, err
	}
	s.logger.Info().
		Str("kind", u.Kind.String()).
		Str("txid", id.String()).
		Msg("Transaction submitted")
	return id, nil
}

// Send builds, signs and submits req.
func (s *Service) Send(ctx context.Context, req Request) (types.TransactionID, error) {
	u, err := s.Prepare(ctx, req)
	if err != nil {
		return types.TransactionID{}, err
	}
	return s.Submit(ctx, u)
}
