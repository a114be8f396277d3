package explorer

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// LatestBlock returns the chain tip.
func (c *Client) LatestBlock(ctx context.Context) (*Block, error) {
	var facts BlockFacts
	if err := c.Get(ctx, "/explorer", &facts); err != nil {
		return nil, fmt.Errorf("chain facts: %w", err)
	}
	return c.Block(ctx, facts.Height)
}

// Block returns the block at height.
func (c *Client) Block(ctx context.Context, height types.BlockHeight) (*Block, error) {
	var resp blockResponse
	if err := c.Get(ctx, fmt.Sprintf("/explorer/blocks/%d", height), &resp); err != nil {
		return nil, fmt.Errorf("block %d: %w", height, err)
	}
	return &resp.Block, nil
}

// HashInfo looks up an address, transaction, output or block hash.
func (c *Client) HashInfo(ctx context.Context, hash string) (*HashInfo, error) {
	var info HashInfo
	if err := c.Get(ctx, "/explorer/hashes/"+url.PathEscape(hash), &info); err != nil {
		return nil, fmt.Errorf("hash %s: %w", hash, err)
	}
	return &info, nil
}

// History returns every transaction touching addr, normalized. An address
// the explorer has never seen has an empty history.
func (c *Client) History(ctx context.Context, addr types.UnlockHash) ([]tx.ExplorerTransaction, error) {
	info, err := c.HashInfo(ctx, addr.String())
	if errors.Is(err, ErrUnrecognizedHash) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.HashType != HashTypeUnlockHash {
		return nil, fmt.Errorf("hash %s is a %s, not an address", addr, info.HashType)
	}
	return info.Transactions, nil
}

// TransactionPool returns the unconfirmed transactions, normalized.
// Transactions of versions the wallet does not know are skipped: they
// cannot concern its outputs.
func (c *Client) TransactionPool(ctx context.Context, addr types.UnlockHash) ([]tx.Transaction, error) {
	var resp poolResponse
	path := "/transactionpool/transactions?unlockhash=" + url.QueryEscape(addr.String())
	if err := c.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("transaction pool: %w", err)
	}
	pool := make([]tx.Transaction, 0, len(resp.Transactions))
	for i, raw := range resp.Transactions {
		t, err := tx.DecodeNormalized(raw)
		if errors.Is(err, tx.ErrUnknownVersion) {
			c.logger.Debug().Err(err).Int("index", i).Msg("Skipping pool transaction")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("pool transaction %d: %w", i, err)
		}
		pool = append(pool, t)
	}
	return pool, nil
}

// SubmitTransaction posts a signed transaction to the transaction pool and
// returns its ID.
func (c *Client) SubmitTransaction(ctx context.Context, t tx.Transaction) (types.TransactionID, error) {
	body := tx.Envelope{Transaction: t}
	var resp submitResponse
	if err := c.Post(ctx, "/transactionpool/transactions", body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return types.TransactionID{}, fmt.Errorf("%w: %w", ErrSubmissionRejected, err)
		}
		return types.TransactionID{}, fmt.Errorf("submit transaction: %w", err)
	}
	return resp.TransactionID, nil
}
