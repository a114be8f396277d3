package explorer

import (
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Hash types reported by /explorer/hashes.
const (
	HashTypeUnlockHash         = "unlockhash"
	HashTypeTransactionID      = "transactionid"
	HashTypeCoinOutputID       = "coinoutputid"
	HashTypeBlockStakeOutputID = "blockstakeoutputid"
	HashTypeBlockID            = "blockid"
)

// BlockFacts is the chain summary served at /explorer.
type BlockFacts struct {
	Height            types.BlockHeight `json:"height"`
	BlockID           types.BlockID     `json:"blockid"`
	MaturityTimestamp types.Timestamp   `json:"maturitytimestamp"`
	Difficulty        string            `json:"difficulty"`
	EstimatedActiveBS string            `json:"estimatedactivebs"`
}

// RawBlock holds the fields of a block header the wallet uses.
type RawBlock struct {
	ParentID  types.BlockID   `json:"parentid"`
	Timestamp types.Timestamp `json:"timestamp"`
}

// Block is an explorer block. Its transactions are not decoded.
type Block struct {
	Height         types.BlockHeight `json:"height"`
	BlockID        types.BlockID     `json:"blockid"`
	RawBlock       RawBlock          `json:"rawblock"`
	MinerPayoutIDs []types.OutputID  `json:"minerpayoutids"`
}

// Clock returns the ledger time at this block.
func (b *Block) Clock() types.Clock {
	return types.Clock{Height: b.Height, Timestamp: b.RawBlock.Timestamp}
}

type blockResponse struct {
	Block Block `json:"block"`
}

// ERC20Info is the ERC20 registration of an address, if any.
type ERC20Info struct {
	TFTAddress    types.UnlockHash   `json:"tftaddress"`
	ERC20Address  types.ERC20Address `json:"erc20address"`
	Confirmations uint64             `json:"confirmations"`
}

// HashInfo is the response of /explorer/hashes/{hash}.
type HashInfo struct {
	HashType          string                   `json:"hashtype"`
	Block             *Block                   `json:"block"`
	Blocks            []Block                  `json:"blocks"`
	RawTransaction    json.RawMessage          `json:"transaction"`
	Transactions      []tx.ExplorerTransaction `json:"transactions"`
	MultiSigAddresses []types.UnlockHash       `json:"multisigaddresses"`
	Unconfirmed       bool                     `json:"unconfirmed"`
	ERC20Info         *ERC20Info               `json:"erc20info,omitempty"`
}

// Transaction decodes the transaction of a transaction ID lookup.
func (h *HashInfo) Transaction() (*tx.ExplorerTransaction, error) {
	if h.HashType != HashTypeTransactionID {
		return nil, fmt.Errorf("hash is a %s, not a transaction id", h.HashType)
	}
	var et tx.ExplorerTransaction
	if err := json.Unmarshal(h.RawTransaction, &et); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return &et, nil
}

type poolResponse struct {
	Transactions []json.RawMessage `json:"transactions"`
}

type submitResponse struct {
	TransactionID types.TransactionID `json:"transactionid"`
}
