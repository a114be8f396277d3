package tx

import (
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

func testAddr(b byte) types.UnlockHash {
	return types.NewUnlockHash(types.UnlockTypePubKey, types.Hash{b})
}

func testOutputID(b byte) types.OutputID {
	return types.OutputID{b}
}

func coins(n uint64) types.Currency {
	return types.NewCurrency64(n * 1_000_000_000)
}
