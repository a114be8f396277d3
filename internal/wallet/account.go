package wallet

import "github.com/Klingon-tech/tfwallet/pkg/types"

// Account is an address derived from the wallet seed.
type Account struct {
	Index   uint64
	Name    string
	Address types.UnlockHash
}

// DeriveAccount derives the account at index from seed.
func DeriveAccount(seed []byte, index uint64, name string) (Account, error) {
	kr, err := NewKeyRing(seed, 0)
	if err != nil {
		return Account{}, err
	}
	defer kr.Zero()
	key, err := kr.Derive(index)
	if err != nil {
		return Account{}, err
	}
	return Account{Index: index, Name: name, Address: key.UnlockHash()}, nil
}

// Entry converts the account into its keystore form.
func (a Account) Entry() AccountEntry {
	return AccountEntry{Index: a.Index, Name: a.Name, Address: a.Address.String()}
}
