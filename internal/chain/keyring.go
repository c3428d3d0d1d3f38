// Package chain инкапсулирует работу с внешним реестром: генерацию
// keyring'ов (адрес + приватный ключ) и отправку mint-транзакций
// в контракт допусков.
package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Keyring — аккаунт внешнего реестра: адрес и приватный ключ.
type Keyring struct {
	Address    string
	PrivateKey string
}

// GenerateKeyring создает новый secp256k1 keyring.
func GenerateKeyring() (Keyring, error) {
	const op = "chain.GenerateKeyring"
	key, err := crypto.GenerateKey()
	if err != nil {
		return Keyring{}, fmt.Errorf("%s: %w", op, err)
	}
	return Keyring{
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
	}, nil
}
