package chain

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyring(t *testing.T) {
	kr, err := GenerateKeyring()
	require.NoError(t, err)

	assert.True(t, common.IsHexAddress(kr.Address))
	assert.True(t, strings.HasPrefix(kr.PrivateKey, "0x"))

	// адрес должен восстанавливаться из приватного ключа
	key, err := parsePrivateKey(kr.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, kr.Address, crypto.PubkeyToAddress(key.PublicKey).Hex())
}

func TestGenerateKeyring_Unique(t *testing.T) {
	first, err := GenerateKeyring()
	require.NoError(t, err)
	second, err := GenerateKeyring()
	require.NoError(t, err)

	assert.NotEqual(t, first.Address, second.Address)
	assert.NotEqual(t, first.PrivateKey, second.PrivateKey)
}
