package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/enftlab/enft-backend/internal/models"
)

// mintABI — минимальный ABI контракта допусков: единственный метод
// mintNFT(address, string), принимающий получателя и admission-токен.
const mintABI = `[{"type":"function","name":"mintNFT","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"tokenURI","type":"string"}],"outputs":[{"name":"","type":"uint256"}]}]`

// DefaultGasLimit — фиксированный лимит газа для минтов без fee delegation.
const DefaultGasLimit = 3_000_000

// MintRequest описывает один вызов mintNFT.
//
// При FeeDelegation транзакцию подписывает и отправляет FeePayer:
// газ списывается с его аккаунта, а подписант минта остаётся
// идентичностью уровня контракта. Без fee delegation газ платит Signer.
type MintRequest struct {
	To            string   // Адрес получателя NFT
	Token         string   // Подписанный admission-токен
	Signer        Keyring  // Keyring подписанта минта
	GasLimit      uint64   // Лимит газа; 0 — использовать DefaultGasLimit
	FeeDelegation bool     // Режим оплаты газа отдельным аккаунтом
	FeePayer      *Keyring // Аккаунт, оплачивающий газ (обязателен при FeeDelegation)
}

// Client отправляет mint-транзакции в контракт допусков.
//
// Повторов и идемпотентности нет: два вызова MintNFT с одинаковыми
// аргументами выпускают два NFT. Ошибки реестра возвращаются
// вызывающей стороне без категоризации.
type Client struct {
	eth      *ethclient.Client
	contract common.Address
	abi      abi.ABI
	chainID  *big.Int
}

// New подключается к узлу реестра и возвращает клиент контракта.
func New(ctx context.Context, rpcURL, contractAddress string) (*Client, error) {
	const op = "chain.New"

	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	parsed, err := abi.JSON(strings.NewReader(mintABI))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{
		eth:      eth,
		contract: common.HexToAddress(contractAddress),
		abi:      parsed,
		chainID:  chainID,
	}, nil
}

// MintNFT вызывает mintNFT(to, token) как транзакцию и дожидается квитанции.
func (c *Client) MintNFT(ctx context.Context, req MintRequest) (*models.MintReceipt, error) {
	const op = "chain.MintNFT"

	payer := req.Signer
	if req.FeeDelegation {
		if req.FeePayer == nil {
			return nil, fmt.Errorf("%s: fee delegation requires a fee payer keyring", op)
		}
		payer = *req.FeePayer
	}
	key, err := parsePrivateKey(payer.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := c.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	data, err := c.abi.Pack("mintNFT", common.HexToAddress(req.To), req.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &c.contract,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(c.chainID), key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.eth.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, signedTx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.MintReceipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Status:      receipt.Status,
		From:        from.Hex(),
		To:          req.To,
	}, nil
}

// Close закрывает соединение с узлом реестра.
func (c *Client) Close() {
	c.eth.Close()
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
}
