package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// TxStatus enumerates persisted transaction states.
type TxStatus string

const (
	TxStatusPending   TxStatus = "PENDING"
	TxStatusConfirmed TxStatus = "CONFIRMED"
	TxStatusFailed    TxStatus = "FAILED"
)

// BlockchainTransaction is a persisted record of a deployment or signing
// transaction. The platform only stores these records; it performs no chain
// interaction, so a hash may be generated locally when none is supplied.
type BlockchainTransaction struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contractId"`
	TxHash     string    `json:"txHash"`
	ChainID    int64     `json:"chainId"`
	Status     TxStatus  `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewTxHash produces a random 0x-prefixed 32-byte hex string in the shape of
// an EVM transaction hash.
func NewTxHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return "0x" + hex.EncodeToString(buf)
}
