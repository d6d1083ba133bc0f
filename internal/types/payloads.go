package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

// PostHashTransactionPayload is the body of POST /api/v1/transactions/hash
type PostHashTransactionPayload struct {
	// chain id, defaults to the configured chain
	ChainID *uint64 `json:"chainId,omitempty"`

	// transaction
	// Required: true
	Transaction *transaction.Params `json:"transaction"`
}

func (m *PostHashTransactionPayload) Validate() error {
	if m.Transaction == nil {
		return &transaction.MissingFieldError{Field: "transaction"}
	}
	return nil
}

// PostSignTransactionPayload is the body of POST /api/v1/transactions/sign
type PostSignTransactionPayload struct {
	PostHashTransactionPayload

	// sender address the signature must recover to
	// Required: true
	From *common.Address `json:"from"`

	// key handed to the signer unchanged
	Key signer.KeySelector `json:"key"`
}

func (m *PostSignTransactionPayload) Validate() error {
	if m.From == nil {
		return &transaction.MissingFieldError{Field: "from"}
	}
	return m.PostHashTransactionPayload.Validate()
}

// PostSignMessagePayload is the body of POST /api/v1/messages/sign.
// Exactly one of Message and Text is used, Message wins when both are set.
type PostSignMessagePayload struct {
	// sender address the signature must recover to
	// Required: true
	From *common.Address `json:"from"`

	// raw message bytes
	Message hexutil.Bytes `json:"message,omitempty"`

	// UTF-8 message
	Text *string `json:"text,omitempty"`

	// key handed to the signer unchanged
	Key signer.KeySelector `json:"key"`
}

func (m *PostSignMessagePayload) Validate() error {
	if m.From == nil {
		return &transaction.MissingFieldError{Field: "from"}
	}
	if m.Message == nil && m.Text == nil {
		return &transaction.MissingFieldError{Field: "message"}
	}
	return nil
}

// Bytes returns the message to sign
func (m *PostSignMessagePayload) Bytes() []byte {
	if m.Message != nil {
		return m.Message
	}
	if m.Text != nil {
		return []byte(*m.Text)
	}
	return nil
}

// HashTransactionResponse is the body returned by POST /api/v1/transactions/hash
type HashTransactionResponse struct {
	ChainID     uint64      `json:"chainId"`
	MessageHash common.Hash `json:"messageHash"`
}

func (m *HashTransactionResponse) Validate() error {
	return nil
}

// ChainIDOr returns the requested chain id or fallback when none was given
func (m *PostHashTransactionPayload) ChainIDOr(fallback uint64) uint64 {
	if m.ChainID == nil {
		return fallback
	}
	return *m.ChainID
}
