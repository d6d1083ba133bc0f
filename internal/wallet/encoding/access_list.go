package encoding

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

// EncodeAccessList returns the standalone RLP encoding of an access list:
// [[address, [storageKey, ...]], ...]. An empty list encodes as 0xc0.
func EncodeAccessList(list transaction.AccessList) []byte {
	w := rlp.NewEncoderBuffer(nil)
	appendAccessList(w, list)
	return finish(w, nil)
}

func appendAccessList(w rlp.EncoderBuffer, list transaction.AccessList) {
	outer := w.List()
	for _, tuple := range list {
		entry := w.List()
		w.WriteBytes(tuple.Address.Bytes())

		keys := w.List()
		for _, key := range tuple.StorageKeys {
			w.WriteBytes(key.Bytes())
		}
		w.ListEnd(keys)

		w.ListEnd(entry)
	}
	w.ListEnd(outer)
}
