package address

import (
	"fmt"
)

type service struct{}

// NewService creates a new address Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

func (s *service) BIP44Path(addressIndex uint32) string {
	return fmt.Sprintf("m/44'/60'/0'/0/%d", addressIndex)
}
