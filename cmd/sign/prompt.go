package sign

import (
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/prompt"
)

// applyPrompts reads missing secrets from the terminal: the keystore password
// when a keystore is configured without one, the mnemonic when no signing keys
// are configured at all, and the passphrase when requested or a mnemonic was prompted.
func applyPrompts(cfg *config.Signer, terminal *prompt.Terminal, promptPassphrase bool) error {
	if cfg.Mnemonic == "" && cfg.KeystorePath != "" && cfg.KeystorePassword == "" {
		password, err := terminal.Secret("Keystore password: ")
		if err != nil {
			return err
		}
		cfg.KeystorePassword = password
	}

	promptMnemonic := cfg.Mnemonic == "" && cfg.KeystorePath == "" && len(cfg.PrivateKeys) == 0
	if promptMnemonic {
		mnemonic, err := terminal.Secret("Mnemonic: ")
		if err != nil {
			return err
		}
		cfg.Mnemonic = mnemonic
	}

	if promptMnemonic || promptPassphrase {
		passphrase, err := terminal.Secret("Passphrase (empty for none): ")
		if err != nil {
			return err
		}
		cfg.Passphrase = passphrase
	}

	return nil
}
