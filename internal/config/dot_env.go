package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// DotEnvTryLoad forcefully overrides ENV variables through **a maybe available** .env file.
//
// This function always logs if the file is not found or invalid, but does not fail.
// It is used to load optional .env.local files during local development.
func DotEnvTryLoad(absolutePathToEnvFile string, setEnvFn func(key string, value string) error) {
	err := DotEnvLoad(absolutePathToEnvFile, setEnvFn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("envFile", absolutePathToEnvFile).Msg(".env does not exist, skipping.")
			return
		}
		log.Error().Err(err).Str("envFile", absolutePathToEnvFile).Msg(".env could not be applied, skipping.")
	}
}

// DotEnvLoad forcefully overrides ENV variables through the supplied .env file.
func DotEnvLoad(absolutePathToEnvFile string, setEnvFn func(key string, value string) error) error {
	file, err := os.Open(absolutePathToEnvFile)
	if err != nil {
		return err
	}
	defer file.Close()

	envs, err := gotenv.StrictParse(file)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", absolutePathToEnvFile)
	}

	for key, value := range envs {
		if err := setEnvFn(key, value); err != nil {
			return errors.Wrapf(err, "failed to set %s", key)
		}
	}

	log.Warn().Str("envFile", absolutePathToEnvFile).Int("envCount", len(envs)).Msg(".env overrides ENV variables!")

	return nil
}
