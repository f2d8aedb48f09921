package handler

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Bcrypt hash of the operator token guarding the latest-orders view.
	// Empty disables the endpoint entirely.
	OperatorTokenHash string `envconfig:"OPERATOR_TOKEN_HASH" default:""`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
