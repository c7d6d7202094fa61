package redis_client

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/util"
)

var Client *redis.Client

var ErrNotConfigured = errors.New("redis configuration not set")

const defaultDatabase = 0

func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	address := env["BUSRADAR_REDIS_ADDRESS"]
	if address == "" {
		if required {
			return ErrNotConfigured
		}

		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	database := defaultDatabase
	if env["BUSRADAR_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["BUSRADAR_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: env["BUSRADAR_REDIS_PASSWORD"],
		DB:       database,
	})

	statusCmd := client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	Client = client

	log.Info().Str("address", address).Int("database", database).Msg("Redis client setup")

	return nil
}
