package app

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/config"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/redis"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/session"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
)

type Infra struct {
	Keys     storage.KeyStore
	Users    storage.UserStore
	Sessions session.Store

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// setupInfra picks the backing stores from configuration. Without a Mongo
// URI or Redis address the corresponding store runs in process memory,
// which is enough for local use and loses everything on restart.
func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.MongoURI != "" {
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, err
		}

		db := client.Database(cfg.MongoDatabase)
		infra.mongoClient = client
		infra.Keys = storage.NewMongoKeyStore(db)
		infra.Users = storage.NewMongoUserStore(db)
		slog.Info("mongodb ready", "database", cfg.MongoDatabase)
	} else {
		infra.Keys = storage.NewMemoryKeyStore()
		infra.Users = storage.NewMemoryUserStore()
		slog.Warn("MONGODB_URI unset, records held in memory only")
	}

	if cfg.RedisAddr != "" {
		client, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.redisClient = client
		infra.Sessions = session.NewRedisStore(client.Client)
		slog.Info("redis ready", "addr", cfg.RedisAddr)
	} else {
		infra.Sessions = session.NewMemoryStore()
		slog.Warn("REDIS_ADDR unset, sessions held in memory only")
	}

	return infra, nil
}

func (i *Infra) Close(ctx context.Context) error {
	if i.redisClient != nil {
		if err := i.redisClient.Close(); err != nil {
			return err
		}
	}
	if i.mongoClient != nil {
		return i.mongoClient.Disconnect(ctx)
	}
	return nil
}
