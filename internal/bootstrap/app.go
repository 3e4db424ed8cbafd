package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"letterforge/internal/config"
	"letterforge/internal/email"
	"letterforge/internal/model"
	mysqlClient "letterforge/internal/platform/mysql"
	rabbitmqClient "letterforge/internal/platform/rabbitmq"
	redisClient "letterforge/internal/platform/redis"
	"letterforge/internal/store"
	"letterforge/internal/worker"
)

// App holds configuration and the shared infrastructure clients. Redis,
// MySQL and RabbitMQ are optional; unset config sections leave them nil and
// the service runs on the in-memory store with inline email delivery.
type App struct {
	Config    *config.Config
	Store     store.DocumentStore
	StoreKind string
	Redis     *redis.Client
	MySQL     *gorm.DB
	MQConn    *amqp.Connection
	Mailer    *email.Sender

	emailWorker *worker.EmailDeliveryWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	app := &App{
		Config:    cfg,
		StartedAt: time.Now(),
	}

	ttl := time.Duration(cfg.Letter.TTLHours) * time.Hour

	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = redisCli
		app.Store = store.NewRedisStore(redisCli, ttl)
		app.StoreKind = "redis"
	} else {
		app.Store = store.NewMemoryStore(ttl)
		app.StoreKind = "memory"
		log.Printf("redis not configured, using in-memory document store (single instance only)")
	}

	if cfg.MySQL.Host != "" {
		mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		if err := mysqlDB.AutoMigrate(&model.BillingEvent{}); err != nil {
			return nil, fmt.Errorf("auto migrate tables failed: %w", err)
		}
		app.MySQL = mysqlDB
	}

	if cfg.Email.ResendAPIKey != "" {
		app.Mailer = email.NewSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	}

	if cfg.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		app.MQConn = mqConn

		if app.Mailer != nil {
			app.emailWorker = worker.NewEmailDeliveryWorker(mqConn, app.Mailer, cfg.RabbitMQ.EmailSendQueue)
			if err := app.emailWorker.Start(ctx); err != nil {
				return nil, fmt.Errorf("start email worker failed: %w", err)
			}
		}
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.emailWorker != nil {
		a.emailWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
