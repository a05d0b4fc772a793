package bootstrap

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"docuchat/internal/config"
	"docuchat/internal/model"
	mysqlClient "docuchat/internal/platform/mysql"
	rabbitmqClient "docuchat/internal/platform/rabbitmq"
	redisClient "docuchat/internal/platform/redis"
	"docuchat/internal/repository"
	"docuchat/internal/worker"
)

type App struct {
	Config           *config.Config
	MySQL            *gorm.DB
	Redis            *redis.Client
	MQConn           *amqp.Connection
	TranscriptWorker *worker.TranscriptPersistWorker

	// SessionSecret signs session tokens. Generated fresh every start, so no
	// session survives a restart.
	SessionSecret []byte

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.MaxOpenConns, cfg.MySQL.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}, &model.Folder{}, &model.Message{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}
	if err := seedFolders(mysqlDB); err != nil {
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.TranscriptPersistQueue)
	if err != nil {
		return nil, err
	}

	messageRepo := repository.NewMessageRepository(mysqlDB)
	transcriptWorker := worker.NewTranscriptPersistWorker(mqConn, messageRepo, cfg.RabbitMQ.TranscriptPersistQueue)
	if err := transcriptWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start transcript worker failed: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret failed: %w", err)
	}

	return &App{
		Config:           cfg,
		MySQL:            mysqlDB,
		Redis:            redisCli,
		MQConn:           mqConn,
		TranscriptWorker: transcriptWorker,
		SessionSecret:    secret,
		StartedAt:        time.Now(),
	}, nil
}

// seedFolders guarantees the two well-known folders exist. They carry the
// semantics of the access gate and cannot be deleted.
func seedFolders(db *gorm.DB) error {
	folderRepo := repository.NewFolderRepository(db)
	for _, seed := range []model.Folder{
		{ID: model.FolderGeneral, Name: "General", CreatedAt: time.Now()},
		{ID: model.FolderConfidential, Name: "Confidential", CreatedAt: time.Now()},
	} {
		existing, err := folderRepo.Get(seed.ID)
		if err != nil {
			return fmt.Errorf("check seeded folder failed: %w", err)
		}
		if existing != nil {
			continue
		}
		folder := seed
		if err := folderRepo.Save(&folder); err != nil {
			return fmt.Errorf("seed folder failed: %w", err)
		}
	}
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.TranscriptWorker != nil {
		a.TranscriptWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
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
