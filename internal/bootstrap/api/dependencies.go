package api

import (
	"context"
	"log"
	"time"

	"finpol-compliance/internal/api/rest"
	"finpol-compliance/internal/compliance"
	"finpol-compliance/internal/config"
	"finpol-compliance/internal/kafka"
	"finpol-compliance/internal/metrics"
	"finpol-compliance/internal/parser"
	"finpol-compliance/internal/redis"
	"finpol-compliance/internal/regulations"
	"finpol-compliance/internal/report"
	"finpol-compliance/internal/risk"
	"finpol-compliance/internal/services"
	"finpol-compliance/internal/storage/sqlite"
)

// Dependencies содержит все зависимости compliance API
type Dependencies struct {
	StorageConn        *sqlite.SQLiteStorage
	RedisClient        *redis.Client // nil, если Redis отключен или недоступен
	KafkaProducer      kafka.Producer
	Metrics            *metrics.Metrics
	Regulations        *regulations.Retriever
	TransactionService services.TransactionService
	BulkService        services.BulkService
	Checks             map[string]rest.Check
}

// InitializeDependencies инициализирует все зависимости compliance API.
// Redis и Kafka необязательны: без них API работает без кэша и событий.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	// Инициализация SQLite
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	repo := sqlite.NewRepository(storageConn)

	deps := &Dependencies{
		StorageConn:   storageConn,
		KafkaProducer: kafka.NoopProducer{},
		Metrics:       metrics.New(nil),
		Checks: map[string]rest.Check{
			"sqlite": repo.Ping,
		},
	}

	// Интерфейсы остаются nil, если Redis не подключен
	var (
		watchlist   redis.Watchlist
		searchCache redis.SearchCache
		riskCache   services.RiskCache
	)
	if cfg.Redis.Enabled {
		log.Println("Connecting to Redis...")
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Printf("Warning: Redis unavailable, continuing without cache: %v", err)
		} else {
			log.Println("Redis connection established")
			initializeWatchlists(redisClient, cfg.Risk.BlacklistedAccounts)

			deps.RedisClient = redisClient
			deps.Checks["redis"] = redisClient.Ping
			watchlist = redisClient
			searchCache = redisClient
			riskCache = redisClient
		}
	}

	if cfg.Kafka.Enabled {
		log.Println("Connecting to Kafka...")
		producer, err := kafka.NewProducer(cfg)
		if err != nil {
			log.Printf("Warning: Kafka unavailable, events will not be published: %v", err)
		} else {
			log.Println("Kafka producer connected successfully")
			deps.KafkaProducer = producer
		}
	}

	retriever := regulations.NewRetriever(repo, searchCache)
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := retriever.Seed(seedCtx); err != nil {
		deps.Close()
		return nil, err
	}
	deps.Regulations = retriever

	engine := risk.NewEngine(watchlist)
	bands := risk.NewBands(cfg.Risk)

	deps.TransactionService = services.NewTransactionService(services.TransactionDeps{
		Repo:             repo,
		Evaluator:        engine,
		Regulations:      retriever,
		Reporter:         compliance.NewReporter(retriever),
		Cache:            riskCache,
		Producer:         deps.KafkaProducer,
		Metrics:          deps.Metrics,
		Bands:            bands,
		EvaluatorTimeout: cfg.Risk.EvaluatorTimeout,
		ReporterTimeout:  cfg.Risk.ReporterTimeout,
	})

	deps.BulkService = services.NewBulkService(services.BulkDeps{
		Parser:           parser.New(),
		Evaluator:        engine,
		Regulations:      retriever,
		Renderer:         report.NewRenderer(),
		Producer:         deps.KafkaProducer,
		Metrics:          deps.Metrics,
		Bands:            bands,
		EvaluatorTimeout: cfg.Risk.EvaluatorTimeout,
		MaxFileBytes:     cfg.Bulk.MaxFileBytes,
		Workers:          cfg.Bulk.Workers,
	})

	return deps, nil
}

// initializeWatchlists заполняет списки Redis, ошибки не мешают запуску
func initializeWatchlists(client redis.ClientInterface, blacklisted []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.InitializeWatchlists(ctx, risk.DefaultHighRiskCountries); err != nil {
		log.Printf("Warning: Failed to initialize watchlists: %v", err)
	} else {
		log.Println("Redis watchlists initialized")
	}

	for _, account := range blacklisted {
		if err := client.AddToBlacklist(ctx, account); err != nil {
			log.Printf("Warning: Failed to blacklist account %s: %v", account, err)
		}
	}
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	if d.StorageConn != nil {
		if err := d.StorageConn.Close(); err != nil {
			return err
		}
	}
	return nil
}
