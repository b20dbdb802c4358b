package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/database/redisclient"
	"github.com/x-xyz/gomarket/base/env"
	"github.com/x-xyz/gomarket/base/ledger"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	bValidator "github.com/x-xyz/gomarket/base/validator"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/event"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/domain/listing"
	"github.com/x-xyz/gomarket/domain/option"
	mmiddleware "github.com/x-xyz/gomarket/middleware"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/gomarket/service/cache/provider/redis"
	"github.com/x-xyz/gomarket/service/query"
	"github.com/x-xyz/gomarket/service/redis"
	assetUsecase "github.com/x-xyz/gomarket/stores/asset/usecase"
	chain_delivery "github.com/x-xyz/gomarket/stores/chain/delivery/http"
	chain_usecase "github.com/x-xyz/gomarket/stores/chain/usecase"
	erc721 "github.com/x-xyz/gomarket/stores/erc721/contract"
	event_delivery "github.com/x-xyz/gomarket/stores/event/delivery/http"
	event_repository "github.com/x-xyz/gomarket/stores/event/repository"
	event_usecase "github.com/x-xyz/gomarket/stores/event/usecase"
	hc_delivery "github.com/x-xyz/gomarket/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/gomarket/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/gomarket/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/gomarket/stores/listing/delivery/http"
	listing_repository "github.com/x-xyz/gomarket/stores/listing/repository"
	listing_usecase "github.com/x-xyz/gomarket/stores/listing/usecase"
	option_delivery "github.com/x-xyz/gomarket/stores/option/delivery/http"
	option_repository "github.com/x-xyz/gomarket/stores/option/repository"
	option_usecase "github.com/x-xyz/gomarket/stores/option/usecase"
	token_delivery "github.com/x-xyz/gomarket/stores/token/delivery/http"
	token_usecase "github.com/x-xyz/gomarket/stores/token/usecase"
)

func initConfig() {
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("http.cacheTtl", "5s")
	viper.SetDefault("redis.channel", "market-events")
	viper.SetDefault("redis.history", 100)
	viper.SetDefault("event.queueLength", 1024)
	viper.SetDefault("devnet.operator", "operator")
	if err := env.LoadConfig(os.Args[1:]); err != nil {
		panic(err)
	}

	if err := log.SetLevel(viper.GetString("log.level")); err != nil {
		panic(err)
	}
	if viper.GetBool(`debug`) {
		_ = log.SetLevel("debug")
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	initConfig()
	defer log.Sync()
	context := ctx.Background()

	// init mongo client
	var (
		mongoClient    *mongoclient.Client
		listingRecords listing.RecordRepo
		optionRecords  option.RecordRepo
	)
	if viper.GetBool("mongo.enabled") {
		context.Info("init mongo")
		mongoClient = mongoclient.MustConnectMongoClient(mongoclient.Config{
			URI:                viper.GetString("mongo.uri"),
			AuthDBName:         viper.GetString("mongo.authDBName"),
			DBName:             viper.GetString("mongo.dbName"),
			EnableSSL:          viper.GetBool("mongo.enableSSL"),
			SetSafe:            true,
			PoolSizeMultiplier: 2,
		})
		q := query.New(mongoClient)
		listingRecords = listing_repository.NewRecordRepo(q)
		optionRecords = option_repository.NewRecordRepo(q)
	}

	// init redis service
	var (
		redisService redis.Service
		publisher    event.Publisher
	)
	if viper.GetBool("redis.enabled") {
		context.Info("init redis")
		redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisService = redis.New("redis", metrics.New("redis"), &redis.Pools{
			Src: redisPool,
		})
		publisher = event_repository.NewPublisher(&event_repository.PublisherCfg{
			Redis:   redisService,
			Channel: viper.GetString("redis.channel"),
			History: viper.GetInt("redis.history"),
		})
	}

	// init ledger
	var (
		clock       ledger.Clock = ledger.SystemClock{}
		manualClock *ledger.ManualClock
	)
	if viper.GetBool("devnet.manualClock") {
		manualClock = ledger.NewManualClock(uint64(time.Now().Unix()))
		clock = manualClock
	}
	l := ledger.New(clock)

	consumer := event_usecase.NewConsumer(&event_usecase.ConsumerCfg{
		ListingRecords: listingRecords,
		OptionRecords:  optionRecords,
		Publisher:      publisher,
		QueueLength:    viper.GetInt("event.queueLength"),
	})
	defer consumer.Close()
	l.Subscribe(consumer)

	operator := parseAccount(viper.GetString("devnet.operator"))
	dispatcher := assetUsecase.NewDispatcher()

	marketA, market := l.Deploy(operator, listing_usecase.NewMarketplace(&listing_usecase.MarketplaceCfg{
		Repo:       listing_repository.NewListingRepo(),
		Dispatcher: dispatcher,
	}))
	engineA, engine := l.Deploy(operator, option_usecase.NewEngine(&option_usecase.EngineCfg{
		Repo:       option_repository.NewOptionRepo(),
		Dispatcher: dispatcher,
		Admin:      operator,
	}))
	registryA, _ := l.Deploy(operator, erc721.NewErc721(&erc721.Erc721Cfg{
		Name:   "Option",
		Symbol: "OPT",
		Minter: engineA,
	}))
	if _, err := l.Execute(context, operator, engineA, func(tx *ledger.Tx) error {
		return engine.(option.Engine).SetRegistry(tx, registryA)
	}); err != nil {
		context.WithField("err", err).Panic("failed to bind option registry")
	}
	context.WithFields(log.Fields{
		"marketplace": marketA,
		"engine":      engineA,
		"registry":    registryA,
		"operator":    operator,
	}).Info("contracts deployed")

	var (
		fixtures []tokenFixture
		tokens   []domain.Address
	)
	if viper.GetBool("devnet.enabled") {
		if err := viper.UnmarshalKey("devnet.tokens", &fixtures); err != nil {
			context.WithField("err", err).Panic("failed to read token fixtures")
		}
		addrs, err := deployFixtures(context, l, operator, fixtures)
		if err != nil {
			context.WithField("err", err).Panic("failed to deploy token fixtures")
		}
		tokens = addrs
	}

	listingUseCase := listing_usecase.NewListingUseCase(&listing_usecase.ListingUseCaseCfg{
		Ledger:      l,
		Address:     marketA,
		Marketplace: market.(listing.Marketplace),
		RecordRepo:  listingRecords,
	})
	optionUseCase := option_usecase.NewOptionUseCase(&option_usecase.OptionUseCaseCfg{
		Ledger:     l,
		Address:    engineA,
		Engine:     engine.(option.Engine),
		RecordRepo: optionRecords,
	})
	tokenUseCase := token_usecase.NewTokenUseCase(&token_usecase.TokenUseCaseCfg{
		Ledger:     l,
		Dispatcher: dispatcher,
		Faucet:     operator,
		Tokens:     tokens,
	})
	chainUseCase := chain_usecase.NewChainUseCase(l, manualClock)
	hcUseCase := hc_usecase.New(hc_repo.New(mongoClient, redisService), l)

	// read responses are cached per ledger height
	cacheTtl := viper.GetDuration("http.cacheTtl")
	httpCache := cache.New(cache.ServiceConfig{
		Ttl:   cacheTtl,
		Pfx:   keys.PfxHttpCache,
		Cache: primitive.NewPrimitive("http", 64),
	})
	if redisService != nil {
		httpCache = cache.NewLayered(httpCache, cache.New(cache.ServiceConfig{
			Ttl:   cacheTtl,
			Pfx:   keys.PfxHttpCache,
			Cache: redisProvider.NewRedis(redisService),
		}))
	}
	cacheMw := mmiddleware.CacheHttp(httpCache, l.Height)

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(validator.New())

	listing_delivery.New(e, listingUseCase, cacheMw)
	option_delivery.New(e, optionUseCase, cacheMw)
	token_delivery.New(e, tokenUseCase, viper.GetBool("devnet.enabled"))
	chain_delivery.New(e, chainUseCase)
	hc_delivery.New(e, hcUseCase)
	if publisher != nil {
		event_delivery.New(e, publisher)
	}

	go func() {
		if err := e.Start(viper.GetString("http.addr")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Log().WithField("err", err).Error("failed to disconnect mongo")
		}
	}
}
