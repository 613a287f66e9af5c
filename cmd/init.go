package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application"
	"github.com/dirmaster/dirmaster-backend/internal/application/commands"
	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
	"github.com/dirmaster/dirmaster-backend/internal/application/processors"
	"github.com/dirmaster/dirmaster-backend/internal/application/query"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/dirmaster/dirmaster-backend/internal/infra/dns"
	"github.com/dirmaster/dirmaster-backend/internal/infra/mail"
	"github.com/dirmaster/dirmaster-backend/internal/infra/storage"
	"github.com/dirmaster/dirmaster-backend/internal/presentation/rest"
	"github.com/dirmaster/dirmaster-backend/internal/presentation/scheduler"
	"github.com/dirmaster/dirmaster-backend/internal/presentation/site"
	"github.com/dirmaster/dirmaster-backend/pkg/db"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Init() {
	// DB
	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(context.Background(), dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Panicf("failed to connect to db: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)

	// Cache
	cacheConfig := cache.NewConfig()
	store := cache.NewStore(cacheConfig)
	siteCache := cache.New(store, cacheConfig.TTL)

	// Configs
	mailConfig := mail.NewMailConfig()
	authConfig := auth.NewConfig()
	outboxConfig := scheduler.NewOutboxConfig()
	mailServer := mail.NewMailServer(mailConfig)

	identityProvider, err := auth.NewIdentityProvider(context.Background(), authConfig)
	if err != nil {
		log.Panicf("failed to init identity provider: %v", err)
	}

	// AWS, optional: uploads and domain checks are disabled without it
	var uploader interfaces.Uploader = unavailableUploader{}
	var domainChecker interfaces.DomainChecker = unavailableChecker{}
	awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		slog.Warn("aws config unavailable, uploads and domain checks disabled", "err", err)
	} else {
		uploader = storage.NewStorage(awsCfg, storage.NewStorageConfig())
		domainChecker = dns.NewDomainChecker(awsCfg)
	}

	mutator := commands.NewMutator(uowFactory, siteCache)
	handlers := &application.Handlers{
		CreateProject: commands.NewCreateProject(mutator),
		UpdateProject: commands.NewUpdateProject(mutator),
		CreateEntry:   commands.NewCreateEntry(mutator),
		UpdateEntry:   commands.NewUpdateEntry(mutator),
		DeleteEntry:   commands.NewDeleteEntry(mutator),
		ReviewEntry:   commands.NewReviewEntry(mutator),
		SubmitEntry:   commands.NewSubmitEntry(mutator),
		UploadFile:    commands.NewUploadFile(uploader),
		GetProject:    query.NewGetProject(uowFactory, siteCache),
		GetEntries:    query.NewGetEntries(uowFactory, siteCache),
		GetEntry:      query.NewGetEntry(uowFactory, siteCache),
		ListProjects:  query.NewListProjects(uowFactory),
		ListEntries:   query.NewListEntries(uowFactory),
		CheckDomain:   query.NewCheckDomain(domainChecker),
	}
	eventProcessors := &application.Processors{
		EntryReceived:  processors.NewEntryReceived(uowFactory, mailServer, mailServer.FallbackRecipient()),
		EntryPublished: processors.NewEntryPublished(siteCache),
	}

	server := rest.NewServer(handlers)
	siteServer := site.NewServer(
		handlers.GetProject, handlers.GetEntries, handlers.GetEntry, os.Getenv("APP_URL"),
	)
	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	rest.RegisterHandlers(app, server, siteServer, rest.NewAuthMiddleware(identityProvider))

	outboxPoller := scheduler.NewOutboxPoller(eventProcessors, uowFactory, outboxConfig)
	go outboxPoller.Start()

	go func() {
		if err := app.Listen(":8080"); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	outboxPoller.Stop()

	if err := store.Close(); err != nil {
		slog.Warn("error closing cache store", "err", err)
	}
	uowFactory.Pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}

type unavailableUploader struct{}

func (unavailableUploader) UploadFile(context.Context, string, *string, io.Reader) (string, error) {
	return "", errors.New("file storage is not configured")
}

type unavailableChecker struct{}

func (unavailableChecker) CheckAvailability(context.Context, string) (bool, error) {
	return false, errors.New("domain checks are not configured")
}
