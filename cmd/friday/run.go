package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rendetalje/friday/pkg/auth"

	"github.com/oiime/logrusbun"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/billy"
	"github.com/rendetalje/friday/pkg/google"
	"github.com/rendetalje/friday/pkg/llms"
	"github.com/rendetalje/friday/pkg/models"
	"github.com/rendetalje/friday/pkg/server"
	"github.com/rendetalje/friday/pkg/store/postgres"
)

const (
	ErrStoreTypeNotSet   = "store.type must be set"
	ErrPostgresDSNNotSet = "store.postgres.dsn must be set"
	StoreTypePostgres    = "postgres"
)

// run is the entrypoint for the friday server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring Friday: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting friday server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	srv := server.Create(appState)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV,
// initializes the stores and creates the LLM and external API clients
func NewAppState(cfg *config.Config) *models.AppState {
	ctx := context.Background()

	llmClient, err := llms.NewLLMClient(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	appState := &models.AppState{
		LLM:    llmClient,
		Config: cfg,
	}

	initializeStores(ctx, appState)
	initializeExternalClients(appState)
	setupSignalHandler(appState)

	return appState
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if generateKey {
		fmt.Println(auth.GenerateJWT(cfg))
		os.Exit(0)
	}
	if dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
}

// initializeStores initializes the lead, task and chat stores based on the
// config file / ENV
func initializeStores(ctx context.Context, appState *models.AppState) {
	if appState.Config.Store.Type == "" {
		log.Fatal(ErrStoreTypeNotSet)
	}

	switch appState.Config.Store.Type {
	case StoreTypePostgres:
		if appState.Config.Store.Postgres.DSN == "" {
			log.Fatal(ErrPostgresDSNNotSet)
		}
		db, err := postgres.NewPostgresConn(appState.Config)
		if err != nil {
			log.Fatal(err)
		}
		if appState.Config.Log.Level == "debug" {
			pgDebugLogging(db)
		}
		if err := postgres.CreateSchema(ctx, db); err != nil {
			log.Fatal(err)
		}
		appState.LeadStore = postgres.NewLeadStoreDAO(db)
		appState.TaskStore = postgres.NewTaskStoreDAO(db)
		appState.ChatStore = postgres.NewChatStoreDAO(db)
	default:
		log.Fatal(
			fmt.Sprintf(
				"store.type (%s) is not supported",
				appState.Config.Store.Type,
			),
		)
	}

	log.Info("Using store: ", appState.Config.Store.Type)
}

// initializeExternalClients creates the Billy and Google API clients.
func initializeExternalClients(appState *models.AppState) {
	billyClient, err := billy.NewClient(appState.Config)
	if err != nil {
		log.Fatal(err)
	}
	appState.Invoicing = billyClient

	calendarClient, err := google.NewCalendarClient(appState.Config)
	if err != nil {
		log.Fatal(err)
	}
	appState.Calendar = calendarClient

	gmailClient, err := google.NewGmailClient(appState.Config)
	if err != nil {
		log.Fatal(err)
	}
	appState.Email = gmailClient
}

func pgDebugLogging(db *bun.DB) {
	db.AddQueryHook(logrusbun.NewQueryHook(logrusbun.QueryHookOptions{
		LogSlow:         time.Second,
		Logger:          log,
		QueryLevel:      logrus.DebugLevel,
		ErrorLevel:      logrus.ErrorLevel,
		SlowLevel:       logrus.WarnLevel,
		MessageTemplate: "{{.Operation}}[{{.Duration}}]: {{.Query}}",
		ErrorTemplate:   "{{.Operation}}[{{.Duration}}]: {{.Query}}: {{.Error}}",
	}))
}

// setupSignalHandler sets up a signal handler to close the store connection
// on termination
func setupSignalHandler(appState *models.AppState) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		if err := appState.ChatStore.Close(); err != nil {
			log.Errorf("Error closing store connection: %v", err)
		}
		os.Exit(0)
	}()
}
