package bootstrap

import (
	"quicknotes-be/internal/config"
	"quicknotes-be/internal/controller"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/pkg/security"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/pkg/token"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/internal/service"
	"quicknotes-be/pkg/events"

	pktNats "quicknotes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	NoteController controller.INoteController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	pubSub      *gochannel.GoChannel
	natsPub     *pktNats.Publisher
	activityLog logger.ILogger
}

// Loggers lets callers (tests, mostly) replace the file backed loggers.
type Loggers struct {
	System   logger.ILogger
	Activity logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	return NewContainerWithLoggers(db, cfg, Loggers{
		System:   logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction()),
		Activity: logger.NewIsolatedLogger("logs/activity.log"),
	})
}

func NewContainerWithLoggers(db *gorm.DB, cfg *config.Config, loggers Loggers) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := loggers.System

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NopLogger{},
	)

	// NATS is optional. A nil *Publisher must not reach the service as a
	// non-nil interface, so the interface is only set on success.
	var natsPub *pktNats.Publisher
	var auditPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("bootstrap", "Failed to connect to NATS publisher, audit events disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			natsPub = p
			auditPublisher = p
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.NoteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.NoteEventsTopic,
		loggers.Activity,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, hasher, tokens, auditPublisher, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)

	// 4. Controllers
	authController := controller.NewAuthController(authService)
	noteController := controller.NewNoteController(noteService, serverutils.JwtMiddleware(tokens))

	return &Container{
		AuthController:  authController,
		NoteController:  noteController,
		ConsumerService: consumerService,
		Logger:          sysLogger,
		pubSub:          pubSub,
		natsPub:         natsPub,
		activityLog:     loggers.Activity,
	}
}

// Close stops the event buses and flushes the loggers.
func (c *Container) Close() error {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	err := c.pubSub.Close()
	_ = c.activityLog.Sync()
	_ = c.Logger.Sync()
	return err
}
