package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/salonewatch/bot-go/clients"
	"github.com/salonewatch/bot-go/config"
	"github.com/salonewatch/bot-go/controllers"
	"github.com/salonewatch/bot-go/conversation"
	"github.com/salonewatch/bot-go/media"
	"github.com/salonewatch/bot-go/middleware"
	"github.com/salonewatch/bot-go/notify"
	"github.com/salonewatch/bot-go/repository"
	"github.com/salonewatch/bot-go/storage"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Repositories
	users := repository.NewUsers(db)
	sessions := repository.NewSessions(db)
	issues := repository.NewIssues(db)
	votes := repository.NewVotes(db)
	groups := repository.NewGroups(db)

	// External collaborators
	provider := clients.NewProvider(cfg.GraphBaseURL, cfg.GraphToken, cfg.PhoneNumberID, cfg.ExternalTimeout)
	ai := clients.NewAIClient(cfg.AIBaseURL, cfg.AIKey, cfg.ExternalTimeout)
	safety := clients.NewSafetyClient(cfg.SafetyURL, cfg.ExternalTimeout)
	probe := clients.NewProbeClient(cfg.ProbeURL, cfg.ExternalTimeout)
	transcriber := clients.NewTranscribeClient(cfg.TranscribeURL, cfg.ExternalTimeout)
	geocoder := clients.NewGeocoder(cfg.GeocodeBaseURL, cfg.GeocodeCountry, cfg.ExternalTimeout)

	var store storage.Store
	if cfg.StorageBackend == "r2" {
		store = storage.NewR2Store(config.GetR2Config())
	} else {
		store = storage.NewLocalStore(cfg.UploadDir)
		r.Static("/uploads", cfg.UploadDir)
	}

	pipeline := &media.Pipeline{
		Provider:    provider,
		Safety:      safety,
		Probe:       probe,
		Transcriber: transcriber,
		Store:       store,
		MaxSeconds:  cfg.MediaMaxSeconds,
	}

	fanout := notify.NewFanout(groups, provider, cfg.PublicHost)

	engine := conversation.NewEngine(conversation.Deps{
		Users:    users,
		Sessions: sessions,
		Issues:   issues,
		Votes:    votes,
		Intake:   pipeline,
		AI:       ai,
		Geocoder: geocoder,
		Notifier: fanout,
		Sender:   provider,
	}, conversation.Settings{
		DupRadiusM:      cfg.DupRadiusM,
		DupLookbackDays: cfg.DupLookbackDays,
		DailyReportCap:  cfg.DailyReportCap,
		PublicHost:      cfg.PublicHost,
		Location:        cfg.Location(),
	})

	webhookController := controllers.NewWebhookController(engine, cfg.WebhookVerifyToken)

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/webhook", webhookController.Verify)
	r.POST("/webhook", middleware.VerifySignature(cfg.WebhookSecret), webhookController.Receive)
}
