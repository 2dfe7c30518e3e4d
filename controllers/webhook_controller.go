package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salonewatch/bot-go/conversation"
)

type WebhookController struct {
	Engine      *conversation.Engine
	VerifyToken string
}

func NewWebhookController(engine *conversation.Engine, verifyToken string) *WebhookController {
	return &WebhookController{Engine: engine, VerifyToken: verifyToken}
}

// Verify answers the provider's webhook subscription handshake.
func (wc *WebhookController) Verify(c *gin.Context) {
	if c.Query("hub.mode") == "subscribe" && c.Query("hub.verify_token") == wc.VerifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	c.Status(http.StatusForbidden)
}

type mediaRef struct {
	ID string `json:"id"`
}

type inboundMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Image *mediaRef `json:"image"`
	Video *mediaRef `json:"video"`
	Audio *mediaRef `json:"audio"`
	Voice *mediaRef `json:"voice"`
}

type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Receive flattens the provider envelope into engine events. It always
// answers 200: per-event failures are logged and handled in the
// conversation, never bounced back to the provider where they would
// only trigger redelivery.
func (wc *WebhookController) Receive(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("webhook: unparseable payload: %v", err)
		c.Status(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				event, ok := toEvent(msg)
				if !ok {
					continue
				}
				if err := wc.Engine.Handle(c.Request.Context(), event); err != nil {
					log.Printf("webhook: event from %s not handled: %v", event.From, err)
				}
			}
		}
	}

	c.Status(http.StatusOK)
}

func toEvent(msg inboundMessage) (conversation.Event, bool) {
	event := conversation.Event{From: msg.From}
	switch msg.Type {
	case "text":
		event.Kind = conversation.KindText
		if msg.Text != nil {
			event.Text = msg.Text.Body
		}
	case "location":
		if msg.Location == nil {
			return event, false
		}
		event.Kind = conversation.KindLocation
		event.Latitude = msg.Location.Latitude
		event.Longitude = msg.Location.Longitude
	case "image":
		if msg.Image == nil {
			return event, false
		}
		event.Kind = conversation.KindImage
		event.MediaID = msg.Image.ID
	case "video":
		if msg.Video == nil {
			return event, false
		}
		event.Kind = conversation.KindVideo
		event.MediaID = msg.Video.ID
	case "audio", "voice":
		ref := msg.Audio
		if ref == nil {
			ref = msg.Voice
		}
		if ref == nil {
			return event, false
		}
		event.Kind = conversation.KindAudio
		event.MediaID = ref.ID
	default:
		return event, false
	}
	return event, event.From != ""
}
