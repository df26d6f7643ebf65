package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// metaWebhook mirrors the WhatsApp Cloud API callback envelope, reduced to
// the fields the engine consumes.
type metaWebhook struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Contacts []struct {
					WaID    string `json:"wa_id"`
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive struct {
						ButtonReply struct {
							Title string `json:"title"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// metaOutbound is one Cloud API send-message payload; the caller posts these
// to the Graph API.
type metaOutbound struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             *metaText        `json:"text,omitempty"`
	Interactive      *metaInteractive `json:"interactive,omitempty"`
}

type metaText struct {
	Body string `json:"body"`
}

type metaInteractive struct {
	Type   string     `json:"type"`
	Body   metaText   `json:"body"`
	Action metaAction `json:"action"`
}

type metaAction struct {
	Buttons []metaButton `json:"buttons"`
}

type metaButton struct {
	Type  string          `json:"type"`
	Reply metaButtonReply `json:"reply"`
}

type metaButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// metaVerifyHandler answers the Cloud API subscription handshake.
func metaVerifyHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		if mode != "subscribe" || deps.MetaVerifyToken == "" || token != deps.MetaVerifyToken {
			c.String(http.StatusForbidden, "verification failed")
			return
		}
		c.String(http.StatusOK, c.Query("hub.challenge"))
	}
}

// metaHandler accepts the Cloud API callback and returns the outbound
// payloads to send. Statuses-only callbacks return an empty list.
func metaHandler(logger *log.Logger, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in metaWebhook
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
			return
		}

		tenantID := c.Query("tenant")
		if tenantID == "" {
			tenantID = deps.DefaultTenantID
		}

		var out []metaOutbound
		for _, entry := range in.Entry {
			for _, change := range entry.Changes {
				names := map[string]string{}
				for _, contact := range change.Value.Contacts {
					names[contact.WaID] = contact.Profile.Name
				}
				for _, msg := range change.Value.Messages {
					text := msg.Text.Body
					if msg.Type == "interactive" {
						text = msg.Interactive.ButtonReply.Title
					}
					if text == "" {
						continue
					}

					reply, err := deps.Engine.HandleTurn(c.Request.Context(), tenantID, msg.From, names[msg.From], text)
					if err != nil {
						logger.Printf("meta webhook: turn failed phone=%s error=%v", msg.From, err)
						reply = domain.Reply{Text: "Sorry, something went wrong on our side. Please try again in a moment."}
					}
					out = append(out, toMetaOutbound(msg.From, reply))
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"messages": out})
	}
}

// toMetaOutbound renders a reply as a Cloud API message: plain text, or an
// interactive button message when quick replies fit Meta's three-button cap.
func toMetaOutbound(to string, r domain.Reply) metaOutbound {
	if len(r.QuickReplies) == 0 || len(r.QuickReplies) > 3 {
		return metaOutbound{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             &metaText{Body: renderWithQuickReplies(r)},
		}
	}

	buttons := make([]metaButton, 0, len(r.QuickReplies))
	for i, qr := range r.QuickReplies {
		buttons = append(buttons, metaButton{
			Type:  "reply",
			Reply: metaButtonReply{ID: buttonID(i), Title: qr},
		})
	}
	return metaOutbound{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &metaInteractive{
			Type:   "button",
			Body:   metaText{Body: r.Text},
			Action: metaAction{Buttons: buttons},
		},
	}
}

func buttonID(i int) string {
	return "qr_" + string(rune('0'+i))
}
