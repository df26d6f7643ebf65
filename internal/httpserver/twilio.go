package httpserver

import (
	"encoding/xml"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// twilioInbound is the subset of Twilio's form fields the engine needs.
type twilioInbound struct {
	From        string `form:"From" binding:"required"`
	Body        string `form:"Body"`
	ProfileName string `form:"ProfileName"`
}

// twimlResponse renders the reply Twilio sends back to the customer.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// twilioHandler accepts Twilio's WhatsApp callback. The tenant comes from
// the ?tenant query parameter (one webhook URL per merchant) or the
// configured default.
func twilioHandler(logger *log.Logger, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in twilioInbound
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "From is required"})
			return
		}

		tenantID := c.Query("tenant")
		if tenantID == "" {
			tenantID = deps.DefaultTenantID
		}
		phone := strings.TrimPrefix(strings.TrimSpace(in.From), "whatsapp:")

		reply, err := deps.Engine.HandleTurn(c.Request.Context(), tenantID, phone, in.ProfileName, in.Body)
		if err != nil {
			logger.Printf("twilio webhook: turn failed phone=%s error=%v", phone, err)
			reply = domain.Reply{Text: "Sorry, something went wrong on our side. Please try again in a moment."}
		}

		c.XML(http.StatusOK, twimlResponse{Message: renderWithQuickReplies(reply)})
	}
}

// renderWithQuickReplies flattens quick replies into the message text for
// channels without native buttons.
func renderWithQuickReplies(r domain.Reply) string {
	if len(r.QuickReplies) == 0 {
		return r.Text
	}
	return r.Text + "\n\nReply: " + strings.Join(r.QuickReplies, " / ")
}
