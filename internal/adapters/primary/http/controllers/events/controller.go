package eventsController

import (
	"log/slog"
	"net/http"

	"github.com/vosstorgg/dailybot/internal/ports/service"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	RegistrationService service.IRegistrationService
	Log                 *slog.Logger
}

func New(registrationService service.IRegistrationService, log *slog.Logger) *Controller {
	return &Controller{
		RegistrationService: registrationService,
		Log:                 log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/v1/events", c.processEvent)
}

// processEvent прогоняет событие диалога через машину регистрации
func (c *Controller) processEvent(ctx *gin.Context) {
	var req ProcessEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind inbound event", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := c.RegistrationService.HandleEvent(ctx.Request.Context(), req.toDomain())
	if err != nil {
		c.Log.Error("failed to process inbound event",
			"error", err,
			"telegram_user_id", req.TelegramUserID,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, reply)
}
