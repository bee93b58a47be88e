package astroController

import (
	"log/slog"
	"net/http"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/ports/service"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	AstroService service.IAstroService
	Log          *slog.Logger
}

func New(astroService service.IAstroService, log *slog.Logger) *Controller {
	return &Controller{
		AstroService: astroService,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/astro/summary", c.dailySummary)
		api.POST("/cache/clear", c.clearCache)
	}
}

// dailySummary отдаёт общую астрономическую сводку дня
func (c *Controller) dailySummary(ctx *gin.Context) {
	summary, err := c.AstroService.DailySummary(ctx.Request.Context())
	if err != nil {
		// Ошибки бизнес-логики уже залогированы в usecase
		if !domain.IsBusinessError(err) {
			c.Log.Error("failed to build daily summary", "error", err)
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Unable to fetch astronomical data",
		})
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// clearCache принудительно сбрасывает кэш астро-данных
func (c *Controller) clearCache(ctx *gin.Context) {
	if err := c.AstroService.ClearCache(ctx.Request.Context()); err != nil {
		c.Log.Error("failed to clear astro cache", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "failed to clear cache",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
