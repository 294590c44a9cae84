package api

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"houserocket/server/internal/dashboard"
	"houserocket/server/internal/geometry"
	"houserocket/server/internal/models"
	"houserocket/server/internal/pipeline"
)

// Dashboard is the report source behind the handlers.
type Dashboard interface {
	Report(ctx context.Context, q dashboard.Query) (*models.Report, error)
	Layer(ctx context.Context, name string, q dashboard.Query) (*geometry.MapLayer, error)
	Invalidate()
}

type Handler struct {
	dashboard Dashboard
	logger    *logrus.Logger
}

// ReportQuery is the selection accepted by every table and map endpoint.
type ReportQuery struct {
	Conditions []string `form:"condition"`
	Zipcodes   []int    `form:"zipcode"`
	Limit      int      `form:"limit"`
}

func (q ReportQuery) toQuery() dashboard.Query {
	return dashboard.Query{
		Filter: pipeline.Filter{
			Conditions: q.Conditions,
			Zipcodes:   q.Zipcodes,
		},
		OverviewRows: q.Limit,
	}
}

func NewHandler(d Dashboard, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		dashboard: d,
		logger:    logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// report binds the query and builds the report, answering the request itself
// when either step fails.
func (h *Handler) report(c *gin.Context) (*models.Report, bool) {
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Error("Failed to parse report query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return nil, false
	}

	report, err := h.dashboard.Report(c.Request.Context(), query.toQuery())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return nil, false
	}
	return report, true
}

func (h *Handler) GetOverview(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Overview)
}

func (h *Handler) GetWorth(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Worth)
}

func (h *Handler) GetProfitability(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Profitability)
}

func (h *Handler) GetRanking(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ranking":   report.Ranking,
		"breakdown": report.Breakdown,
	})
}

func (h *Handler) GetReport(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetMapLayer(c *gin.Context) {
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Error("Failed to parse map query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	name := c.Param("layer")
	layer, err := h.dashboard.Layer(c.Request.Context(), name, query.toQuery())
	if errors.Is(err, dashboard.ErrUnknownLayer) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown map layer: " + name})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("layer", name).Error("Failed to build map layer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build map layer"})
		return
	}

	c.JSON(http.StatusOK, layer)
}

func (h *Handler) InvalidateCache(c *gin.Context) {
	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, gin.H{
		"status": "Cached sources cleared",
	})
}
