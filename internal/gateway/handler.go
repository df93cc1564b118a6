package gateway

import (
	"net/http"
	"strconv"

	"github.com/GoPolymarket/go-clob-client/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router assembles the gin engine with the gateway's middleware chain.
func (h *Handler) Router(requireKey bool, apiKey string, metricsEnabled bool, metricsPath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(ErrorHandler())
	r.Use(MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "clobgate"})
	})

	if metricsEnabled {
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/v1")
	v1.Use(AuthMiddleware(requireKey, apiKey))
	{
		v1.POST("/orders", h.PlaceOrder)
		v1.POST("/orders/build", h.BuildOrder)
		v1.POST("/orders/market", h.PlaceMarketOrder)
		v1.DELETE("/orders/:id", h.CancelOrder)
		v1.DELETE("/orders", h.CancelAll)
		v1.GET("/orders/recent", h.RecentOrders)
		v1.GET("/markets/:token/book", h.GetOrderBook)
	}

	return r
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest(err.Error()))
		return
	}

	resp, err := h.svc.PlaceOrder(c.Request.Context(), RequestID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) BuildOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest(err.Error()))
		return
	}

	signed, err := h.svc.BuildOrder(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

func (h *Handler) PlaceMarketOrder(c *gin.Context) {
	var req MarketOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest(err.Error()))
		return
	}

	resp, err := h.svc.PlaceMarketOrder(c.Request.Context(), RequestID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		c.Error(apperrors.NewInvalidRequest("order id is required"))
		return
	}

	resp, err := h.svc.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CancelAll(c *gin.Context) {
	resp, err := h.svc.CancelAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RecentOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.svc.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetOrderBook(c *gin.Context) {
	tokenID := c.Param("token")
	if tokenID == "" {
		c.Error(apperrors.NewInvalidRequest("token id is required"))
		return
	}

	book, err := h.svc.GetOrderBook(c.Request.Context(), tokenID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}
