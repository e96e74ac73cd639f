package httpapi

import (
	"context"
	"net/http"
	"time"

	"CryptoViewer/internal/model"
	"CryptoViewer/internal/presenter"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server exposes the Viewer operations as a JSON API for an external UI.
type Server struct {
	viewer *presenter.Viewer
	engine *gin.Engine
	server *http.Server
}

// NewServer creates a Server with all routes registered.
func NewServer(addr string, v *presenter.Viewer) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		viewer: v,
		engine: engine,
		server: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/catalog/load", s.handleLoadCatalog)
	api.GET("/currencies", s.handleSearch)
	api.POST("/selection/:id", s.handleSelect)
	api.GET("/currencies/:id/history", s.handleHistory)
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type currencyDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	PriceUsd          float64 `json:"price_usd"`
	ChangePercent24Hr float64 `json:"change_percent_24h"`
	VolumeUsd24Hr     float64 `json:"volume_usd_24h"`
}

type detailDTO struct {
	CurrencyID string             `json:"currency_id"`
	State      model.DetailState  `json:"state"`
	Series     *model.ChartSeries `json:"series,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func toCurrencyDTOs(list []*model.Currency) []currencyDTO {
	out := make([]currencyDTO, len(list))
	for i, c := range list {
		out[i] = currencyDTO{
			ID:                c.ID,
			Name:              c.Name,
			Symbol:            c.Symbol,
			PriceUsd:          c.PriceUsd,
			ChangePercent24Hr: c.ChangePercent24Hr,
			VolumeUsd24Hr:     c.VolumeUsd24Hr,
		}
	}
	return out
}

func toDetailDTO(v model.DetailView) detailDTO {
	dto := detailDTO{CurrencyID: v.CurrencyID, State: v.State, Series: v.Series}
	if v.Err != nil {
		dto.Error = v.Err.Error()
	}
	return dto
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLoadCatalog(c *gin.Context) {
	if err := s.viewer.LoadCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	list := s.viewer.Home.Currencies()
	c.JSON(http.StatusOK, gin.H{"count": len(list), "currencies": toCurrencyDTOs(list)})
}

func (s *Server) handleSearch(c *gin.Context) {
	var list []*model.Currency
	if q, ok := c.GetQuery("q"); ok {
		list = s.viewer.Search(q)
	} else {
		list = s.viewer.Home.Currencies()
	}
	c.JSON(http.StatusOK, gin.H{
		"query":      s.viewer.Home.Catalog.SearchText(),
		"currencies": toCurrencyDTOs(list),
	})
}

func (s *Server) handleSelect(c *gin.Context) {
	id := c.Param("id")
	s.viewer.SelectCurrency(id)
	c.JSON(http.StatusOK, toDetailDTO(s.viewer.Details.View()))
}

func (s *Server) handleHistory(c *gin.Context) {
	view := s.viewer.LoadHistoryFor(c.Request.Context(), c.Param("id"))
	status := http.StatusOK
	if view.State == model.DetailFailed {
		status = http.StatusBadGateway
	}
	c.JSON(status, toDetailDTO(view))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("http request")
	}
}
