package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/cache"
	"weatherdash.app/config"
	weathererr "weatherdash.app/errors"
	"weatherdash.app/models"
)

// RefreshTrigger starts a refresh cycle out-of-band. Callers get an immediate
// acknowledgment; triggers during an in-flight refresh coalesce with it.
type RefreshTrigger interface {
	TriggerAsync()
}

// Server represents the HTTP server and API handler
type Server struct {
	router    *gin.Engine
	config    *config.Config
	registry  []models.City
	snapshots cache.SnapshotCache
	refresher RefreshTrigger
}

// ServerOptions bundles the dependencies a Server needs.
type ServerOptions struct {
	Config    *config.Config
	Registry  []models.City
	Snapshots cache.SnapshotCache
	Refresher RefreshTrigger
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Config == nil {
		return nil, weathererr.NewConfigurationError("server config cannot be nil", nil)
	}
	if opts.Snapshots == nil {
		return nil, weathererr.NewConfigurationError("snapshot cache cannot be nil", nil)
	}
	if opts.Refresher == nil {
		return nil, weathererr.NewConfigurationError("refresh trigger cannot be nil", nil)
	}

	if !opts.Config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		router:    gin.Default(),
		config:    opts.Config,
		registry:  opts.Registry,
		snapshots: opts.Snapshots,
		refresher: opts.Refresher,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.dashboard)

	api := s.router.Group("/api")
	{
		api.GET("/data", s.getData)
		api.GET("/data/raw", s.getData)
		api.GET("/insights", s.getInsights)
		api.GET("/cities", s.getCities)
	}

	s.router.GET("/charts/:name", s.getChart)
	s.router.GET("/charts/raw/:name", s.downloadChart)
	s.router.GET("/download/csv", s.downloadCSV)

	s.router.POST("/update", s.triggerUpdate)
	s.router.GET("/update", s.triggerUpdatePage)

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(s.config.Server.Addr())
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getData(c *gin.Context) {
	snapshot, ok := s.snapshots.Current()
	if !ok {
		s.handleError(c, weathererr.NewNoDataError("weather data not available"))
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{
		Data:        snapshot.Observations,
		Insights:    snapshot.Insights,
		LastUpdated: snapshot.GeneratedAt.Format(time.RFC3339),
		TotalCities: len(snapshot.Observations),
	})
}

func (s *Server) getInsights(c *gin.Context) {
	snapshot, ok := s.snapshots.Current()
	if !ok || snapshot.Insights == nil {
		s.handleError(c, weathererr.NewNoDataError("weather insights not available"))
		return
	}

	c.JSON(http.StatusOK, snapshot.Insights)
}

func (s *Server) getCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": s.registry})
}

func (s *Server) getChart(c *gin.Context) {
	path, err := s.chartPath(c.Param("name"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.File(path)
}

func (s *Server) downloadChart(c *gin.Context) {
	name := c.Param("name")
	path, err := s.chartPath(name)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.FileAttachment(path, name+".png")
}

func (s *Server) chartPath(name string) (string, error) {
	snapshot, ok := s.snapshots.Current()
	if !ok {
		return "", weathererr.NewNoDataError("weather data not available")
	}

	path, ok := snapshot.Charts[name]
	if !ok {
		return "", weathererr.NewNotFoundError("chart not found")
	}
	if _, err := os.Stat(path); err != nil {
		return "", weathererr.NewNotFoundError("chart file not found")
	}
	return path, nil
}

func (s *Server) downloadCSV(c *gin.Context) {
	path := s.config.Output.CSVPath
	if _, err := os.Stat(path); err != nil {
		s.handleError(c, weathererr.NewNotFoundError("CSV file not found"))
		return
	}

	filename := fmt.Sprintf("weather_data_%s.csv", time.Now().Format("20060102_150405"))
	c.FileAttachment(path, filename)
}

func (s *Server) triggerUpdate(c *gin.Context) {
	s.refresher.TriggerAsync()

	c.JSON(http.StatusOK, gin.H{
		"message":   "Weather data update initiated",
		"status":    "success",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) triggerUpdatePage(c *gin.Context) {
	s.refresher.TriggerAsync()
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(updatePage))
}

func (s *Server) health(c *gin.Context) {
	snapshot, ok := s.snapshots.Current()

	resp := models.HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().Format(time.RFC3339),
		DataAvailable: ok,
	}
	if ok {
		resp.LastUpdate = snapshot.GeneratedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case weathererr.ValidationError:
		status = http.StatusBadRequest
	case weathererr.NotFoundError:
		status = http.StatusNotFound
	case weathererr.NoDataError:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, models.ErrorResponse{Error: appErr.Message})
}
