// Package web serves the HTML dashboard and the JSON status/action API on
// top of a running hub.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Joxx0r/devtoolhub/pkg/config"
	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/hub"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

type Server struct {
	hub *hub.Hub
}

func NewRouter(h *hub.Hub) *gin.Engine {
	s := &Server{hub: h}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl")))

	r.GET("/", s.dashboard)
	r.GET("/partials/status", s.statusPartial)

	api := r.Group("/api")
	{
		api.GET("/status", s.apiStatus)
		api.POST("/focus/:tool", s.apiFocus)
		api.POST("/start/:tool", s.apiStart)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

// toolRow pairs a configured tool with its latest status for rendering.
type toolRow struct {
	Tool   config.Tool
	Status health.ToolStatus
}

func (s *Server) rows() []toolRow {
	snap := s.hub.Checker.Snapshot()
	rows := make([]toolRow, 0, len(s.hub.Config.Tools))
	for _, t := range s.hub.Config.Tools {
		rows = append(rows, toolRow{Tool: t, Status: snap[t.Name]})
	}
	return rows
}

func (s *Server) dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html.tmpl", gin.H{"Rows": s.rows()})
}

func (s *Server) statusPartial(c *gin.Context) {
	c.HTML(http.StatusOK, "status.html.tmpl", gin.H{"Rows": s.rows()})
}

func (s *Server) apiStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Checker.Snapshot())
}

// apiFocus raises the tool's window or launches it when the window is gone.
func (s *Server) apiFocus(c *gin.Context) {
	name := c.Param("tool")
	if _, ok := s.hub.Config.Tool(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Tool not found"})
		return
	}

	res := s.hub.FocusOrLaunch(name)
	switch res.Outcome {
	case hub.OutcomeFocused:
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Focused"})
	case hub.OutcomeLaunched:
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": fmt.Sprintf("Opening (PID %d)", res.PID)})
	case hub.OutcomeLaunchFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to start"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Window not found"})
	}
}

func (s *Server) apiStart(c *gin.Context) {
	name := c.Param("tool")
	tool, ok := s.hub.Config.Tool(name)
	if !ok || tool.StartCommand == "" {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Tool not found or no start_command"})
		return
	}

	pid, err := s.hub.StartTool(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to start"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": fmt.Sprintf("Started (PID %d)", pid)})
}
