// Package server exposes the placement engine over HTTP for use by the
// browser-based floor plan editor.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomfit/roomfit/internal/engine"
	"github.com/roomfit/roomfit/internal/geometry"
	"github.com/roomfit/roomfit/internal/importer"
	"github.com/roomfit/roomfit/internal/model"
)

// Server wires HTTP handlers to the placement engine and a furniture catalog.
type Server struct {
	placer  *engine.Placer
	catalog model.Catalog
	config  model.AppConfig
}

// New builds a server around the given catalog and configuration.
func New(cat model.Catalog, config model.AppConfig) *Server {
	return &Server{
		placer:  engine.New(engine.DefaultSettings()),
		catalog: cat,
		config:  config,
	}
}

// Router returns a gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	api := r.Group("/api")
	{
		api.GET("/catalog", s.handleCatalog)
		api.POST("/layout", s.handleLayout)
		api.POST("/quote", s.handleQuote)
		api.POST("/snap", s.handleSnap)
		api.POST("/outline", s.handleOutline)
	}
	return r
}

// LayoutRequest describes a room to fill with furniture.
type LayoutRequest struct {
	Room    model.Polygon         `json:"room" binding:"required"`
	Holes   []model.Polygon       `json:"holes"`
	Scale   model.Scale           `json:"scale"`
	Pattern model.LayoutPattern   `json:"pattern"`
	Catalog []model.FurnitureSpec `json:"catalog"`
}

// LayoutResponse carries one layout per requested pattern.
type LayoutResponse struct {
	Layouts map[model.LayoutPattern]model.LayoutResult `json:"layouts"`
}

func (s *Server) handleLayout(c *gin.Context) {
	var req LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	catalog := req.Catalog
	if len(catalog) == 0 {
		catalog = s.catalog.Entries
	}

	resp := LayoutResponse{Layouts: map[model.LayoutPattern]model.LayoutResult{}}
	if req.Pattern != "" {
		items, err := s.placer.Place(req.Room, req.Holes, req.Scale, catalog, req.Pattern.AisleGapMM())
		if err != nil {
			writePlacementError(c, err)
			return
		}
		resp.Layouts[req.Pattern] = model.LayoutResult{Pattern: req.Pattern, Items: items}
		c.JSON(http.StatusOK, resp)
		return
	}

	layouts, err := s.placer.PlaceAll(req.Room, req.Holes, req.Scale, catalog)
	if err != nil {
		writePlacementError(c, err)
		return
	}
	resp.Layouts = layouts
	c.JSON(http.StatusOK, resp)
}

func writePlacementError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, engine.ErrInvalidScale) || errors.Is(err, engine.ErrLayoutTooLarge) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// QuoteRequest asks for pricing of a previously computed layout.
type QuoteRequest struct {
	Layout        model.LayoutResult `json:"layout"`
	ServiceFeePct float64            `json:"service_fee_pct"`
}

func (s *Server) handleQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pct := req.ServiceFeePct
	if pct == 0 {
		pct = s.config.ServiceFeePct
	}
	c.JSON(http.StatusOK, model.BuildQuote(req.Layout, pct))
}

// SnapRequest is a hand-drawn outline to straighten.
type SnapRequest struct {
	Points    []model.Point `json:"points" binding:"required"`
	Threshold float64       `json:"threshold"`
}

// SnapResponse holds the rectilinear-snapped outline.
type SnapResponse struct {
	Points []model.Point `json:"points"`
}

func (s *Server) handleSnap(c *gin.Context) {
	var req SnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = s.config.SnapThreshold
	}
	c.JSON(http.StatusOK, SnapResponse{Points: geometry.SnapRectilinear(req.Points, threshold)})
}

// OutlineRequest wraps an outline-service proposal with the dimensions of
// the floor-plan image it was derived from.
type OutlineRequest struct {
	Proposal json.RawMessage `json:"proposal" binding:"required"`
	ImageW   float64         `json:"image_w" binding:"required"`
	ImageH   float64         `json:"image_h" binding:"required"`
}

// OutlineResponse is a ready-to-edit room outline in image pixel space.
// Scale is zero when the proposal carried no reference segment.
type OutlineResponse struct {
	Room  model.Polygon `json:"room"`
	Scale model.Scale   `json:"scale,omitempty"`
}

func (s *Server) handleOutline(c *gin.Context) {
	var req OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	proposal, err := importer.DecodeProposal(bytes.NewReader(req.Proposal))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := proposal.ToPixels(req.ImageW, req.ImageH)
	room = geometry.SnapRectilinear(room, s.config.SnapThreshold)

	resp := OutlineResponse{Room: room}
	if scale, err := proposal.ScaleFromReference(req.ImageW, req.ImageH); err == nil {
		resp.Scale = scale
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog)
}
