package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/StickCut/internal/engine"
	"github.com/piwi3910/StickCut/internal/model"
)

// OptimizeRequest is the payload for POST /api/optimize.
type OptimizeRequest struct {
	Inventory  []model.LumberStock      `json:"inventory"`
	Parts      []model.Part             `json:"parts"`
	Parameters *model.CuttingParameters `json:"parameters"`
}

// CompareRequest is the payload for POST /api/compare.
type CompareRequest struct {
	Inventory []model.LumberStock `json:"inventory"`
	Parts     []model.Part        `json:"parts"`
	Scenarios []ScenarioRequest   `json:"scenarios"`
}

// ScenarioRequest names one parameter set to compare.
type ScenarioRequest struct {
	Name       string                  `json:"name"`
	Parameters model.CuttingParameters `json:"parameters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// bindStrict decodes the request body rejecting unknown fields.
func bindStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOptimize(c *gin.Context) {
	var req OptimizeRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	params := model.DefaultParameters()
	if req.Parameters != nil {
		params = *req.Parameters
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	result, err := engine.Optimize(ctx, req.Inventory, req.Parts, params)
	if err != nil {
		var invalid *model.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: invalid.Error()})
			return
		}
		s.logger.Error("optimization failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if len(req.Scenarios) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one scenario is required"})
		return
	}

	scenarios := make([]engine.ComparisonScenario, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		scenarios = append(scenarios, engine.ComparisonScenario{Name: sc.Name, Params: sc.Parameters})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	results := engine.CompareScenarios(ctx, scenarios, req.Inventory, req.Parts)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// handleSample returns a ready-to-run example request: the default lumber
// inventory plus the parts for five Euro pallets.
func (s *Server) handleSample(c *gin.Context) {
	inv := model.DefaultInventory()
	stocks := make([]model.LumberStock, 0, len(inv.Stocks))
	for _, p := range inv.Stocks {
		stocks = append(stocks, p.ToLumberStock(25))
	}

	var parts []model.Part
	for _, tpl := range model.DefaultTemplates().Templates {
		if tpl.Name == "Euro pallet" {
			parts = tpl.Expand(5)
			break
		}
	}

	params := model.DefaultParameters()
	c.JSON(http.StatusOK, OptimizeRequest{
		Inventory:  stocks,
		Parts:      parts,
		Parameters: &params,
	})
}

func (s *Server) handleTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": model.DefaultTemplates().Templates})
}
