// Package mcp exposes the plate engine as MCP tools over a plain HTTP POST
// endpoint carrying a CallToolRequest.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"portion-vision/logging"
	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/service"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
)

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrInvalidParams = errors.New("invalid parameters")
)

type ClassifyParams struct {
	Name string `json:"name" description:"Menu item name"`
}

type EstimateParams struct {
	Profile map[string]any `json:"profile" description:"User profile; weight, height, age, sex, activity and goal"`
}

type RecommendParams struct {
	Profile   any    `json:"profile,omitempty" description:"User profile fields, overriding the stored profile"`
	ProfileID string `json:"profileId,omitempty" description:"Id of a saved profile"`
	MenuItems any    `json:"menuItems,omitempty" description:"Menu item names; today's menu when omitted"`
	MealType  any    `json:"mealType,omitempty" description:"breakfast, lunch, dinner or snack"`
}

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type Server struct {
	foods    service.FoodServiceInterface
	profiles service.ProfileServiceInterface
	plates   service.RecommendationServiceInterface
	tools    map[string]toolHandler
}

func NewServer(foods service.FoodServiceInterface, profiles service.ProfileServiceInterface, plates service.RecommendationServiceInterface) *Server {
	s := &Server{foods: foods, profiles: profiles, plates: plates}
	s.tools = map[string]toolHandler{
		"classify_item":           s.handleClassify,
		"estimate_daily_calories": s.handleEstimate,
		"recommend_plate":         s.handleRecommend,
	}
	return s
}

// ToolNames lists the registered tools in name order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) Call(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	handler, ok := s.tools[req.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Name)
	}
	return handler(ctx, req)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, map[string][]string{"tools": s.ToolNames()})
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.Call(r.Context(), &request)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrUnknownTool), errors.Is(err, service.ErrProfileNotFound):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidParams):
			status = http.StatusBadRequest
		}
		log.WithError(err).WithField("tool", request.Name).Warn("tool call failed")
		http.Error(w, err.Error(), status)
		return
	}

	log.WithField("tool", request.Name).Debug("tool call served")
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClassify(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ClassifyParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidParams)
	}
	return jsonResult(s.foods.Classify(params.Name))
}

func (s *Server) handleEstimate(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EstimateParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	// Profile fields may also be passed at the top level.
	if params.Profile == nil {
		params.Profile = req.Arguments
	}
	return jsonResult(s.profiles.Estimate(params.Profile))
}

func (s *Server) handleRecommend(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params RecommendParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	result, err := s.plates.Recommend(ctx, domain.RecommendRequest{
		Profile:   params.Profile,
		ProfileID: params.ProfileID,
		MenuItems: params.MenuItems,
		MealType:  params.MealType,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func jsonResult(data any) (*protocol.CallToolResult, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(payload),
			},
		},
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
