package handler

import (
	"checkout/internal/pidl/feature"
	"checkout/internal/pidl/models"
)

// RenderResponse is the HTTP response body for POST /pidl/render.
type RenderResponse struct {
	Resources       []*models.ResourceDocument `json:"resources"`
	AppliedFeatures []string                   `json:"applied_features"`
}

func toRenderResponse(docs []*models.ResourceDocument, d *feature.Decisions) *RenderResponse {
	applied := make([]string, 0, len(d.Applied()))
	for _, name := range d.Applied() {
		applied = append(applied, string(name))
	}
	return &RenderResponse{Resources: docs, AppliedFeatures: applied}
}
