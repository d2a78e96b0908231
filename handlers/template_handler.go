package handlers

import (
	"net/http"

	"resoluteAPI/services"
)

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.templateService.ListTemplates())
}
