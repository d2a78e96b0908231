package services

import "resoluteAPI/internal/types/template"

type TemplateService struct{}

func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// ListTemplates returns the static catalog used to prefill challenge
// creation.
func (s *TemplateService) ListTemplates() []template.Template {
	return template.Catalog
}
