package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"

	"warmup/internal/models"

	"github.com/rs/zerolog"
)

// HomeHandler serves the marketing landing page.
type HomeHandler struct {
	tmpl   *template.Template
	logger zerolog.Logger
}

type planView struct {
	Key      string
	Name     string
	Price    string
	Period   string
	Features []string
}

var plans = []planView{
	{
		Key: models.PlanOneTime, Name: "One-Time Warmup", Price: "$75", Period: "/account",
		Features: []string{"5-day warmup", "Niche targeting", "Progress tracking", "Final report"},
	},
	{
		Key: models.PlanStarter, Name: "Starter Plan", Price: "$299", Period: "/month",
		Features: []string{"5 accounts/month", "Priority queue", "Email support", "Monthly reports", "Cancel anytime"},
	},
	{
		Key: models.PlanGrowth, Name: "Growth Plan", Price: "$499", Period: "/month",
		Features: []string{"10 accounts/month", "Priority queue", "Weekly reports", "Slack support", "Rollover credits"},
	},
}

func NewHomeHandler(templateDir string, logger zerolog.Logger) (*HomeHandler, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templateDir, "home.html"))
	if err != nil {
		return nil, err
	}
	return &HomeHandler{tmpl: tmpl, logger: logger}, nil
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Plans": plans,
	}
	if err := h.tmpl.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render landing page")
	}
}
