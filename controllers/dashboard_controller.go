package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type DashboardController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewDashboardController(st *store.Store, logger *log.Logger) *DashboardController {
	return &DashboardController{Store: st, Logger: logger}
}

type DashboardStats struct {
	TotalLeads   int                 `json:"total_leads"`
	LeadsByState map[string]int      `json:"leads_by_state"`
	TotalTasks   int                 `json:"total_tasks"`
	TasksByState map[string]int      `json:"tasks_by_state"`
	TasksDue     int                 `json:"tasks_due"`
	ActiveUsers  int                 `json:"active_users"`
	BrokerLinks  []models.BrokerLink `json:"broker_links"`
}

// statsWindow caps how much the dashboard aggregates in one request.
const statsWindow = 10000

// GetDashboardStats aggregates counts for the dashboard cards. The
// numbers are computed over the most recent statsWindow records of
// each entity, which covers the expected data volume.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	view := storeFor(c, dc.Store)

	leads, err := view.Leads.List(c.Context(), store.LeadFilter{Limit: statsWindow})
	if err != nil {
		return storeError(c, "Failed to load dashboard stats", err)
	}
	tasks, err := view.Tasks.List(c.Context(), store.TaskFilter{Limit: statsWindow})
	if err != nil {
		return storeError(c, "Failed to load dashboard stats", err)
	}
	users, err := view.Users.List(c.Context(), store.UserFilter{ActiveOnly: true, Limit: statsWindow})
	if err != nil {
		return storeError(c, "Failed to load dashboard stats", err)
	}
	links, err := view.BrokerLinks.List(c.Context(), true)
	if err != nil {
		dc.Logger.Printf("⚠️ loading broker links failed: %v", err)
	}

	stats := DashboardStats{
		TotalLeads:   len(leads),
		LeadsByState: make(map[string]int),
		TotalTasks:   len(tasks),
		TasksByState: make(map[string]int),
		ActiveUsers:  len(users),
		BrokerLinks:  links,
	}

	for _, l := range leads {
		stats.LeadsByState[l.StateName]++
	}
	now := time.Now()
	for _, t := range tasks {
		stats.TasksByState[t.StateName]++
		if t.DueDate != nil && t.DueDate.Before(now) {
			stats.TasksDue++
		}
	}

	return c.JSON(utils.SuccessResponse(stats))
}
