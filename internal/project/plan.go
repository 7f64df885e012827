package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roomfit/roomfit/internal/model"
)

// SavePlan writes a plan to the specified JSON file, creating parent
// directories as needed.
func SavePlan(path string, plan model.Plan) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create plan directory: %w", err)
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPlan reads a plan from the specified JSON file.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, fmt.Errorf("read plan file: %w", err)
	}
	var plan model.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return model.Plan{}, fmt.Errorf("parse plan file: %w", err)
	}
	if plan.Name == "" {
		plan.Name = "Untitled"
	}
	return plan, nil
}

// RememberRecentPlan prepends the path to the recent-plans list, dropping
// duplicates and keeping at most max entries.
func RememberRecentPlan(config *model.AppConfig, path string, max int) {
	recent := []string{path}
	for _, p := range config.RecentPlans {
		if p != path && len(recent) < max {
			recent = append(recent, p)
		}
	}
	config.RecentPlans = recent
}
