package initializers

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gokuljawahar87/move-more/models"
	"github.com/gokuljawahar87/move-more/repository"

	"gopkg.in/yaml.v3"
)

// rosterYAML mirrors config/roster.yaml, the HR export that maps employees
// to their team and gender.
type rosterYAML struct {
	Employees []struct {
		UserID    string `yaml:"user_id"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Team      string `yaml:"team"`
		Gender    string `yaml:"gender"`
	} `yaml:"employees"`
}

// SeedEmployeeMaster is called once on application start to load the
// employee roster when the table is empty. Registration resolves team and
// gender from this table, so an empty roster means teamless participants.
func SeedEmployeeMaster(repo *repository.EmployeesRepository) error {
	n, err := repo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	path := os.Getenv("ROSTER_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/roster.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("no roster file, employee master left empty", "path", path)
			return nil
		}
		return fmt.Errorf("reading roster: %w", err)
	}
	var roster rosterYAML
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return fmt.Errorf("parsing roster: %w", err)
	}

	for _, e := range roster.Employees {
		emp := models.Employee{
			UserID:    e.UserID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
		}
		if e.Team != "" {
			t := e.Team
			emp.Team = &t
		}
		if e.Gender != "" {
			g := e.Gender
			emp.Gender = &g
		}
		if err := repo.Insert(emp); err != nil {
			return fmt.Errorf("seeding employee %s: %w", e.UserID, err)
		}
	}
	slog.Info("employee master seeded", "employees", len(roster.Employees))
	return nil
}
