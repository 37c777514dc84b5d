package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/database"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/version"
)

// features advertises optional capabilities to clients.
var features = map[string]bool{
	"websocket_stream":     true,
	"prometheus_metrics":   true,
	"persistent_settings":  true,
	"manual_refresh":       true,
	"portfolio_allocation": true,
	"transaction_history":  true,
}

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version, the applied schema version and
// whether embedded migrations are still pending.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	current, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}
	latest, err := database.LatestVersion()
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}

	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(current, 10),
		Features:   make(map[string]bool, len(features)),
	}
	for name, enabled := range features {
		info.Features[name] = enabled
	}
	if current < latest {
		msg := fmt.Sprintf("database schema is at version %d, latest is %d", current, latest)
		info.MigrationNeeded = true
		info.MigrationMessage = &msg
	}
	return info, nil
}
