package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blobyeu/statuspage/internal/models"
)

var validate = validator.New()

// CreateMaintenanceRequest is the body for scheduling a maintenance window
type CreateMaintenanceRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

// HandleListMaintenance returns current and upcoming maintenance windows,
// soonest first
func HandleListMaintenance(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var windows []models.MaintenanceWindow
		err := db.Where("ends_at >= ?", time.Now().UTC()).
			Order("starts_at ASC").
			Find(&windows).Error

		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch maintenance windows")
			return
		}

		respondJSON(w, http.StatusOK, windows)
	}
}

// HandleCreateMaintenance schedules a new maintenance window
func HandleCreateMaintenance(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateMaintenanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		window := models.MaintenanceWindow{
			Title:       req.Title,
			Description: req.Description,
			StartsAt:    req.StartsAt.UTC(),
			EndsAt:      req.EndsAt.UTC(),
		}

		if err := db.Create(&window).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to create maintenance window")
			return
		}

		respondJSON(w, http.StatusCreated, window)
	}
}

// HandleDeleteMaintenance removes a maintenance window by ID
func HandleDeleteMaintenance(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid maintenance window ID")
			return
		}

		result := db.Delete(&models.MaintenanceWindow{}, "id = ?", id)
		if result.Error != nil {
			respondError(w, http.StatusInternalServerError, "Failed to delete maintenance window")
			return
		}
		if result.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "Maintenance window not found")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
