package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack/internal/model"
	"jobtrack/internal/tracker"
)

type handlers struct {
	runner  *tracker.Runner
	version string
	logger  *slog.Logger
}

type checkSummary struct {
	TotalJobsFetched int `json:"total_jobs_fetched"`
	NewJobsFound     int `json:"new_jobs_found"`
	CompaniesChecked int `json:"companies_checked"`
}

type checkResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Summary   checkSummary    `json:"summary"`
	NewJobs   []model.Posting `json:"new_jobs"`
}

type statsBody struct {
	TotalJobsSeen int    `json:"total_jobs_seen"`
	StorageFile   string `json:"storage_file"`
}

type statsResponse struct {
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
	Stats     statsBody `json:"stats"`
}

type errorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (h *handlers) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"service":   "jobtrack",
		"version":   h.version,
		"timestamp": timestamp(),
		"endpoints": gin.H{
			"/":        "service status",
			"/check":   "run a tracking cycle and report new postings",
			"/stats":   "seen-store statistics",
			"/metrics": "prometheus metrics",
		},
	})
}

// check runs one full cycle synchronously and reports the outcome.
func (h *handlers) check(c *gin.Context) {
	result, err := h.runner.RunCycle(c.Request.Context())
	if err != nil {
		h.logger.Error("check failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Status:    "error",
			Message:   err.Error(),
			Timestamp: timestamp(),
		})
		return
	}

	companies := make(map[string]struct{})
	for _, p := range result.All {
		companies[p.Company] = struct{}{}
	}

	// Marshal an empty array, never null.
	newJobs := result.New
	if newJobs == nil {
		newJobs = []model.Posting{}
	}

	c.JSON(http.StatusOK, checkResponse{
		Status:    "success",
		Timestamp: timestamp(),
		Summary: checkSummary{
			TotalJobsFetched: len(result.All),
			NewJobsFound:     len(result.New),
			CompaniesChecked: len(companies),
		},
		NewJobs: newJobs,
	})
}

func (h *handlers) stats(c *gin.Context) {
	stats, err := h.runner.Stats()
	if err != nil {
		h.logger.Error("stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Status:    "error",
			Message:   err.Error(),
			Timestamp: timestamp(),
		})
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		Status:    "success",
		Timestamp: timestamp(),
		Stats: statsBody{
			TotalJobsSeen: stats.TotalSeen,
			StorageFile:   stats.Backend,
		},
	})
}
