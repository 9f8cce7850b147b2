package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/report"
	"github.com/hmshaban/jard-backend/internal/service"
	"github.com/hmshaban/jard-backend/internal/workbook"
)

// maxUploadBytes bounds workbook uploads (50 MiB).
const maxUploadBytes = 50 << 20

type ReconHandler struct {
	manager *service.RunManager
}

func NewReconHandler(manager *service.RunManager) *ReconHandler {
	return &ReconHandler{manager: manager}
}

// UploadWorkbook accepts an xlsx upload, parses it and starts a run.
func (h *ReconHandler) UploadWorkbook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q, expected .xlsx", ext))
		return
	}

	input, err := workbook.Parse(file)
	if err != nil {
		var missing *engine.MissingDataError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   missing.Error(),
				"sheet":   missing.Sheet,
				"columns": missing.Columns,
			})
			return
		}
		errorResponse(c, http.StatusBadRequest, "could not read workbook: "+err.Error())
		return
	}

	runID, err := h.manager.StartRun(c.Request.Context(), input, header.Filename)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "could not start run: "+err.Error())
		return
	}

	log.Info().Str("run_id", runID).Str("file", header.Filename).Msg("run started")
	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

// GetRun reports the live status of one run.
func (h *ReconHandler) GetRun(c *gin.Context) {
	state, err := h.manager.State(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, "run not found")
		return
	}
	c.JSON(http.StatusOK, state)
}

// ListRuns returns tracked runs, newest first.
func (h *ReconHandler) ListRuns(c *gin.Context) {
	states := h.manager.States()
	if limit := parseLimit(c, 0); limit > 0 && limit < len(states) {
		states = states[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"runs": states})
}

// CancelRun requests a cooperative stop.
func (h *ReconHandler) CancelRun(c *gin.Context) {
	if err := h.manager.Cancel(c.Param("id")); err != nil {
		errorResponse(c, http.StatusNotFound, "run not found")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "cancelling"})
}

// ListReports names the report tables of a completed run.
func (h *ReconHandler) ListReports(c *gin.Context) {
	state, err := h.manager.State(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, "run not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":  state.ID,
		"status":  state.Status,
		"reports": report.Names(),
	})
}

// GetReport returns one rendered report table.
func (h *ReconHandler) GetReport(c *gin.Context) {
	table, err := h.manager.ReportTable(c.Request.Context(), c.Param("id"), c.Param("name"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, table)
	case errors.Is(err, service.ErrRunNotFound):
		errorResponse(c, http.StatusNotFound, "run not found")
	case errors.Is(err, service.ErrUnknownReport):
		errorResponse(c, http.StatusNotFound, "unknown report")
	case errors.Is(err, service.ErrRunNotFinished):
		errorResponse(c, http.StatusConflict, "run has not completed")
	default:
		errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// GetWarnings returns the coercion warnings of a completed run.
func (h *ReconHandler) GetWarnings(c *gin.Context) {
	result, err := h.manager.Result(c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"warnings":  result.Warnings,
			"total":     result.Stats.WarningCount,
			"truncated": result.Stats.WarningsTruncated,
		})
	case errors.Is(err, service.ErrRunNotFound):
		errorResponse(c, http.StatusNotFound, "run not found")
	case errors.Is(err, service.ErrRunNotFinished):
		errorResponse(c, http.StatusConflict, "run has not completed")
	default:
		errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// ExportWorkbook streams the full report workbook as an attachment.
func (h *ReconHandler) ExportWorkbook(c *gin.Context) {
	id := c.Param("id")
	state, err := h.manager.State(id)
	if err != nil {
		errorResponse(c, http.StatusNotFound, "run not found")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="jard-`+state.ID+`.xlsx"`)
	if err := h.manager.Export(id, c.Writer); err != nil {
		if errors.Is(err, service.ErrRunNotFinished) {
			errorResponse(c, http.StatusConflict, "run has not completed")
			return
		}
		log.Error().Err(err).Str("run_id", id).Msg("export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

// parseLimit reads an optional positive ?limit= query parameter.
func parseLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
