package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"refinery/internal/export"
	"refinery/internal/service"
)

// RefinementHandler handles requirement refinement endpoints.
type RefinementHandler struct {
	refinementService service.RefinementService
}

// NewRefinementHandler creates a new RefinementHandler.
func NewRefinementHandler(refinementService service.RefinementService) *RefinementHandler {
	return &RefinementHandler{refinementService: refinementService}
}

// Create handles POST /api/v1/refinements
// @Summary      Refine a requirement submission
// @Description  Accepts free text or an uploaded file, runs the refinement pipeline, and returns the structured breakdown
// @Tags         refinements
// @Accept       multipart/form-data
// @Produce      json
// @Param        text form string false "Requirement text (ignored when a file is attached)"
// @Param        source_type form string false "Source hint: text, image, document, video"
// @Param        file formData file false "File to analyze (txt, md, pdf, docx, png, jpg, jpeg, gif, bmp, mp4, avi, mov)"
// @Success      201 {object} APIResponse{data=domain.Refinement}
// @Failure      400 {object} APIResponse "Invalid request or rejected input"
// @Failure      413 {object} APIResponse "File too large"
// @Router       /refinements [post]
func (h *RefinementHandler) Create(c *gin.Context) {
	in := service.RefineInput{
		Text:       c.PostForm("text"),
		SourceType: c.PostForm("source_type"),
	}

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()
		in.File = file
		in.Header = header
	} else if in.Text == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "either text or a file is required")
		return
	}

	rec, err := h.refinementService.Refine(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rec)
}

// GetByID handles GET /api/v1/refinements/:id
// @Summary      Get refinement by ID
// @Description  Get a stored refinement including its structured output
// @Tags         refinements
// @Produce      json
// @Param        id path string true "Refinement ID (UUID)"
// @Success      200 {object} APIResponse{data=domain.Refinement}
// @Failure      400 {object} APIResponse "Invalid ID"
// @Failure      404 {object} APIResponse "Refinement not found"
// @Router       /refinements/{id} [get]
func (h *RefinementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid refinement ID")
		return
	}

	rec, err := h.refinementService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// List handles GET /api/v1/refinements
// @Summary      List refinements
// @Description  List stored refinements, newest first
// @Tags         refinements
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit (max 100)" default(20)
// @Success      200 {object} APIResponse{data=[]domain.Refinement,meta=PagMeta}
// @Failure      500 {object} APIResponse
// @Router       /refinements [get]
func (h *RefinementHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recs, total, err := h.refinementService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/refinements/export
// @Summary      Export refinements
// @Description  Download stored refinements as CSV or XLSX
// @Tags         refinements
// @Produce      text/csv
// @Param        format query string false "Export format: csv or xlsx" default(csv)
// @Success      200 {file} file
// @Failure      400 {object} APIResponse "Unknown format"
// @Failure      500 {object} APIResponse
// @Router       /refinements/export [get]
func (h *RefinementHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be 'csv' or 'xlsx'")
		return
	}

	recs, err := h.refinementService.ListForExport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("refinements_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, recs); err != nil {
			log.Printf("refinementHandler.Export: writing xlsx: %v", err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRefinements(recs); err != nil {
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("refinementHandler.Export: flushing csv: %v", err)
	}
}
