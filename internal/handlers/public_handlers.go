package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// PublicHandlers serves the unauthenticated application form endpoints
// behind /v1/apply/:linkID.
type PublicHandlers struct {
	programSvc     services.ProgramService
	formSvc        services.FormService
	applicationSvc services.ApplicationService
	cacheSvc       caching.CacheService
}

// NewPublicHandlers creates a new public handlers instance
func NewPublicHandlers(programSvc services.ProgramService, formSvc services.FormService, applicationSvc services.ApplicationService, cacheSvc caching.CacheService) *PublicHandlers {
	return &PublicHandlers{
		programSvc:     programSvc,
		formSvc:        formSvc,
		applicationSvc: applicationSvc,
		cacheSvc:       cacheSvc,
	}
}

// GetForm resolves an application link to the program and its active form
// schema. The response contains only what the public renderer needs.
func (h *PublicHandlers) GetForm(c echo.Context) error {
	ctx := c.Request().Context()
	linkID := c.Param("linkID")

	program, err := h.programSvc.GetByLinkID(ctx, linkID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Application link not found")
	}

	form, err := h.formSvc.GetActiveForm(ctx, program.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "No active application form")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"program": map[string]interface{}{
			"id":                   program.ID,
			"name":                 program.Name,
			"description":          program.Description,
			"application_deadline": program.ApplicationDeadline,
		},
		"fields": form.Fields,
	})
}

// Submit accepts a public application as multipart form data: an
// "application" JSON part plus one file part per upload field.
func (h *PublicHandlers) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	linkID := c.Param("linkID")

	// Per-IP limit keeps a single client from flooding the public form.
	limited, err := h.cacheSvc.IsRateLimited(ctx, "apply:"+c.RealIP(), 10, time.Hour)
	if err == nil && limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many submissions, try again later")
	}

	payload := c.FormValue("application")
	if payload == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "application payload is required")
	}

	var body struct {
		FullName         string         `json:"full_name"`
		Email            string         `json:"email"`
		MobileNumber     string         `json:"mobile_number"`
		BusinessName     string         `json:"business_name"`
		BusinessCategory string         `json:"business_category"`
		BusinessLocation string         `json:"business_location"`
		BusinessType     string         `json:"business_type"`
		Values           map[string]any `json:"values"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid application payload")
	}

	req := &services.PublicSubmissionRequest{
		LinkID:           linkID,
		FullName:         body.FullName,
		Email:            body.Email,
		MobileNumber:     body.MobileNumber,
		BusinessName:     body.BusinessName,
		BusinessCategory: body.BusinessCategory,
		BusinessLocation: body.BusinessLocation,
		BusinessType:     body.BusinessType,
		Values:           body.Values,
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for fieldID, fileHeaders := range form.File {
			for _, fileHeader := range fileHeaders {
				file, err := fileHeader.Open()
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload "+fileHeader.Filename)
				}
				defer file.Close()
				req.Uploads = append(req.Uploads, services.PublicUpload{
					FieldID:     fieldID,
					FileName:    fileHeader.Filename,
					ContentType: fileHeader.Header.Get("Content-Type"),
					Size:        fileHeader.Size,
					Reader:      file,
				})
			}
		}
	}

	application, err := h.applicationSvc.SubmitPublic(ctx, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"application_id": application.ID,
		"status":         application.Status,
		"submitted_at":   application.SubmittedAt,
	})
}
