package handlers

import (
	"fmt"
	"net/http"
	"time"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"
	"bizboost/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RegistrationDocumentsBucket holds wizard document uploads.
const RegistrationDocumentsBucket = "registration-documents"

// RegistrationHandlers handles the registration wizard and the admin review
// endpoints.
type RegistrationHandlers struct {
	registrationSvc services.RegistrationService
	documentRepo    repositories.RegistrationDocumentRepository
	storageSvc      services.StorageService
}

// NewRegistrationHandlers creates a new registration handlers instance
func NewRegistrationHandlers(registrationSvc services.RegistrationService, documentRepo repositories.RegistrationDocumentRepository, storageSvc services.StorageService) *RegistrationHandlers {
	return &RegistrationHandlers{
		registrationSvc: registrationSvc,
		documentRepo:    documentRepo,
		storageSvc:      storageSvc,
	}
}

// SaveDraftStep merges a partial step payload into the stored draft
func (h *RegistrationHandlers) SaveDraftStep(c echo.Context) error {
	draftID := c.Param("draftID")
	step := c.Param("step")
	if draftID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Draft ID is required")
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	draft, err := h.registrationSvc.SaveDraftStep(c.Request().Context(), draftID, step, fields)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, draft)
}

// GetDraft returns the stored draft, or 404 when none exists
func (h *RegistrationHandlers) GetDraft(c echo.Context) error {
	draftID := c.Param("draftID")

	draft, err := h.registrationSvc.GetDraft(c.Request().Context(), draftID)
	if err != nil {
		return common.SendServerError(c, "Failed to load draft")
	}
	if draft == nil {
		return common.SendNotFoundError(c, "Draft")
	}

	return c.JSON(http.StatusOK, draft)
}

// ClearDraft discards the stored draft
func (h *RegistrationHandlers) ClearDraft(c echo.Context) error {
	if err := h.registrationSvc.ClearDraft(c.Request().Context(), c.Param("draftID")); err != nil {
		return common.SendServerError(c, "Failed to clear draft")
	}
	return c.NoContent(http.StatusNoContent)
}

// Submit finalizes the wizard into a pending registration
func (h *RegistrationHandlers) Submit(c echo.Context) error {
	var req services.SubmitRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if userID, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
		req.ApplicantID = userID
	}

	registration, err := h.registrationSvc.Submit(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// The stored draft is cleared best-effort; the registration exists
	// either way.
	if draftID := c.QueryParam("draft_id"); draftID != "" {
		_ = h.registrationSvc.ClearDraft(c.Request().Context(), draftID)
	}

	return c.JSON(http.StatusCreated, registration)
}

// UploadDocument attaches one file to a registration
func (h *RegistrationHandlers) UploadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	registrationID, err := common.ValidateUUID(c.Param("id"), "registration_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	documentType := c.FormValue("document_type")
	if documentType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "document_type is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s/%s-%s", registrationID, documentType, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.storageSvc.UploadDocument(ctx, RegistrationDocumentsBucket, objectName, file, fileHeader.Size, contentType); err != nil {
		return common.SendServerError(c, "Failed to store document")
	}

	document := &models.RegistrationDocument{
		ID:             uuid.New(),
		RegistrationID: registrationID,
		DocumentType:   documentType,
		FileName:       fileHeader.Filename,
		FileURL:        objectName,
	}
	if err := h.documentRepo.Create(ctx, document); err != nil {
		return common.SendServerError(c, "Failed to record document")
	}

	return c.JSON(http.StatusCreated, document)
}

// ListRegistrationsRequest represents query parameters for listing registrations
type ListRegistrationsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// List returns registrations for the admin review queue
func (h *RegistrationHandlers) List(c echo.Context) error {
	var req ListRegistrationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	registrations, err := h.registrationSvc.List(c.Request().Context(), req.Status, req.Limit, req.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"registrations": registrations,
		"limit":         req.Limit,
		"offset":        req.Offset,
	})
}

// Get returns one registration with its documents
func (h *RegistrationHandlers) Get(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "registration_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	registration, err := h.registrationSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Registration")
	}

	return c.JSON(http.StatusOK, registration)
}

// GetByReference looks up a registration by its quoted reference number
func (h *RegistrationHandlers) GetByReference(c echo.Context) error {
	reference := c.Param("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Reference number is required")
	}

	registration, err := h.registrationSvc.GetByReferenceNumber(c.Request().Context(), reference)
	if err != nil {
		return common.SendNotFoundError(c, "Registration")
	}

	return c.JSON(http.StatusOK, registration)
}

// UpdateStatusRequest represents the review decision payload
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateStatus records a review decision on a registration
func (h *RegistrationHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "registration_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.registrationSvc.UpdateStatus(ctx, id, req.Status, reviewerID, req.Notes); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetDocumentURL returns a presigned download link for one document
func (h *RegistrationHandlers) GetDocumentURL(c echo.Context) error {
	ctx := c.Request().Context()

	registrationID, err := common.ValidateUUID(c.Param("id"), "registration_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	documentID, err := common.ValidateUUID(c.Param("documentID"), "document_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	documents, err := h.documentRepo.ListByRegistrationID(ctx, registrationID)
	if err != nil {
		return common.SendServerError(c, "Failed to load documents")
	}
	for _, doc := range documents {
		if doc.ID == documentID {
			url, err := h.storageSvc.GetPresignedURL(ctx, RegistrationDocumentsBucket, doc.FileURL, 15*time.Minute)
			if err != nil {
				return common.SendServerError(c, "Failed to sign download URL")
			}
			return c.JSON(http.StatusOK, map[string]string{"url": url})
		}
	}
	return common.SendNotFoundError(c, "Document")
}
