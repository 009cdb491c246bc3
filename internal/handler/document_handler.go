package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	docs := router.Group("/api/vendors/:id/documents")
	{
		docs.GET("", middleware.RequirePermission(model.PermissionView), h.ListDocuments)
		docs.POST("", middleware.RequirePermission(model.PermissionCreate), h.AddDocument)
		docs.DELETE("/:docID", middleware.RequirePermission(model.PermissionDelete), h.DeleteDocument)
	}
}

// ListDocuments returns document metadata for a vendor
// @Summary      List vendor documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Vendor ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vendors/{id}/documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	vendorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), vendorID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}

// AddDocument records document metadata for a vendor. File bytes are
// stored elsewhere; only the path and descriptive metadata are tracked.
// @Summary      Add vendor document metadata
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                            true  "Vendor ID"
// @Param        payload  body  service.CreateDocumentRequest  true  "Document metadata"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vendors/{id}/documents [post]
func (h *DocumentHandler) AddDocument(c *gin.Context) {
	vendorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	var uploadedBy *uint
	if user, ok := middleware.CurrentUser(c); ok {
		uploadedBy = &user.ID
	}

	doc, err := h.documentService.AddDocument(c.Request.Context(), vendorID, uploadedBy, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// DeleteDocument removes document metadata from a vendor
// @Summary      Delete vendor document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id     path  int  true  "Vendor ID"
// @Param        docID  path  int  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vendors/{id}/documents/{docID} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	vendorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	docID, ok := parseUintParam(c, "docID")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), vendorID, docID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Document deleted successfully"}))
}
