package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nysc-services/internal/middleware"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/document"
)

type DocumentHandler struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Could not read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")

	doc, err := h.documentService.Upload(c.Context(), fileHeader.Filename, fileHeader.Size, mimeType, file)
	if err != nil {
		if errors.Is(err, document.ErrFileTooLarge) || errors.Is(err, document.ErrInvalidFileType) {
			return middleware.UnprocessableEntity(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// Download streams a stored letter to the reviewing admin.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	doc, reader, err := h.documentService.Download(c.Context(), docID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	c.Set("Content-Type", doc.MimeType)
	c.Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	return c.SendStream(reader)
}
