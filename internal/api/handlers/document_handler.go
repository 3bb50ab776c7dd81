package handlers

import (
	"io"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/models"
	"rag-iishka-client/internal/service"
	"rag-iishka-client/internal/view"
	"rag-iishka-client/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var uploadTypes = []models.DocumentType{
	models.DocumentTypeReceipt,
	models.DocumentTypeStatement,
	models.DocumentTypeScreenshot,
}

type DocumentHandler struct {
	web        *Web
	docService *service.DocumentService
	limit      int
	logger     *zap.Logger
}

func NewDocumentHandler(web *Web, docService *service.DocumentService, limit int, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		web:        web,
		docService: docService,
		limit:      limit,
		logger:     logger,
	}
}

func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	page := view.DocumentsPage{Types: uploadTypes}

	docs, err := h.docService.List(c.Context(), middleware.SessionID(c), h.limit)
	if err != nil {
		if handled, rerr := h.web.sessionExpired(c, err); handled {
			return rerr
		}
		h.logger.Error("Failed to list documents", zap.Error(err))
		page.Error = h.web.catalog(c).ErrorMessage(err, view.MsgDocumentsFailed)
	}
	page.Documents = docs

	return h.web.render(c, fiber.StatusOK, view.PageDocuments, view.MsgDocumentsTitle, page)
}

func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	cat := h.web.catalog(c)

	req := dto.UploadDocumentRequest{Type: c.FormValue("type")}
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded file", zap.Error(err))
			return h.web.redirect(c, "/documents", view.FlashError, cat.T(view.MsgUploadFailed))
		}
		defer src.Close()

		content, err := io.ReadAll(src)
		if err != nil {
			h.logger.Error("Failed to read uploaded file", zap.Error(err))
			return h.web.redirect(c, "/documents", view.FlashError, cat.T(view.MsgUploadFailed))
		}
		req.FileName = file.Filename
		req.Content = content
	}

	doc, err := h.docService.Upload(c.Context(), middleware.SessionID(c), &req)
	if err != nil {
		if handled, rerr := h.web.sessionExpired(c, err); handled {
			return rerr
		}
		h.logger.Warn("Upload failed", zap.String("file_name", req.FileName), zap.Error(err))
		return h.web.redirect(c, "/documents", view.FlashError, cat.ErrorMessage(err, view.MsgUploadFailed))
	}

	h.logger.Info("Document uploaded", zap.String("document_id", doc.ID))
	msg := cat.T(view.MsgUploadSuccess)
	if h.docService.AutoProcess() {
		msg = cat.T(view.MsgUploadProcessing)
	}
	return h.web.redirect(c, "/documents", view.FlashSuccess, msg)
}

func (h *DocumentHandler) ProcessDocument(c *fiber.Ctx) error {
	cat := h.web.catalog(c)
	documentID := c.Params("id")

	if _, err := h.docService.Process(c.Context(), middleware.SessionID(c), documentID); err != nil {
		if handled, rerr := h.web.sessionExpired(c, err); handled {
			return rerr
		}
		h.logger.Warn("Processing failed", zap.String("document_id", documentID), zap.Error(err))
		return h.web.redirect(c, "/documents", view.FlashError, cat.ErrorMessage(err, view.MsgProcessFailed))
	}

	return h.web.redirect(c, "/documents", view.FlashSuccess, cat.T(view.MsgProcessSuccess))
}

func (h *DocumentHandler) DocumentDetails(c *fiber.Ctx) error {
	cat := h.web.catalog(c)
	documentID := c.Params("id")

	result, err := h.docService.Details(c.Context(), middleware.SessionID(c), documentID)
	if err != nil {
		if handled, rerr := h.web.sessionExpired(c, err); handled {
			return rerr
		}
		return h.web.render(c, fiber.StatusOK, view.PageDetails, view.MsgDetailsTitle, view.DetailsPage{
			DocumentID: documentID,
			Error:      cat.ErrorMessage(err, view.MsgDetailsNotFound),
		})
	}

	return h.web.render(c, fiber.StatusOK, view.PageDetails, view.MsgDetailsTitle, cat.NewDetailsPage(documentID, result))
}

func (h *DocumentHandler) DocumentRecommendations(c *fiber.Ctx) error {
	cat := h.web.catalog(c)
	documentID := c.Params("id")

	recs, err := h.docService.Recommendations(c.Context(), middleware.SessionID(c), documentID)
	if err != nil {
		if handled, rerr := h.web.sessionExpired(c, err); handled {
			return rerr
		}
		return h.web.render(c, fiber.StatusOK, view.PageRecommendations, view.MsgRecsTitle, view.RecommendationsPage{
			DocumentID: documentID,
			Error:      cat.ErrorMessage(err, view.MsgRecsNotFound),
		})
	}

	page := cat.NewRecommendationsPage(documentID, recs)
	return h.web.render(c, fiber.StatusOK, view.PageRecommendations, view.MsgRecsTitle, page)
}
