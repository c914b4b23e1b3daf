package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printhub/internal/http/middleware"
	"printhub/internal/model"
	"printhub/internal/service"
)

func authID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.AuthIDLocalKey).(string)
	return id
}

// UploadDocument accepts multipart/form-data with either a "file" part or an
// "external_url" field, plus the target "printer_id".
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		printerID := c.FormValue("printer_id")
		if _, err := uuid.Parse(printerID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid printer id")
		}

		in := service.UploadInput{
			OwnerID:     authID(c),
			TargetID:    printerID,
			ExternalURL: c.FormValue("external_url"),
			FileName:    c.FormValue("file_name"),
		}

		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			in.Reader = f
			in.FileName = fh.Filename
			in.ContentType = ct
			in.Size = fh.Size
		} else if in.ExternalURL == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_STORAGE_REF", "either a file or an external URL is required")
		}
		if in.FileName == "" {
			return writeError(c, fiber.StatusBadRequest, "FILE_NAME_REQUIRED", "file name is required")
		}

		doc, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListOwnerDocuments returns the authenticated user's sent documents.
func ListOwnerDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.ListByOwner(c.UserContext(), authID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// ListPrinterDocuments returns the authenticated printer's received documents.
func ListPrinterDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.ListByTarget(c.UserContext(), authID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// GetDocument returns a document's metadata by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams a document's bytes, or redirects when the
// document only carries an external URL.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		dl, err := svc.OpenFile(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if dl.Body == nil {
			return c.Redirect(dl.Doc.ExternalURL, fiber.StatusFound)
		}

		ct := dl.Info.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dl.Doc.FileName))
		return c.SendStream(dl.Body, int(dl.Info.Size))
	}
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

// UpdateDocumentStatus writes the requested status. Moving to Printed has
// the documented cascade: the response then reports the document as deleted.
func UpdateDocumentStatus(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		doc, deleted, err := svc.SetStatus(c.UserContext(), id, req.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		if deleted {
			return c.JSON(fiber.Map{"deleted": true, "id": id})
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document and its file.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
