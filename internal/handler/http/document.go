package http

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyDocuments(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	documentService document.DocumentService
}

func NewDocumentHandler(documentService document.DocumentService) DocumentHandler {
	return &documentHandlerImpl{documentService: documentService}
}

func (h *documentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.uploadFile(w, r, p)
		return
	}

	var req document.UploadDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.documentService.UploadDocument(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded successfully", resp)
}

// uploadFile handles multipart uploads: fields name, type, optional employee_id and the file part "file".
func (h *documentHandlerImpl) uploadFile(w http.ResponseWriter, r *http.Request, p user.Principal) {
	r.Body = http.MaxBytesReader(w, r.Body, file.MaxDocumentSize+(1<<20))
	if err := r.ParseMultipartForm(file.MaxDocumentSize); err != nil {
		slog.Debug("failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, document.ErrFileRequired)
			return
		}
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer f.Close()

	req := document.UploadDocumentFileRequest{
		Name:     r.FormValue("name"),
		Type:     r.FormValue("type"),
		Filename: fileHeader.Filename,
	}
	if v := r.FormValue("employee_id"); v != "" {
		req.EmployeeID = &v
	}

	resp, err := h.documentService.UploadDocumentFile(r.Context(), p, req, f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded successfully", resp)
}

// Download streams a stored file. Route: /files/documents/{employeeID}/{name}.
func (h *documentHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")

	rc, err := h.documentService.OpenDocumentFile(r.Context(), p, employeeID, name)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if err := response.Attachment(w, contentType, name, -1, rc); err != nil {
		slog.Warn("document download interrupted", "employee_id", employeeID, "name", name, "error", err)
	}
}

func (h *documentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}

	filter := document.DocumentFilter{
		Params:     params,
		EmployeeID: queryString(r, "employee_id"),
		Type:       queryString(r, "type"),
	}

	resp, err := h.documentService.ListDocuments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *documentHandlerImpl) GetMyDocuments(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	filter := document.DocumentFilter{Params: params, Type: queryString(r, "type")}

	resp, err := h.documentService.GetMyDocuments(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *documentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), id, p); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted successfully", nil)
}
