package handlers

import (
	"net/http"

	"github.com/remotehire/remotehire-backend/pkg/utils"
)

// maxUploadSize caps direct uploads at 100 MB, large enough for recorded
// video answers.
const maxUploadSize = 100 << 20

// UploadFile streams one multipart file to the configured storage backend
// and returns its object key and URL.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if uploadProvider == nil {
		utils.WriteError(w, http.StatusInternalServerError, "file storage not available")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	key, url, err := uploadProvider.Upload(r.Context(), file, header)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "file uploaded successfully", map[string]string{
		"fileName": key,
		"url":      url,
	})
}
