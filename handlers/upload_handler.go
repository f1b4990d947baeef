package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

// запас на заголовки multipart сверх самого файла
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(us services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// Upload godoc
// @Summary Загрузка файла
// @Tags upload
// @Description Принимает изображение (jpg, png, gif, webp) до 10 МБ в поле file и возвращает публичный URL
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение"
// @Success 201 {object} map[string]string "url"
// @Failure 400 {object} map[string]string "no file uploaded / unsupported file type / file is too large"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 500 {object} map[string]string "storage failure"
// @Security BearerAuth
// @Router /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(services.MaxUploadSize); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			mapServiceErrorToHTTP(w, r, services.ErrUploadTooLarge)
			return
		}
		mapServiceErrorToHTTP(w, r, services.ErrUploadMissingFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		mapServiceErrorToHTTP(w, r, services.ErrUploadMissingFile)
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(r.Context(), session, header.Filename, header.Size, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
