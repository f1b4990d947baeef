package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type PhotoHandler struct {
	photoService services.PhotoService
}

func NewPhotoHandler(ps services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: ps}
}

// ListPhotos godoc
// @Summary Галерея команды
// @Tags photos
// @Produce json
// @Success 200 {array} models.Photo
// @Security BearerAuth
// @Router /photos [get]
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, photos, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddPhoto godoc
// @Summary Добавление фото
// @Tags photos
// @Description Только капитан. url обычно получен из /upload.
// @Accept json
// @Produce json
// @Param input body services.CreatePhotoInput true "URL и описание"
// @Success 201 {object} models.Photo
// @Failure 400 {object} map[string]string "validation error"
// @Failure 403 {object} map[string]string "forbidden"
// @Security BearerAuth
// @Router /photos [post]
func (h *PhotoHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreatePhotoInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	photo, err := h.photoService.Add(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, photo, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePhoto godoc
// @Summary Удаление фото
// @Tags photos
// @Produce json
// @Param photoID path int true "ID фото"
// @Success 200 {object} map[string]string "message"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "photo not found"
// @Security BearerAuth
// @Router /photos/{photoID} [delete]
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	photoID, err := getIDFromURL(r, "photoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.photoService.Delete(r.Context(), session, photoID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "photo deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
