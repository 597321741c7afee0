package http

import (
	"net/http"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/service"
)

const maxUploadMemory = 32 << 20 // 32 MB held in memory, rest spills to disk

type PhotoHandler struct {
	photos service.PhotoService
}

func NewPhotoHandler(photos service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload accepts a multipart batch under the "photos" field. Files succeed or
// fail individually; a mixed outcome returns 207 with per-file results.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, domain.NewValidationError("invalid multipart form"))
		return
	}

	rentalID := r.FormValue("rental_id")
	fileHeaders := r.MultipartForm.File["photos"]

	uploads := make([]service.PhotoUpload, 0, len(fileHeaders))
	opened := make([]interface{ Close() error }, 0, len(fileHeaders))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			writeError(w, domain.NewValidationError("unreadable file in upload"))
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, service.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}

	results, err := h.photos.UploadPhotos(r.Context(), rentalID, uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	for _, res := range results {
		if !res.OK {
			status = http.StatusMultiStatus
			break
		}
	}
	writeJSON(w, status, map[string]interface{}{"results": results})
}

func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	urls, err := h.photos.ListPhotos(r.Context(), r.URL.Query().Get("rental_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"photos": urls})
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.photos.DeletePhoto(r.Context(), q.Get("rental_id"), q.Get("filename")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
