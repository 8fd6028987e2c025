package adaptor

import (
	"errors"
	"io"
	"net"
	"net/http"

	"hotel-booking/internal/storage"
	"hotel-booking/pkg/utils"
)

// multipart overhead on top of the file itself
const uploadSlack = 1 << 20

// readImage pulls one file field out of a multipart form. Size and type
// problems answer 422 under the field name.
func readImage(w http.ResponseWriter, r *http.Request, field string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+uploadSlack)
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseUnprocessable(w, "Validation failed", map[string]string{field: storage.ErrFileTooLarge.Error()})
			return nil, false
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return nil, false
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		utils.ResponseUnprocessable(w, "Validation failed", map[string]string{field: "This field is required"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read upload", nil)
		return nil, false
	}
	if len(data) > storage.MaxImageSize {
		utils.ResponseUnprocessable(w, "Validation failed", map[string]string{field: storage.ErrFileTooLarge.Error()})
		return nil, false
	}

	return data, true
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
