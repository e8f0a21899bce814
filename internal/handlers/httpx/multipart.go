package httpx

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/service/reportservice"
)

const (
	MaxUploadBytes = 20 << 20
	formMemory     = 8 << 20
)

// ParseForm reads a multipart body of at most MaxUploadBytes.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ReadPhotos loads every file sent under field. Type and size checks are left
// to the file storage.
func ReadPhotos(r *http.Request, field string) ([]reportservice.Photo, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	photos := make([]reportservice.Photo, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
		}
		photos = append(photos, reportservice.Photo{
			Data:        data,
			ContentType: fh.Header.Get("Content-Type"),
			Filename:    fh.Filename,
		})
	}
	return photos, nil
}

// FormContent collects the free-text report fields of a parsed form.
func FormContent(r *http.Request) reportservice.Content {
	return reportservice.Content{
		Title:        r.FormValue("title"),
		SpeciesName:  r.FormValue("species_name"),
		Description:  r.FormValue("description"),
		LocationText: r.FormValue("location_text"),
	}
}

// FormList returns the non-blank values of a repeated field.
func FormList(r *http.Request, field string) []string {
	var out []string
	if r.MultipartForm == nil {
		return out
	}
	for _, v := range r.MultipartForm.Value[field] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
