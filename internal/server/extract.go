package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/extract"
	"github.com/sells-group/procure-cli/internal/ingest"
)

// handleExtract serves POST /api/extract: multipart field "file" with the
// PDF, optional "mode" (formal|history) and "dry_run".
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	mode, err := ingest.ParseMode(r.FormValue("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var dryRun bool
	if v := r.FormValue("dry_run"); v != "" {
		if dryRun, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "dry_run must be a boolean")
			return
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	res, err := s.ingester.Ingest(r.Context(), extract.Document{
		Name:     header.Filename,
		Data:     data,
		MIMEType: header.Header.Get("Content-Type"),
	}, mode, dryRun)
	if err != nil {
		switch {
		case eris.Is(err, extract.ErrInvalidDocument):
			writeError(w, http.StatusBadRequest, err.Error())
		case eris.Is(err, ingest.ErrUnsupportedDocument):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	status := http.StatusCreated
	if dryRun {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}
