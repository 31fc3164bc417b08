package convert

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ajb0730/pc2xl/pkg/export"
	"github.com/ajb0730/pc2xl/pkg/services/report"
	"github.com/rs/zerolog"
)

// Uploaded reports are line-printer output; anything past a few megabytes
// is not one.
const maxUploadBytes = 8 << 20

type Handler struct {
	defaults export.Options
}

func NewHandler(defaults export.Options) *Handler {
	return &Handler{defaults: defaults}
}

// Convert accepts a raw report as the request body (or a multipart "file"
// field) and responds with the delimited rows. Prefix and separator may be
// overridden per request through query parameters.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	body, err := readReport(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := h.defaults
	if p := r.URL.Query().Get("prefix"); p != "" {
		opts.Prefix = p
	}
	if s := r.URL.Query().Get("separator"); s != "" {
		opts.Separator = s
	}

	doc, err := report.Assemble(ctx, report.NewLineBuffer(body))
	if err != nil {
		logger.Warn().Err(err).Msg("rejected unparseable report")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if err := export.NewReporter(w, opts).Handle(doc); err != nil {
		logger.Error().Err(err).Msg("failed to write converted report")
	}
}

func readReport(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", fmt.Errorf("failed to parse multipart form: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	return string(data), nil
}
