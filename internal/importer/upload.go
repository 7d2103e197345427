package importer

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/pipelineerror"
)

// Upload is the external entry point for raw file bytes. Non-CSV content
// is rejected by file extension or declared content type before any
// parsing happens, and the bytes must decode as UTF-8 text. On success the
// import report carries the original file name and size.
func (i *Importer) Upload(ctx context.Context, userID, fileName, contentType string, data []byte, source string) (*models.ImportReport, error) {
	if !isCSVContent(fileName, contentType) {
		return nil, &pipelineerror.FileRejectedError{
			FileName: fileName,
			Reason:   "only CSV files are accepted",
		}
	}

	if !utf8.Valid(data) {
		return nil, &pipelineerror.FileRejectedError{
			FileName: fileName,
			Reason:   "file is not valid UTF-8 text",
		}
	}

	if source == "" {
		source = fileName
	}

	report, err := i.Import(ctx, userID, string(data), source)
	if err != nil {
		if rejected, ok := err.(*pipelineerror.FileRejectedError); ok && rejected.FileName == "" {
			rejected.FileName = fileName
		}
		return nil, err
	}

	report.FileName = fileName
	report.FileSize = int64(len(data))
	return report, nil
}

// isCSVContent accepts a file when either the extension or the declared
// content type says CSV. An empty content type defers to the extension.
func isCSVContent(fileName, contentType string) bool {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return true
	}

	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == "text/csv" || mediaType == "application/csv"
}
