package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/qaops/testcase-gateway/internal/metrics"
	"github.com/qaops/testcase-gateway/internal/models"
)

const formatPDF = "pdf"

// Files turns the uploaded multipart files into base64 image descriptors,
// preserving input order. A PDF upload expands into one descriptor per
// rendered page, inserted at the PDF's position. The first failure aborts
// the whole batch; the returned error names the offending file.
func Files(headers []*multipart.FileHeader) ([]models.ImageUpload, error) {
	uploads := make([]models.ImageUpload, 0, len(headers))

	for _, fh := range headers {
		start := time.Now()

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
		if ext == "" {
			metrics.UploadPreprocessTotal("error", "unknown")
			metrics.UploadPreprocessDuration("error", "unknown", time.Since(start))
			return nil, fmt.Errorf("file %q has no extension", fh.Filename)
		}

		f, err := fh.Open()
		if err != nil {
			metrics.UploadPreprocessTotal("error", ext)
			metrics.UploadPreprocessDuration("error", ext, time.Since(start))
			return nil, fmt.Errorf("failed to open file %q: %w", fh.Filename, err)
		}

		var pageUploads []models.ImageUpload
		if ext == formatPDF {
			pageUploads, err = renderPDF(f, fh.Filename)
		} else {
			var encoded string
			encoded, err = EncodeReader(f)
			pageUploads = []models.ImageUpload{{
				Name:   fh.Filename,
				Ext:    ext,
				Base64: encoded,
			}}
		}
		f.Close()

		if err != nil {
			metrics.UploadPreprocessTotal("error", ext)
			metrics.UploadPreprocessDuration("error", ext, time.Since(start))
			return nil, fmt.Errorf("failed to read file %q: %w", fh.Filename, err)
		}

		metrics.UploadPreprocessTotal("ok", ext)
		metrics.UploadPreprocessDuration("ok", ext, time.Since(start))
		uploads = append(uploads, pageUploads...)
	}

	return uploads, nil
}

// EncodeReader reads the whole stream, base64-encodes it and rewinds the
// cursor so the same upload can be read again.
func EncodeReader(rs io.ReadSeeker) (string, error) {
	data, err := io.ReadAll(rs)
	if err != nil {
		return "", err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// renderPDF rasterizes every page into a PNG descriptor, in page order.
func renderPDF(rs io.ReadSeeker, name string) ([]models.ImageUpload, error) {
	data, err := io.ReadAll(rs)
	if err != nil {
		return nil, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	uploads := make([]models.ImageUpload, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", n+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", n+1, err)
		}

		uploads = append(uploads, models.ImageUpload{
			Name:   fmt.Sprintf("%s#page-%d", name, n+1),
			Ext:    "png",
			Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		})
	}
	return uploads, nil
}
