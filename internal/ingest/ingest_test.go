package ingest

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

type uploadFile struct {
	name string
	data []byte
}

func multipartHeaders(t *testing.T, files []uploadFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := mw.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(f.data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	mw.Close()

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images"]
}

func TestFilesEncodesInOrder(t *testing.T) {
	files := []uploadFile{
		{name: "first.png", data: []byte("png-bytes")},
		{name: "second.JPG", data: []byte("jpg-bytes")},
		{name: "third.webp", data: []byte("webp-bytes")},
	}

	uploads, err := Files(multipartHeaders(t, files))
	if err != nil {
		t.Fatalf("Files() unexpected error: %v", err)
	}
	if len(uploads) != len(files) {
		t.Fatalf("got %d uploads, want %d", len(uploads), len(files))
	}

	wantExts := []string{"png", "jpg", "webp"}
	for i, f := range files {
		if uploads[i].Name != f.name {
			t.Errorf("upload %d name = %q, want %q (input order)", i, uploads[i].Name, f.name)
		}
		if uploads[i].Ext != wantExts[i] {
			t.Errorf("upload %d ext = %q, want lowercased %q", i, uploads[i].Ext, wantExts[i])
		}
		if want := base64.StdEncoding.EncodeToString(f.data); uploads[i].Base64 != want {
			t.Errorf("upload %d base64 = %q, want %q", i, uploads[i].Base64, want)
		}
	}
}

func TestFilesMissingExtensionNamesFile(t *testing.T) {
	headers := multipartHeaders(t, []uploadFile{
		{name: "ok.png", data: []byte("fine")},
		{name: "noext", data: []byte("nope")},
	})

	uploads, err := Files(headers)
	if err == nil {
		t.Fatal("Files() expected error for an extension-less file")
	}
	if !strings.Contains(err.Error(), "noext") {
		t.Errorf("error %q should name the offending file", err)
	}
	if uploads != nil {
		t.Error("a failing batch must not return partial results")
	}
}

func TestFilesCorruptPDFAbortsBatch(t *testing.T) {
	headers := multipartHeaders(t, []uploadFile{
		{name: "ok.png", data: []byte("fine")},
		{name: "broken.pdf", data: []byte("not a pdf at all")},
		{name: "never-reached.png", data: []byte("fine too")},
	})

	uploads, err := Files(headers)
	if err == nil {
		t.Fatal("Files() expected error for an unrenderable PDF")
	}
	if !strings.Contains(err.Error(), "broken.pdf") {
		t.Errorf("error %q should name the offending file", err)
	}
	if uploads != nil {
		t.Error("a failing batch must not return partial results")
	}
}

// histogramCount reads the sample count of one labelled series from the
// process-wide registry.
func histogramCount(t *testing.T, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] == lp.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func TestFilesRecordsDurationForFailedPreprocess(t *testing.T) {
	const histogram = "gateway_upload_preprocess_duration_seconds"
	labels := map[string]string{"status": "error", "format": "pdf"}

	before := histogramCount(t, histogram, labels)

	_, err := Files(multipartHeaders(t, []uploadFile{
		{name: "broken.pdf", data: []byte("not a pdf at all")},
	}))
	if err == nil {
		t.Fatal("Files() expected error for an unrenderable PDF")
	}

	after := histogramCount(t, histogram, labels)
	if after != before+1 {
		t.Errorf("error duration samples = %d, want %d: failed preprocesses must be timed too", after, before+1)
	}
}

func TestEncodeReaderRewinds(t *testing.T) {
	payload := []byte("same bytes twice")
	r := bytes.NewReader(payload)

	encoded, err := EncodeReader(r)
	if err != nil {
		t.Fatalf("EncodeReader() unexpected error: %v", err)
	}
	if want := base64.StdEncoding.EncodeToString(payload); encoded != want {
		t.Errorf("EncodeReader() = %q, want %q", encoded, want)
	}

	again, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if !bytes.Equal(again, payload) {
		t.Errorf("second read = %q, want the full payload after rewind", again)
	}
}
