package models

import (
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "gherkin", input: "gherkin", want: ModeGherkin},
		{name: "traditional", input: "traditional", want: ModeTraditional},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "cucumber", wantErr: true},
		{name: "case sensitive", input: "Gherkin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestImageUploadMIMEType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{ext: "jpg", want: "image/jpeg"},
		{ext: "jpeg", want: "image/jpeg"},
		{ext: "png", want: "image/png"},
		{ext: "webp", want: "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			u := ImageUpload{Ext: tt.ext}
			if got := u.MIMEType(); got != tt.want {
				t.Errorf("MIMEType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageUploadDataURLKeepsRawExtension(t *testing.T) {
	u := ImageUpload{Name: "screen.jpg", Ext: "jpg", Base64: "aGVsbG8="}

	if got, want := u.DataURL(), "data:image/jpg;base64,aGVsbG8="; got != want {
		t.Errorf("DataURL() = %q, want %q", got, want)
	}
	// The normalized form is only used for classification.
	if got := u.MIMEType(); got != "image/jpeg" {
		t.Errorf("MIMEType() = %q, want %q", got, "image/jpeg")
	}
}

func TestGenerateRequestValidate(t *testing.T) {
	valid := GenerateRequest{
		Mode:   ModeGherkin,
		Images: []ImageUpload{{Name: "a.png", Ext: "png", Base64: "aGk="}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	noImages := GenerateRequest{Mode: ModeTraditional}
	if err := noImages.Validate(); err == nil {
		t.Fatal("Validate() expected error for empty images")
	} else if !strings.Contains(err.Error(), "image") {
		t.Errorf("Validate() error %q should mention images", err)
	}

	badMode := GenerateRequest{
		Mode:   "freeform",
		Images: valid.Images,
	}
	if err := badMode.Validate(); err == nil {
		t.Fatal("Validate() expected error for invalid mode")
	}
}
