package models

import "fmt"

// Mode selects the test-case output format.
type Mode string

const (
	ModeGherkin     Mode = "gherkin"
	ModeTraditional Mode = "traditional"
)

// ParseMode validates the language_mode form value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGherkin, ModeTraditional:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid language_mode %q: must be %q or %q", s, ModeGherkin, ModeTraditional)
	}
}

// ImageUpload is one uploaded image, already read into memory and
// base64-encoded during ingestion.
type ImageUpload struct {
	Name   string // original filename, kept for error messages
	Ext    string // lowercased extension without the dot
	Base64 string
}

// MIMEType returns the normalized MIME type used for classification:
// "jpg" maps to image/jpeg, everything else to image/<ext>.
func (u ImageUpload) MIMEType() string {
	if u.Ext == "jpg" {
		return "image/jpeg"
	}
	return "image/" + u.Ext
}

// DataURL embeds the payload as a data URL. The prefix uses the raw
// extension, not MIMEType(): a .jpg file yields data:image/jpg;base64,...
// matching the wire format the upstream already accepts.
func (u ImageUpload) DataURL() string {
	return fmt.Sprintf("data:image/%s;base64,%s", u.Ext, u.Base64)
}

// GenerateRequest carries everything the generation stream needs.
type GenerateRequest struct {
	Mode           Mode
	AdditionalInfo string
	Images         []ImageUpload
}

func (r GenerateRequest) Validate() error {
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return err
	}
	if len(r.Images) == 0 {
		return fmt.Errorf("at least one image is required")
	}
	return nil
}

// StreamChunk is one element of a generation stream. Exactly one of the
// terminal conditions (Done, Err) closes a stream; Delta carries text.
type StreamChunk struct {
	Delta string
	Done  bool
	Err   error
}
