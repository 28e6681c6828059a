package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Field is one plain multipart field
type Field struct {
	Name  string
	Value string
}

// File is one file part. Open is called once during encoding and the reader is
// closed afterwards.
type File struct {
	FieldName   string
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Multipart is an ordered multipart/form-data body
type Multipart struct {
	Fields []Field
	Files  []File
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the fields in order followed by the files
func (m Multipart) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.Name, err)
		}
	}

	for _, f := range m.Files {
		if err := writeFile(w, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f File) error {
	if f.Open == nil {
		return fmt.Errorf("file %s has no content", f.Filename)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Filename, err)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.Filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part for %s: %w", f.Filename, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Filename, err)
	}
	return nil
}
