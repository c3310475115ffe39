package cv

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var ErrUnsupportedType = errors.New("unsupported file type")

const (
	MIMEPlain = "text/plain"
	MIMEPDF   = "application/pdf"
	MIMEDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractText returns the readable text of a CV. Parameters on the media
// type, like charset, are ignored.
func ExtractText(mediaType string, data []byte) (string, error) {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}

	switch mediaType {
	case MIMEPlain:
		return string(data), nil
	case MIMEPDF:
		return extractPDF(data)
	case MIMEDocx:
		return extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
