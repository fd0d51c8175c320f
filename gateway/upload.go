package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"github.com/pkg/errors"
)

// Upload POSTs a file as a multipart form to the given path. Used for the
// business logo endpoint; the backend owns the actual file storage.
func (c *Client) Upload(ctx context.Context, path, field, filename, contentType string, data io.Reader) (*Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+field+`"; filename="`+filepath.Base(filename)+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] create form part")
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] copy file data")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "[gateway.Upload] close multipart writer")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}
