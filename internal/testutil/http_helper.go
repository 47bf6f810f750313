// Package testutil provides utility functions for testing HTTP handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/gin-gonic/gin"
)

// MakeJSONRequest is a helper function for making JSON requests in tests
func MakeJSONRequest(body gin.H, authToken string, r *gin.Engine, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(method, endpoint, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+authToken)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// FileUpload describes one file part of a multipart request.
type FileUpload struct {
	FieldName string
	FileName  string
	MimeType  string
	Content   []byte
}

// MakeMultipartRequest posts form fields plus an optional file, the way the
// application form submits.
func MakeMultipartRequest(fields map[string]string, file *FileUpload, r *gin.Engine, endpoint string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+file.FieldName+`"; filename="`+file.FileName+`"`)
		header.Set("Content-Type", file.MimeType)
		part, _ := writer.CreatePart(header)
		_, _ = part.Write(file.Content)
	}
	_ = writer.Close()

	req, _ := http.NewRequest(http.MethodPost, endpoint, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// StringPtr is a helper function to get a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Repeat builds a payload of n bytes for size-limit tests.
func Repeat(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

// PDFStub returns bytes that start like a real PDF file.
func PDFStub(size int) []byte {
	head := "%PDF-1.4\n"
	if size < len(head) {
		return []byte(head[:size])
	}
	return append([]byte(head), Repeat('a', size-len(head))...)
}
