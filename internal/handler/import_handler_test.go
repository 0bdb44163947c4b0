package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/classkit/scheduler-api/internal/dto"
)

type importerMock struct {
	rosterName string
	rosterBody string
	portalName string
}

func (m *importerMock) ImportRoster(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error) {
	m.rosterName = name
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.rosterBody = string(body)
	return &dto.ImportResponse{CatalogID: "cat-1", Courses: 2, Sections: 3}, nil
}

func (m *importerMock) ImportPortal(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error) {
	m.portalName = name
	return &dto.ImportResponse{CatalogID: "cat-2", Courses: 1, Sections: 1}, nil
}

func multipartUpload(t *testing.T, filename, content, name string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, writer.WriteField("name", name))
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestImportRosterUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &importerMock{}
	handler := &ImportHandler{catalogs: mock, maxUploadBytes: 1024}
	body, contentType := multipartUpload(t, "roster.csv", "A1,,Open,40,25,Algorithms\n", "Fall plan")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/imports/roster", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Roster(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Fall plan", mock.rosterName)
	require.Equal(t, "A1,,Open,40,25,Algorithms\n", mock.rosterBody)
	require.Contains(t, w.Body.String(), `"catalogId":"cat-1"`)
}

func TestImportPortalUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &importerMock{}
	handler := &ImportHandler{catalogs: mock, maxUploadBytes: 1024}
	body, contentType := multipartUpload(t, "portal.html", "<table></table>", "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/imports/portal", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Portal(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Empty(t, mock.portalName)
}

func TestImportMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ImportHandler{catalogs: &importerMock{}, maxUploadBytes: 1024}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/imports/roster", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=missing")
	c.Request = req

	handler.Roster(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportRejectsOversizedUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ImportHandler{catalogs: &importerMock{}, maxUploadBytes: 8}
	body, contentType := multipartUpload(t, "roster.csv", "this payload is longer than eight bytes\n", "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/imports/roster", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Roster(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
