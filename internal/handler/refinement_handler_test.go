package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/export"
	"refinery/internal/handler"
	"refinery/internal/service"
	"refinery/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHandler() (*handler.RefinementHandler, *mocks.MockRefinementService) {
	svc := new(mocks.MockRefinementService)
	return handler.NewRefinementHandler(svc), svc
}

func sampleRecord() *domain.Refinement {
	out := domain.RefinedOutput{
		PrimaryIntent:          "Create a todo application",
		FunctionalExpectations: []string{"Add tasks", "Complete tasks"},
		TechnicalConstraints:   []string{},
		ExpectedOutputs:        []string{"Todo app"},
		Ambiguities:            []string{},
		MissingInformation:     []string{},
		ConfidenceScore:        0.8,
	}
	data, _ := json.Marshal(out)
	return &domain.Refinement{
		ID:              uuid.New(),
		OriginalInput:   "build me a todo app",
		InputType:       domain.InputText,
		RefinedOutput:   data,
		ConfidenceScore: 0.8,
		CreatedAt:       time.Now().UTC(),
	}
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreate_TextSubmission(t *testing.T) {
	h, svc := newHandler()
	rec := sampleRecord()

	svc.On("Refine", mock.Anything, mock.MatchedBy(func(in service.RefineInput) bool {
		return in.Text == "build me a todo app" && in.File == nil
	})).Return(rec, nil)

	body, contentType := multipartBody(t, map[string]string{"text": "build me a todo app"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/refinements", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestCreate_MissingTextAndFile(t *testing.T) {
	h, svc := newHandler()

	body, contentType := multipartBody(t, map[string]string{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/refinements", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Refine")
}

func TestCreate_GateRejection(t *testing.T) {
	h, svc := newHandler()

	svc.On("Refine", mock.Anything, mock.Anything).
		Return(nil, &domain.RejectedInputError{
			Reason:  domain.ReasonIrrelevantInput,
			Message: "Input appears to be irrelevant or too brief.",
		})

	body, contentType := multipartBody(t, map[string]string{"text": "hi"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/refinements", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INPUT_REJECTED", resp.Error.Code)
	assert.Equal(t, domain.ReasonIrrelevantInput, resp.Error.RejectionReason)
}

func TestCreate_FileTooLarge(t *testing.T) {
	h, svc := newHandler()

	svc.On("Refine", mock.Anything, mock.Anything).Return(nil, domain.ErrFileTooLarge)

	body, contentType := multipartBody(t, map[string]string{"text": "placeholder"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/refinements", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestGetByID_Success(t *testing.T) {
	h, svc := newHandler()
	rec := sampleRecord()

	svc.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements/"+rec.ID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: rec.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetByID_InvalidID(t *testing.T) {
	h, svc := newHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements/not-a-uuid", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetByID")
}

func TestGetByID_NotFound(t *testing.T) {
	h, svc := newHandler()
	id := uuid.New()

	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_Paginated(t *testing.T) {
	h, svc := newHandler()

	svc.On("List", mock.Anything, 10, 5).
		Return([]domain.Refinement{*sampleRecord()}, 42, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements?offset=10&limit=5", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Offset)
	assert.Equal(t, 5, resp.Meta.Limit)
}

func TestExport_CSV(t *testing.T) {
	h, svc := newHandler()

	svc.On("ListForExport", mock.Anything).
		Return([]domain.Refinement{*sampleRecord()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements/export?format=csv", http.NoBody)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, export.BOM, body[:3])

	records, err := csv.NewReader(strings.NewReader(string(body[3:]))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "Create a todo application", records[1][2])
}

func TestExport_UnknownFormat(t *testing.T) {
	h, svc := newHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements/export?format=pdf", http.NoBody)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListForExport")
}

func TestExport_NotClampedToPageSize(t *testing.T) {
	// Export reads through ListForExport, so a history larger than the
	// HTTP page clamp comes back in full.
	repo := new(mocks.MockRefinementRepository)
	svc := service.NewRefinementService(repo, nil, nil, config.UploadConfig{})
	h := handler.NewRefinementHandler(svc)

	recs := make([]domain.Refinement, 150)
	for i := range recs {
		recs[i] = *sampleRecord()
	}
	repo.On("List", mock.Anything, 0, 1000).Return(recs, len(recs), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/refinements/export?format=csv", http.NoBody)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	records, err := csv.NewReader(strings.NewReader(string(body[3:]))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 151) // header + every stored record
	repo.AssertExpectations(t)
}
