package http

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/exporter"
	"strikingdistance/internal/services"
	"strikingdistance/internal/shared/testutil"
	"strikingdistance/internal/striking"
	"strikingdistance/pkg/contracts/domain"
)

// MockOpportunityService is a mock implementation of OpportunityServiceInterface
type MockOpportunityService struct {
	mock.Mock
}

func (m *MockOpportunityService) Analyze(ctx context.Context, req services.AnalyzeRequest) (*striking.Result, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*striking.Result), args.Error(1)
}

func (m *MockOpportunityService) LoadUpload(r io.Reader, filename, table string) (*striking.Table, error) {
	args := m.Called(filename, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*striking.Table), args.Error(1)
}

func csvBytes(t *testing.T, records [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(records))
	return buf.Bytes()
}

// uploadRequest builds a multipart request. files maps field name to
// filename and contents.
func uploadRequest(t *testing.T, files map[string][2]string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, file := range files {
		part, err := mw.CreateFormFile(field, file[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(file[1]))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func sampleFiles(t *testing.T) map[string][2]string {
	return map[string][2]string{
		FieldQueries:         {"queries.csv", string(csvBytes(t, testutil.SampleQueries))},
		FieldKeywords:        {"keywords.csv", string(csvBytes(t, testutil.SampleKeywords))},
		FieldCannibalisation: {"cannibalisation.csv", string(csvBytes(t, testutil.SampleCannibalisation))},
	}
}

func newTestHandler(t *testing.T, service OpportunityServiceInterface) *OpportunityHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOpportunityHandler(service, domain.DefaultOptions(), false, logger, apierrors.NewErrorHandler(logger, false))
}

func serve(h *OpportunityHandler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestOpportunityHandler_JSON(t *testing.T) {
	h := newTestHandler(t, services.NewOpportunityService(nil, nil, nil))

	rec := serve(h, uploadRequest(t, sampleFiles(t), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Status     string                  `json:"status"`
		Count      int                     `json:"count"`
		Data       []domain.OpportunityRow `json:"data"`
		Conditions []striking.Condition    `json:"conditions"`
		Stats      striking.Stats          `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, 3, env.Count)
	require.Len(t, env.Data, 3)
	assert.Equal(t, "running shoes", env.Data[0].Keyword)
	assert.Empty(t, env.Conditions)
	assert.Equal(t, 3, env.Stats.Output)
}

func TestOpportunityHandler_CSVDownload(t *testing.T) {
	h := newTestHandler(t, services.NewOpportunityService(nil, nil, nil))

	rec := serve(h, uploadRequest(t, sampleFiles(t), map[string]string{
		"format":           "csv",
		"combine_keywords": "on",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "striking_distance.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, striking.OutputHeader, records[0])
	require.Len(t, records, 3)
	assert.Equal(t, []string{"running shoes", "/shoes/running", "8", "5000", "60", "1.00", "commercial"}, records[1])
	assert.Equal(t, []string{"trail shoes", "/trail", "14.5", "1200", "0", "-1.00", "commercial"}, records[2])
	assert.Equal(t, "", rec.Header().Get(ConditionsHeader))
}

func TestOpportunityHandler_XLSXDownload(t *testing.T) {
	h := newTestHandler(t, services.NewOpportunityService(nil, nil, nil))

	rec := serve(h, uploadRequest(t, sampleFiles(t), map[string]string{"format": "xlsx"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exporter.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestOpportunityHandler_EmptyResult(t *testing.T) {
	h := newTestHandler(t, services.NewOpportunityService(nil, nil, nil))

	t.Run("csv answers no content", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, sampleFiles(t), map[string]string{
			"format":           "csv",
			"exclude_keywords": "shoes",
		}))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, string(striking.EmptyResult), rec.Header().Get(ConditionsHeader))
		assert.Empty(t, rec.Body.String())
	})

	t.Run("xlsx answers no content", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, sampleFiles(t), map[string]string{
			"format":       "xlsx",
			"min_position": "20",
			"max_position": "25",
		}))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, string(striking.EmptyResult), rec.Header().Get(ConditionsHeader))
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("json carries the condition", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, sampleFiles(t), map[string]string{"exclude_keywords": "shoes"}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
		assert.Contains(t, rec.Body.String(), `"code":"EMPTY_RESULT"`)
	})

	t.Run("strict fails", func(t *testing.T) {
		rec := serve(h, uploadRequest(t, sampleFiles(t), map[string]string{
			"exclude_keywords": "shoes",
			"strict":           "true",
		}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), apierrors.TypeEmptyResult)
	})
}

func TestOpportunityHandler_MissingColumns(t *testing.T) {
	h := newTestHandler(t, services.NewOpportunityService(nil, nil, nil))

	files := sampleFiles(t)
	files[FieldCannibalisation] = [2]string{"pages.csv", "Query,Landing Page\nshoes,/shoes\n"}

	rec := serve(h, uploadRequest(t, files, nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeMissingColumns, problem["type"])
	assert.Equal(t, "MISSING_COLUMNS", problem["error_code"])
	missing, ok := problem["missing"].([]interface{})
	require.True(t, ok)
	require.Len(t, missing, 1)
	assert.Equal(t, striking.TableCannibalisation, missing[0].(map[string]interface{})["table"])
}

func TestOpportunityHandler_RequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		files      func(t *testing.T) map[string][2]string
		fields     map[string]string
		wantStatus int
		wantBody   string
	}{
		{
			name: "missing files",
			files: func(t *testing.T) map[string][2]string {
				f := sampleFiles(t)
				delete(f, FieldKeywords)
				delete(f, FieldCannibalisation)
				return f
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "missing: keywords, cannibalisation",
		},
		{
			name:       "bad format",
			files:      sampleFiles,
			fields:     map[string]string{"format": "pdf"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "format must be one of",
		},
		{
			name:       "non numeric position",
			files:      sampleFiles,
			fields:     map[string]string{"min_position": "six"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "min_position",
		},
		{
			name:       "fractional position",
			files:      sampleFiles,
			fields:     map[string]string{"max_position": "12.5"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "whole number",
		},
		{
			name:       "inverted window",
			files:      sampleFiles,
			fields:     map[string]string{"min_position": "30", "max_position": "6"},
			wantStatus: http.StatusBadRequest,
			wantBody:   apierrors.TypeInvalidOptions,
		},
		{
			name: "unsupported upload",
			files: func(t *testing.T) map[string][2]string {
				f := sampleFiles(t)
				f[FieldQueries] = [2]string{"queries.pdf", "%PDF"}
				return f
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   apierrors.TypeUnreadableInput,
		},
	}

	h := newTestHandler(t, services.NewOpportunityService(nil, nil, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, uploadRequest(t, tt.files(t), tt.fields))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestOpportunityHandler_NotMultipart(t *testing.T) {
	h := newTestHandler(t, new(MockOpportunityService))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(h, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestOpportunityHandler_PassesOptions(t *testing.T) {
	svc := new(MockOpportunityService)
	table := striking.NewTable("t", nil, nil)
	svc.On("LoadUpload", mock.Anything, mock.Anything).Return(table, nil)
	svc.On("Analyze", mock.MatchedBy(func(req services.AnalyzeRequest) bool {
		return req.Options.MinPosition == 4 &&
			req.Options.MaxPosition == 20 &&
			req.Options.CombineKeywords &&
			req.Options.ExcludeKeywords == "brand, shop" &&
			req.Strict &&
			req.Inputs.Queries == table
	})).Return(&striking.Result{Rows: []domain.OpportunityRow{}}, nil)

	rec := serve(newTestHandler(t, svc), uploadRequest(t, sampleFiles(t), map[string]string{
		"min_position":     "4",
		"max_position":     "20.0",
		"combine_keywords": "true",
		"exclude_keywords": "brand, shop",
		"strict":           "1",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
	svc.AssertNumberOfCalls(t, "LoadUpload", 3)
}

func TestOpportunityHandler_ServiceFailure(t *testing.T) {
	svc := new(MockOpportunityService)
	svc.On("LoadUpload", mock.Anything, mock.Anything).Return(striking.NewTable("t", nil, nil), nil)
	svc.On("Analyze", mock.Anything).Return(nil, context.DeadlineExceeded)

	rec := serve(newTestHandler(t, svc), uploadRequest(t, sampleFiles(t), nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeTimeout)
}
