package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/cryptpix/internal/service"
	"github.com/MKhiriev/cryptpix/models"
)

func TestInit_RegisteredRoutes(t *testing.T) {
	h, m := newTestHandler(t)
	router := h.Init()

	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0").AnyTimes()
	m.ingest.EXPECT().Get(gomock.Any(), "abc").Return(testRecord(), nil).AnyTimes()
	m.ingest.EXPECT().Delete(gomock.Any(), "abc").Return(nil).AnyTimes()
	m.presentation.EXPECT().Compose(gomock.Any(), "abc", gomock.Any(), gomock.Any()).
		Return(models.Presentation{}, nil).AnyTimes()
	m.presentation.EXPECT().Stylesheet().Return("").AnyTimes()
	m.gate.EXPECT().Resolve(gomock.Any(), "tok", gomock.Any()).Return(nil, service.ErrForbidden).AnyTimes()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/version/", http.StatusOK},
		{http.MethodGet, "/api/images/abc", http.StatusOK},
		{http.MethodDelete, "/api/images/abc", http.StatusNoContent},
		{http.MethodGet, "/api/images/abc/presentation", http.StatusOK},
		{http.MethodGet, "/api/presentation/styles.css", http.StatusOK},
		{http.MethodGet, "/secure-image/tok", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/totally/wrong"},
		{http.MethodPut, "/api/images/abc"},
		{http.MethodPost, "/secure-image/tok"},
		{http.MethodGet, "/api/images"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// A viewer keeps one session across the presentation and fetch requests, so
// the tokens minted for it are checked against the same ID.
func TestInit_SessionFlowsFromPresentationToFetch(t *testing.T) {
	h, m := newTestHandler(t)
	router := h.Init()

	var composedFor string
	m.presentation.EXPECT().
		Compose(gomock.Any(), testRecordID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ string, sessionID string, _ models.PresentationOptions) (models.Presentation, error) {
			composedFor = sessionID
			return models.Presentation{URLs: []string{"/secure-image/tok"}}, nil
		})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/images/"+testRecordID+"/presentation", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, composedFor, cookies[0].Value)

	content := newLayerContent([]byte("png"))
	m.gate.EXPECT().Resolve(gomock.Any(), "tok", composedFor).Return(layerStream(content), nil)

	req := httptest.NewRequest(http.MethodGet, "/secure-image/tok", nil)
	req.AddCookie(cookies[0])
	req.Header.Set("Accept-Encoding", "gzip")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "png", rr.Body.String())
	assert.Empty(t, rr.Header().Get("Content-Encoding"), "layers are never recompressed")
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}
