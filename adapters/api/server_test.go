package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mazzol/MVA/adapters/stats/engine"
	"github.com/Mazzol/MVA/internal"
)

func newTestServer() *Server {
	logger := internal.NewLogger(internal.LogLevelError)
	return NewServer(engine.New(logger), logger)
}

func postIndices(t *testing.T, s *Server, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indices", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_SobolIndices(t *testing.T) {
	rec := postIndices(t, newTestServer(), indicesRequest{
		Outputs: []float64{1, 2, 3, 4, 5, 6},
		NSets:   2,
		Method:  "[sobol]",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Method     string `json:"method"`
		Parameters struct {
			Records []struct {
				Parameter int     `json:"parameter"`
				Si        float64 `json:"si"`
				STi       float64 `json:"sti"`
			} `json:"records"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Method != "sobol" {
		t.Errorf("method = %q, want sobol", resp.Method)
	}
	if len(resp.Parameters.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(resp.Parameters.Records))
	}
}

func TestServer_PawnIndices(t *testing.T) {
	rec := postIndices(t, newTestServer(), indicesRequest{
		Outputs: []float64{0, 0, 0, 1, 1, 1, 2, 2, 2},
		NSets:   3,
		Method:  "[pawn,2,mean,0.05]",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Parameters struct {
			Records []struct {
				Pawn        float64 `json:"pawn"`
				Influential bool    `json:"influential"`
			} `json:"records"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Parameters.Records[0].Influential {
		t.Error("expected influential parameter")
	}
}

func TestServer_BadMethodIs400(t *testing.T) {
	rec := postIndices(t, newTestServer(), indicesRequest{
		Outputs: []float64{1, 2, 3, 4},
		NSets:   2,
		Method:  "[morris]",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_LayoutMismatchIs422(t *testing.T) {
	rec := postIndices(t, newTestServer(), indicesRequest{
		Outputs: []float64{1, 2, 3, 4, 5, 6, 7},
		NSets:   2,
		Method:  "[sobol]",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "LAYOUT_ERROR" {
		t.Errorf("error code = %q, want LAYOUT_ERROR", resp.Code)
	}
}

func TestServer_Health(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
