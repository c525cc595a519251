package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesCounters(t *testing.T) {
	reg := NewRegistry()
	reg.Encoded.WithLabelValues("bankcard", "Visa", ResultOK).Inc()
	reg.Failures.WithLabelValues("missing_required_data").Add(2)
	reg.ReferencesStored.Inc()

	w := httptest.NewRecorder()
	reg.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != 200 {
		t.Fatalf("status = %d want 200", w.Code)
	}

	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		`nts_userdata_encoded_total{card_type="Visa",kind="bankcard",result="ok"} 1`,
		`nts_userdata_failures_total{class="missing_required_data"} 2`,
		`nts_references_stored_total 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
