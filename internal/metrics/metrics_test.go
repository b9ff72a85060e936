package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, labelValue string) float64 {
	t.Helper()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetValue() == labelValue {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s with label %s not found", name, labelValue)
	return 0
}

func TestCollector_RecordOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignup("success")
	c.RecordSignup("duplicate")
	c.RecordSignup("success")
	c.RecordLogin("invalid_credentials")
	c.RecordTokenIssued("access")
	c.RecordTokenValidation("expired")

	if v := counterValue(t, reg, "authkit_signups_total", "success"); v != 2 {
		t.Errorf("signups_total{success} = %v, want 2", v)
	}
	if v := counterValue(t, reg, "authkit_signups_total", "duplicate"); v != 1 {
		t.Errorf("signups_total{duplicate} = %v, want 1", v)
	}
	if v := counterValue(t, reg, "authkit_logins_total", "invalid_credentials"); v != 1 {
		t.Errorf("logins_total{invalid_credentials} = %v, want 1", v)
	}
	if v := counterValue(t, reg, "authkit_tokens_issued_total", "access"); v != 1 {
		t.Errorf("tokens_issued_total{access} = %v, want 1", v)
	}
	if v := counterValue(t, reg, "authkit_token_validations_total", "expired"); v != 1 {
		t.Errorf("token_validations_total{expired} = %v, want 1", v)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin("success")
	c.RecordAuthLatency("login", 5*time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics endpoint: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}

	if !strings.Contains(string(body), "authkit_logins_total") {
		t.Error("expected scrape output to contain authkit_logins_total")
	}
	if !strings.Contains(string(body), "authkit_auth_latency_seconds") {
		t.Error("expected scrape output to contain authkit_auth_latency_seconds")
	}
}
