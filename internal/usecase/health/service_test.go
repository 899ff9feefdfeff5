package health

import (
	"context"
	"errors"
	"testing"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(pingerFunc(ok), pingerFunc(ok))

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %q, want ok", report.Status)
	}
	if report.Checks["store"] != CheckOK || report.Checks["engine"] != CheckOK {
		t.Errorf("Checks = %v", report.Checks)
	}
}

func TestCheck_EngineDown(t *testing.T) {
	svc := New(pingerFunc(ok), pingerFunc(down))

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %q, want degraded", report.Status)
	}
	if report.Checks["engine"] != CheckError {
		t.Errorf("engine check = %q, want error", report.Checks["engine"])
	}
	if report.Checks["store"] != CheckOK {
		t.Errorf("store check = %q, want ok", report.Checks["store"])
	}
}
