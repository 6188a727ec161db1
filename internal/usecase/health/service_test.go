package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockFilterLister struct {
	ids []string
}

func (m *mockFilterLister) IDs() []string { return m.ids }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockFilterLister{ids: []string{"geodist"}})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["filters"] != CheckOK {
		t.Errorf("expected filters %q, got %q", CheckOK, r.Checks["filters"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockFilterLister{ids: []string{"geodist"}})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["filters"] != CheckOK {
		t.Errorf("expected filters %q, got %q", CheckOK, r.Checks["filters"])
	}
}

func TestCheck_NoFiltersRegistered(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockFilterLister{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["filters"] != CheckError {
		t.Errorf("expected filters %q, got %q", CheckError, r.Checks["filters"])
	}
}

func TestCheck_NilFilterLister(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["filters"]; ok {
		t.Error("filters check should be absent when lister is nil")
	}
}

func TestCheck_NilFilterLister_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("fail")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Error("expected database error")
	}
}
