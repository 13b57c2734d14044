package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestCenter_PushAssignsDistinctIDs(t *testing.T) {
	c := NewCenterWithTTL(0)
	a := c.Success("saved")
	b := c.Error("failed")
	if a == "" || b == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestCenter_FIFOOrder(t *testing.T) {
	c := NewCenterWithTTL(0)
	c.Info("first")
	c.Info("second")
	c.Info("third")

	items := c.List()
	if len(items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Message != want {
			t.Errorf("position %d: got %q, want %q", i, items[i].Message, want)
		}
	}
}

func TestCenter_Severities(t *testing.T) {
	c := NewCenterWithTTL(0)
	c.Success("s")
	c.Error("e")
	c.Info("i")

	items := c.List()
	want := []Severity{SeveritySuccess, SeverityError, SeverityInfo}
	for i, sev := range want {
		if items[i].Severity != sev {
			t.Errorf("position %d: got %s, want %s", i, items[i].Severity, sev)
		}
	}
}

func TestCenter_RemoveIsIdempotent(t *testing.T) {
	c := NewCenterWithTTL(0)
	id := c.Success("saved")
	keep := c.Info("keep")

	c.Remove(id)
	c.Remove(id)
	c.Remove("never-existed")

	items := c.List()
	if len(items) != 1 || items[0].ID != keep {
		t.Errorf("unexpected queue after removals: %+v", items)
	}
}

func TestCenter_EntriesExpire(t *testing.T) {
	c := NewCenterWithTTL(20 * time.Millisecond)
	c.Success("transient")
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry before expiry, got %d", c.Len())
	}

	deadline := time.Now().Add(time.Second)
	for c.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("entry never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCenter_RemoveBeforeExpiryStopsTimer(t *testing.T) {
	c := NewCenterWithTTL(20 * time.Millisecond)
	id := c.Success("transient")
	c.Remove(id)

	// The racing timer must not disturb later entries.
	time.Sleep(40 * time.Millisecond)
	c.Info("later")
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestCenter_ListReturnsCopy(t *testing.T) {
	c := NewCenterWithTTL(0)
	c.Info("original")

	items := c.List()
	items[0].Message = "mutated"
	if c.List()[0].Message != "original" {
		t.Error("List leaked internal state")
	}
}

func newTestServer(c *Center) *echo.Echo {
	e := echo.New()
	NewHandler(c).RegisterRoutes(e.Group(""))
	return e
}

func TestHandler_ListNotifications(t *testing.T) {
	c := NewCenterWithTTL(0)
	c.Success("saved")
	e := newTestServer(c)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var items []Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Message != "saved" {
		t.Errorf("unexpected body: %+v", items)
	}
}

func TestHandler_DismissUnknownIDStillNoContent(t *testing.T) {
	e := newTestServer(NewCenterWithTTL(0))

	req := httptest.NewRequest(http.MethodDelete, "/notifications/no-such-id", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("got %d, want 204", rec.Code)
	}
}

func TestHandler_DismissRemovesEntry(t *testing.T) {
	c := NewCenterWithTTL(0)
	id := c.Error("failed")
	e := newTestServer(c)

	req := httptest.NewRequest(http.MethodDelete, "/notifications/"+id, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if c.Len() != 0 {
		t.Errorf("entry still queued after dismissal")
	}
}
