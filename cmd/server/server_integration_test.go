package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/config"
	"github.com/ThamannaGM/Assignment-Tracker/internal/serverapp"
)

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config:  config.Default(),
		DataDir: t.TempDir(),
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return &testApp{handler: h, logs: &logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_SubjectAssignmentRoundTrip(t *testing.T) {
	app := newTestApp(t)

	subjectRes := app.json(http.MethodPost, "/api/subjects", map[string]any{
		"name":  "Math",
		"color": "#B58463",
	})
	if subjectRes.Code != http.StatusCreated {
		t.Fatalf("create subject expected 201, got %d body=%s", subjectRes.Code, subjectRes.Body.String())
	}

	// Second subject on the same color must be rejected.
	dupRes := app.json(http.MethodPost, "/api/subjects", map[string]any{
		"name":  "History",
		"color": "#b58463",
	})
	if dupRes.Code != http.StatusConflict {
		t.Fatalf("duplicate color expected 409, got %d body=%s", dupRes.Code, dupRes.Body.String())
	}

	due := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	createRes := app.json(http.MethodPost, "/api/assignments", map[string]any{
		"subject": "Math",
		"name":    "Midterm prep",
		"dueDate": due,
	})
	if createRes.Code != http.StatusCreated {
		t.Fatalf("create assignment expected 201, got %d body=%s", createRes.Code, createRes.Body.String())
	}
	created := asMap(t, decodeBodyMap(t, createRes)["assignment"])
	id := asString(t, created["id"])
	if got := asString(t, created["color"]); got != "#B58463" {
		t.Fatalf("expected snapshot color #B58463, got %q", got)
	}

	unknownRes := app.json(http.MethodPost, "/api/assignments", map[string]any{
		"subject": "Chemistry",
		"name":    "Lab report",
		"dueDate": due,
	})
	if unknownRes.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown subject expected 422, got %d body=%s", unknownRes.Code, unknownRes.Body.String())
	}

	tableRes := app.request(http.MethodGet, "/api/table?subject=Math&status=all", nil, "")
	if tableRes.Code != http.StatusOK {
		t.Fatalf("table expected 200, got %d body=%s", tableRes.Code, tableRes.Body.String())
	}
	var rows []map[string]any
	if err := json.Unmarshal(tableRes.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode table rows: %v body=%s", err, tableRes.Body.String())
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 table row, got %d body=%s", len(rows), tableRes.Body.String())
	}
	if urgency := asString(t, rows[0]["urgency"]); urgency != "due-soon" {
		t.Fatalf("expected due-soon urgency, got %q", urgency)
	}
	if special, _ := rows[0]["special"].(bool); !special {
		t.Fatalf("expected 'Midterm prep' to be flagged special, body=%s", tableRes.Body.String())
	}

	dueDay := time.Now().AddDate(0, 0, 2)
	monthPath := fmt.Sprintf("/api/calendar/month?year=%d&month=%d", dueDay.Year(), int(dueDay.Month()))
	monthRes := app.request(http.MethodGet, monthPath, nil, "")
	if monthRes.Code != http.StatusOK {
		t.Fatalf("calendar month expected 200, got %d body=%s", monthRes.Code, monthRes.Body.String())
	}
	if !strings.Contains(monthRes.Body.String(), `"examDay":true`) {
		t.Fatalf("expected an exam day in month grid, body=%s", monthRes.Body.String())
	}

	weekRes := app.request(http.MethodGet, "/api/calendar/week?date="+due, nil, "")
	if weekRes.Code != http.StatusOK {
		t.Fatalf("calendar week expected 200, got %d body=%s", weekRes.Code, weekRes.Body.String())
	}
	if !strings.Contains(weekRes.Body.String(), `"hasTask":true`) {
		t.Fatalf("expected a task day in week strip, body=%s", weekRes.Body.String())
	}

	icsRes := app.request(http.MethodGet, "/api/assignments/"+id+"/calendar.ics", nil, "")
	if icsRes.Code != http.StatusOK {
		t.Fatalf("calendar export expected 200, got %d body=%s", icsRes.Code, icsRes.Body.String())
	}
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Midterm prep", "END:VCALENDAR"} {
		if !strings.Contains(icsRes.Body.String(), want) {
			t.Fatalf("calendar export missing %q body=%s", want, icsRes.Body.String())
		}
	}
}

func TestServer_InlineEditFlowAndClear(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/subjects", map[string]any{
		"name":  "History",
		"color": "#845C66",
	})
	if res.Code != http.StatusCreated {
		t.Fatalf("create subject expected 201, got %d body=%s", res.Code, res.Body.String())
	}

	due := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	createRes := app.json(http.MethodPost, "/api/assignments", map[string]any{
		"subject": "History",
		"name":    "Essay draft",
		"dueDate": due,
	})
	if createRes.Code != http.StatusCreated {
		t.Fatalf("create assignment expected 201, got %d body=%s", createRes.Code, createRes.Body.String())
	}
	id := asString(t, asMap(t, decodeBodyMap(t, createRes)["assignment"])["id"])

	beginRes := app.json(http.MethodPost, "/api/edit/begin", map[string]any{
		"assignment": id,
		"field":      "status",
	})
	if beginRes.Code != http.StatusOK {
		t.Fatalf("edit begin expected 200, got %d body=%s", beginRes.Code, beginRes.Body.String())
	}
	if enumerated, _ := decodeBodyMap(t, beginRes)["enumerated"].(bool); !enumerated {
		t.Fatalf("status field should be enumerated, body=%s", beginRes.Body.String())
	}

	// The same field cannot be opened twice.
	againRes := app.json(http.MethodPost, "/api/edit/begin", map[string]any{
		"assignment": id,
		"field":      "status",
	})
	if againRes.Code != http.StatusConflict {
		t.Fatalf("second edit begin expected 409, got %d body=%s", againRes.Code, againRes.Body.String())
	}

	commitRes := app.json(http.MethodPost, "/api/edit/commit", map[string]any{
		"assignment": id,
		"field":      "status",
		"value":      "Completed",
	})
	if commitRes.Code != http.StatusOK {
		t.Fatalf("edit commit expected 200, got %d body=%s", commitRes.Code, commitRes.Body.String())
	}
	if completed, _ := decodeBodyMap(t, commitRes)["completed"].(bool); !completed {
		t.Fatalf("expected completed signal, body=%s", commitRes.Body.String())
	}

	eventsRes := app.request(http.MethodGet, "/api/events", nil, "")
	if eventsRes.Code != http.StatusOK {
		t.Fatalf("events expected 200, got %d body=%s", eventsRes.Code, eventsRes.Body.String())
	}
	if !strings.Contains(eventsRes.Body.String(), "assignment_completed") {
		t.Fatalf("expected assignment_completed event, body=%s", eventsRes.Body.String())
	}

	clearRes := app.request(http.MethodDelete, "/api/assignments", nil, "")
	if clearRes.Code != http.StatusOK {
		t.Fatalf("clear expected 200, got %d body=%s", clearRes.Code, clearRes.Body.String())
	}
	cleared, _ := decodeBodyMap(t, clearRes)["cleared"].(float64)
	if int(cleared) != 1 {
		t.Fatalf("expected 1 cleared assignment, body=%s", clearRes.Body.String())
	}

	listRes := app.request(http.MethodGet, "/api/assignments", nil, "")
	if listRes.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d body=%s", listRes.Code, listRes.Body.String())
	}
	var items []any
	if err := json.Unmarshal(listRes.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v body=%s", err, listRes.Body.String())
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection after clear, got %d items", len(items))
	}
}
