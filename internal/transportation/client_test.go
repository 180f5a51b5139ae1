package transportation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"truck-dispatch/internal/common"
)

func testServer(t *testing.T, path string, payload any) (*httptest.Server, *Client) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("x-token") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)

	return srv, NewClient(srv.URL, "test-token", 5*time.Second)
}

func TestGetManifests(t *testing.T) {
	payload := map[string]any{
		"manifests": []Manifest{
			{CompanyName: "Acme Freight", FlightNumber: "AA100", Location: common.NewLocation(32.75, -96.80)},
		},
	}
	_, client := testServer(t, "/mock/logistics/get_manifests", payload)

	manifests, err := client.GetManifests(context.Background())
	if err != nil {
		t.Fatalf("get manifests: %v", err)
	}
	if len(manifests) != 1 || manifests[0].CompanyName != "Acme Freight" {
		t.Fatalf("unexpected manifests: %+v", manifests)
	}
}

func TestAssignTasks_SendsManifestsJSON(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("manifests_json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"assignments": []Assignment{{FlightNumber: "AA100", TruckID: "TRK-2001"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 5*time.Second)
	assigned, err := client.AssignTasks(context.Background(), []Manifest{{FlightNumber: "AA100"}})
	if err != nil {
		t.Fatalf("assign tasks: %v", err)
	}
	if len(assigned) != 1 || assigned[0].TruckID != "TRK-2001" {
		t.Fatalf("unexpected assignments: %+v", assigned)
	}

	var sent []Manifest
	if err := json.Unmarshal([]byte(gotQuery), &sent); err != nil {
		t.Fatalf("manifests_json not valid JSON: %v", err)
	}
	if len(sent) != 1 || sent[0].FlightNumber != "AA100" {
		t.Fatalf("unexpected manifests_json: %s", gotQuery)
	}
}

func TestFetchFlightInfo(t *testing.T) {
	_, client := testServer(t, "/mock/air/flightinfo", FlightInfo{
		FlightNumber: "AA100", ArrivalTime: "14:00", Terminal: "B",
	})

	info, err := client.FetchFlightInfo(context.Background(), "AA100")
	if err != nil {
		t.Fatalf("fetch flight info: %v", err)
	}
	if info.ArrivalTime != "14:00" || info.Terminal != "B" {
		t.Fatalf("unexpected flight info: %+v", info)
	}
}

func TestReserveDock_PassesTerminal(t *testing.T) {
	var gotTerminal string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerminal = r.URL.Query().Get("terminal")
		_ = json.NewEncoder(w).Encode(DockReservation{DockID: "D-4"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 5*time.Second)
	dock, err := client.ReserveDock(context.Background(), "B")
	if err != nil {
		t.Fatalf("reserve dock: %v", err)
	}
	if dock.DockID != "D-4" || gotTerminal != "B" {
		t.Fatalf("unexpected dock %+v, terminal %q", dock, gotTerminal)
	}
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 5*time.Second)
	if _, err := client.GetManifests(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
