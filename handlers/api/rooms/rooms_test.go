package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"noteroom-server/core"
)

// Mock room lister for testing
type mockRoomLister struct {
	infos   []core.RoomInfo
	listErr error
}

func (m *mockRoomLister) ListRooms(ctx context.Context) ([]core.RoomInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.infos, nil
}

func TestHandleList_Success(t *testing.T) {
	lister := &mockRoomLister{
		infos: []core.RoomInfo{
			{ID: "r1", MemberCount: 2, HasDocument: true},
			{ID: "r2", MemberCount: 1, HasDocument: false},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()

	HandleList(lister)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var got []core.RoomInfo
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(got))
	}

	if got[0].ID != "r1" || got[0].MemberCount != 2 || !got[0].HasDocument {
		t.Errorf("First room mismatch: %+v", got[0])
	}

	if got[1].ID != "r2" || got[1].MemberCount != 1 || got[1].HasDocument {
		t.Errorf("Second room mismatch: %+v", got[1])
	}
}

func TestHandleList_Empty(t *testing.T) {
	lister := &mockRoomLister{}

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()

	HandleList(lister)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if body != "[]\n" && body != "[]" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestHandleList_Error(t *testing.T) {
	lister := &mockRoomLister{listErr: errors.New("boom")}

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()

	HandleList(lister)(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
}
