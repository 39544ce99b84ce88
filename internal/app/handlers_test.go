package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAvailabilityHandler_RequiresDate(t *testing.T) {
	router := NewRouter(newTestApp(&fakeStore{}, nil, nil, testNow))

	w := serve(router, http.MethodGet, "/api/calendar/availability", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date parameter is required")

	w = serve(router, http.MethodGet, "/api/calendar/availability?date=next-tuesday", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid date format")
}

func TestAvailabilityHandler_ReturnsOrderedSlots(t *testing.T) {
	store := &fakeStore{bookings: []Booking{
		{ID: 1, MeetingTime: at(13, 0), MeetingEndTime: at(13, 30)},
	}}
	router := NewRouter(newTestApp(store, nil, nil, testNow))

	w := serve(router, http.MethodGet,
		"/api/calendar/availability?date="+testDay.Format(time.RFC3339), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []Slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "9:00 AM", slots[0].DisplayTime)
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Time, slots[i].Time)
	}
	assert.False(t, slotByTime(t, slots, "13:00").Available)
	assert.True(t, slotByTime(t, slots, "10:00").Available)
}

func TestBookHandler_ValidatesPayload(t *testing.T) {
	router := NewRouter(newTestApp(&fakeStore{}, nil, nil, testNow))

	cases := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"","email":"a@b.com","businessDescription":"x","meetingTime":"2030-05-06T10:00:00Z"}`},
		{"bad email", `{"name":"Ada","email":"not-an-email","businessDescription":"x","meetingTime":"2030-05-06T10:00:00Z"}`},
		{"missing description", `{"name":"Ada","email":"a@b.com","meetingTime":"2030-05-06T10:00:00Z"}`},
		{"bad meeting time", `{"name":"Ada","email":"a@b.com","businessDescription":"x","meetingTime":"tomorrow"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/api/calendar/book", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBookHandler_Success(t *testing.T) {
	store := &fakeStore{}
	cal := &fakeCalendar{eventID: "evt-9", meetLink: "https://meet.google.com/xyz"}
	router := NewRouter(newTestApp(store, cal, &fakeNotifier{}, testNow))

	body := `{"name":"Ada","email":"ada@example.com","businessDescription":"engines","meetingTime":"2030-05-06T10:00:00Z"}`
	w := serve(router, http.MethodPost, "/api/calendar/book", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Booking struct {
			ID          int    `json:"id"`
			MeetingTime string `json:"meetingTime"`
			MeetLink    string `json:"meetLink"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Booking.ID)
	assert.Equal(t, "2030-05-06T10:00:00Z", resp.Booking.MeetingTime)
	assert.Equal(t, "https://meet.google.com/xyz", resp.Booking.MeetLink)
}

func TestBookHandler_ConflictIsBadRequest(t *testing.T) {
	store := &fakeStore{bookings: []Booking{
		{ID: 1, MeetingTime: at(10, 0), MeetingEndTime: at(10, 30)},
	}}
	router := NewRouter(newTestApp(store, nil, nil, testNow))

	body := `{"name":"Ada","email":"ada@example.com","businessDescription":"engines","meetingTime":"2030-05-06T10:00:00Z"}`
	w := serve(router, http.MethodPost, "/api/calendar/book", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no longer available")
	assert.Len(t, store.bookings, 1)
}

func TestBookingsListing_RequiresAuth(t *testing.T) {
	a := newTestApp(&fakeStore{}, nil, nil, testNow)
	a.Cfg.StaticTokens = "test-token"
	router := NewRouter(a)

	w := serve(router, http.MethodGet, "/api/calendar/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "/api/calendar/bookings", "",
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "/api/calendar/bookings", "",
		map[string]string{"Authorization": "Bearer test-token"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetBookingHandler(t *testing.T) {
	store := &fakeStore{bookings: []Booking{
		{ID: 7, Name: "Ada", MeetingTime: at(10, 0), MeetingEndTime: at(10, 30), Status: "scheduled"},
	}}
	a := newTestApp(store, nil, nil, testNow)
	a.Cfg.StaticTokens = "test-token"
	router := NewRouter(a)
	auth := map[string]string{"Authorization": "Bearer test-token"}

	w := serve(router, http.MethodGet, "/api/calendar/bookings/7", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var b Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, "Ada", b.Name)

	w = serve(router, http.MethodGet, "/api/calendar/bookings/99", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, http.MethodGet, "/api/calendar/bookings/seven", "", auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
