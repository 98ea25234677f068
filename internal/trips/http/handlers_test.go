package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/llm"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore/sqlstoretest"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/repository"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/service"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router   *gin.Engine
	sessions *session.MemoryStore
	cookies  []*http.Cookie
}

func newTestServer(t *testing.T, gen llm.Generator) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := sqlstoretest.Open(t, config.ConnModePooled)
	planner := service.NewPlannerService(repository.NewTripRepository(p), repository.NewFeedbackRepository(p), gen)
	sessions := session.NewMemoryStore(time.Hour)

	h := New(planner, sessions)
	router := gin.New()
	h.RegisterPages(router, time.Hour)
	h.Register(router.Group("/api/v1"))

	return &testServer{router: router, sessions: sessions}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	if got := rr.Result().Cookies(); len(got) > 0 {
		s.cookies = got
	}
	return rr
}

func (s *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func lisbonForm() url.Values {
	return url.Values{
		"destination":    {"Lisbon"},
		"departure_date": {"2025-05-01"},
		"return_date":    {"2025-05-10"},
		"activities":     {"museums"},
		"accommodation":  {"Hotel"},
	}
}

func TestIndex_RendersEmptyForm(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	rr := srv.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "AI Travel Planning")
	assert.Contains(t, body, `value="`+domain.Today().String()+`"`)
	assert.Contains(t, body, `<option value="Hotel" selected>`)
	assert.NotContains(t, body, "Save Feedback")
	assert.NotContains(t, body, "Saved Trips</h2>")

	require.Len(t, srv.cookies, 1)
	assert.Equal(t, sessionCookie, srv.cookies[0].Name)
}

func TestPageFlow_PlanFeedbackAndSavedTrips(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	rr := srv.postForm("/plan", lisbonForm())
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Destination: Lisbon, Departure Date: 2025-05-01, Return Date: 2025-05-10")
	assert.Contains(t, body, "Trip saved successfully!")
	assert.Contains(t, body, "Save Feedback")

	sess, err := srv.sessions.Get(context.Background(), srv.cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, session.StatePlanDisplayed, sess.State)

	rr = srv.get("/")
	assert.Contains(t, rr.Body.String(), "Save Feedback", "reloading keeps the displayed plan open for feedback")

	rr = srv.postForm("/feedback", url.Values{"rating": {"4"}, "comments": {"great trip"}})
	require.Equal(t, http.StatusOK, rr.Code)
	body = rr.Body.String()
	assert.Contains(t, body, "Feedback saved successfully!")
	assert.NotContains(t, body, "Save Feedback")

	rr = srv.postForm("/feedback", url.Values{"rating": {"1"}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = srv.get("/?show_trips=on")
	require.Equal(t, http.StatusOK, rr.Code)
	body = rr.Body.String()
	assert.Contains(t, body, "Trip to Lisbon")
	assert.Contains(t, body, "Dates: 2025-05-01 to 2025-05-10")
	assert.Contains(t, body, "Rating: 4, Comments: great trip")
}

func TestIndex_SessionTripMissing(t *testing.T) {
	srv := newTestServer(t, llm.Echo)
	require.Equal(t, http.StatusOK, srv.get("/").Code)

	sessionID := srv.cookies[0].Value
	require.NoError(t, srv.sessions.Save(context.Background(), &session.Session{
		ID:     sessionID,
		State:  session.StatePlanDisplayed,
		TripID: 42,
	}))

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	rr := srv.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "Save Feedback")
	assert.Contains(t, logs.String(), "[warn]")
	assert.Contains(t, logs.String(), "trip_id=42 not found")
}

func TestSubmitFeedback_DefaultRating(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	require.Equal(t, http.StatusOK, srv.postForm("/plan", lisbonForm()).Code)
	require.Equal(t, http.StatusOK, srv.postForm("/feedback", url.Values{}).Code)

	rr := srv.get("/api/v1/trips")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		OK    bool               `json:"ok"`
		Trips []domain.SavedTrip `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Trips, 1)
	require.NotNil(t, resp.Trips[0].First)
	assert.Equal(t, domain.DefaultRating, resp.Trips[0].First.Rating)
	assert.Equal(t, "", resp.Trips[0].First.Comments)
}

func TestSubmitFeedback_WithoutPlanIsRejected(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	rr := srv.postForm("/feedback", url.Values{"rating": {"5"}})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), domain.ErrFeedbackNotExpected.Error())
}

func TestSubmitPlan_GeneratorFailure(t *testing.T) {
	srv := newTestServer(t, llm.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}))

	rr := srv.postForm("/plan", lisbonForm())
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "quota exceeded")
	assert.NotContains(t, body, "Trip saved successfully!")

	rr = srv.get("/?show_trips=on")
	assert.Contains(t, rr.Body.String(), "No saved trips found.")
}

func TestSubmitPlan_InvalidDate(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	form := lisbonForm()
	form.Set("departure_date", "01/05/2025")
	rr := srv.postForm("/plan", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_PlanAndFeedback(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	rr := srv.postJSON("/api/v1/trips/plan",
		`{"destination":"Lisbon","departure_date":"2025-05-10","return_date":"2025-05-01","activities":"","accommodation":"Hostel"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		OK   bool        `json:"ok"`
		Trip domain.Trip `json:"trip"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.True(t, created.OK)
	assert.Equal(t, "2025-05-10", created.Trip.DepartureDate.String())
	assert.Equal(t, "2025-05-01", created.Trip.ReturnDate.String())
	assert.Contains(t, created.Trip.PlanDetails, "Accommodation: Hostel")

	path := "/api/v1/trips/" + jsonNumber(created.Trip.ID)
	for _, body := range []string{`{"rating":5,"comments":"a"}`, `{"rating":9,"comments":"b"}`} {
		require.Equal(t, http.StatusCreated, srv.postJSON(path+"/feedback", body).Code)
	}

	rr = srv.get(path + "/feedback")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed struct {
		Feedback []domain.Feedback `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed.Feedback, 2)
	assert.Equal(t, 5, listed.Feedback[0].Rating)
	assert.Equal(t, 9, listed.Feedback[1].Rating)

	rr = srv.get(path + "/feedback?first=true")
	require.Equal(t, http.StatusOK, rr.Code)
	var first struct {
		Feedback *domain.Feedback `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	require.NotNil(t, first.Feedback)
	assert.Equal(t, "a", first.Feedback.Comments)

	rr = srv.get(path)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAPI_Errors(t *testing.T) {
	srv := newTestServer(t, llm.Echo)

	tests := []struct {
		name   string
		do     func() *httptest.ResponseRecorder
		status int
	}{
		{"unknown trip", func() *httptest.ResponseRecorder { return srv.get("/api/v1/trips/999") }, http.StatusNotFound},
		{"bad trip id", func() *httptest.ResponseRecorder { return srv.get("/api/v1/trips/abc") }, http.StatusBadRequest},
		{"bad plan body", func() *httptest.ResponseRecorder { return srv.postJSON("/api/v1/trips/plan", "{") }, http.StatusBadRequest},
		{"bad feedback body", func() *httptest.ResponseRecorder {
			return srv.postJSON("/api/v1/trips/1/feedback", `{"rating":"x"}`)
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := tt.do()
			assert.Equal(t, tt.status, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["ok"])
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrTripNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrFeedbackNotExpected))
	assert.Equal(t, http.StatusConflict, statusFor(session.ErrInvalidTransition))
	assert.Equal(t, http.StatusBadGateway, statusFor(service.ErrGeneration))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestShowTripsQuery(t *testing.T) {
	for _, v := range []string{"on", "true", "1"} {
		assert.True(t, showTripsQuery{ShowTrips: v}.enabled(), v)
	}
	assert.False(t, showTripsQuery{}.enabled())
	assert.False(t, showTripsQuery{ShowTrips: "off"}.enabled())
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
