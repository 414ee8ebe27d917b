package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdastak/internal/domain"
	"propdastak/internal/service"
	"propdastak/pkg/logger"
)

// stubEventRepo serves canned rankings for handler tests.
type stubEventRepo struct {
	ranks     []domain.ClickRank
	lastLimit int
}

func (s *stubEventRepo) Insert(ctx context.Context, event *domain.ViewEvent) error { return nil }

func (s *stubEventRepo) MostClicked(ctx context.Context, limit int) ([]domain.ClickRank, error) {
	s.lastLimit = limit
	if limit > len(s.ranks) {
		limit = len(s.ranks)
	}
	return s.ranks[:limit], nil
}

func newMostClickedHandler(t *testing.T, repo *stubEventRepo) *PropertyHandler {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	tracking := service.NewTrackingService(repo, nil, log)
	return NewPropertyHandler(nil, tracking, nil, log)
}

func TestMostClicked_DefaultLimitReturnsSingleObject(t *testing.T) {
	title := "2BHK in Baner"
	repo := &stubEventRepo{ranks: []domain.ClickRank{
		{PropertyID: "9", Clicks: 12, Title: &title},
		{PropertyID: "4", Clicks: 7},
	}}
	h := newMostClickedHandler(t, repo)

	rec := httptest.NewRecorder()
	h.MostClicked(rec, httptest.NewRequest(http.MethodGet, "/api/properties/most-clicked", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, repo.lastLimit)

	var got domain.ClickRank
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "9", got.PropertyID)
	assert.Equal(t, int64(12), got.Clicks)
}

func TestMostClicked_NoEventsReturnsMessage(t *testing.T) {
	h := newMostClickedHandler(t, &stubEventRepo{})

	rec := httptest.NewRecorder()
	h.MostClicked(rec, httptest.NewRequest(http.MethodGet, "/api/properties/most-clicked", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "No property found", got["message"])
}

func TestMostClicked_LargerLimitReturnsArray(t *testing.T) {
	repo := &stubEventRepo{ranks: []domain.ClickRank{
		{PropertyID: "9", Clicks: 12},
		{PropertyID: "4", Clicks: 7},
	}}
	h := newMostClickedHandler(t, repo)

	rec := httptest.NewRecorder()
	h.MostClicked(rec, httptest.NewRequest(http.MethodGet, "/api/properties/most-clicked?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, repo.lastLimit)

	var got []domain.ClickRank
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "9", got[0].PropertyID)
	assert.Equal(t, "4", got[1].PropertyID)
}

func TestMostClicked_LimitCoercion(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"missing limit", "", 1},
		{"zero", "?limit=0", 1},
		{"negative", "?limit=-3", 1},
		{"not a number", "?limit=abc", 1},
		{"valid", "?limit=10", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubEventRepo{ranks: []domain.ClickRank{{PropertyID: "1", Clicks: 1}}}
			h := newMostClickedHandler(t, repo)

			rec := httptest.NewRecorder()
			h.MostClicked(rec, httptest.NewRequest(http.MethodGet, "/api/properties/most-clicked"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
		})
	}
}

func TestValidateProperty(t *testing.T) {
	valid := func() domain.Property {
		return domain.Property{
			PropertyFor:        domain.PropertyForSell,
			PropertyType:       "apartment",
			City:               "Pune",
			Locality:           "Baner",
			AvailabilityStatus: domain.AvailabilityReadyToMove,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Property)
		wantMsg string
	}{
		{
			name:   "valid listing",
			mutate: func(p *domain.Property) {},
		},
		{
			name:    "unknown property_for",
			mutate:  func(p *domain.Property) { p.PropertyFor = "swap" },
			wantMsg: "property_for must be one of: sell, lease/rent, pg/hotel",
		},
		{
			name:    "missing type",
			mutate:  func(p *domain.Property) { p.PropertyType = " " },
			wantMsg: "property_type is required",
		},
		{
			name:    "missing city",
			mutate:  func(p *domain.Property) { p.City = "" },
			wantMsg: "city is required",
		},
		{
			name:    "missing locality",
			mutate:  func(p *domain.Property) { p.Locality = "" },
			wantMsg: "locality is required",
		},
		{
			name:    "unknown availability",
			mutate:  func(p *domain.Property) { p.AvailabilityStatus = "soon" },
			wantMsg: "availability_status must be one of: ready_to_move, under_construction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			assert.Equal(t, tt.wantMsg, validateProperty(&p))
		})
	}
}
