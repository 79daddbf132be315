package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/stats/aggregator"
	"trainingcenter_backend/internals/features/stats/repository"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type fakeRepo struct {
	groups []aggregator.Group
	year   int
}

func (f *fakeRepo) Groups(_ context.Context, _ aggregator.Dimension, _ *helperAuth.Session, year int) ([]aggregator.Group, error) {
	f.year = year
	return f.groups, nil
}

func (f *fakeRepo) Overview(context.Context, *helperAuth.Session, int) ([]repository.InstitutionOverview, error) {
	return nil, nil
}

func newStatsApp(repo Repo) *fiber.App {
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetSession(c, &helperAuth.Session{UserID: uuid.New(), Role: constants.RoleAdmin})
		return c.Next()
	})
	ctl := &StatsController{Repo: repo, Locale: "fr"}
	app.Get("/stats/:dimension", ctl.ByDimension)
	return app
}

type statsBody struct {
	Data struct {
		Month int `json:"month"`
		Rows  []struct {
			GroupID     string          `json:"group_id"`
			Trainees    int64           `json:"total_trainees"`
			PaymentRate json.RawMessage `json:"payment_rate"`
		} `json:"rows"`
		Trend []struct {
			Month int    `json:"month"`
			Label string `json:"label"`
		} `json:"trend"`
	} `json:"data"`
}

func sampleGroups() []aggregator.Group {
	return []aggregator.Group{
		{ID: "pastry", Name: "Pastry", Records: []aggregator.MonthlyRecord{
			{Month: 3, Totals: aggregator.Totals{
				Trainees: 2,
				Amount:   decimal.NewFromInt(40000),
				Paid:     decimal.NewFromInt(30000),
				Unpaid:   decimal.NewFromInt(10000),
			}},
		}},
		{ID: "bakery", Name: "Bakery"},
	}
}

func TestByDimensionMonthParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  int
		month int
	}{
		{"number", "month=3", fiber.StatusOK, 3},
		{"locale name", "month=mars", fiber.StatusOK, 3},
		{"accented name", "month=F%C3%A9vrier", fiber.StatusOK, 2},
		{"unknown name", "month=brumaire", fiber.StatusBadRequest, 0},
		{"out of range", "month=13", fiber.StatusBadRequest, 0},
		{"absent", "", fiber.StatusOK, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newStatsApp(&fakeRepo{groups: sampleGroups()}).
				Test(httptest.NewRequest("GET", "/stats/course?year=2024&"+tt.query, nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.code {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.code)
			}
			if tt.code != fiber.StatusOK {
				return
			}
			var body statsBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Data.Month != tt.month {
				t.Errorf("month = %d, want %d", body.Data.Month, tt.month)
			}
		})
	}
}

func TestByDimensionTotalRowAndRates(t *testing.T) {
	repo := &fakeRepo{groups: sampleGroups()}
	resp, err := newStatsApp(repo).
		Test(httptest.NewRequest("GET", "/stats/course?year=2024&month=mars&show_total=true", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if repo.year != 2024 {
		t.Errorf("year = %d, want 2024", repo.year)
	}
	var body statsBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	rows := body.Data.Rows
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 2 groups + total", len(rows))
	}
	if last := rows[2]; last.GroupID != aggregator.TotalRowID || last.Trainees != 2 {
		t.Errorf("total row = %+v", last)
	}
	if got := string(rows[0].PaymentRate); got != "0.75" {
		t.Errorf("pastry rate = %s, want 0.75", got)
	}
	if got := string(rows[1].PaymentRate); got != `"N/A"` {
		t.Errorf("bakery rate = %s, want \"N/A\"", got)
	}

	if len(body.Data.Trend) != 12 {
		t.Fatalf("trend points = %d, want 12", len(body.Data.Trend))
	}
	if p := body.Data.Trend[0]; p.Month != 1 || p.Label != "Janvier" {
		t.Errorf("first trend point = %+v", p)
	}
}

func TestByDimensionWithoutTotal(t *testing.T) {
	resp, err := newStatsApp(&fakeRepo{groups: sampleGroups()}).
		Test(httptest.NewRequest("GET", "/stats/course?year=2024", nil))
	if err != nil {
		t.Fatal(err)
	}
	var body statsBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	for _, r := range body.Data.Rows {
		if r.GroupID == aggregator.TotalRowID {
			t.Error("total row present without show_total")
		}
	}
}

func TestByDimensionUnknownDimension(t *testing.T) {
	resp, err := newStatsApp(&fakeRepo{}).
		Test(httptest.NewRequest("GET", "/stats/planet", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
