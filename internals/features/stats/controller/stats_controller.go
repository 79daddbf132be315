package controller

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/configs"
	"trainingcenter_backend/internals/features/stats/aggregator"
	"trainingcenter_backend/internals/features/stats/repository"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

// Repo is what the handlers read; *repository.StatsRepository in production.
type Repo interface {
	Groups(ctx context.Context, dim aggregator.Dimension, sess *helperAuth.Session, year int) ([]aggregator.Group, error)
	Overview(ctx context.Context, sess *helperAuth.Session, year int) ([]repository.InstitutionOverview, error)
}

type StatsController struct {
	Repo   Repo
	Locale string
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{Repo: repository.NewStatsRepository(db), Locale: configs.StatsLocale}
}

type StatsResponse struct {
	Dimension  aggregator.Dimension    `json:"dimension"`
	Year       int                     `json:"year"`
	Month      int                     `json:"month,omitempty"`
	MonthLabel string                  `json:"month_label,omitempty"`
	Rows       []aggregator.Row        `json:"rows"`
	Trend      []aggregator.TrendPoint `json:"trend"`
}

// GET /api/stats/:dimension?year=&month=&show_total=
// Without month the rows are the yearly aggregate.
func (ctl *StatsController) ByDimension(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	dim, ok := aggregator.ParseDimension(c.Params("dimension"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "dimension must be course, institution or employee")
	}
	year, err := helper.QueryYear(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	month, err := ctl.month(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	groups, err := ctl.Repo.Groups(c.UserContext(), dim, sess, year)
	if err != nil {
		return helper.JsonDBError(c, err)
	}

	resp := StatsResponse{Dimension: dim, Year: year, Trend: aggregator.TrendSeries(groups, ctl.Locale)}
	if month > 0 {
		resp.Month = month
		resp.MonthLabel = aggregator.MonthLabel(ctl.Locale, month)
		resp.Rows = aggregator.MonthlyCrossSection(groups, month)
	} else {
		resp.Rows = aggregator.YearlyAggregate(groups)
	}
	if showTotal, _ := strconv.ParseBool(c.Query("show_total", "false")); showTotal {
		resp.Rows = aggregator.WithTotal(resp.Rows, "Total")
	}
	return helper.JsonOK(c, "statistics", resp)
}

// month accepts 1..12 or a month name in the configured locale.
func (ctl *StatsController) month(c *fiber.Ctx) (int, error) {
	raw := c.Query("month")
	if raw == "" {
		return 0, nil
	}
	if _, err := strconv.Atoi(raw); err == nil {
		return helper.QueryMonth(c)
	}
	m, ok := aggregator.MonthIndex(ctl.Locale, raw)
	if !ok {
		return 0, fiber.NewError(fiber.StatusBadRequest, "month is not recognised")
	}
	return m, nil
}

// GET /api/stats/overview?year=
func (ctl *StatsController) Overview(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	year, err := helper.QueryYear(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rows, err := ctl.Repo.Overview(c.UserContext(), sess, year)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "overview", fiber.Map{"year": year, "institutions": rows})
}
