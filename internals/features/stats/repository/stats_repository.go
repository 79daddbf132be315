package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/stats/aggregator"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

type recordRow struct {
	GroupID  string
	Month    int
	Trainees int64
	Amount   decimal.Decimal
	Paid     decimal.Decimal
	Unpaid   decimal.Decimal
}

var groupKey = map[aggregator.Dimension]string{
	aggregator.ByCourse:      "p.program_course_id",
	aggregator.ByInstitution: "p.program_institution_id",
	aggregator.ByEmployee:    "t.trainee_employee_id",
}

// records counts every trainee registered in year, archived ones included.
func (r *StatsRepository) records(ctx context.Context, dim aggregator.Dimension, sess *helperAuth.Session, year int) ([]recordRow, error) {
	key, ok := groupKey[dim]
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
	var rows []recordRow
	err := r.DB.WithContext(ctx).Table("trainees AS t").
		Joins("JOIN programs AS p ON p.program_id = t.trainee_program_id").
		Select(key+"::text AS group_id, "+
			"EXTRACT(MONTH FROM t.trainee_created_at)::int AS month, "+
			"COUNT(*) AS trainees, "+
			"COALESCE(SUM(t.trainee_total_price), 0) AS amount, "+
			"COALESCE(SUM(t.trainee_initial_tranche + t.trainee_second_tranche), 0) AS paid, "+
			"COALESCE(SUM(t.trainee_rest), 0) AS unpaid").
		Where("EXTRACT(YEAR FROM t.trainee_created_at) = ?", year).
		Scopes(sess.ScopeColumn("p.program_institution_id")).
		Group("group_id, month").
		Scan(&rows).Error
	return rows, err
}

type groupRow struct {
	ID   string
	Name string
}

// groups lists every live member of the dimension plus anything the records
// still reference (a deleted course, a deactivated employee).
func (r *StatsRepository) groups(ctx context.Context, dim aggregator.Dimension, sess *helperAuth.Session, referenced []string) ([]groupRow, error) {
	db := r.DB.WithContext(ctx)
	var q *gorm.DB
	switch dim {
	case aggregator.ByCourse:
		q = db.Table("courses").
			Select("course_id::text AS id, course_name AS name").
			Where("course_deleted_at IS NULL OR course_id::text IN ?", referenced).
			Order("course_name")
	case aggregator.ByInstitution:
		q = db.Table("institutions").
			Select("institution_id::text AS id, institution_name AS name").
			Where("institution_deleted_at IS NULL OR institution_id::text IN ?", referenced).
			Scopes(sess.ScopeColumn("institution_id")).
			Order("institution_name")
	case aggregator.ByEmployee:
		staff := make([]string, len(constants.StaffRoles))
		for i, role := range constants.StaffRoles {
			staff[i] = string(role)
		}
		q = db.Table("users").
			Select("user_id::text AS id, user_full_name AS name").
			Where("(user_role IN ? AND user_is_active) OR user_id::text IN ?", staff, referenced).
			Order("user_full_name")
		if ids, scoped := sess.InstitutionScope(); scoped {
			own := make(pq.StringArray, len(ids))
			for i, id := range ids {
				own[i] = id.String()
			}
			q = q.Where("user_institution_ids && ?::text[] OR user_id::text IN ?", own, referenced)
		}
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
	var rows []groupRow
	err := q.Scan(&rows).Error
	return rows, err
}

// Groups loads the per-group monthly records of year for one dimension.
func (r *StatsRepository) Groups(ctx context.Context, dim aggregator.Dimension, sess *helperAuth.Session, year int) ([]aggregator.Group, error) {
	recs, err := r.records(ctx, dim, sess, year)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", dim, err)
	}
	byGroup := recordsByGroup(recs)
	referenced := make([]string, 0, len(byGroup))
	for id := range byGroup {
		referenced = append(referenced, id)
	}

	rows, err := r.groups(ctx, dim, sess, referenced)
	if err != nil {
		return nil, fmt.Errorf("load %s groups: %w", dim, err)
	}
	return assemble(rows, byGroup), nil
}

func recordsByGroup(recs []recordRow) map[string][]aggregator.MonthlyRecord {
	byGroup := map[string][]aggregator.MonthlyRecord{}
	for _, rec := range recs {
		byGroup[rec.GroupID] = append(byGroup[rec.GroupID], aggregator.MonthlyRecord{
			Month: rec.Month,
			Totals: aggregator.Totals{
				Trainees: rec.Trainees,
				Amount:   rec.Amount,
				Paid:     rec.Paid,
				Unpaid:   rec.Unpaid,
			},
		})
	}
	return byGroup
}

// assemble keeps the order of rows, then appends groups that only exist in the records, sorted by id.
func assemble(rows []groupRow, byGroup map[string][]aggregator.MonthlyRecord) []aggregator.Group {
	out := make([]aggregator.Group, 0, len(rows))
	seen := map[string]bool{}
	for _, g := range rows {
		seen[g.ID] = true
		out = append(out, aggregator.Group{ID: g.ID, Name: g.Name, Records: byGroup[g.ID]})
	}
	var orphans []string
	for id := range byGroup {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		out = append(out, aggregator.Group{ID: id, Name: id, Records: byGroup[id]})
	}
	return out
}

type InstitutionOverview struct {
	InstitutionID   uuid.UUID `json:"institution_id"`
	InstitutionName string    `json:"institution_name"`
	aggregator.Totals
	PaymentRate aggregator.Rate `json:"payment_rate"`
	Expenses    decimal.Decimal `json:"total_expenses"`
	Net         decimal.Decimal `json:"net"`
}

// Overview sums a year per institution: billed, collected, expenses and net.
func (r *StatsRepository) Overview(ctx context.Context, sess *helperAuth.Session, year int) ([]InstitutionOverview, error) {
	var insts []struct {
		InstitutionID   uuid.UUID
		InstitutionName string
	}
	if err := r.DB.WithContext(ctx).Table("institutions").
		Select("institution_id, institution_name").
		Where("institution_deleted_at IS NULL").
		Scopes(sess.ScopeColumn("institution_id")).
		Order("institution_name").
		Scan(&insts).Error; err != nil {
		return nil, fmt.Errorf("load institutions: %w", err)
	}

	groups, err := r.Groups(ctx, aggregator.ByInstitution, sess, year)
	if err != nil {
		return nil, err
	}
	yearly := map[string]aggregator.Totals{}
	for _, row := range aggregator.YearlyAggregate(groups) {
		yearly[row.GroupID] = row.Totals
	}

	var spent []struct {
		InstitutionID uuid.UUID
		Total         decimal.Decimal
	}
	if err := r.DB.WithContext(ctx).Table("expenses").
		Select("expense_institution_id AS institution_id, COALESCE(SUM(expense_amount), 0) AS total").
		Where("expense_deleted_at IS NULL AND EXTRACT(YEAR FROM expense_spent_on) = ?", year).
		Scopes(sess.ScopeColumn("expense_institution_id")).
		Group("expense_institution_id").
		Scan(&spent).Error; err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	expenses := map[uuid.UUID]decimal.Decimal{}
	for _, s := range spent {
		expenses[s.InstitutionID] = s.Total
	}

	out := make([]InstitutionOverview, 0, len(insts))
	for _, in := range insts {
		t := yearly[in.InstitutionID.String()]
		exp := expenses[in.InstitutionID]
		out = append(out, InstitutionOverview{
			InstitutionID:   in.InstitutionID,
			InstitutionName: in.InstitutionName,
			Totals:          t,
			PaymentRate:     aggregator.PaymentRate(t),
			Expenses:        exp,
			Net:             t.Paid.Sub(exp),
		})
	}
	return out, nil
}
