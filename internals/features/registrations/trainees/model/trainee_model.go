package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	"trainingcenter_backend/internals/features/registrations/pricing"
)

type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentPostalTransfer PaymentMethod = "postal_transfer"
	PaymentMobilePostal   PaymentMethod = "mobile_postal"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentPostalTransfer, PaymentMobilePostal:
		return true
	}
	return false
}

// ProgramSnapshot freezes what the trainee registered for.
type ProgramSnapshot struct {
	CourseName      string          `json:"course_name"`
	CoursePrice     decimal.Decimal `json:"course_price"`
	InstitutionName string          `json:"institution_name"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
}

type Trainee struct {
	TraineeID uuid.UUID `json:"trainee_id" gorm:"column:trainee_id;type:uuid;primaryKey"`

	TraineeFullName string  `json:"trainee_full_name" gorm:"column:trainee_full_name;type:varchar(150);not null"`
	TraineeEmail    *string `json:"trainee_email,omitempty" gorm:"column:trainee_email;type:varchar(150)"`
	TraineePhone    string  `json:"trainee_phone" gorm:"column:trainee_phone;type:varchar(30);not null"`

	TraineeProgramID  uuid.UUID `json:"trainee_program_id" gorm:"column:trainee_program_id;type:uuid;not null;index"`
	TraineeEmployeeID uuid.UUID `json:"trainee_employee_id" gorm:"column:trainee_employee_id;type:uuid;not null;index"`

	TraineeInitialTranche       decimal.Decimal `json:"trainee_initial_tranche" gorm:"column:trainee_initial_tranche;type:numeric(12,2);not null;default:0"`
	TraineeInitialTrancheMethod PaymentMethod   `json:"trainee_initial_tranche_method" gorm:"column:trainee_initial_tranche_method;type:varchar(20);not null;default:'cash'"`
	TraineeSecondTranche        decimal.Decimal `json:"trainee_second_tranche" gorm:"column:trainee_second_tranche;type:numeric(12,2);not null;default:0"`
	TraineeSecondTrancheMethod  *PaymentMethod  `json:"trainee_second_tranche_method,omitempty" gorm:"column:trainee_second_tranche_method;type:varchar(20)"`
	TraineeDiscount             decimal.Decimal `json:"trainee_discount" gorm:"column:trainee_discount;type:numeric(12,2);not null;default:0"`
	TraineeTotalPrice           decimal.Decimal `json:"trainee_total_price" gorm:"column:trainee_total_price;type:numeric(12,2);not null;default:0"`
	TraineeRest                 decimal.Decimal `json:"trainee_rest" gorm:"column:trainee_rest;type:numeric(12,2);not null;default:0"`

	TraineeNote            *string        `json:"trainee_note,omitempty" gorm:"column:trainee_note;type:text"`
	TraineeProgramSnapshot datatypes.JSON `json:"trainee_program_snapshot,omitempty" gorm:"column:trainee_program_snapshot;type:jsonb"`

	TraineeSecondTrancheConfirmedAt *time.Time `json:"trainee_second_tranche_confirmed_at,omitempty" gorm:"column:trainee_second_tranche_confirmed_at;type:timestamptz"`
	TraineeArchivedAt               *time.Time `json:"trainee_archived_at,omitempty" gorm:"column:trainee_archived_at;type:timestamptz;index"`

	TraineeCreatedAt time.Time `json:"trainee_created_at" gorm:"column:trainee_created_at;type:timestamptz;not null;autoCreateTime;index"`
	TraineeUpdatedAt time.Time `json:"trainee_updated_at" gorm:"column:trainee_updated_at;type:timestamptz;not null;autoUpdateTime"`

	Program *programModel.Program `json:"program,omitempty" gorm:"foreignKey:TraineeProgramID;references:ProgramID"`
}

func (Trainee) TableName() string { return "trainees" }

func (t *Trainee) BeforeCreate(*gorm.DB) error {
	if t.TraineeID == uuid.Nil {
		t.TraineeID = uuid.New()
	}
	return nil
}

func (t *Trainee) Paid() decimal.Decimal {
	return t.TraineeInitialTranche.Add(t.TraineeSecondTranche)
}

func (t *Trainee) PricingInput(coursePrice *decimal.Decimal) pricing.Input {
	return pricing.Input{
		CoursePrice:    coursePrice,
		Discount:       t.TraineeDiscount,
		InitialTranche: t.TraineeInitialTranche,
		SecondTranche:  t.TraineeSecondTranche,
	}
}

func (t *Trainee) ApplyQuote(q pricing.Quote) {
	t.TraineeDiscount = q.Discount
	t.TraineeInitialTranche = q.InitialTranche
	t.TraineeSecondTranche = q.SecondTranche
	t.TraineeTotalPrice = q.TotalPrice
	t.TraineeRest = q.Rest
}

func (t *Trainee) Quote() pricing.Quote {
	return pricing.Quote{
		Discount:       t.TraineeDiscount,
		TotalPrice:     t.TraineeTotalPrice,
		InitialTranche: t.TraineeInitialTranche,
		SecondTranche:  t.TraineeSecondTranche,
		Paid:           t.Paid(),
		Rest:           t.TraineeRest,
	}
}

func (t *Trainee) SetSnapshot(p *programModel.Program) error {
	if p == nil {
		return nil
	}
	s := ProgramSnapshot{
		StartDate: p.ProgramStartDate.Format("2006-01-02"),
		EndDate:   p.ProgramEndDate.Format("2006-01-02"),
	}
	if p.Course != nil {
		s.CourseName = p.Course.CourseName
		s.CoursePrice = p.Course.CoursePrice
	}
	if p.Institution != nil {
		s.InstitutionName = p.Institution.InstitutionName
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	t.TraineeProgramSnapshot = datatypes.JSON(b)
	return nil
}

// SnapshotPrice is the course price frozen at registration, false when no snapshot was taken.
func (t *Trainee) SnapshotPrice() (decimal.Decimal, bool) {
	if len(t.TraineeProgramSnapshot) == 0 {
		return decimal.Zero, false
	}
	var s ProgramSnapshot
	if err := json.Unmarshal(t.TraineeProgramSnapshot, &s); err != nil {
		return decimal.Zero, false
	}
	return s.CoursePrice, true
}

func ScopeActive(db *gorm.DB) *gorm.DB {
	return db.Where("trainee_archived_at IS NULL")
}
