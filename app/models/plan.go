package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Plan is a saved strategic call plan.
type Plan struct {
	ID           string      `gorm:"primaryKey;type:char(36)" json:"id"`
	ClientName   string      `gorm:"type:varchar(255);not null" json:"clientName"`
	SocialStyle  SocialStyle `gorm:"type:varchar(32);not null" json:"socialStyle"`
	SpinS        *string     `gorm:"type:text" json:"spinS"`
	SpinP        *string     `gorm:"type:text" json:"spinP"`
	SpinI        *string     `gorm:"type:text" json:"spinI"`
	SpinN        *string     `gorm:"type:text" json:"spinN"`
	Storytelling *string     `gorm:"type:text" json:"storytelling"`
	Objection    *string     `gorm:"type:text" json:"objection"`
	Response     *string     `gorm:"type:text" json:"response"`
	CreatedAt    time.Time   `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime:false;not null;index" json:"updatedAt"`
}

// TableName specifies the table name for the Plan model
func (Plan) TableName() string {
	return "call_plans"
}

// PlanInput carries the user-editable fields of a plan. It is the request body
// for create, update and export; an id in the body is accepted and ignored.
type PlanInput struct {
	ID           string      `json:"id,omitempty"`
	ClientName   string      `json:"clientName" validate:"required,max=255"`
	SocialStyle  SocialStyle `json:"socialStyle" validate:"social_style"`
	SpinS        *string     `json:"spinS"`
	SpinP        *string     `json:"spinP"`
	SpinI        *string     `json:"spinI"`
	SpinN        *string     `json:"spinN"`
	Storytelling *string     `json:"storytelling"`
	Objection    *string     `json:"objection"`
	Response     *string     `json:"response"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func planValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("social_style", func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(SocialStyle)
			return ok && s.Valid()
		})
	})
	return validate
}

// Validate checks the fields required to save a plan.
func (in *PlanInput) Validate() error {
	in.ClientName = strings.TrimSpace(in.ClientName)
	err := planValidator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[jsonFieldName(fe.StructField())] = fe.Tag()
	}
	return ve
}

// Apply copies the editable fields onto p. Empty optional fields become NULL.
func (in *PlanInput) Apply(p *Plan) {
	p.ClientName = in.ClientName
	p.SocialStyle = in.SocialStyle
	p.SpinS = nullable(in.SpinS)
	p.SpinP = nullable(in.SpinP)
	p.SpinI = nullable(in.SpinI)
	p.SpinN = nullable(in.SpinN)
	p.Storytelling = nullable(in.Storytelling)
	p.Objection = nullable(in.Objection)
	p.Response = nullable(in.Response)
}

// ToPlan builds an unsaved plan from the input, as used for exports.
func (in *PlanInput) ToPlan() *Plan {
	p := &Plan{ID: in.ID}
	in.Apply(p)
	return p
}

func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

// ValidationError lists the fields that failed validation and the rule they broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
