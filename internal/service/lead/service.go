package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/avtoelite/storefront/internal/logger"
	"github.com/avtoelite/storefront/internal/metrics"
	"github.com/avtoelite/storefront/internal/model"
	"github.com/avtoelite/storefront/internal/notify"
	"github.com/avtoelite/storefront/internal/phone"
	"github.com/avtoelite/storefront/internal/repository"
	"github.com/avtoelite/storefront/internal/util"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const LeadEventsTopic = "leads.events"

// CarGetter is the slice of the cars repository the workflow needs.
type CarGetter interface {
	GetByID(ctx context.Context, id string) (*model.Car, error)
}

// Request carries a submitted form. Numeric fields arrive as free text
// and are parsed here; unparsable values are stored as absent.
type Request struct {
	Category      model.LeadCategory `json:"-"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail string             `json:"customer_email"`
	PhoneCountry  string             `json:"phone_country"`

	CarID string `json:"car_id"`

	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Year            string `json:"year"`
	Mileage         string `json:"mileage"`
	Price           string `json:"price"`
	Budget          string `json:"budget"`
	DeliveryCountry string `json:"delivery_country"`
	Comments        string `json:"comments"`
	Description     string `json:"description"`
}

// Service runs the lead submission workflow: validate, persist (with an
// analytics outbox event in the same tx), then best-effort Telegram
// notification and the notified-flag reconcile.
type Service struct {
	db       *sqlx.DB
	leads    repository.LeadsRepository
	cars     CarGetter
	outbox   repository.OutboxRepository
	notifier notify.Notifier
}

func New(
	db *sqlx.DB,
	leadsRepo repository.LeadsRepository,
	carsRepo CarGetter,
	outboxRepo repository.OutboxRepository,
	notifier notify.Notifier,
) *Service {
	return &Service{
		db:       db,
		leads:    leadsRepo,
		cars:     carsRepo,
		outbox:   outboxRepo,
		notifier: notifier,
	}
}

// Submit runs the five workflow steps in order. Only validation and
// persistence failures reach the caller; notification and reconcile
// failures are logged and swallowed because the record is already
// durable and the channel is advisory.
func (s *Service) Submit(ctx context.Context, req Request) (model.Lead, error) {
	category := req.Category
	if !category.Valid() {
		return model.Lead{}, fmt.Errorf("invalid lead category %q", category)
	}

	// 1) phone validation
	country, ok := phone.ByCode(req.PhoneCountry)
	if !ok {
		metrics.LeadsTotal.WithLabelValues("rejected", category.String()).Inc()
		return model.Lead{}, ErrInvalidPhone
	}
	phoneStr := strings.TrimSpace(req.CustomerPhone)
	if !phone.Valid(phoneStr, country) {
		metrics.LeadsTotal.WithLabelValues("rejected", category.String()).Inc()
		return model.Lead{}, ErrInvalidPhone
	}

	// 2) required fields, first missing one wins
	if field, ok := firstMissing(req); !ok {
		metrics.LeadsTotal.WithLabelValues("rejected", category.String()).Inc()
		return model.Lead{}, &MissingFieldError{Field: field}
	}

	// booking references a concrete catalog car; its details feed the
	// notification message and photo
	var car *model.Car
	if category == model.LeadBooking {
		c, err := s.cars.GetByID(ctx, strings.TrimSpace(req.CarID))
		if err != nil {
			return model.Lead{}, &PersistenceError{Err: fmt.Errorf("load car: %w", err)}
		}
		if c == nil {
			return model.Lead{}, &PersistenceError{Err: fmt.Errorf("car %q not found", req.CarID)}
		}
		car = c
	}

	lead := buildLead(req, country.Code)

	// 3) persist lead + outbox event atomically
	if err := s.persist(ctx, &lead); err != nil {
		return model.Lead{}, &PersistenceError{Err: err}
	}
	metrics.LeadsTotal.WithLabelValues("persisted", category.String()).Inc()

	// 4) best-effort notification, 5) reconcile notified flag
	s.notifyAndReconcile(ctx, &lead, car)

	return lead, nil
}

var requiredByCategory = map[model.LeadCategory][]string{
	model.LeadBooking:    {"customer_name", "car_id"},
	model.LeadOrder:      {"customer_name", "brand", "model"},
	model.LeadSell:       {"customer_name", "brand", "model"},
	model.LeadCommission: {"customer_name", "brand", "model"},
}

func firstMissing(req Request) (string, bool) {
	values := map[string]string{
		"customer_name": req.CustomerName,
		"car_id":        req.CarID,
		"brand":         req.Brand,
		"model":         req.Model,
	}
	for _, field := range requiredByCategory[req.Category] {
		if strings.TrimSpace(values[field]) == "" {
			return field, false
		}
	}
	return "", true
}

func buildLead(req Request, countryCode string) model.Lead {
	lead := model.Lead{
		ID:            util.NewID(),
		Category:      req.Category,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		CustomerEmail: optString(req.CustomerEmail),
		PhoneCountry:  countryCode,
	}

	switch req.Category {
	case model.LeadBooking:
		lead.CarID = optString(req.CarID)
	case model.LeadOrder:
		lead.Brand = optString(req.Brand)
		lead.Model = optString(req.Model)
		lead.Budget = optFloat(req.Budget)
		lead.DeliveryCountry = optString(req.DeliveryCountry)
		lead.Comments = optString(req.Comments)
	case model.LeadSell:
		lead.Brand = optString(req.Brand)
		lead.Model = optString(req.Model)
		lead.Year = optInt(req.Year)
		lead.Mileage = optInt(req.Mileage)
		lead.Price = optFloat(req.Price)
		lead.Description = optString(req.Description)
	case model.LeadCommission:
		lead.Brand = optString(req.Brand)
		lead.Model = optString(req.Model)
		lead.Year = optInt(req.Year)
		lead.Price = optFloat(req.Price)
	}

	return lead
}

func (s *Service) persist(ctx context.Context, lead *model.Lead) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.leads.Insert(ctx, tx, lead); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	event := model.LeadEvent{
		ID:           lead.ID,
		Category:     lead.Category,
		PhoneCountry: lead.PhoneCountry,
		CreatedAt:    lead.CreatedAt,
	}
	if lead.Brand != nil {
		event.Brand = *lead.Brand
	}
	if lead.Model != nil {
		event.Model = *lead.Model
	}
	event.Price = lead.Price

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}
	if err := s.outbox.Insert(ctx, tx, "lead", lead.ID, LeadEventsTopic, payload); err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}

	return tx.Commit()
}

func (s *Service) notifyAndReconcile(ctx context.Context, lead *model.Lead, car *model.Car) {
	msg := notify.Render(*lead, car)

	var err error
	if lead.Category == model.LeadBooking && car != nil && car.PrimaryImage() != "" {
		err = s.notifier.SendPhoto(ctx, car.PrimaryImage(), msg)
	} else {
		err = s.notifier.SendText(ctx, msg)
	}
	if err != nil {
		metrics.LeadsTotal.WithLabelValues("notify_failed", lead.Category.String()).Inc()
		logger.Log.Warn("telegram notification failed",
			zap.String("lead_id", lead.ID),
			zap.String("category", lead.Category.String()),
			zap.Error(err))
		return
	}

	metrics.LeadsTotal.WithLabelValues("notified", lead.Category.String()).Inc()

	if err := s.leads.MarkNotified(ctx, lead.Category, lead.ID); err != nil {
		// the message went out but the flag stays false; acceptable for
		// an advisory channel
		logger.Log.Warn("mark notified failed",
			zap.String("lead_id", lead.ID),
			zap.Error(err))
		return
	}
	lead.Notified = true
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func optFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
