package notify

import (
	"testing"
	"time"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string   { return &s }
func i64ptr(n int64) *int64     { return &n }
func f64ptr(f float64) *float64 { return &f }

func baseLead(cat model.LeadCategory) model.Lead {
	return model.Lead{
		Category:      cat,
		CustomerName:  "Иван Петров",
		CustomerPhone: "+7 (999) 123-45-67",
		PhoneCountry:  "RU",
		CreatedAt:     time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
	}
}

func TestSellMessageAbsentYearPlaceholder(t *testing.T) {
	lead := baseLead(model.LeadSell)
	lead.Brand = strptr("BMW")
	lead.Model = strptr("M5")
	// year, mileage, price, email, description absent

	msg := Render(lead, nil)

	assert.Contains(t, msg, "ВЫКУП")
	assert.Contains(t, msg, "📅 Год: Не указан")
	assert.Contains(t, msg, "📏 Пробег: Не указан")
	assert.Contains(t, msg, "💵 Желаемая цена: Не указана")
	assert.Contains(t, msg, "📧 Email: Не указан")
	assert.Contains(t, msg, "BMW")
	assert.Contains(t, msg, "+7 (999) 123-45-67 (RU)")
}

func TestSellMessageFilledFields(t *testing.T) {
	lead := baseLead(model.LeadSell)
	lead.Brand = strptr("Mercedes-Benz")
	lead.Model = strptr("G63")
	lead.Year = i64ptr(2021)
	lead.Mileage = i64ptr(45000)
	lead.Price = f64ptr(15500000)

	msg := Render(lead, nil)

	assert.Contains(t, msg, "📅 Год: 2021")
	assert.Contains(t, msg, "📏 Пробег: 45 000 км")
	assert.Contains(t, msg, "💵 Желаемая цена: 15 500 000 ₽")
}

func TestOrderMessageDeliveryCountry(t *testing.T) {
	lead := baseLead(model.LeadOrder)
	lead.Brand = strptr("Porsche")
	lead.Model = strptr("911")
	lead.Budget = f64ptr(20000000)
	lead.DeliveryCountry = strptr("germany")

	msg := Render(lead, nil)

	assert.Contains(t, msg, "Новый заказ автомобиля")
	assert.Contains(t, msg, "💰 Бюджет: 20 000 000 ₽")
	assert.Contains(t, msg, "🌍 Страна поставки: Германия")
	assert.Contains(t, msg, "💬 Пожелания: Не указаны")
}

func TestCommissionMessageAbsentPrice(t *testing.T) {
	lead := baseLead(model.LeadCommission)
	lead.Brand = strptr("Audi")
	lead.Model = strptr("RS6")

	msg := Render(lead, nil)

	assert.Contains(t, msg, "КОМИССИЮ")
	assert.Contains(t, msg, "💵 Ожидаемая цена: Не указана")
}

func TestBookingMessageCarDetails(t *testing.T) {
	lead := baseLead(model.LeadBooking)
	car := &model.Car{
		Model:   "Cayenne",
		Year:    2023,
		Price:   12300000,
		Mileage: 15000,
		Color:   strptr("Чёрный"),
		Brand:   &model.Brand{Name: "Porsche"},
	}

	msg := Render(lead, car)

	assert.Contains(t, msg, "Новое бронирование автомобиля")
	assert.Contains(t, msg, "🏷 Марка: Porsche")
	assert.Contains(t, msg, "🚘 Модель: Cayenne")
	assert.Contains(t, msg, "💰 Цена: 12 300 000 ₽")
	assert.Contains(t, msg, "🎨 Цвет: Чёрный")
	// unset optional car attributes fall back to placeholders
	assert.Contains(t, msg, "⚙️ Двигатель: Не указан")
	assert.Contains(t, msg, "🔄 КПП: Не указана")
	assert.Contains(t, msg, "⛽ Топливо: Не указано")
}

func TestRuNumberFormatting(t *testing.T) {
	assert.Equal(t, "0", ruInt(0))
	assert.Equal(t, "999", ruInt(999))
	assert.Equal(t, "1 000", ruInt(1000))
	assert.Equal(t, "12 345 678", ruInt(12345678))
	assert.Equal(t, "1 500 000", ruFloat(1500000))
	assert.Equal(t, "1 234,50", ruFloat(1234.5))
}
