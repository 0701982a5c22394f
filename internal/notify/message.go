package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avtoelite/storefront/internal/model"
)

// Absent-value placeholders, gender-matched to the field they replace.
const (
	notSpecifiedM  = "Не указан"
	notSpecifiedF  = "Не указана"
	notSpecifiedN  = "Не указано"
	notSpecifiedPl = "Не указаны"
)

var deliveryCountries = map[string]string{
	"germany": "Германия",
	"usa":     "США",
	"uae":     "ОАЭ",
	"japan":   "Япония",
	"italy":   "Италия",
	"uk":      "Великобритания",
	"other":   "Другая страна",
}

// Render builds the category-specific Telegram message for a lead. car is
// only consulted for bookings.
func Render(lead model.Lead, car *model.Car) string {
	switch lead.Category {
	case model.LeadBooking:
		return bookingMessage(lead, car)
	case model.LeadOrder:
		return orderMessage(lead)
	case model.LeadSell:
		return sellMessage(lead)
	case model.LeadCommission:
		return commissionMessage(lead)
	}
	return ""
}

func bookingMessage(lead model.Lead, car *model.Car) string {
	brandName := ""
	if car != nil && car.Brand != nil {
		brandName = car.Brand.Name
	}
	var year int
	var price float64
	var mileage int64
	var mdl string
	var color, engine, transmission, fuel *string
	if car != nil {
		year, price, mileage, mdl = car.Year, car.Price, car.Mileage, car.Model
		color, engine, transmission, fuel = car.Color, car.Engine, car.Transmission, car.FuelType
	}

	return strings.TrimSpace(fmt.Sprintf(`
🚗 <b>Новое бронирование автомобиля!</b>

<b>Автомобиль:</b>
🏷 Марка: %s
🚘 Модель: %s
📅 Год: %d
💰 Цена: %s ₽
📏 Пробег: %s км
🎨 Цвет: %s
⚙️ Двигатель: %s
🔄 КПП: %s
⛽ Топливо: %s

<b>Клиент:</b>
👤 Имя: %s
📞 Телефон: %s (%s)

⏰ Время бронирования: %s`,
		brandName, mdl, year,
		ruFloat(price), ruInt(mileage),
		orElse(color, notSpecifiedM),
		orElse(engine, notSpecifiedM),
		orElse(transmission, notSpecifiedF),
		orElse(fuel, notSpecifiedN),
		lead.CustomerName, lead.CustomerPhone, lead.PhoneCountry,
		stamp(lead)))
}

func orderMessage(lead model.Lead) string {
	budget := notSpecifiedM
	if lead.Budget != nil {
		budget = ruFloat(*lead.Budget) + " ₽"
	}

	country := notSpecifiedF
	if lead.DeliveryCountry != nil && *lead.DeliveryCountry != "" {
		if name, ok := deliveryCountries[*lead.DeliveryCountry]; ok {
			country = name
		} else {
			country = *lead.DeliveryCountry
		}
	}

	return strings.TrimSpace(fmt.Sprintf(`
🎯 <b>Новый заказ автомобиля!</b>

<b>Автомобиль:</b>
🏷 Марка: %s
🚘 Модель: %s
💰 Бюджет: %s
🌍 Страна поставки: %s

<b>Клиент:</b>
👤 Имя: %s
📞 Телефон: %s (%s)
📧 Email: %s

<b>Дополнительная информация:</b>
💬 Пожелания: %s

⏰ Время заявки: %s`,
		orElse(lead.Brand, ""), orElse(lead.Model, ""),
		budget, country,
		lead.CustomerName, lead.CustomerPhone, lead.PhoneCountry,
		orElse(lead.CustomerEmail, notSpecifiedM),
		orElse(lead.Comments, notSpecifiedPl),
		stamp(lead)))
}

func sellMessage(lead model.Lead) string {
	year := notSpecifiedM
	if lead.Year != nil {
		year = strconv.FormatInt(*lead.Year, 10)
	}
	mileage := notSpecifiedM
	if lead.Mileage != nil {
		mileage = ruInt(*lead.Mileage) + " км"
	}
	price := notSpecifiedF
	if lead.Price != nil {
		price = ruFloat(*lead.Price) + " ₽"
	}

	return strings.TrimSpace(fmt.Sprintf(`
💰 <b>Новая заявка на ВЫКУП автомобиля!</b>

<b>Автомобиль:</b>
🏷 Марка: %s
🚘 Модель: %s
📅 Год: %s
📏 Пробег: %s
💵 Желаемая цена: %s

<b>Клиент:</b>
👤 Имя: %s
📞 Телефон: %s (%s)
📧 Email: %s

<b>Дополнительная информация:</b>
💬 %s

⏰ Время заявки: %s`,
		orElse(lead.Brand, ""), orElse(lead.Model, ""),
		year, mileage, price,
		lead.CustomerName, lead.CustomerPhone, lead.PhoneCountry,
		orElse(lead.CustomerEmail, notSpecifiedM),
		orElse(lead.Description, notSpecifiedF),
		stamp(lead)))
}

func commissionMessage(lead model.Lead) string {
	year := notSpecifiedM
	if lead.Year != nil {
		year = strconv.FormatInt(*lead.Year, 10)
	}
	price := notSpecifiedF
	if lead.Price != nil {
		price = ruFloat(*lead.Price) + " ₽"
	}

	return strings.TrimSpace(fmt.Sprintf(`
🏪 <b>Новая заявка на КОМИССИЮ!</b>

<b>Автомобиль:</b>
🏷 Марка: %s
🚘 Модель: %s
📅 Год: %s
💵 Ожидаемая цена: %s

<b>Клиент:</b>
👤 Имя: %s
📞 Телефон: %s (%s)
📧 Email: %s

⏰ Время заявки: %s`,
		orElse(lead.Brand, ""), orElse(lead.Model, ""),
		year, price,
		lead.CustomerName, lead.CustomerPhone, lead.PhoneCountry,
		orElse(lead.CustomerEmail, notSpecifiedM),
		stamp(lead)))
}

func stamp(lead model.Lead) string {
	return lead.CreatedAt.Format("02.01.2006, 15:04:05")
}

func orElse(s *string, placeholder string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholder
	}
	return *s
}

// ruInt renders an integer with space-grouped thousands ("1 250 000").
func ruInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ruFloat renders a price: grouped integer part, comma-separated decimals
// only when present.
func ruFloat(f float64) string {
	whole := int64(f)
	frac := f - float64(whole)
	if frac == 0 {
		return ruInt(whole)
	}
	dec := strconv.FormatFloat(f, 'f', 2, 64)
	parts := strings.SplitN(dec, ".", 2)
	return ruInt(whole) + "," + parts[1]
}
