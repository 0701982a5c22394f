package cmd

import (
	"fmt"

	"github.com/avtoelite/storefront/internal/config"
	"github.com/avtoelite/storefront/internal/db"
	"github.com/spf13/cobra"
)

// demo catalog rows; safe to run repeatedly.
var seedStmts = []struct {
	desc string
	q    string
	args []any
}{
	{
		"brand bmw",
		`INSERT INTO car_brands (id, name, slug, logo_url, description, display_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NOW())
		 ON DUPLICATE KEY UPDATE name = VALUES(name), display_order = VALUES(display_order)`,
		[]any{"01SEEDBRANDBMW0000000000000", "BMW", "bmw", "/logos/bmw.svg", "BMW M и представительские серии", 1},
	},
	{
		"brand mercedes",
		`INSERT INTO car_brands (id, name, slug, logo_url, description, display_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NOW())
		 ON DUPLICATE KEY UPDATE name = VALUES(name), display_order = VALUES(display_order)`,
		[]any{"01SEEDBRANDMERCEDES00000000", "Mercedes-Benz", "mercedes-benz", "/logos/mercedes.svg", "AMG и Maybach", 2},
	},
	{
		"brand audi",
		`INSERT INTO car_brands (id, name, slug, logo_url, description, display_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NOW())
		 ON DUPLICATE KEY UPDATE name = VALUES(name), display_order = VALUES(display_order)`,
		[]any{"01SEEDBRANDAUDI000000000000", "Audi", "audi", "/logos/audi.svg", "RS и S модели", 3},
	},
	{
		"car bmw m5",
		`INSERT INTO cars (id, brand_id, model, year, price, mileage, color, engine,
		                   transmission, fuel_type, description, specifications, status, is_new_arrival, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'available', 1, NOW())
		 ON DUPLICATE KEY UPDATE price = VALUES(price), status = VALUES(status)`,
		[]any{"01SEEDCARBMWM50000000000000", "01SEEDBRANDBMW0000000000000", "M5 Competition", 2023,
			14500000.0, 12000, "Чёрный", "4.4 V8", "Автомат", "Бензин",
			"Максимальная комплектация", `{"power_hp": 625, "drive": "xDrive"}`},
	},
	{
		"car image bmw m5",
		`INSERT INTO car_images (id, car_id, image_url, is_primary, display_order, created_at)
		 VALUES (?, ?, ?, 1, 0, NOW())
		 ON DUPLICATE KEY UPDATE image_url = VALUES(image_url)`,
		[]any{"01SEEDIMGBMWM50000000000000", "01SEEDCARBMWM50000000000000", "https://cdn.example.com/cars/bmw-m5.jpg"},
	},
	{
		"contact info",
		`INSERT INTO contact_info (id, phone, whatsapp, telegram, instagram, youtube,
		                           address, yandex_map_url, latitude, longitude, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		 ON DUPLICATE KEY UPDATE phone = VALUES(phone), updated_at = NOW()`,
		[]any{"01SEEDCONTACT00000000000000", "+7 (999) 123-45-67", "https://wa.me/79991234567",
			"https://t.me/avtoelite", "https://instagram.com/avtoelite", "https://youtube.com/@avtoelite",
			"Москва, Кутузовский проспект, 1", "https://yandex.ru/maps/-/example", 55.7522, 37.6156},
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo catalog data (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQL(cfg.MySQL.DSN, db.Opts{
			MaxOpenConns: cfg.MySQL.MaxOpenConns,
			MaxIdleConns: cfg.MySQL.MaxIdleConns,
			PingTimeout:  cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sqlDB.Close()

		for _, s := range seedStmts {
			if _, err := sqlDB.Exec(s.q, s.args...); err != nil {
				return fmt.Errorf("seed %s: %w", s.desc, err)
			}
		}

		fmt.Println(">> Seed complete")
		return nil
	},
}
