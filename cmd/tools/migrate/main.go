// Command migrate creates the storefront's own tables (newsletter sign-ups).
// Everything else lives in the commerce backend.
package main

import (
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
)

const createNewsletter = `
CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
  id CHAR(36) NOT NULL,
  email VARCHAR(255) NOT NULL,
  country_code CHAR(2) NOT NULL,
  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
  PRIMARY KEY (id),
  UNIQUE KEY ux_newsletter_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if strings.TrimSpace(cfg.DB.DSN) == "" {
		log.Fatal("DB_DSN is not set")
	}

	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Exec(createNewsletter).Error; err != nil {
		log.Fatalf("Failed to create newsletter_subscriptions: %v", err)
	}
	log.Println("newsletter_subscriptions is up to date")
}
