package newsletter

import "time"

type Subscription struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_newsletter_email"`
	CountryCode string    `gorm:"type:char(2);not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (Subscription) TableName() string { return "newsletter_subscriptions" }
