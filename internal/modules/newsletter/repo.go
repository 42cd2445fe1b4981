package newsletter

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Create inserts s; a duplicate email yields ErrAlreadySubscribed.
func (r *Repo) Create(ctx context.Context, s *Subscription) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if IsDuplicateKey(err) {
		return ErrAlreadySubscribed
	}
	return err
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error
	return s, err
}

func (r *Repo) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&Subscription{})
	return res.RowsAffected > 0, res.Error
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
