package handler

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"pos_manager/config"
	"pos_manager/constants"
	"pos_manager/model"
	"pos_manager/utils"
)

// StartOrderExpiryScheduler cancels pending orders that were never paid.
// Runs every few minutes so abandoned card checkouts don't pile up.
func StartOrderExpiryScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Println("Error creating order expiry scheduler:", err)
		return
	}

	expiryMinutes := config.ConfigInt("ORDER_EXPIRY_MINUTES", 120)

	_, err = s.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-time.Duration(expiryMinutes) * time.Minute)
			result := db.Model(&model.Order{}).
				Where("status = ? AND created_at < ?", constants.OrderPending, cutoff).
				Updates(map[string]interface{}{
					"status":         constants.OrderCancelled,
					"payment_status": constants.PaymentFailed,
				})
			if result.Error != nil {
				log.Println("Error expiring stale orders:", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("Expired %d stale pending orders", result.RowsAffected)
			}
		}),
	)
	if err != nil {
		log.Println("Error creating order expiry job:", err)
		return
	}

	s.Start()
}

// StartDailyReportScheduler mails each organization its previous day's sales.
func StartDailyReportScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Println("Error creating daily report scheduler:", err)
		return
	}

	reports := &ReportHandler{DB: db}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(func() {
			var orgs []model.Organization
			if err := db.Where("email <> ''").Find(&orgs).Error; err != nil {
				log.Println("Error loading organizations for daily report:", err)
				return
			}
			yesterday := time.Now().AddDate(0, 0, -1)
			for i := range orgs {
				body := reports.DailyReportHTML(&orgs[i], yesterday)
				subject := fmt.Sprintf("Daily sales report %s", yesterday.Format("2006-01-02"))
				utils.SendReportEmail(orgs[i].Email, subject, body)
			}
		}),
	)
	if err != nil {
		log.Println("Error creating daily report job:", err)
		return
	}

	s.Start()
}
