package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vderm-x/vetcare-app/db"
	"github.com/vderm-x/vetcare-app/models"
	"github.com/vderm-x/vetcare-app/redis"
	"github.com/vderm-x/vetcare-app/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run hourly to catch confirmed appointments scheduled for tomorrow
	_, err := c.AddFunc("0 * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders mails owners of confirmed appointments dated
// tomorrow, at most once per appointment
func sendAppointmentReminders() {
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := db.DB.Preload("User").Preload("Vet").
		Where("status = ? AND date >= ? AND date < ?", models.StatusConfirmed, dayStart, dayEnd).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		markerKey := fmt.Sprintf("reminder:appointment:%d", appointment.ID)
		sent, err := redis.Client.SetNX(redis.Ctx, markerKey, 1, 48*time.Hour).Result()
		if err != nil {
			log.Printf("Redis reminder marker failed for appointment %d: %v", appointment.ID, err)
			continue
		}
		if !sent {
			continue
		}

		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			redis.Client.Del(redis.Ctx, markerKey)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.User.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Vet Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your vet appointment tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Vet:</strong> Dr. %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The VetCare Team</p>
	`, appointment.User.Username, appointment.Vet.Username,
		appointment.Date.Format("2006-01-02"), appointment.TimeSlot, appointment.Reason)

	return utils.SendEmail(appointment.User.Email, subject, body)
}
