// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService texts customers the day before their booked appointment.
// It runs outside the request path; failures are logged per appointment and
// never touch the booking itself.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders texts every customer with a BOOKED appointment
// tomorrow and a phone number on file.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := utils.BeginningOfDay(tomorrow)
	dayEnd := utils.EndOfDay(tomorrow)

	var appointments []models.Appointment
	err := s.db.Preload("Technician").Preload("Branch").
		Where("status = ? AND start_at BETWEEN ? AND ? AND customer_phone IS NOT NULL", models.StatusBooked, dayStart, dayEnd).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, apt := range appointments {
		s.sendReminder(apt)
	}

	log.Println("Daily reminder processing completed")
}

// reminderRecipient returns the number to text, or false when the
// appointment carries no usable phone.
func reminderRecipient(apt models.Appointment) (string, bool) {
	if apt.CustomerPhone == nil || !utils.ValidatePhone(*apt.CustomerPhone) {
		return "", false
	}
	return *apt.CustomerPhone, true
}

func (s *ReminderService) sendReminder(apt models.Appointment) {
	to, ok := reminderRecipient(apt)
	if !ok {
		if apt.CustomerPhone != nil && *apt.CustomerPhone != "" {
			log.Printf("Skipping reminder for appointment %s: invalid phone number %q", apt.ID, *apt.CustomerPhone)
		}
		return
	}

	techName := ""
	if apt.Technician != nil {
		techName = apt.Technician.Name
	}
	branchName := ""
	if apt.Branch != nil {
		branchName = apt.Branch.Name
	}

	message := fmt.Sprintf("Hi %s, a reminder of your appointment tomorrow at %s with %s (%s). See you there!",
		apt.CustomerName, apt.StartAt.Format("15:04"), techName, branchName)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", to, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", to)
	}

	reminderLog := models.ReminderLog{
		AppointmentID: apt.ID,
		Channel:       "sms",
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", apt.ID, err)
	}
}
