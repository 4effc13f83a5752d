package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/services"
	"github.com/bistrozen/bistrozen-backend/internal/storage"
)

// DigestJob sends the operator a morning summary of the day's
// reservations.
type DigestJob struct {
	store     storage.Store
	telegram  *services.TelegramService
	isRunning bool
}

// NewDigestJob creates a new digest job scheduler
func NewDigestJob(store storage.Store, telegram *services.TelegramService) *DigestJob {
	return &DigestJob{
		store:    store,
		telegram: telegram,
	}
}

// Start begins the scheduled digest job
func (d *DigestJob) Start() {
	if d.isRunning {
		log.Println("Digest job already running")
		return
	}

	d.isRunning = true
	log.Println("Starting daily reservation digest job...")

	go d.scheduleDailyDigest()
}

// Stop halts the scheduled job
func (d *DigestJob) Stop() {
	d.isRunning = false
	log.Println("Stopping daily reservation digest job...")
}

// scheduleDailyDigest runs every morning at 9 AM local time.
func (d *DigestJob) scheduleDailyDigest() {
	for d.isRunning {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
		if !nextRun.After(now) {
			nextRun = nextRun.AddDate(0, 0, 1)
		}

		duration := nextRun.Sub(now)
		log.Printf("Next reservation digest scheduled in %v", duration)
		time.Sleep(duration)

		if !d.isRunning {
			break
		}

		d.sendDailyDigest()
	}
}

func (d *DigestJob) sendDailyDigest() {
	today := time.Now().Format("2006-01-02")

	reservations, err := d.store.QueryReservations(&models.ReservationFilter{Date: today})
	if err != nil {
		log.Printf("❌ Digest query failed: %v", err)
		return
	}

	var lines []string
	for _, r := range reservations {
		if r.Status != models.StatusPending && r.Status != models.StatusConfirmed {
			continue
		}
		lines = append(lines, fmt.Sprintf("*%s* - %s (%d ppl) - *%s*",
			r.ReservationTime, r.CustomerName, r.PartySize, r.Status))
	}

	text := fmt.Sprintf("☀️ *Good morning! Reservations for %s:*\n\n", today)
	if len(lines) == 0 {
		text += "No reservations today."
	} else {
		text += strings.Join(lines, "\n")
	}

	if err := d.telegram.SendMessage(text); err != nil {
		log.Printf("❌ Failed to send daily digest: %v", err)
		return
	}
	log.Printf("✅ Daily digest sent (%d reservations)", len(lines))
}
