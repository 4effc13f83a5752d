package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/restaurant"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	timeRegex  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

const dateLayout = "2006-01-02"

// ReservationValidator checks reservation requests against the business
// rules. Field-level problems are collected, not short-circuited; the
// availability check runs only once every field passes.
type ReservationValidator struct {
	validate *validator.Validate
}

// NewReservationValidator creates a validator for reservation input
func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{
		validate: validator.New(),
	}
}

// Validate returns the list of human-readable problems with a candidate
// reservation, checking capacity against the existing non-cancelled
// reservations last. An empty slice means the reservation is acceptable.
func (v *ReservationValidator) Validate(input *models.ReservationInput, existing []*models.Reservation) []string {
	errs := v.fieldErrors(input)

	if len(errs) == 0 {
		if ok, msg := CheckAvailability(existing, input.ReservationDate, input.ReservationTime, input.PartySize); !ok {
			errs = append(errs, msg)
		}
	}

	return errs
}

// ValidateBooking validates the chatbot slot set (no email collected in
// the dialogue). Availability is not checked here; the chatbot path only
// generates a confirmation.
func (v *ReservationValidator) ValidateBooking(info *models.BookingInfo) []string {
	var errs []string

	if len(info.CustomerName) < 2 {
		errs = append(errs, "Customer name must be at least 2 characters long")
	}

	if info.PhoneNumber == "" {
		errs = append(errs, "Phone number is required")
	} else if msg := validatePhone(info.PhoneNumber); msg != "" {
		errs = append(errs, msg)
	}

	if info.Date == "" {
		errs = append(errs, "Date is required")
	} else if msg := validateDate(info.Date); msg != "" {
		errs = append(errs, msg)
	}

	if info.Time == "" {
		errs = append(errs, "Time is required")
	} else if info.Date != "" {
		if msg := validateTime(info.Time, info.Date); msg != "" {
			errs = append(errs, msg)
		}
	}

	errs = append(errs, validatePartySize(info.PartySize)...)

	return errs
}

// fieldErrors runs the struct tags for presence/length, then the format
// and business-rule checks for every field that was actually supplied.
func (v *ReservationValidator) fieldErrors(input *models.ReservationInput) []string {
	var errs []string

	if err := v.validate.Struct(input); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range validationErrs {
				errs = append(errs, translateFieldError(fe))
			}
		} else {
			errs = append(errs, "Invalid reservation data")
		}
	}

	if input.CustomerEmail != "" && !emailRegex.MatchString(input.CustomerEmail) {
		errs = append(errs, "Please provide a valid email address")
	}

	if input.CustomerPhone != "" {
		if msg := validatePhone(input.CustomerPhone); msg != "" {
			errs = append(errs, msg)
		}
	}

	if input.ReservationDate != "" {
		if msg := validateDate(input.ReservationDate); msg != "" {
			errs = append(errs, msg)
		}
	}

	if input.ReservationTime != "" && input.ReservationDate != "" {
		if msg := validateTime(input.ReservationTime, input.ReservationDate); msg != "" {
			errs = append(errs, msg)
		}
	}

	if input.PartySize != 0 {
		errs = append(errs, validatePartySize(input.PartySize)...)
	}

	return errs
}

func translateFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "CustomerName":
		if fe.Tag() == "max" {
			return "Customer name must be less than 50 characters"
		}
		return "Customer name must be at least 2 characters long"
	case "CustomerEmail":
		return "Email address is required"
	case "CustomerPhone":
		return "Phone number is required"
	case "ReservationDate":
		return "Reservation date is required"
	case "ReservationTime":
		return "Reservation time is required"
	case "PartySize":
		return "Party size is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func validatePhone(phone string) string {
	clean := utils.StripPhoneSeparators(phone)
	if !phoneRegex.MatchString(clean) {
		return "Please provide a valid phone number"
	}
	return ""
}

func validateDate(dateStr string) string {
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return "Invalid date format"
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	if date.Before(today) {
		return "Cannot book for past dates"
	}
	if date.After(today.AddDate(0, 0, restaurant.MaxAdvanceDays)) {
		return fmt.Sprintf("Cannot book more than %d days in advance", restaurant.MaxAdvanceDays)
	}
	return ""
}

func validateTime(timeStr, dateStr string) string {
	if !timeRegex.MatchString(timeStr) {
		return "Invalid time format (use HH:MM)"
	}

	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		// Date problems get their own message from validateDate.
		return ""
	}

	var hours, minutes int
	fmt.Sscanf(timeStr, "%d:%d", &hours, &minutes)
	timeInMinutes := hours*60 + minutes

	window := restaurant.HoursFor(date)
	if timeInMinutes < window.OpenMinutes || timeInMinutes > window.LastOrderMinutes {
		dayKind := "weekdays"
		if window == restaurant.WeekendHours {
			dayKind = "weekends"
		}
		return fmt.Sprintf("Restaurant is open %d:%02d - %d:%02d on %s",
			window.OpenMinutes/60, window.OpenMinutes%60,
			window.LastOrderMinutes/60, window.LastOrderMinutes%60,
			dayKind)
	}
	return ""
}

func validatePartySize(size int) []string {
	if size < 1 || size > 20 {
		return []string{"Party size must be between 1 and 20 people"}
	}
	if size > restaurant.LargePartyThreshold {
		return []string{fmt.Sprintf("For parties larger than %d, please call us directly at %s",
			restaurant.LargePartyThreshold, restaurant.ContactPhone)}
	}
	return nil
}

// CheckAvailability is a coarse same-slot aggregate check: the party
// sizes of all non-cancelled reservations on the exact date/time plus
// the candidate must fit within the total capacity.
func CheckAvailability(existing []*models.Reservation, date, timeStr string, partySize int) (bool, string) {
	total := partySize
	for _, r := range existing {
		if r.ReservationDate == date && r.ReservationTime == timeStr && r.Status != models.StatusCancelled {
			total += r.PartySize
		}
	}

	if total > restaurant.MaxCapacity {
		return false, "Sorry, we don't have enough availability for your party size at this time. Please try a different time slot."
	}
	return true, ""
}

// TimeSlots returns the ordered bookable HH:MM slots for a date, from
// opening to last order in 30-minute steps.
func TimeSlots(dateStr string) ([]string, error) {
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	window := restaurant.HoursFor(date)
	step := int(restaurant.SlotInterval.Minutes())

	var slots []string
	for m := window.OpenMinutes; m <= window.LastOrderMinutes; m += step {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots, nil
}
