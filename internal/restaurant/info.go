package restaurant

import "time"

// Static restaurant facts shared by the chatbot, the validation engine
// and the admin digests.
const (
	Name         = "BistroZen"
	ContactPhone = "(123) 456-7890"
	ContactEmail = "info@bistrozen.com"
	Address      = "123 Foodie Lane, Gourmet City, FS 45678"

	// MaxCapacity is the total number of seats we will book for a single
	// date/time slot across all reservations.
	MaxCapacity = 100

	// MaxAdvanceDays limits how far ahead online bookings are accepted.
	MaxAdvanceDays = 90

	// LargePartyThreshold is the largest party size bookable online.
	// Bigger groups are asked to call.
	LargePartyThreshold = 8

	// SlotInterval is the spacing between bookable time slots.
	SlotInterval = 30 * time.Minute
)

// Hours is an open/last-order window in minutes since midnight.
type Hours struct {
	OpenMinutes      int
	LastOrderMinutes int
}

// Operating windows. Weekday: open 12:00, last order 21:30.
// Weekend: open 11:00, last order 22:30.
var (
	WeekdayHours = Hours{OpenMinutes: 12 * 60, LastOrderMinutes: 21*60 + 30}
	WeekendHours = Hours{OpenMinutes: 11 * 60, LastOrderMinutes: 22*60 + 30}
)

// HoursFor returns the operating window for a given date.
func HoursFor(date time.Time) Hours {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return WeekendHours
	default:
		return WeekdayHours
	}
}

// Context is the static restaurant knowledge handed to the text
// generator for question answering and booking confirmations.
const Context = `
BistroZen is a modern European restaurant focusing on fresh, seasonal ingredients and an elegant dining experience.
Our Head Chef, Julian Everwood, is renowned for his innovative approach to classic European dishes.

Opening Hours:
- Monday to Friday: 12:00 PM to 10:00 PM (Last order at 9:30 PM)
- Saturday & Sunday: 11:00 AM to 11:00 PM (Last order at 10:30 PM)

Location: 123 Foodie Lane, Gourmet City, FS 45678
Contact: Phone: (123) 456-7890, Email: info@bistrozen.com

Menu Highlights:
- Appetizers: Gourmet Pizza, Foie Gras Terrine, Burrata Salad.
- Main Courses: Filet Mignon, Pan-Seared Duck Breast, Mushroom Risotto, Catch of the Day.
- Desserts: Lavender Creme brulee, Chocolate Marquise, Artisan Cheese Platter.

Dietary Information:
- We offer a variety of vegetarian, vegan, and gluten-free options. Please inform your server of any allergies or dietary restrictions.
- Our kitchen handles nuts, dairy, gluten, and other allergens. While we take precautions, cross-contamination is possible.

Amenities:
- Full bar with artisanal cocktails, extensive wine list, and craft beers.
- Private dining room available for up to 20 guests (reservations required).
- Outdoor patio seating (seasonal, weather permitting).
- Wheelchair accessible.

Reservations:
- Highly recommended, especially on weekends.
- Can be made via our chatbot, by phone, or through our website.
- For parties larger than 8, please call us directly.

Parking:
- Street parking is available.
- Valet parking available on Friday and Saturday evenings from 6 PM.

Dress Code: Smart casual.

Atmosphere: Elegant yet relaxed, perfect for special occasions, business dinners, or a sophisticated night out.
We do not allow pets, except for certified service animals.
`
