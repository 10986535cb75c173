package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/courtbook/internal/clock"
)

type Message struct {
	Subject string
	Body    string
}

// ReservationDetails is what a client needs to recognise a booking.
type ReservationDetails struct {
	FacilityName string
	ClientName   string
	Date         string
	StartTime    string
	EndTime      string
	Court        string
	TotalCents   int64
	DepositCents int64
	PaidCents    int64
	FullyPaid    bool
	Reason       string
}

// FormatDate renders an ISO date as "Friday, Sep 12, 2025". Unparseable
// input is returned unchanged.
func FormatDate(date string) string {
	t, err := clock.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, Jan 2, 2006")
}

func FormatTimeRange(start, end string) string {
	return fmt.Sprintf("%s - %s", formatTime(start), formatTime(end))
}

func formatTime(value string) string {
	t, err := time.Parse(clock.TimeLayout, value)
	if err != nil {
		return value
	}
	return t.Format("3:04 PM")
}

// FormatCents renders an amount in cents with two decimals.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func BuildConfirmation(details ReservationDetails) Message {
	facilityName := fallback(details.FacilityName, "your facility")

	lines := []string{
		greeting(details.ClientName),
		"",
		"Your court reservation is confirmed.",
		"",
		fmt.Sprintf("Facility: %s", facilityName),
		fmt.Sprintf("Court: %s", fallback(details.Court, "TBD")),
		fmt.Sprintf("Date: %s", FormatDate(details.Date)),
		fmt.Sprintf("Time: %s", FormatTimeRange(details.StartTime, details.EndTime)),
		fmt.Sprintf("Total: %s", FormatCents(details.TotalCents)),
	}
	if details.FullyPaid {
		lines = append(lines, "Paid in full: Yes")
	} else {
		lines = append(lines,
			fmt.Sprintf("Deposit required: %s", FormatCents(details.DepositCents)),
			fmt.Sprintf("Paid: %s", FormatCents(details.PaidCents)),
			fmt.Sprintf("Balance due at the court: %s", FormatCents(details.TotalCents-details.PaidCents)),
		)
	}

	return Message{
		Subject: fmt.Sprintf("Reservation Confirmed - %s", facilityName),
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildCancellation(details ReservationDetails) Message {
	facilityName := fallback(details.FacilityName, "your facility")

	lines := []string{
		greeting(details.ClientName),
		"",
		"Your court reservation has been cancelled.",
		"",
		fmt.Sprintf("Facility: %s", facilityName),
		fmt.Sprintf("Court: %s", fallback(details.Court, "TBD")),
		fmt.Sprintf("Date: %s", FormatDate(details.Date)),
		fmt.Sprintf("Time: %s", FormatTimeRange(details.StartTime, details.EndTime)),
	}
	if reason := strings.TrimSpace(details.Reason); reason != "" {
		lines = append(lines, fmt.Sprintf("Reason: %s", reason))
	}

	return Message{
		Subject: fmt.Sprintf("Reservation Cancelled - %s", facilityName),
		Body:    strings.Join(lines, "\n"),
	}
}

func greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hello %s,", name)
}

func fallback(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}
