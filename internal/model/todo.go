package model

import "time"

// Todo is a single D-Day countdown item created and managed by the user.
type Todo struct {
	// ID is the unique identifier for this item. The store does not
	// enforce uniqueness; callers (the command surface) assign IDs and
	// are responsible for keeping them unique.
	ID string `json:"id"`

	// Title is the human-readable label shown in reminders.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// TargetDate is the D-Day in "YYYY-MM-DD" form, local calendar.
	TargetDate string `json:"targetDate"`

	// NotificationTime is the daily time-of-day in "HH:MM" (24h, local)
	// at which this item is eligible to fire.
	NotificationTime string `json:"notificationTime"`

	// NotifyOffsets lists the days-remaining values at which a reminder
	// should fire: 0 is the day itself, positive values are days before
	// the target, negative values days after. Treated as a set.
	NotifyOffsets []int `json:"notifyOffsets"`

	// Completed items are never evaluated by the scheduler.
	Completed bool `json:"completed"`

	// CreatedAt is informational only and never changes after creation.
	CreatedAt time.Time `json:"createdAt"`
}

// WantsOffset reports whether days is one of the item's notify offsets.
// Duplicate offsets behave like a set.
func (t Todo) WantsOffset(days int) bool {
	for _, off := range t.NotifyOffsets {
		if off == days {
			return true
		}
	}
	return false
}
