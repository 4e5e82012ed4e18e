package model

// HydrationDay is the per-day cup counter. Cups is a count of 8-oz cups
// and never goes negative.
type HydrationDay struct {
	Date string // YYYY-MM-DD
	Cups int
}

// CupOunces is the size of one hydration cup.
const CupOunces = 8
