package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationInDays(t *testing.T) {
	months := Plan{DurationValue: 2, DurationUnit: DurationUnitMonths}
	assert.Equal(t, 60, months.DurationInDays(), "a month counts as 30 days")

	days := Plan{DurationValue: 10, DurationUnit: DurationUnitDays}
	assert.Equal(t, 10, days.DurationInDays())
}

func TestFinalPrice(t *testing.T) {
	plan := Plan{Price: 10000, Discount: 25}
	assert.Equal(t, 7500.0, plan.FinalPrice())

	noDiscount := Plan{Price: 10000}
	assert.Equal(t, 10000.0, noDiscount.FinalPrice())
}
