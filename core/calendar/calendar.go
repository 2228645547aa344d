// Package calendar resolves project documents into working-hour and capacity
// lookups. A Calendar answers how many hours a given date offers; a Capacity
// scales those hours by role availability and task allocation.
package calendar

import (
	"strconv"
	"time"

	"github.com/asferrer/project-planner-app/core/model"
)

// Calendar is a total, deterministic mapping from dates to working hours.
type Calendar struct {
	defaults        [7]float64
	overrides       map[time.Month]map[time.Weekday]float64
	excludeWeekends bool
}

// New builds a Calendar from the document's working-hours configuration. The
// configuration must have been validated beforehand; unknown weekday names
// are ignored here.
func New(cfg model.ProjectConfig) *Calendar {
	c := &Calendar{excludeWeekends: cfg.ExcludeWeekends}
	for name, hours := range cfg.WorkingHours.Default {
		if wd, ok := model.WeekdayNames[name]; ok {
			c.defaults[wd] = hours
		}
	}
	if len(cfg.WorkingHours.MonthlyOverrides) > 0 {
		c.overrides = make(map[time.Month]map[time.Weekday]float64, len(cfg.WorkingHours.MonthlyOverrides))
		for key, week := range cfg.WorkingHours.MonthlyOverrides {
			m, err := strconv.Atoi(key)
			if err != nil || m < 1 || m > 12 {
				continue
			}
			days := make(map[time.Weekday]float64, len(week))
			for name, hours := range week {
				if wd, ok := model.WeekdayNames[name]; ok {
					days[wd] = hours
				}
			}
			c.overrides[time.Month(m)] = days
		}
	}
	return c
}

// HoursOn returns the working hours available on d. A monthly override
// replaces the whole week for its month: weekdays it does not list count as
// zero. With ExcludeWeekends set, Saturdays and Sundays yield zero unless the
// month's override lists them explicitly.
func (c *Calendar) HoursOn(d model.Date) float64 {
	wd := d.Weekday()
	weekend := wd == time.Saturday || wd == time.Sunday
	if week, ok := c.overrides[d.Month()]; ok {
		hours, explicit := week[wd]
		if weekend && c.excludeWeekends && !explicit {
			return 0
		}
		return hours
	}
	if weekend && c.excludeWeekends {
		return 0
	}
	return c.defaults[wd]
}

// IsWorkingDay reports whether d offers any working hours.
func (c *Calendar) IsWorkingDay(d model.Date) bool {
	return c.HoursOn(d) > 0
}

// NextWorkingDay returns the first working day on or after d, scanning at
// most limit days. The second return value is false when no working day was
// found within the limit.
func (c *Calendar) NextWorkingDay(d model.Date, limit int) (model.Date, bool) {
	for i := 0; i <= limit; i++ {
		if c.IsWorkingDay(d) {
			return d, true
		}
		d = d.AddDays(1)
	}
	return d, false
}
