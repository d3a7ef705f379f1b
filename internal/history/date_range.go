package history

import (
	"fmt"
	"strings"
	"time"
)

const (
	// CalendarDateLayoutConstant is the accepted layout for range boundaries.
	CalendarDateLayoutConstant    = "2006-01-02"
	invalidDateTemplateConstant   = "invalid %s date %q: expected YYYY-MM-DD"
	startDateLabelConstant        = "start"
	endDateLabelConstant          = "end"
	gitSinceArgumentTemplate      = "--since=%s"
	gitUntilArgumentTemplate      = "--until=%s"
	lastNanosecondOfDayAdjustment = 24*time.Hour - time.Nanosecond
)

// DateRange bounds commit extraction by calendar dates.
// The bound only applies when both Start and End are set.
type DateRange struct {
	Start string
	End   string
}

// NewDateRange trims the supplied boundaries.
func NewDateRange(start string, end string) DateRange {
	return DateRange{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
}

// Bounded reports whether both boundaries are present.
func (dateRange DateRange) Bounded() bool {
	return len(dateRange.Start) > 0 && len(dateRange.End) > 0
}

// Validate checks that every present boundary is a YYYY-MM-DD date.
func (dateRange DateRange) Validate() error {
	if len(dateRange.Start) > 0 {
		if _, parseError := time.Parse(CalendarDateLayoutConstant, dateRange.Start); parseError != nil {
			return fmt.Errorf(invalidDateTemplateConstant, startDateLabelConstant, dateRange.Start)
		}
	}
	if len(dateRange.End) > 0 {
		if _, parseError := time.Parse(CalendarDateLayoutConstant, dateRange.End); parseError != nil {
			return fmt.Errorf(invalidDateTemplateConstant, endDateLabelConstant, dateRange.End)
		}
	}
	return nil
}

// gitArguments returns the --since/--until flags, or nothing when the range is not bounded.
func (dateRange DateRange) gitArguments() []string {
	if !dateRange.Bounded() {
		return nil
	}
	return []string{
		fmt.Sprintf(gitSinceArgumentTemplate, dateRange.Start),
		fmt.Sprintf(gitUntilArgumentTemplate, dateRange.End),
	}
}

// instants resolves the range to the start of the first day and the last instant of the final day
// in the provided location.
func (dateRange DateRange) instants(location *time.Location) (time.Time, time.Time, error) {
	if validationError := dateRange.Validate(); validationError != nil {
		return time.Time{}, time.Time{}, validationError
	}
	since, _ := time.ParseInLocation(CalendarDateLayoutConstant, dateRange.Start, location)
	untilDay, _ := time.ParseInLocation(CalendarDateLayoutConstant, dateRange.End, location)
	return since, untilDay.Add(lastNanosecondOfDayAdjustment), nil
}
