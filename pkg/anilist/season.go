package anilist

import "time"

// Season values accepted by the AniList MediaSeason enum.
const (
	SeasonWinter = "WINTER"
	SeasonSpring = "SPRING"
	SeasonSummer = "SUMMER"
	SeasonFall   = "FALL"
)

// SeasonOf maps a point in time to its (year, season) bucket using
// calendar quarters: Jan-Mar WINTER, Apr-Jun SPRING, Jul-Sep SUMMER,
// Oct-Dec FALL.
func SeasonOf(t time.Time) (int, string) {
	year := t.Year()

	switch t.Month() {
	case time.January, time.February, time.March:
		return year, SeasonWinter
	case time.April, time.May, time.June:
		return year, SeasonSpring
	case time.July, time.August, time.September:
		return year, SeasonSummer
	default:
		return year, SeasonFall
	}
}

// CurrentSeason returns the (year, season) bucket for the current time.
func CurrentSeason() (int, string) {
	return SeasonOf(time.Now())
}
