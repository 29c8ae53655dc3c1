package domain

// DaysInWeek is the length of every weekly series; index 0 is Sunday.
const DaysInWeek = 7

var weekdayLabels = [DaysInWeek]string{
	"Domingo",
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
}

// WeekdayLabels returns the chart labels ordered Sunday to Saturday.
func WeekdayLabels() []string {
	labels := make([]string, DaysInWeek)
	copy(labels, weekdayLabels[:])
	return labels
}

// ValidWeekday reports whether index addresses a slot of the weekly series.
func ValidWeekday(index int) bool {
	return index >= 0 && index < DaysInWeek
}
