package domain

import "mesaYaAdmin/internal/shared/normalization"

// ChartTitle is the heading of the occupancy chart.
const ChartTitle = "Reservas por Día de la Semana"

// OccupancyPoint is one row of the aggregate returned by the API. Both values
// arrive as numeric strings.
type OccupancyPoint struct {
	Weekday string
	Total   string
}

// WeeklySeries holds reservation counts indexed Sunday to Saturday.
type WeeklySeries [DaysInWeek]int

// BuildOccupancyPoints reads the aggregate rows; the boolean is false when the
// payload is not a collection.
func BuildOccupancyPoints(payload any) ([]OccupancyPoint, bool) {
	rawItems := normalization.ItemsFromPayload(payload)
	if rawItems == nil {
		return nil, false
	}
	points := make([]OccupancyPoint, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		points = append(points, OccupancyPoint{
			Weekday: normalization.AsString(rawMap["dia_semana"]),
			Total:   normalization.AsString(rawMap["total_reservas"]),
		})
	}
	return points, true
}

// Reshape maps the points onto a fixed seven slot series. Absent days stay at
// zero, unparsable or out of range entries are ignored and a later entry for the
// same weekday replaces an earlier one.
func Reshape(points []OccupancyPoint) WeeklySeries {
	var series WeeklySeries
	for _, point := range points {
		day, ok := normalization.ParseInt(point.Weekday)
		if !ok || !ValidWeekday(day) {
			continue
		}
		total, ok := normalization.ParseInt(point.Total)
		if !ok {
			continue
		}
		series[day] = total
	}
	return series
}

// Max returns the largest count, used to scale the bars.
func (s WeeklySeries) Max() int {
	highest := 0
	for _, value := range s {
		if value > highest {
			highest = value
		}
	}
	return highest
}

// Total sums the counts of the week.
func (s WeeklySeries) Total() int {
	sum := 0
	for _, value := range s {
		sum += value
	}
	return sum
}

// Bar is one labelled column of the chart.
type Bar struct {
	Label string
	Value int
}

// Chart pairs the weekly series with its labels.
type Chart struct {
	Title  string
	Series WeeklySeries
}

func NewChart(series WeeklySeries) Chart {
	return Chart{Title: ChartTitle, Series: series}
}

func (c Chart) Bars() []Bar {
	labels := WeekdayLabels()
	bars := make([]Bar, DaysInWeek)
	for i := range bars {
		bars[i] = Bar{Label: labels[i], Value: c.Series[i]}
	}
	return bars
}

// Labels and Data are the JSON shape consumed by chart widgets.
func (c Chart) Labels() []string { return WeekdayLabels() }

func (c Chart) Data() []int {
	data := make([]int, DaysInWeek)
	copy(data, c.Series[:])
	return data
}
