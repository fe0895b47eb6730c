package domain

// CalendarDay is one day of the event as shown on the calendar preview.
type CalendarDay struct {
	Index      int    `json:"index"`
	Date       Date   `json:"date"`
	Hall       string `json:"hall,omitempty"`
	Decoration string `json:"decoration,omitempty"`
	Catering   string `json:"catering,omitempty"`
	Rooms      int    `json:"rooms,omitempty"`
}

// CalendarDays is derived from the date range only. Decoration is set up once,
// so it appears on the first day.
func (d *Draft) CalendarDays() []CalendarDay {
	dates := CalendarRange(d.startDate, d.endDate)
	rooms := 0
	for _, sel := range d.rooms {
		rooms += sel.Quantity
	}

	days := make([]CalendarDay, 0, len(dates))
	for i, date := range dates {
		day := CalendarDay{Index: i + 1, Date: date, Rooms: rooms}
		if d.hall != nil {
			day.Hall = d.hall.Name
		}
		if d.decoration != nil && i == 0 {
			day.Decoration = d.decoration.Name
		}
		if d.catering != nil {
			day.Catering = d.catering.Name
		}
		days = append(days, day)
	}
	return days
}
