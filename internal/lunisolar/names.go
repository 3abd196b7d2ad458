package lunisolar

// Traditional month and day names. These are calendar data, not UI
// translations, so they live next to the table rather than in the locale
// bundle.

var monthNames = [...]string{
	"正月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "冬月", "腊月",
}

var dayNames = [...]string{
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

const leapPrefix = "闰"

// MonthName renders a month in traditional form, e.g. 正月 or 闰四月.
func MonthName(month int, leap bool) string {
	if month < 1 || month > 12 {
		return ""
	}
	name := monthNames[month-1]
	if leap {
		return leapPrefix + name
	}
	return name
}

// DayName renders a day-of-month in traditional form, e.g. 初一 or 廿三.
func DayName(day int) string {
	if day < 1 || day > 30 {
		return ""
	}
	return dayNames[day-1]
}

// MonthName renders the month of this date, with the leap prefix applied.
func (d Date) MonthName() string {
	return MonthName(d.Month, d.Leap)
}

// DayName renders the day of this date.
func (d Date) DayName() string {
	return DayName(d.Day)
}
