package util

import "time"

// DaysBetween 返回 from 到 to 之间相差的自然日数（按 loc 时区），不受夏令时影响
func DaysBetween(from, to time.Time, loc *time.Location) int {
	return int(DayKey(to, loc).Sub(DayKey(from, loc)) / (24 * time.Hour))
}

// DayKey 返回 t 在 loc 时区下的日历日期，以该日期的 UTC 零点表示，作为按日统计的键
func DayKey(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
