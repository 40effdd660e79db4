package marketdata

import "time"

// Calendar resolves Korean market business days.
// 주말과 법정 공휴일을 건너뛴다. 임시 휴장일은 KRX 응답의
// DataUnavailable 재시도 정책이 흡수한다.
type Calendar struct{}

// NewCalendar creates a calendar for the KRX market
func NewCalendar() *Calendar {
	return &Calendar{}
}

// krHolidays lists Korean statutory market holidays by year (MMDD).
// 설날/추석 연휴는 음력이라 연도별 상수로 관리한다.
var krHolidays = map[int][]string{
	2024: {"0101", "0209", "0212", "0301", "0410", "0501", "0506", "0515", "0606", "0815", "0916", "0917", "0918", "1001", "1003", "1009", "1225", "1230", "1231"},
	2025: {"0101", "0127", "0128", "0129", "0130", "0301", "0303", "0501", "0505", "0506", "0606", "0815", "1003", "1006", "1007", "1008", "1009", "1225", "1231"},
	2026: {"0101", "0216", "0217", "0218", "0301", "0302", "0501", "0505", "0525", "0606", "0815", "0817", "0924", "0925", "0928", "1003", "1005", "1009", "1225", "1231"},
}

// IsBusinessDay reports whether the date is a KRX trading day
func (c *Calendar) IsBusinessDay(date time.Time) bool {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return false
	}

	holidays, ok := krHolidays[date.Year()]
	if !ok {
		// Outside the table only weekends are known; the batch-level retry
		// covers the remaining holiday misses.
		return true
	}

	mmdd := date.Format("0102")
	for _, h := range holidays {
		if h == mmdd {
			return false
		}
	}
	return true
}

// NearestBusinessDay returns the given date if it is a trading day,
// otherwise the nearest earlier trading day.
func (c *Calendar) NearestBusinessDay(date time.Time) time.Time {
	d := date
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// PriorBusinessDay returns the nearest trading day strictly before the date
func (c *Calendar) PriorBusinessDay(date time.Time) time.Time {
	return c.NearestBusinessDay(date.AddDate(0, 0, -1))
}
