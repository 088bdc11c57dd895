package events

import "time"

// Redis keys of the read models built from order.created events. The day is
// taken in the location of the time passed in.
func ProductsKey(day time.Time) string {
	return "stats:products:" + day.Format(time.DateOnly)
}

func DailyKey(day time.Time) string {
	return "stats:daily:" + day.Format(time.DateOnly)
}
