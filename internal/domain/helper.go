package domain

import "time"

// timeNow is swapped out in tests that depend on the calendar day.
var timeNow = time.Now
