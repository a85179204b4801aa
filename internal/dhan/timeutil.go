package dhan

import "time"

const dateLayout = "2006-01-02"

// istOffsetSeconds is the fixed IST offset (+5:30). Indian market time
// has no daylight saving, so a constant offset is correct year round.
const istOffsetSeconds = 5*3600 + 30*60

// marketClose anchors date conversion to the 15:30 IST cash market
// close.
const (
	marketCloseHour   = 15
	marketCloseMinute = 30
)

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// toUTCDate converts an IST calendar date to the UTC calendar date the
// broker expects, anchoring at market close before subtracting the
// offset.
func toUTCDate(date time.Time) string {
	closing := time.Date(date.Year(), date.Month(), date.Day(),
		marketCloseHour, marketCloseMinute, 0, 0, time.UTC)
	return closing.Add(-istOffsetSeconds * time.Second).Format(dateLayout)
}

// utcToISTEpoch shifts a broker UTC epoch timestamp into IST.
func utcToISTEpoch(ts int64) int64 {
	return ts + istOffsetSeconds
}

func isTradingDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// adjustToTradingDays moves a weekend start forward to the next weekday
// and a weekend end back to the previous weekday. A range that lies
// entirely inside a weekend comes back inverted (start after end);
// callers treat that as an empty window.
func adjustToTradingDays(start, end time.Time) (time.Time, time.Time) {
	for !isTradingDay(start) {
		start = start.AddDate(0, 0, 1)
	}
	for !isTradingDay(end) {
		end = end.AddDate(0, 0, -1)
	}
	return start, end
}

// dateChunk is one intraday request window, both bounds inclusive.
type dateChunk struct {
	start time.Time
	end   time.Time
}

// intradayChunks splits a date range into consecutive windows of at
// most maxIntradayWindowDays calendar days. The last chunk may be
// shorter. Consecutive chunks share a boundary date; duplicate candles
// from the overlap are dropped during the merge.
func intradayChunks(start, end time.Time) []dateChunk {
	var chunks []dateChunk
	for start.Before(end) {
		chunkEnd := start.AddDate(0, 0, maxIntradayWindowDays)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		chunks = append(chunks, dateChunk{start: start, end: chunkEnd})
		start = chunkEnd
	}
	return chunks
}
