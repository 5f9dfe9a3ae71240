package analysis

import (
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"unemploycli/pkg/contracts/domain"
)

// PeriodStats describes one side of an event cutoff. Mean is nil when the
// side holds no records.
type PeriodStats struct {
	Count int       `json:"count"`
	Mean  *float64  `json:"mean"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// HasData reports whether the period holds at least one record
func (p PeriodStats) HasData() bool {
	return p.Mean != nil
}

// EventImpact compares the rates before and after an event cutoff
type EventImpact struct {
	EventName string      `json:"event_name,omitempty"`
	Cutoff    time.Time   `json:"cutoff"`
	Pre       PeriodStats `json:"pre"`
	Post      PeriodStats `json:"post"`

	// Delta is Post.Mean - Pre.Mean; PercentChange is Delta relative to
	// Pre.Mean. Both are nil unless each side has data.
	Delta         *float64 `json:"delta"`
	PercentChange *float64 `json:"percent_change"`
}

// ShortName is the event name without a trailing qualifier, so "Covid-19"
// becomes "Covid". An unnamed event is called "Event".
func (e EventImpact) ShortName() string {
	if e.EventName == "" {
		return "Event"
	}
	if head, _, ok := strings.Cut(e.EventName, "-"); ok && head != "" {
		return head
	}
	return e.EventName
}

// Partition splits records at cutoff. pre holds records dated strictly
// before cutoff, post the rest; each keeps input order.
func Partition(records []domain.RateRecord, cutoff time.Time) (pre, post []domain.RateRecord) {
	for _, r := range records {
		if r.Date.Before(cutoff) {
			pre = append(pre, r)
		} else {
			post = append(post, r)
		}
	}
	return pre, post
}

// CompareEvent partitions records at cutoff and summarises each side
func CompareEvent(records []domain.RateRecord, cutoff time.Time) EventImpact {
	pre, post := Partition(records, cutoff)

	impact := EventImpact{
		Cutoff: cutoff,
		Pre:    periodStats(pre),
		Post:   periodStats(post),
	}

	if impact.Pre.HasData() && impact.Post.HasData() {
		delta := *impact.Post.Mean - *impact.Pre.Mean
		impact.Delta = &delta
		if *impact.Pre.Mean != 0 {
			pct := delta / *impact.Pre.Mean * 100
			impact.PercentChange = &pct
		}
	}

	return impact
}

func periodStats(records []domain.RateRecord) PeriodStats {
	ps := PeriodStats{Count: len(records)}
	if len(records) == 0 {
		return ps
	}

	mean := stat.Mean(rates(records), nil)
	ps.Mean = &mean
	ps.From, ps.To = dateRange(records)
	return ps
}

// rates extracts the rate column of records
func rates(records []domain.RateRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Rate
	}
	return values
}

func dateRange(records []domain.RateRecord) (first, last time.Time) {
	for i, r := range records {
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last
}
