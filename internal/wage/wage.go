// Package wage computes pay for one worked day under the weekly-tier
// labor model: cumulative weekly hours up to 44 are paid at the regular
// rate, hours in the (44, 68] band at 135%, hours above 68 at 200%, and
// work time overlapping the nightly 21:00-07:00 windows earns an
// additive 115% premium. All arithmetic is fixed-point decimal; callers
// round once at persistence.
package wage

import "github.com/shopspring/decimal"

var (
	weeklyRegularLimit = decimal.NewFromInt(44)
	weeklyTier1Limit   = decimal.NewFromInt(68)

	overtime135Factor = decimal.RequireFromString("1.35")
	overtime200Factor = decimal.RequireFromString("2.00")
	nightFactor       = decimal.RequireFromString("1.15")

	hoursPerShift = decimal.NewFromInt(8)
	daysPerMonth  = decimal.NewFromInt(30)
)

// TierSplit is today's hours clipped against the three weekly bands.
// The three buckets always sum exactly to the today-hours input.
type TierSplit struct {
	Regular     decimal.Decimal
	Overtime135 decimal.Decimal
	Overtime200 decimal.Decimal
}

// SplitWeeklyTiers clips the hour-range [hoursBefore, hoursBefore+todayHours]
// against the weekly bands [0,44], (44,68] and (68, inf).
func SplitWeeklyTiers(hoursBefore, todayHours decimal.Decimal) TierSplit {
	if hoursBefore.IsNegative() {
		hoursBefore = decimal.Zero
	}
	if todayHours.IsNegative() {
		todayHours = decimal.Zero
	}
	end := hoursBefore.Add(todayHours)

	return TierSplit{
		Regular:     clip(hoursBefore, end, decimal.Zero, weeklyRegularLimit),
		Overtime135: clip(hoursBefore, end, weeklyRegularLimit, weeklyTier1Limit),
		Overtime200: clip(hoursBefore, end, weeklyTier1Limit, end),
	}
}

// clip returns the length of the intersection of [aStart,aEnd] and
// [bStart,bEnd], never negative.
func clip(aStart, aEnd, bStart, bEnd decimal.Decimal) decimal.Decimal {
	lo := decimal.Max(aStart, bStart)
	hi := decimal.Min(aEnd, bEnd)
	if hi.LessThanOrEqual(lo) {
		return decimal.Zero
	}
	return hi.Sub(lo)
}

// Input carries everything the day's pay computation needs.
type Input struct {
	TodayHours  decimal.Decimal // productive hours of the target day
	WeeklyHours decimal.Decimal // productive hours of the ISO week, including today
	NightHours  decimal.Decimal // work-session hours inside the night windows
	Rates       Rates
}

// Result holds the bucket hours and the pay per bucket, unrounded.
type Result struct {
	Split      TierSplit
	NightHours decimal.Decimal

	RegularPay     decimal.Decimal
	Overtime135Pay decimal.Decimal
	Overtime200Pay decimal.Decimal
	NightPay       decimal.Decimal
	TotalPay       decimal.Decimal
}

// Calculate splits today's hours into weekly tiers and prices each
// bucket. The night premium is additive: night hours are already
// counted inside the tier buckets and earn the premium on top.
func Calculate(in Input) Result {
	hoursBefore := in.WeeklyHours.Sub(in.TodayHours)
	split := SplitWeeklyTiers(hoursBefore, in.TodayHours)

	res := Result{
		Split:          split,
		NightHours:     in.NightHours,
		RegularPay:     split.Regular.Mul(in.Rates.Regular),
		Overtime135Pay: split.Overtime135.Mul(in.Rates.Overtime135),
		Overtime200Pay: split.Overtime200.Mul(in.Rates.Overtime200),
		NightPay:       in.NightHours.Mul(in.Rates.Night),
	}
	res.TotalPay = res.RegularPay.
		Add(res.Overtime135Pay).
		Add(res.Overtime200Pay).
		Add(res.NightPay)
	return res
}
