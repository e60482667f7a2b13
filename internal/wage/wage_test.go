package wage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSplitWeeklyTiers_CrossesRegularLimit(t *testing.T) {
	// 40 prior weekly hours, 8 today: 4 regular to reach 44, 4 at 135%.
	split := SplitWeeklyTiers(d("40"), d("8"))

	assert.True(t, split.Regular.Equal(d("4")), "regular = %s", split.Regular)
	assert.True(t, split.Overtime135.Equal(d("4")), "overtime135 = %s", split.Overtime135)
	assert.True(t, split.Overtime200.Equal(d("0")), "overtime200 = %s", split.Overtime200)
}

func TestSplitWeeklyTiers_CrossesTier1Limit(t *testing.T) {
	// 66 prior weekly hours, 6 today: 2 hours fill 66->68, 4 above 68.
	split := SplitWeeklyTiers(d("66"), d("6"))

	assert.True(t, split.Regular.IsZero())
	assert.True(t, split.Overtime135.Equal(d("2")), "overtime135 = %s", split.Overtime135)
	assert.True(t, split.Overtime200.Equal(d("4")), "overtime200 = %s", split.Overtime200)
}

func TestSplitWeeklyTiers_AllRegular(t *testing.T) {
	split := SplitWeeklyTiers(d("10"), d("8.25"))

	assert.True(t, split.Regular.Equal(d("8.25")))
	assert.True(t, split.Overtime135.IsZero())
	assert.True(t, split.Overtime200.IsZero())
}

func TestSplitWeeklyTiers_BucketsSumToTodayHours(t *testing.T) {
	cases := []struct{ before, today string }{
		{"0", "0"},
		{"0", "12.5"},
		{"43.75", "0.5"},
		{"40", "8"},
		{"44", "24"},
		{"66", "6"},
		{"67.9", "0.2"},
		{"70", "9.33"},
		{"100", "1"},
	}

	for _, tc := range cases {
		split := SplitWeeklyTiers(d(tc.before), d(tc.today))
		sum := split.Regular.Add(split.Overtime135).Add(split.Overtime200)
		assert.True(t, sum.Equal(d(tc.today)),
			"before=%s today=%s: buckets sum to %s", tc.before, tc.today, sum)
	}
}

func TestResolveRates_PrecedenceOrder(t *testing.T) {
	salary := d("48000") // 48000/30/8 = 200/hr
	posRate := d("12.50")
	campRate := d("9")

	fixed := ResolveRates(RateRefs{
		HasFixedSalary:      true,
		CustomMonthlySalary: &salary,
		PositionHourlyRate:  &posRate,
		CampaignHourlyRate:  &campRate,
	})
	assert.Equal(t, SourceCustomSalary, fixed.Source)
	assert.True(t, fixed.Regular.Equal(d("200")), "regular = %s", fixed.Regular)

	position := ResolveRates(RateRefs{
		PositionHourlyRate: &posRate,
		CampaignHourlyRate: &campRate,
	})
	assert.Equal(t, SourcePosition, position.Source)
	assert.True(t, position.Regular.Equal(posRate))

	campaign := ResolveRates(RateRefs{CampaignHourlyRate: &campRate})
	assert.Equal(t, SourceCampaign, campaign.Source)
	assert.True(t, campaign.Regular.Equal(campRate))

	none := ResolveRates(RateRefs{})
	assert.Equal(t, SourceNone, none.Source)
	assert.True(t, none.Regular.IsZero())
	assert.True(t, none.Overtime135.IsZero())
}

func TestResolveRates_DerivedBucketRates(t *testing.T) {
	rate := d("10")
	rates := ResolveRates(RateRefs{PositionHourlyRate: &rate})

	assert.True(t, rates.Overtime135.Equal(d("13.50")), "ot135 = %s", rates.Overtime135)
	assert.True(t, rates.Overtime200.Equal(d("20")), "ot200 = %s", rates.Overtime200)
	assert.True(t, rates.Night.Equal(d("11.50")), "night = %s", rates.Night)
}

func TestCalculate_RegularPlusOvertimeExample(t *testing.T) {
	// $10/hr, 4 regular + 4 overtime135 hours -> 4*10 + 4*13.50 = 94.00
	rate := d("10")
	res := Calculate(Input{
		TodayHours:  d("8"),
		WeeklyHours: d("48"),
		NightHours:  decimal.Zero,
		Rates:       ResolveRates(RateRefs{PositionHourlyRate: &rate}),
	})

	assert.True(t, res.RegularPay.Equal(d("40")), "regular pay = %s", res.RegularPay)
	assert.True(t, res.Overtime135Pay.Equal(d("54")), "ot135 pay = %s", res.Overtime135Pay)
	assert.True(t, res.TotalPay.Equal(d("94")), "total pay = %s", res.TotalPay)
}

func TestCalculate_NightPremiumIsAdditive(t *testing.T) {
	rate := d("10")
	res := Calculate(Input{
		TodayHours:  d("8"),
		WeeklyHours: d("8"),
		NightHours:  d("2"),
		Rates:       ResolveRates(RateRefs{PositionHourlyRate: &rate}),
	})

	// 8 regular hours stay fully priced; the 2 night hours earn the
	// 115% premium on top.
	assert.True(t, res.RegularPay.Equal(d("80")))
	assert.True(t, res.NightPay.Equal(d("23")), "night pay = %s", res.NightPay)
	assert.True(t, res.TotalPay.Equal(d("103")), "total pay = %s", res.TotalPay)
}

func TestCalculate_ZeroRateEmployee(t *testing.T) {
	res := Calculate(Input{
		TodayHours:  d("9"),
		WeeklyHours: d("50"),
		NightHours:  d("1"),
		Rates:       ResolveRates(RateRefs{}),
	})

	assert.True(t, res.TotalPay.IsZero())
	// Hours are still bucketed even when unpriced.
	sum := res.Split.Regular.Add(res.Split.Overtime135).Add(res.Split.Overtime200)
	assert.True(t, sum.Equal(d("9")))
}
