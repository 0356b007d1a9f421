package demoapi

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantdeck/quantdeck/internal/model"
)

// fixtureUniverse is the ticker universe the fixtures draw from.
var fixtureUniverse = []struct {
	ticker   string
	question string
}{
	{"FED25BP", "Will the Fed cut rates by 25bp at the next meeting?"},
	{"CPI3PCT", "Will headline CPI exceed 3% year over year?"},
	{"NFP250K", "Will nonfarm payrolls beat 250k?"},
	{"GDPQ3UP", "Will Q3 GDP growth be revised upward?"},
	{"OILB100", "Will Brent crude close above $100?"},
	{"BTC150K", "Will Bitcoin trade above $150k this year?"},
	{"VIX30UP", "Will the VIX close above 30 this quarter?"},
	{"EURPAR", "Will EUR/USD reach parity?"},
	{"GOLD3K", "Will gold close above $3000/oz?"},
	{"UST5PCT", "Will the 10Y Treasury yield hit 5%?"},
}

var moverMetrics = map[string]bool{
	model.FieldVolume:    true,
	model.FieldLiquidity: true,
	model.FieldChurnRate: true,
}

func validMoverMetric(metric string) bool {
	return moverMetrics[metric]
}

// marketRows returns up to limit screener rows. Values are deterministic
// functions of the row index so tests can assert on them.
func marketRows(limit int) []model.Row {
	n := len(fixtureUniverse) * 5
	if limit < n {
		n = limit
	}
	rows := make([]model.Row, 0, n)
	for i := 0; i < n; i++ {
		base := fixtureUniverse[i%len(fixtureUniverse)]
		ticker := base.ticker
		if i >= len(fixtureUniverse) {
			ticker = fmt.Sprintf("%s.%d", base.ticker, i/len(fixtureUniverse))
		}
		mid := 0.05 + 0.9*frac(float64(i)*0.37)
		spread := 0.005 + 0.03*frac(float64(i)*0.71)
		rows = append(rows, model.Row{
			model.FieldTicker:      ticker,
			model.FieldQuestion:    base.question,
			model.FieldVolume:      math.Round(1000 + 90000*frac(float64(i)*0.53)),
			model.FieldLiquidity:   math.Round(500+40000*frac(float64(i)*0.29)),
			model.FieldSpread:      round4(spread),
			model.FieldMidPrice:    round4(mid),
			model.FieldTradability: round2(100 * frac(float64(i)*0.61)),
			model.FieldChurnRate:   round4(frac(float64(i) * 0.17)),
			model.FieldUncertainty: round4(4 * mid * (1 - mid)),
		})
	}
	return rows
}

// moverRows returns the top movers for one metric, sorted by absolute
// change, dropping rows whose previous value is below minPrev.
func moverRows(limit int, metric string, minPrev float64) []model.Row {
	all := marketRows(len(fixtureUniverse) * 5)
	rows := make([]model.Row, 0, len(all))
	for i, row := range all {
		cur, _ := row.Float(metric)
		prev := cur / (1 + changeFor(i))
		if prev < minPrev {
			continue
		}
		rows = append(rows, model.Row{
			model.FieldTicker:    row.Str(model.FieldTicker),
			model.FieldQuestion:  row.Str(model.FieldQuestion),
			model.FieldValue:     round2(cur),
			model.FieldPrevValue: round2(prev),
			model.FieldChangePct: round2(100 * changeFor(i)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, _ := rows[i].Float(model.FieldChangePct)
		b, _ := rows[j].Float(model.FieldChangePct)
		return math.Abs(a) > math.Abs(b)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// volIndexRows returns points samples of the realized-volatility index,
// newest first, one per minute.
func volIndexRows(points int, now time.Time) []model.Row {
	rows := make([]model.Row, 0, points)
	for i := 0; i < points; i++ {
		t := now.Add(-time.Duration(i) * time.Minute)
		v := 18 + 6*math.Sin(float64(points-i)/7) + 2*frac(float64(i)*0.41)
		rows = append(rows, model.Row{
			model.FieldTimestamp: t.Format(time.RFC3339),
			model.FieldValue:     round2(v),
		})
	}
	return rows
}

// breadthRows returns hourly delta samples for the composite index, newest
// first.
func breadthRows(hours int, now time.Time) []model.Row {
	rows := make([]model.Row, 0, hours)
	for i := 0; i < hours; i++ {
		t := now.Add(-time.Duration(i) * time.Hour)
		phase := float64(hours - i)
		rows = append(rows, model.Row{
			model.FieldTimestamp:    t.Format(time.RFC3339),
			model.FieldVolumeDelta:  round2(50 + 30*math.Sin(phase/5)),
			model.FieldOIDelta:      round2(20 + 15*math.Cos(phase/9)),
			model.FieldBreadthDelta: round2(10 + 8*math.Sin(phase/3)),
		})
	}
	return rows
}

// changeFor derives a deterministic percentage move for row i in (-0.4, 0.6).
func changeFor(i int) float64 {
	return frac(float64(i)*0.83) - 0.4
}

// frac returns the fractional part of sin-scrambled x, uniform-ish in [0, 1).
func frac(x float64) float64 {
	_, f := math.Modf(math.Abs(math.Sin(x+1) * 43758.5453))
	return f
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// intParam parses an integer query parameter, answering 400 on garbage.
func intParam(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}

func floatParam(c *gin.Context, name string, def float64) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return f, true
}
