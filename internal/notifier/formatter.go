package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"TrendSentinel/internal/model"
	"TrendSentinel/internal/strategy"
)

// FormatResult renders a one-line console summary with scores rounded to
// whole percentages.
func FormatResult(res model.SentimentResult) string {
	line := fmt.Sprintf("%s | intraday: %d%% | weekly: %d%%",
		res.Symbol, strategy.RoundInt(res.IntradayBullish), strategy.RoundInt(res.WeeklyBullish))
	if res.Failed() {
		return line + " | no signal"
	}
	return line + fmt.Sprintf(" | %s / %s", strategy.Trend(res.IntradayBullish), strategy.Trend(res.WeeklyBullish))
}

// FormatReport formats the result and the latest EMA values into a Telegram
// HTML message. series may be nil when the pipeline failed.
func FormatReport(res model.SentimentResult, series model.EnrichedSeries) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>EMA Sentiment</b> | %s | %s\n\n", html.EscapeString(res.Symbol), time.Now().Format("2006-01-02")))

	if res.Failed() {
		b.WriteString(fmt.Sprintf("❌ 无可用信号: %s\n", html.EscapeString(res.Error)))
		return b.String()
	}

	if len(series) > 0 {
		last := series[len(series)-1]
		b.WriteString(fmt.Sprintf("日线收盘: %s (%s)\n", num(last.Price), last.Datetime.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("EMA5/10/15: %s / %s / %s\n", num(last.DailyEMA5), num(last.DailyEMA10), num(last.DailyEMA15)))

		price1w, _ := model.LookupColumn(model.ColPrice1W)
		if i := series.LastValid(price1w); i >= 0 {
			wk := series[i]
			b.WriteString(fmt.Sprintf("周线均价: %s\n", num(wk.WeeklyPrice)))
			b.WriteString(fmt.Sprintf("周EMA5/10/15: %s / %s / %s\n", num(wk.WeeklyEMA5), num(wk.WeeklyEMA10), num(wk.WeeklyEMA15)))
		}
		b.WriteString("\n")
	}

	b.WriteString("📈 <b>多头强度:</b>\n")
	b.WriteString(fmt.Sprintf("  日线: %.2f%% %s\n", res.IntradayBullish, strategy.Trend(res.IntradayBullish)))
	b.WriteString(fmt.Sprintf("  周线: %.2f%% %s\n", res.WeeklyBullish, strategy.Trend(res.WeeklyBullish)))
	return b.String()
}

func num(v null.Float) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", v.Float64)
}
