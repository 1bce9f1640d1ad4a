// Package analytics computes read-only report rollups over metal transactions.
// Every function is pure: the same transactions in any order give the same report.
package analytics

import (
	"sort"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// AverageRate is amount/weight in paise per gram, or 0 when no weight was traded.
func AverageRate(amount domain.Money, weight domain.Grams) domain.Money {
	if !weight.IsPositive() {
		return 0
	}
	return domain.RoundToMoney(amount.Decimal().Div(weight.Decimal()))
}

type bucket struct {
	count  int
	amount domain.Money
	weight domain.Grams
}

func (b *bucket) add(amount domain.Money, weight domain.Grams) {
	b.count++
	b.amount = b.amount.Add(amount)
	b.weight = b.weight.Add(weight)
}

func (b bucket) totals() domain.TypeTotals {
	return domain.TypeTotals{Count: b.count, TotalAmount: b.amount, TotalWeight: b.weight}
}

// purityOrder ranks purities finest first, unknown grades last by name.
func purityOrder(profile domain.MetalProfile) func(a, b domain.Purity) bool {
	rank := make(map[domain.Purity]int, len(profile.Purities))
	for i, p := range profile.Purities {
		rank[p] = i
	}
	return func(a, b domain.Purity) bool {
		ra, oka := rank[a]
		rb, okb := rank[b]
		switch {
		case oka && okb:
			return ra < rb
		case oka != okb:
			return oka
		default:
			return a < b
		}
	}
}

func breakdown(profile domain.MetalProfile, t domain.TransactionType, txns []domain.MetalTransaction) domain.TypeBreakdown {
	var totals bucket
	byPurity := map[domain.Purity]*bucket{}
	for _, txn := range txns {
		if txn.TransactionType != t {
			continue
		}
		totals.add(txn.Total, txn.TotalWeight)
		for _, item := range txn.Items {
			b, ok := byPurity[item.Purity]
			if !ok {
				b = &bucket{}
				byPurity[item.Purity] = b
			}
			b.add(item.Total, item.Weight)
		}
	}

	less := purityOrder(profile)
	stats := make([]domain.PurityStats, 0, len(byPurity))
	for p, b := range byPurity {
		stats = append(stats, domain.PurityStats{
			Purity:      p,
			Count:       b.count,
			TotalAmount: b.amount,
			TotalWeight: b.weight,
			AverageRate: AverageRate(b.amount, b.weight),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return less(stats[i].Purity, stats[j].Purity) })

	return domain.TypeBreakdown{TransactionType: t, TypeTotals: totals.totals(), ByPurity: stats}
}

// Daily groups one business day's transactions by type then purity.
func Daily(metal domain.Metal, day time.Time, loc *time.Location, txns []domain.MetalTransaction) domain.DailyReport {
	profile := domain.MustProfile(metal)
	start, end := DayBounds(day, loc)
	inDay := filter(txns, metal, start, end)

	buy := breakdown(profile, domain.Buy, inDay)
	sell := breakdown(profile, domain.Sell, inDay)
	return domain.DailyReport{
		Metal: metal,
		Date:  start,
		Buy:   buy,
		Sell:  sell,
		Net:   sell.TotalAmount.Sub(buy.TotalAmount),
	}
}

// Weekly splits the Monday-start week containing day into seven days.
func Weekly(metal domain.Metal, day time.Time, loc *time.Location, txns []domain.MetalTransaction) domain.WeeklyReport {
	start, end := WeekBounds(day, loc)
	inWeek := filter(txns, metal, start, end)

	days := make([]domain.DayTotals, 7)
	index := make(map[string]int, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = domain.DayTotals{Date: d, Weekday: d.Weekday().String()}
		index[dayKey(d, loc)] = i
	}

	buckets := make([][2]bucket, 7)
	var buy, sell bucket
	for _, txn := range inWeek {
		i := index[dayKey(txn.CreatedAt, loc)]
		if txn.TransactionType == domain.Sell {
			buckets[i][1].add(txn.Total, txn.TotalWeight)
			sell.add(txn.Total, txn.TotalWeight)
		} else {
			buckets[i][0].add(txn.Total, txn.TotalWeight)
			buy.add(txn.Total, txn.TotalWeight)
		}
	}
	for i := range days {
		days[i].Buy = buckets[i][0].totals()
		days[i].Sell = buckets[i][1].totals()
		days[i].Net = days[i].Sell.TotalAmount.Sub(days[i].Buy.TotalAmount)
	}

	return domain.WeeklyReport{
		Metal:     metal,
		WeekStart: start,
		WeekEnd:   end.AddDate(0, 0, -1),
		Days:      days,
		Buy:       buy.totals(),
		Sell:      sell.totals(),
		Net:       sell.amount.Sub(buy.amount),
	}
}

type typePurity struct {
	t domain.TransactionType
	p domain.Purity
}

// Monthly groups a month's items by (type, purity) with a per-day breakdown.
func Monthly(metal domain.Metal, year int, month time.Month, loc *time.Location, txns []domain.MetalTransaction) domain.MonthlyReport {
	profile := domain.MustProfile(metal)
	start, end := MonthBounds(year, month, loc)
	inMonth := filter(txns, metal, start, end)

	groups := map[typePurity]*bucket{}
	daily := map[typePurity]map[int]*bucket{}
	var buy, sell bucket
	for _, txn := range inMonth {
		if txn.TransactionType == domain.Sell {
			sell.add(txn.Total, txn.TotalWeight)
		} else {
			buy.add(txn.Total, txn.TotalWeight)
		}
		day := txn.CreatedAt.In(loc).Day()
		for _, item := range txn.Items {
			key := typePurity{txn.TransactionType, item.Purity}
			g, ok := groups[key]
			if !ok {
				g = &bucket{}
				groups[key] = g
				daily[key] = map[int]*bucket{}
			}
			g.add(item.Total, item.Weight)
			d, ok := daily[key][day]
			if !ok {
				d = &bucket{}
				daily[key][day] = d
			}
			d.add(item.Total, item.Weight)
		}
	}

	out := make([]domain.MonthlyGroup, 0, len(groups))
	for key, g := range groups {
		days := make([]domain.DayAmount, 0, len(daily[key]))
		for day, b := range daily[key] {
			days = append(days, domain.DayAmount{Day: day, Count: b.count, TotalAmount: b.amount, TotalWeight: b.weight})
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
		out = append(out, domain.MonthlyGroup{
			TransactionType: key.t,
			Purity:          key.p,
			Count:           g.count,
			TotalAmount:     g.amount,
			TotalWeight:     g.weight,
			AverageRate:     AverageRate(g.amount, g.weight),
			Days:            days,
		})
	}
	less := purityOrder(profile)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionType != out[j].TransactionType {
			return out[i].TransactionType < out[j].TransactionType
		}
		return less(out[i].Purity, out[j].Purity)
	})

	return domain.MonthlyReport{
		Metal:  metal,
		Year:   year,
		Month:  month,
		Groups: out,
		Buy:    buy.totals(),
		Sell:   sell.totals(),
		Net:    sell.amount.Sub(buy.amount),
	}
}

// ProfitLoss totals by type, by customer and by purity. Customers and purities
// are sorted by net amount, highest first.
func ProfitLoss(metal domain.Metal, start, end *time.Time, txns []domain.MetalTransaction) domain.ProfitLossReport {
	profile := domain.MustProfile(metal)
	var buy, sell bucket
	customers := map[string]*domain.CustomerPnL{}
	type purityAcc struct{ buy, sell bucket }
	purities := map[domain.Purity]*purityAcc{}

	for _, txn := range txns {
		if txn.Metal != metal {
			continue
		}
		if start != nil && txn.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && !txn.CreatedAt.Before(*end) {
			continue
		}
		isSell := txn.TransactionType == domain.Sell
		if isSell {
			sell.add(txn.Total, txn.TotalWeight)
		} else {
			buy.add(txn.Total, txn.TotalWeight)
		}

		name := txn.Counterparty.Name()
		c, ok := customers[name]
		if !ok {
			c = &domain.CustomerPnL{Name: name}
			customers[name] = c
		}
		c.Count++
		if isSell {
			c.SellAmount = c.SellAmount.Add(txn.Total)
		} else {
			c.BuyAmount = c.BuyAmount.Add(txn.Total)
		}

		for _, item := range txn.Items {
			acc, ok := purities[item.Purity]
			if !ok {
				acc = &purityAcc{}
				purities[item.Purity] = acc
			}
			if isSell {
				acc.sell.add(item.Total, item.Weight)
			} else {
				acc.buy.add(item.Total, item.Weight)
			}
		}
	}

	byCustomer := make([]domain.CustomerPnL, 0, len(customers))
	for _, c := range customers {
		c.Net = c.SellAmount.Sub(c.BuyAmount)
		byCustomer = append(byCustomer, *c)
	}
	sort.Slice(byCustomer, func(i, j int) bool {
		if byCustomer[i].Net != byCustomer[j].Net {
			return byCustomer[i].Net > byCustomer[j].Net
		}
		return byCustomer[i].Name < byCustomer[j].Name
	})

	less := purityOrder(profile)
	byPurity := make([]domain.PurityPnL, 0, len(purities))
	for p, acc := range purities {
		avgBuy := AverageRate(acc.buy.amount, acc.buy.weight)
		avgSell := AverageRate(acc.sell.amount, acc.sell.weight)
		byPurity = append(byPurity, domain.PurityPnL{
			Purity:      p,
			BuyAmount:   acc.buy.amount,
			SellAmount:  acc.sell.amount,
			BuyWeight:   acc.buy.weight,
			SellWeight:  acc.sell.weight,
			AvgBuyRate:  avgBuy,
			AvgSellRate: avgSell,
			RateSpread:  avgSell.Sub(avgBuy),
			Net:         acc.sell.amount.Sub(acc.buy.amount),
		})
	}
	sort.Slice(byPurity, func(i, j int) bool {
		if byPurity[i].Net != byPurity[j].Net {
			return byPurity[i].Net > byPurity[j].Net
		}
		return less(byPurity[i].Purity, byPurity[j].Purity)
	})

	return domain.ProfitLossReport{
		Metal:      metal,
		StartDate:  start,
		EndDate:    end,
		Buy:        buy.totals(),
		Sell:       sell.totals(),
		Net:        sell.amount.Sub(buy.amount),
		ByCustomer: byCustomer,
		ByPurity:   byPurity,
	}
}

// CustomerHistory aggregates one customer's transactions. From the shop's
// side, the customer "bought" on SELL and "sold" on BUY.
func CustomerHistory(txns []domain.MetalTransaction) domain.CustomerStats {
	var stats domain.CustomerStats
	var last time.Time
	for _, txn := range txns {
		stats.TransactionCount++
		stats.TotalWeight = stats.TotalWeight.Add(txn.TotalWeight)
		if txn.TransactionType == domain.Sell {
			stats.TotalBought = stats.TotalBought.Add(txn.Total)
		} else {
			stats.TotalSold = stats.TotalSold.Add(txn.Total)
		}
		if txn.CreatedAt.After(last) {
			last = txn.CreatedAt
		}
	}
	stats.NetAmount = stats.TotalBought.Sub(stats.TotalSold)
	if !last.IsZero() {
		stats.LastTransactionAt = &last
	}
	return stats
}

func filter(txns []domain.MetalTransaction, metal domain.Metal, start, end time.Time) []domain.MetalTransaction {
	out := make([]domain.MetalTransaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Metal == metal && within(txn.CreatedAt, start, end) {
			out = append(out, txn)
		}
	}
	return out
}
