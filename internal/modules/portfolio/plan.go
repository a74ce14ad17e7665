package portfolio

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// scheduleMonths is how many months the purchase schedule simulates.
const scheduleMonths = 6

// GeneratePlan builds the ordered action plan for a recommendation.
// The plan is derived entirely from the recommendation and can be
// regenerated at any time.
func GeneratePlan(rec *Recommendation) *StepByStepPlan {
	steps := make([]PlanStep, 0, 4)

	if rec.InitialCapital > 0 {
		steps = append(steps, initialStep(rec))
	}
	if rec.MonthlyPayment.MonthlyPayment > 0 {
		steps = append(steps, monthlyStep(rec))
		steps = append(steps, scheduleStep(rec))
	}
	steps = append(steps, reviewStep())

	for i := range steps {
		steps[i].StepNumber = i + 1
	}

	return &StepByStepPlan{
		Steps:       steps,
		TotalSteps:  len(steps),
		GeneratedAt: time.Now().UTC(),
	}
}

// initialStep splits the starting capital by each bucket's share of
// the planned total. Using the realized composition amounts rather
// than the nominal target weights keeps the lump sum aligned with
// what the engine actually managed to buy.
func initialStep(rec *Recommendation) PlanStep {
	var total float64
	for _, comp := range rec.Composition {
		total += comp.Amount
	}

	actions := make([]string, 0, 8)
	for _, comp := range rec.Composition {
		if len(comp.Assets) == 0 {
			continue
		}
		share := comp.TargetWeight
		if total > 0 {
			share = comp.Amount / total
		}
		bucketBudget := rec.InitialCapital * share

		var weightSum float64
		for _, a := range comp.Assets {
			weightSum += a.Weight
		}
		for _, a := range comp.Assets {
			if weightSum <= 0 || a.Price <= 0 {
				continue
			}
			budget := bucketBudget * (a.Weight / weightSum)
			quantity := int(math.Floor(budget / a.Price))
			if quantity <= 0 {
				continue
			}
			actions = append(actions, fmt.Sprintf("Buy %d x %s (%s) at %.2f, total %.2f",
				quantity, a.Ticker, a.Name, a.Price, float64(quantity)*a.Price))
		}
	}
	if len(actions) == 0 {
		actions = append(actions, "Keep the starting capital in cash until prices allow a first purchase")
	}

	return PlanStep{
		Title:       "Invest the starting capital",
		Description: fmt.Sprintf("Place the starting capital of %.2f according to the portfolio structure", rec.InitialCapital),
		Actions:     actions,
	}
}

// monthlyStep states the monthly budget per bucket implied by the
// target weights.
func monthlyStep(rec *Recommendation) PlanStep {
	payment := rec.MonthlyPayment.MonthlyPayment
	actions := make([]string, 0, len(rec.Composition))
	for _, comp := range rec.Composition {
		if comp.TargetWeight <= 0 {
			continue
		}
		actions = append(actions, fmt.Sprintf("%s: %.2f per month (%.0f%%)",
			bucketLabel(comp.Bucket), payment*comp.TargetWeight, comp.TargetWeight*100))
	}

	return PlanStep{
		Title:       "Set up the monthly contribution",
		Description: fmt.Sprintf("Contribute %.2f every month, split across the asset classes", payment),
		Actions:     actions,
	}
}

type scheduledAsset struct {
	ticker  string
	name    string
	price   float64
	monthly float64
	balance float64
}

// scheduleStep simulates the first months of contributions. Balances
// accumulate per instrument and purchases happen cheapest-first as
// soon as a balance affords a unit, capped by the month's budget.
func scheduleStep(rec *Recommendation) PlanStep {
	payment := rec.MonthlyPayment.MonthlyPayment

	assets := make([]*scheduledAsset, 0, 8)
	for _, comp := range rec.Composition {
		var weightSum float64
		for _, a := range comp.Assets {
			weightSum += a.Weight
		}
		if weightSum <= 0 {
			continue
		}
		bucketBudget := payment * comp.TargetWeight
		for _, a := range comp.Assets {
			if a.Price <= 0 {
				continue
			}
			assets = append(assets, &scheduledAsset{
				ticker:  a.Ticker,
				name:    a.Name,
				price:   a.Price,
				monthly: bucketBudget * (a.Weight / weightSum),
			})
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].price < assets[j].price })

	actions := make([]string, 0, scheduleMonths)
	for month := 1; month <= scheduleMonths; month++ {
		capRemaining := payment
		var purchases []string
		var spent float64

		for _, a := range assets {
			a.balance += a.monthly
			if a.balance < a.price || capRemaining < a.price {
				continue
			}
			affordable := int(math.Floor(a.balance / a.price))
			capped := int(math.Floor(capRemaining / a.price))
			quantity := affordable
			if capped < quantity {
				quantity = capped
			}
			if quantity <= 0 {
				continue
			}
			cost := float64(quantity) * a.price
			a.balance -= cost
			capRemaining -= cost
			spent += cost
			purchases = append(purchases, fmt.Sprintf("buy %d x %s for %.2f", quantity, a.ticker, cost))
		}

		if len(purchases) == 0 {
			actions = append(actions, fmt.Sprintf("Month %d: save %.2f toward the next purchase", month, payment))
			continue
		}
		actions = append(actions, fmt.Sprintf("Month %d: %s (%.2f spent)", month, strings.Join(purchases, " + "), spent))
	}

	return PlanStep{
		Title:       fmt.Sprintf("Purchase schedule for the first %d months", scheduleMonths),
		Description: "Accumulate each instrument's monthly share and buy whenever a full unit is affordable",
		Actions:     actions,
	}
}

func reviewStep() PlanStep {
	return PlanStep{
		Title:       "Review and rebalance",
		Description: "Keep the portfolio aligned with the plan over time",
		Actions: []string{
			"Check instrument prices and your balances once a month",
			"Rebalance back to the target weights every six months",
			"Redo the risk questionnaire after major life changes",
			"When the goal amount is reached, congratulations: move gains to lower-risk assets",
		},
	}
}

func bucketLabel(b Bucket) string {
	switch b {
	case BucketStocks:
		return "Stocks"
	case BucketBonds:
		return "Bonds"
	case BucketGold:
		return "Gold"
	case BucketRealEstate:
		return "Real estate"
	}
	return string(b)
}
