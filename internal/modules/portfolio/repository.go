package portfolio

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
)

// Repository persists saved recommendations. Saving is explicit user
// action; calculation results otherwise live only in the session.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a portfolio repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "portfolio").Logger(),
	}
}

// Save stores a recommendation under a user-chosen name and returns
// the generated portfolio id.
func (r *Repository) Save(userID, name string, rec *Recommendation) (string, error) {
	id := uuid.NewString()

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO portfolios (
			id, user_id, name, target_amount, initial_capital, term_months,
			inflation_rate, future_value, risk_profile, time_horizon, smart_goal,
			total_investment, expected_return, monthly_payment, future_capital,
			total_months, monthly_rate, annuity_factor
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, name, rec.TargetAmount, rec.InitialCapital, rec.TermMonths,
		rec.InflationRate, rec.FutureValue, string(rec.RiskProfile), string(rec.TimeHorizon), rec.SmartGoal,
		rec.TotalInvestment, rec.ExpectedReturn, rec.MonthlyPayment.MonthlyPayment, rec.MonthlyPayment.FutureCapital,
		rec.MonthlyPayment.TotalMonths, rec.MonthlyPayment.MonthlyRate, rec.MonthlyPayment.AnnuityFactor,
	)
	if err != nil {
		return "", fmt.Errorf("inserting portfolio: %w", err)
	}

	for _, comp := range rec.Composition {
		res, err := tx.Exec(`
			INSERT INTO portfolio_compositions (portfolio_id, asset_class, target_weight, actual_weight, amount)
			VALUES (?, ?, ?, ?, ?)`,
			id, string(comp.Bucket), comp.TargetWeight, comp.ActualWeight, comp.Amount,
		)
		if err != nil {
			return "", fmt.Errorf("inserting composition: %w", err)
		}
		compID, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("reading composition id: %w", err)
		}
		for _, a := range comp.Assets {
			_, err := tx.Exec(`
				INSERT INTO asset_allocations (composition_id, ticker, class, name, quantity, price, weight, amount, expected_return)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				compID, a.Ticker, string(a.Class), a.Name, a.Quantity, a.Price, a.Weight, a.Amount, a.ExpectedReturn,
			)
			if err != nil {
				return "", fmt.Errorf("inserting allocation: %w", err)
			}
		}
	}

	if rec.Plan != nil {
		for _, step := range rec.Plan.Steps {
			actions, err := json.Marshal(step.Actions)
			if err != nil {
				return "", fmt.Errorf("encoding step actions: %w", err)
			}
			_, err = tx.Exec(`
				INSERT INTO plan_steps (portfolio_id, step_number, title, description, actions)
				VALUES (?, ?, ?, ?, ?)`,
				id, step.StepNumber, step.Title, step.Description, string(actions),
			)
			if err != nil {
				return "", fmt.Errorf("inserting plan step: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing save: %w", err)
	}

	r.log.Info().Str("portfolio_id", id).Str("user_id", userID).Msg("portfolio saved")
	return id, nil
}

// ListByUser returns summaries of the user's saved portfolios, newest
// first.
func (r *Repository) ListByUser(userID string) ([]Summary, error) {
	rows, err := r.db.Query(`
		SELECT id, name, target_amount, initial_capital, risk_profile, created_at
		FROM portfolios WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.TargetAmount, &s.InitialCapital, &s.RiskProfile, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning portfolio row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Get loads a full saved recommendation. The user id scopes access so
// one user cannot read another's portfolios.
func (r *Repository) Get(id, userID string) (*Recommendation, error) {
	var rec Recommendation
	var profile, horizon string
	err := r.db.QueryRow(`
		SELECT target_amount, initial_capital, term_months, inflation_rate, future_value,
		       risk_profile, time_horizon, smart_goal, total_investment, expected_return,
		       monthly_payment, future_capital, total_months, monthly_rate, annuity_factor
		FROM portfolios WHERE id = ? AND user_id = ?`, id, userID).Scan(
		&rec.TargetAmount, &rec.InitialCapital, &rec.TermMonths, &rec.InflationRate, &rec.FutureValue,
		&profile, &horizon, &rec.SmartGoal, &rec.TotalInvestment, &rec.ExpectedReturn,
		&rec.MonthlyPayment.MonthlyPayment, &rec.MonthlyPayment.FutureCapital,
		&rec.MonthlyPayment.TotalMonths, &rec.MonthlyPayment.MonthlyRate, &rec.MonthlyPayment.AnnuityFactor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}
	rec.RiskProfile = domain.RiskProfile(profile)
	rec.TimeHorizon = domain.HorizonBucket(horizon)

	if rec.Composition, err = r.loadComposition(id); err != nil {
		return nil, err
	}
	if rec.Plan, err = r.loadPlan(id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a saved portfolio and its children.
func (r *Repository) Delete(id, userID string) error {
	res, err := r.db.Exec(`DELETE FROM portfolios WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting portfolio: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

func (r *Repository) loadComposition(portfolioID string) ([]Composition, error) {
	rows, err := r.db.Query(`
		SELECT id, asset_class, target_weight, actual_weight, amount
		FROM portfolio_compositions WHERE portfolio_id = ? ORDER BY id`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("loading compositions: %w", err)
	}
	defer rows.Close()

	var compositions []Composition
	var ids []int64
	for rows.Next() {
		var comp Composition
		var compID int64
		var bucket string
		if err := rows.Scan(&compID, &bucket, &comp.TargetWeight, &comp.ActualWeight, &comp.Amount); err != nil {
			return nil, fmt.Errorf("scanning composition row: %w", err)
		}
		comp.Bucket = Bucket(bucket)
		compositions = append(compositions, comp)
		ids = append(ids, compID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, compID := range ids {
		assets, err := r.loadAssets(compID)
		if err != nil {
			return nil, err
		}
		compositions[i].Assets = assets
	}
	return compositions, nil
}

func (r *Repository) loadAssets(compositionID int64) ([]AssetAllocation, error) {
	rows, err := r.db.Query(`
		SELECT ticker, class, name, quantity, price, weight, amount, expected_return
		FROM asset_allocations WHERE composition_id = ? ORDER BY id`, compositionID)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}
	defer rows.Close()

	assets := make([]AssetAllocation, 0)
	for rows.Next() {
		var a AssetAllocation
		var class string
		if err := rows.Scan(&a.Ticker, &class, &a.Name, &a.Quantity, &a.Price, &a.Weight, &a.Amount, &a.ExpectedReturn); err != nil {
			return nil, fmt.Errorf("scanning allocation row: %w", err)
		}
		a.Class = domain.AssetClass(class)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *Repository) loadPlan(portfolioID string) (*StepByStepPlan, error) {
	rows, err := r.db.Query(`
		SELECT step_number, title, description, actions
		FROM plan_steps WHERE portfolio_id = ? ORDER BY step_number`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("loading plan steps: %w", err)
	}
	defer rows.Close()

	var steps []PlanStep
	for rows.Next() {
		var step PlanStep
		var actions string
		if err := rows.Scan(&step.StepNumber, &step.Title, &step.Description, &actions); err != nil {
			return nil, fmt.Errorf("scanning plan step: %w", err)
		}
		if err := json.Unmarshal([]byte(actions), &step.Actions); err != nil {
			return nil, fmt.Errorf("decoding step actions: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, nil
	}
	return &StepByStepPlan{Steps: steps, TotalSteps: len(steps)}, nil
}
