// Package seed fills a store with generated demo data.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bxcodec/faker/v3"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

var goalNames = []string{
	"New bike", "Vacation", "Emergency fund", "Laptop", "Car repair",
	"Concert tickets", "Home office", "Language course",
}

var txnDescriptions = []string{
	"Groceries", "Salary", "Rent", "Coffee", "Electricity bill",
	"Freelance invoice", "Streaming subscription", "Dinner out",
}

// Run creates n demo users, each with a handful of transactions and goals.
func Run(ctx context.Context, store storage.Store, logger *log.Logger, n int) error {
	l := logger.WithComponent(log.ComponentSeed)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < n; i++ {
		user, err := store.CreateUser(ctx, core.NewUser{
			UserName:       faker.FirstName(),
			CurrentAmount:  core.Money(rng.Int63n(1_000_000)), // up to $10,000.00
			MonthlyInputs:  core.Money(200_000 + rng.Int63n(600_000)),
			MonthlyOutputs: core.Money(100_000 + rng.Int63n(400_000)),
		})
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		txns := 3 + rng.Intn(4)
		for j := 0; j < txns; j++ {
			amount := core.Money(rng.Int63n(50_000) - 25_000)
			if amount == 0 {
				amount = -450
			}
			_, err := store.CreateTransaction(ctx, core.NewTransaction{
				Description: txnDescriptions[rng.Intn(len(txnDescriptions))],
				Amount:      amount,
				UserID:      user.ID,
			})
			if err != nil {
				return fmt.Errorf("seed transaction for user %d: %w", user.ID, err)
			}
		}

		goals := 1 + rng.Intn(3)
		for j := 0; j < goals; j++ {
			deadline := time.Now().AddDate(0, 1+rng.Intn(18), 0).Format(core.DeadlineLayout)
			_, err := store.CreateGoal(ctx, core.NewGoal{
				Name:     goalNames[rng.Intn(len(goalNames))],
				Price:    core.Money(10_000 + rng.Int63n(500_000)),
				UserID:   user.ID,
				Deadline: deadline,
			})
			if err != nil {
				return fmt.Errorf("seed goal for user %d: %w", user.ID, err)
			}
		}

		l.Info("Seeded user", "id", user.ID, "name", user.UserName, "transactions", txns, "goals", goals)
	}

	return nil
}
