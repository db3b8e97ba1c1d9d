// Package core holds the domain records shared by the API server, the web
// client, and the storage backends. All monetary values travel as integer
// cents (see Money) and all JSON field names match the wire contract of the
// REST API.
package core

import "time"

// DeadlineLayout is the calendar-date format used for goal deadlines on the
// wire and in forms.
const DeadlineLayout = "2006-01-02"

// User is an account holder with a balance and fixed monthly flows.
type User struct {
	ID             int64  `json:"id"`
	UserName       string `json:"user_name"`
	CurrentAmount  Money  `json:"current_amount"`
	MonthlyInputs  Money  `json:"monthly_inputs"`
	MonthlyOutputs Money  `json:"monthly_outputs"`
}

// NewUser carries the fields required to create a user.
type NewUser struct {
	UserName       string `json:"user_name"`
	CurrentAmount  Money  `json:"current_amount"`
	MonthlyInputs  Money  `json:"monthly_inputs"`
	MonthlyOutputs Money  `json:"monthly_outputs"`
}

// UserPatch is a partial update of a user. Nil fields are left untouched.
type UserPatch struct {
	UserName       *string `json:"user_name,omitempty"`
	CurrentAmount  *Money  `json:"current_amount,omitempty"`
	MonthlyInputs  *Money  `json:"monthly_inputs,omitempty"`
	MonthlyOutputs *Money  `json:"monthly_outputs,omitempty"`
}

// Transaction is a single signed movement belonging to exactly one user.
// CreatedAt is assigned by the server and read-only afterwards.
type Transaction struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      Money     `json:"amount"`
	IsDebt      bool      `json:"is_debt"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTransaction carries the fields required to create a transaction.
type NewTransaction struct {
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
	IsDebt      bool   `json:"is_debt"`
	UserID      int64  `json:"user_id"`
}

// TransactionPatch is a partial update of a transaction. Ownership (UserID)
// is immutable after creation and therefore not patchable.
type TransactionPatch struct {
	Description *string `json:"description,omitempty"`
	Amount      *Money  `json:"amount,omitempty"`
	IsDebt      *bool   `json:"is_debt,omitempty"`
}

// Goal is a savings target belonging to exactly one user. Deadline is an
// optional calendar date in DeadlineLayout format; empty means no deadline.
type Goal struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	Pros        string    `json:"pros,omitempty"`
	Cons        string    `json:"cons,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewGoal carries the fields required to create a goal.
type NewGoal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Pros        string `json:"pros"`
	Cons        string `json:"cons"`
	UserID      int64  `json:"user_id"`
	Deadline    string `json:"deadline,omitempty"`
}

// GoalPatch is a partial update of a goal. Ownership is immutable.
type GoalPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Money  `json:"price,omitempty"`
	Pros        *string `json:"pros,omitempty"`
	Cons        *string `json:"cons,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}
