package db

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/finassist/backend/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a record does not exist or is owned by a
	// different user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user insert or update violates the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already in use")
)

type Storage struct {
	DB *sql.DB
}

func NewStorage(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Storage{DB: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			date TIMESTAMPTZ NOT NULL,
			description TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS savings_goals (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			target_amount DOUBLE PRECISION NOT NULL,
			current_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			deadline TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_savings_goals_user ON savings_goals (user_id)`,
	}

	for _, m := range migrations {
		if _, err := s.DB.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// CreateUser stores a new user. The password must already be hashed.
func (s *Storage) CreateUser(name, email, passwordHash, currency string) (*models.User, error) {
	u := &models.User{Name: name, Email: email, PasswordHash: passwordHash, Currency: currency}
	err := s.DB.QueryRow(
		"INSERT INTO users (name, email, password_hash, currency) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		name, email, passwordHash, currency,
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	return scanUser(s.DB.QueryRow(
		"SELECT id, name, email, password_hash, currency, created_at FROM users WHERE email = $1",
		email,
	))
}

func (s *Storage) GetUserByID(id int) (*models.User, error) {
	return scanUser(s.DB.QueryRow(
		"SELECT id, name, email, password_hash, currency, created_at FROM users WHERE id = $1",
		id,
	))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Currency, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser persists the mutable profile fields of u.
func (s *Storage) UpdateUser(u *models.User) error {
	res, err := s.DB.Exec(
		"UPDATE users SET name = $1, email = $2, currency = $3 WHERE id = $4",
		u.Name, u.Email, u.Currency, u.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *Storage) UpdateUserPassword(id int, passwordHash string) error {
	res, err := s.DB.Exec("UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TransactionFilter narrows GetTransactions. Nil date bounds and an empty
// category mean unfiltered; bounds are inclusive.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
}

func (s *Storage) CreateTransaction(t *models.Transaction) error {
	return s.DB.QueryRow(
		"INSERT INTO transactions (user_id, date, description, amount, category) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		t.UserID, t.Date, t.Description, t.Amount, t.Category,
	).Scan(&t.ID, &t.CreatedAt)
}

func (s *Storage) GetTransactions(userID int, filter TransactionFilter) ([]models.Transaction, error) {
	query := "SELECT id, user_id, date, description, amount, category, created_at FROM transactions WHERE user_id = $1"
	args := []interface{}{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += " AND date >= $" + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += " AND date <= $" + strconv.Itoa(len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.Amount, &t.Category, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *Storage) GetTransaction(userID, id int) (*models.Transaction, error) {
	var t models.Transaction
	err := s.DB.QueryRow(
		"SELECT id, user_id, date, description, amount, category, created_at FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.Amount, &t.Category, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTransaction replaces the updatable fields of the transaction with
// t.ID, provided it is owned by t.UserID.
func (s *Storage) UpdateTransaction(t *models.Transaction) error {
	err := s.DB.QueryRow(
		"UPDATE transactions SET date = $1, description = $2, amount = $3, category = $4 WHERE id = $5 AND user_id = $6 RETURNING created_at",
		t.Date, t.Description, t.Amount, t.Category, t.ID, t.UserID,
	).Scan(&t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Storage) DeleteTransaction(userID, id int) error {
	res, err := s.DB.Exec("DELETE FROM transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *Storage) CreateSavingsGoal(g *models.SavingsGoal) error {
	return s.DB.QueryRow(
		"INSERT INTO savings_goals (user_id, name, target_amount, current_amount, deadline) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		g.UserID, g.Name, g.Target, g.Current, g.Deadline,
	).Scan(&g.ID, &g.CreatedAt)
}

func (s *Storage) GetSavingsGoals(userID int) ([]models.SavingsGoal, error) {
	rows, err := s.DB.Query(
		"SELECT id, user_id, name, target_amount, current_amount, deadline, created_at FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Storage) GetSavingsGoal(userID, id int) (*models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := s.DB.QueryRow(
		"SELECT id, user_id, name, target_amount, current_amount, deadline, created_at FROM savings_goals WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateSavingsGoal replaces name, target and deadline. Current is left
// untouched; contributions are the only way to move it.
func (s *Storage) UpdateSavingsGoal(g *models.SavingsGoal) error {
	err := s.DB.QueryRow(
		"UPDATE savings_goals SET name = $1, target_amount = $2, deadline = $3 WHERE id = $4 AND user_id = $5 RETURNING current_amount, created_at",
		g.Name, g.Target, g.Deadline, g.ID, g.UserID,
	).Scan(&g.Current, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Storage) DeleteSavingsGoal(userID, id int) error {
	res, err := s.DB.Exec("DELETE FROM savings_goals WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// ContributeToSavingsGoal adds amount to the goal's current amount, clamped
// at the target. The clamp happens in a single conditional update so two
// concurrent contributions cannot overshoot the target.
func (s *Storage) ContributeToSavingsGoal(userID, id int, amount float64) (*models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := s.DB.QueryRow(
		"UPDATE savings_goals SET current_amount = LEAST(current_amount + $1, target_amount) WHERE id = $2 AND user_id = $3 RETURNING id, user_id, name, target_amount, current_amount, deadline, created_at",
		amount, id, userID,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
