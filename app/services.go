// Package app holds the example services wired by main: a Database shared
// by a UserService and an OrderService.
package app

import (
	"fmt"
	"log/slog"
	"sync"
)

// Database stands in for a connection pool.
type Database struct {
	DSN    string
	logger *slog.Logger

	mu      sync.Mutex
	queries []string
}

func NewDatabase(dsn string, logger *slog.Logger) *Database {
	logger.Info("creating database", slog.String("dsn", dsn))
	return &Database{DSN: dsn, logger: logger}
}

// Query records sql and logs it.
func (db *Database) Query(sql string) {
	db.mu.Lock()
	db.queries = append(db.queries, sql)
	db.mu.Unlock()
	db.logger.Info("query", slog.String("dsn", db.DSN), slog.String("sql", sql))
}

// Queries returns every statement executed so far.
func (db *Database) Queries() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]string(nil), db.queries...)
}

type UserService struct {
	DB *Database
}

func (s *UserService) GetUser(id int) {
	s.DB.Query(fmt.Sprintf("SELECT * FROM users WHERE id = %d", id))
}

type OrderService struct {
	DB    *Database
	Users *UserService
}

func (s *OrderService) CreateOrder(userID int, product string) {
	s.Users.GetUser(userID)
	s.DB.Query(fmt.Sprintf("INSERT INTO orders (user_id, product) VALUES (%d, '%s')", userID, product))
}
