package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ctxOf достаёт контекст запроса из сессии gorm (DBMiddleware кладёт его через WithContext)
func ctxOf(db *gorm.DB) context.Context {
	if db == nil || db.Statement == nil || db.Statement.Context == nil {
		return context.Background()
	}
	return db.Statement.Context
}

// txRunner выполняет fn в транзакции. В тестах подменяется на прямой вызов.
type txRunner func(db *gorm.DB, fn func(tx *gorm.DB) error) error

func gormTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// uniqueEmails нормализует адреса и убирает повторы, сохраняя порядок
func uniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = normalizeEmail(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
