package models

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

// Article is an object representing the database table.
type Article struct {
	ID        string      `boil:"id" json:"id"`
	Title     string      `boil:"title" json:"title"`
	Summary   null.String `boil:"summary" json:"summary,omitempty"`
	Status    string      `boil:"status" json:"status"`
	ViewCount int         `boil:"view_count" json:"view_count"`
	CreatedAt time.Time   `boil:"created_at" json:"created_at"`
}

const (
	articleTable   = "articles"
	articleColumns = "id, title, summary, status, view_count, created_at"
)

type articleQuery struct {
	mods []qm.QueryMod
}

// Articles returns a new query against the articles table.
func Articles(mods ...qm.QueryMod) articleQuery {
	return articleQuery{mods: mods}
}

// All returns all Article records from the query.
func (q articleQuery) All(ctx context.Context, exec boil.ContextExecutor) ([]*Article, error) {
	params := ParseQueryMods(q.mods)
	query := BuildSelectQuery(articleTable, articleColumns, params)

	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article := &Article{}
		err := rows.Scan(&article.ID, &article.Title, &article.Summary, &article.Status, &article.ViewCount, &article.CreatedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Count returns the count of all Article records in the query.
func (q articleQuery) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	params := ParseQueryMods(q.mods)
	query := BuildCountQuery(articleTable, params)

	var count int64
	err := exec.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
