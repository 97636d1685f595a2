package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Empty(t *testing.T) {
	where, args := NewFilter().Eq("category", "").Eq("featured", (*bool)(nil)).Where()
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestFilter_NumbersPlaceholders(t *testing.T) {
	yes := true
	f := NewFilter().
		Eq("status", "published").
		Eq("featured", &yes).
		Raw("NOT is_main_article").
		Search("go_lang 100%", "title", "excerpt")

	where, args := f.Where()
	assert.Equal(t,
		" WHERE status = $1 AND featured = $2 AND NOT is_main_article AND (title ILIKE $3 OR excerpt ILIKE $3)",
		where)
	assert.Equal(t, []any{"published", true, `%go\_lang 100\%%`}, args)
}

func TestFilter_EqUnlessAll(t *testing.T) {
	where, _ := NewFilter().EqUnlessAll("category", "all").EqUnlessAll("status", "draft").Where()
	assert.Equal(t, " WHERE status = $1", where)
}

func TestFilter_Since(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args := NewFilter().Eq("status", "published").Since("created_at", ts).Where()
	assert.Equal(t, " WHERE status = $1 AND created_at >= $2", where)
	assert.Equal(t, ts, args[1])
}
