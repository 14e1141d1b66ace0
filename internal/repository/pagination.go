package repository

import "gorm.io/gorm"

// FetchPageWithLookahead plucks column from q at offset with LIMIT limit+1.
// The extra row only signals that more rows exist; it is dropped from the result.
func FetchPageWithLookahead[T any](q *gorm.DB, column string, offset, limit int) ([]T, bool, error) {
	if limit <= 0 {
		return []T{}, false, nil
	}

	var rows []T
	if err := q.Offset(offset).Limit(limit + 1).Pluck(column, &rows).Error; err != nil {
		return nil, false, err
	}
	if len(rows) > limit {
		return rows[:limit], true, nil
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, false, nil
}
