package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"gorm.io/gorm"
)

// first loads one row or returns nil when nothing matches.
func first[E any](q *gorm.DB, query string, args ...any) (*E, error) {
	var e E
	err := q.Where(query, args...).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// nullable maps blank optional text to NULL.
func nullable(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func setText(m map[string]any, column string, v *string) {
	if v != nil {
		m[column] = strings.TrimSpace(*v)
	}
}

func setOptionalText(m map[string]any, column string, v *string) {
	if v != nil {
		m[column] = nullable(v)
	}
}

func dateText(d model.Date) string {
	return d.String()
}

func optionalDateText(d *model.Date) *string {
	if d == nil || d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

// parseDate reads stored dates leniently; unreadable values come back zero.
func parseDate(s string) model.Date {
	d, _ := model.ParseDate(s)
	return d
}

func parseOptionalDate(s *string) *model.Date {
	if s == nil || *s == "" {
		return nil
	}
	d, err := model.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// likePattern builds a substring pattern for LIKE ... ESCAPE '\'.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

const likeEscape = ` ESCAPE '\'`
