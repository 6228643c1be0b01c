package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expensereport/internal/core"
	"expensereport/internal/i18n"
	"expensereport/internal/log"
)

// DefaultBudget is the monthly budget used until the user sets one.
var DefaultBudget = core.Money{Cents: 1000000}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	default:
		return "", false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences are written as soon as they change.
type Preferences struct {
	Budget core.Money  `json:"budget"`
	Locale i18n.Locale `json:"locale"`
	Theme  Theme       `json:"theme"`
}

// Local is the typed view over a KV backend.
type Local struct {
	kv            KV
	logger        *log.Logger
	defaultLocale i18n.Locale
}

func NewLocal(kv KV, defaultLocale i18n.Locale, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.Discard()
	}
	if _, ok := i18n.ParseLocale(string(defaultLocale)); !ok {
		defaultLocale = i18n.Default
	}
	return &Local{kv: kv, logger: logger.WithComponent(log.ComponentStorage), defaultLocale: defaultLocale}
}

// LoadExpenses reads the saved collection. A missing, unreadable or corrupt
// document, or one with no usable rows, yields the seed dataset; seeded reports
// which happened. Rows are decoded one at a time: a bad row is repaired where
// possible and dropped otherwise, never taking the rest of the report with it.
func (l *Local) LoadExpenses(ctx context.Context, now time.Time) (expenses []core.Expense, seeded bool) {
	raw, err := l.kv.Get(ctx, KeyExpenses)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			l.logger.WarnContext(ctx, "Failed to read saved expenses, using seed data",
				log.FieldKey, KeyExpenses, log.FieldError, err)
		}
		return Seed(now), true
	}

	var rows []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		l.logger.WarnContext(ctx, "Failed to parse saved expenses, using seed data",
			log.FieldKey, KeyExpenses, log.FieldError, err)
		return Seed(now), true
	}

	today := core.DateOf(now)
	saved := make([]core.Expense, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		e, repaired, err := decodeRow(row, today)
		if err != nil {
			l.logger.WarnContext(ctx, "Dropped unreadable saved expense",
				"index", i, log.FieldError, err)
			continue
		}
		if e.ID == "" || seen[e.ID] {
			e.ID = uuid.NewString()
			repaired = append(repaired, "id")
		}
		seen[e.ID] = true
		if len(repaired) > 0 {
			l.logger.WarnContext(ctx, "Repaired saved expense",
				log.FieldExpenseID, e.ID, "fields", repaired)
		}
		saved = append(saved, e)
	}
	if len(saved) == 0 {
		return Seed(now), true
	}

	l.logger.InfoContext(ctx, "Loaded saved expenses",
		log.FieldOperation, log.OpLoad, log.FieldCount, len(saved))
	return saved, false
}

// SaveExpenses writes the whole collection.
func (l *Local) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	if expenses == nil {
		expenses = []core.Expense{}
	}
	data, err := json.Marshal(expenses)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := l.kv.Set(ctx, KeyExpenses, string(data)); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// Budget returns the saved monthly budget, or DefaultBudget.
func (l *Local) Budget(ctx context.Context) core.Money {
	raw, err := l.kv.Get(ctx, KeyBudget)
	if err != nil {
		return DefaultBudget
	}
	var m core.Money
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		l.logger.WarnContext(ctx, "Ignoring unparseable budget", log.FieldError, err)
		return DefaultBudget
	}
	return m
}

func (l *Local) SetBudget(ctx context.Context, m core.Money) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, KeyBudget, string(data))
}

// Locale returns the saved locale and whether one was saved.
func (l *Local) Locale(ctx context.Context) (i18n.Locale, bool) {
	raw, err := l.kv.Get(ctx, KeyLocale)
	if err != nil {
		return l.defaultLocale, false
	}
	loc, ok := i18n.ParseLocale(raw)
	if !ok {
		return l.defaultLocale, false
	}
	return loc, true
}

func (l *Local) SetLocale(ctx context.Context, loc i18n.Locale) error {
	parsed, ok := i18n.ParseLocale(string(loc))
	if !ok {
		return fmt.Errorf("unsupported locale %q", loc)
	}
	return l.kv.Set(ctx, KeyLocale, string(parsed))
}

// Theme returns the saved theme, light when unset.
func (l *Local) Theme(ctx context.Context) Theme {
	raw, err := l.kv.Get(ctx, KeyTheme)
	if err != nil {
		return ThemeLight
	}
	if t, ok := ParseTheme(raw); ok {
		return t
	}
	return ThemeLight
}

func (l *Local) SetTheme(ctx context.Context, t Theme) error {
	if _, ok := ParseTheme(string(t)); !ok {
		return fmt.Errorf("unsupported theme %q", t)
	}
	return l.kv.Set(ctx, KeyTheme, string(t))
}

// Preferences reads budget, locale and theme together.
func (l *Local) Preferences(ctx context.Context) Preferences {
	loc, _ := l.Locale(ctx)
	return Preferences{
		Budget: l.Budget(ctx),
		Locale: loc,
		Theme:  l.Theme(ctx),
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ready reports whether the backend answers reads. A missing key counts as ready.
func (l *Local) Ready(ctx context.Context) error {
	if p, ok := l.kv.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}
	}
	if _, err := l.kv.Get(ctx, KeyTheme); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return err
	}
	return nil
}
