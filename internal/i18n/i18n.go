package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"storebot/internal/pricing"
)

//go:embed locales/*.yaml
var locales embed.FS

type Bundle struct {
	catalogs map[string]map[Key]string
	tags     []language.Tag
	matcher  language.Matcher
}

// Load reads every embedded locale. defaultLocale goes first and wins
// when the user's language matches nothing.
func Load(defaultLocale string) (*Bundle, error) {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	b := &Bundle{catalogs: make(map[string]map[Key]string)}
	for _, e := range entries {
		raw, err := locales.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var catalog map[Key]string
		if err := yaml.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		b.catalogs[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = catalog
	}

	if _, ok := b.catalogs[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q has no catalog", defaultLocale)
	}
	names := make([]string, 0, len(b.catalogs))
	for name := range b.catalogs {
		if name != defaultLocale {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range append([]string{defaultLocale}, names...) {
		b.tags = append(b.tags, language.Make(name))
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Verify fails when any known key, or any of the extra dynamic keys,
// is missing from any catalog.
func (b *Bundle) Verify(extra ...string) error {
	var errs []error
	for name, catalog := range b.catalogs {
		for _, k := range AllKeys {
			if strings.TrimSpace(catalog[k]) == "" {
				errs = append(errs, fmt.Errorf("%s: missing %q", name, k))
			}
		}
		for _, k := range extra {
			if strings.TrimSpace(catalog[Key(k)]) == "" {
				errs = append(errs, fmt.Errorf("%s: missing %q", name, k))
			}
		}
	}
	return errors.Join(errs...)
}

// For picks the best catalog for a Telegram language_code.
func (b *Bundle) For(languageCode string) *Localizer {
	tag := b.tags[0]
	if languageCode != "" {
		_, idx, conf := b.matcher.Match(language.Make(languageCode))
		if conf != language.No {
			tag = b.tags[idx]
		}
	}
	base, _ := tag.Base()
	return &Localizer{
		tag:      tag,
		msgs:     b.catalogs[base.String()],
		fallback: b.catalogs[b.tags[0].String()],
	}
}

type Localizer struct {
	tag      language.Tag
	msgs     map[Key]string
	fallback map[Key]string
}

func (l *Localizer) Tag() language.Tag { return l.tag }

func (l *Localizer) T(key Key, args ...any) string {
	tmpl, ok := l.msgs[key]
	if !ok {
		tmpl, ok = l.fallback[key]
	}
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Lookup resolves keys built at runtime, such as status labels.
func (l *Localizer) Lookup(key string) string {
	return l.T(Key(key))
}

func (l *Localizer) Price(amount decimal.Decimal) string {
	return pricing.FormatPrice(amount, l.tag)
}
