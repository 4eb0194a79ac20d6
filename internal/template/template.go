// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package template renders the configurable map titles, signature and file names.
package template

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"

	"github.com/wneessen/wxmaps/internal/config"
)

// Data is the template context of one map.
type Data struct {
	// Product is the english title of the product, translated with loc.
	Product         string
	ProductName     string
	Units           string
	Region          string
	RegionCode      string
	ReferenceSystem string
	Source          string

	ValidTime      time.Time
	LocalTime      time.Time
	PriorTime      time.Time
	PriorLocalTime time.Time
	// Delta marks 24-hour comparisons.
	Delta bool
	Now   time.Time
}

// Text holds the rendered templates of one map.
type Text struct {
	Title      string
	Subtitle   string
	ValidTime  string
	Comparison string
	Signature  string
	FileName   string
}

type Templates struct {
	Title      *template.Template
	Subtitle   *template.Template
	ValidTime  *template.Template
	Comparison *template.Template
	Signature  *template.Template
	FileName   *template.Template

	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
}

var humanizers = humanize.MustNew(humanize.WithLocale(de.New()))

func New(conf *config.Config, loc *spreak.Localizer, lang language.Tag) (*Templates, error) {
	tpls := &Templates{
		localizer: loc,
		humanizer: humanizers.CreateHumanizer(lang),
	}

	for _, t := range []struct {
		name   string
		source string
		target **template.Template
	}{
		{"title", conf.Templates.Title, &tpls.Title},
		{"subtitle", conf.Templates.Subtitle, &tpls.Subtitle},
		{"valid_time", conf.Templates.ValidTime, &tpls.ValidTime},
		{"comparison", conf.Templates.Comparison, &tpls.Comparison},
		{"signature", conf.Templates.Signature, &tpls.Signature},
		{"file_name", conf.Templates.FileName, &tpls.FileName},
	} {
		tpl, err := template.New(t.name).Funcs(tpls.templateFuncMap()).Parse(t.source)
		if err != nil {
			return tpls, fmt.Errorf("failed to parse %s template: %w", t.name, err)
		}
		*t.target = tpl
	}

	return tpls, nil
}

// Render executes all templates with data.
func (t *Templates) Render(data Data) (Text, error) {
	var out Text
	for _, r := range []struct {
		tpl    *template.Template
		target *string
	}{
		{t.Title, &out.Title},
		{t.Subtitle, &out.Subtitle},
		{t.ValidTime, &out.ValidTime},
		{t.Comparison, &out.Comparison},
		{t.Signature, &out.Signature},
		{t.FileName, &out.FileName},
	} {
		buf := bytes.NewBuffer(nil)
		if err := r.tpl.Execute(buf, data); err != nil {
			return out, fmt.Errorf("failed to render %s template: %w", r.tpl.Name(), err)
		}
		*r.target = strings.TrimSpace(buf.String())
	}
	out.FileName = fileName(out.FileName)
	return out, nil
}

func (t *Templates) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    timeFormat,
		"localizedTime": t.localizedTime,
		"naturalTime":   t.naturalTime,
		"floatFormat":   floatFormat,
		"loc":           t.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
	}
}

// loc translates val. Without a localizer val is returned as is.
func (t *Templates) loc(val string) string {
	if t.localizer == nil {
		return val
	}
	return t.localizer.Get(val)
}

func (t *Templates) localizedTime(val time.Time) string {
	return t.humanizer.FormatTime(val, humanize.DateTimeFormat)
}

func (t *Templates) naturalTime(val time.Time) string {
	return t.humanizer.NaturalTime(val)
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

// fileName replaces characters that do not belong into a file name.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t', '\n':
			return '_'
		}
		return r
	}, name)
}
