package model

import (
	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/csrf"
	"github.com/deltegui/pmadmin/localizer"
)

type ViewModel struct {
	Model      any
	Localizer  localizer.Localizer
	FormErrors map[string]string
	CsrfToken  string
	Language   string
	Ctx        *pmadmin.Context
}

// CreateViewModel wraps model with everything a page needs: the localizer
// for the page named name, the csrf token and the current language.
func CreateViewModel(ctx *pmadmin.Context, name string, model any) ViewModel {
	return ViewModel{
		Model:     model,
		CsrfToken: csrf.Token(ctx),
		Localizer: ctx.GetLocalizer(name),
		Language:  ctx.GetCurrentLanguage(),
		Ctx:       ctx,
	}
}

func (vm ViewModel) Localize(key string) string {
	return vm.Localizer.Get(key)
}

func (vm ViewModel) HaveFormError(key string) bool {
	_, ok := vm.FormErrors[key]
	return ok
}

func (vm ViewModel) GetFormError(key string) string {
	val, ok := vm.FormErrors[key]
	if !ok {
		return ""
	}
	return vm.Localize(val)
}

// With returns a copy of vm carrying another model. Used to hand partials
// their own data without losing the localizer.
func (vm ViewModel) With(model any) ViewModel {
	vm.Model = model
	return vm
}

type SelectItem struct {
	Value    string
	Tag      string
	Selected bool
}

type SelectList struct {
	Name     string
	Multiple bool
	Items    []SelectItem
}

func CreateSelectListViewModel(loc localizer.Localizer, name string, items []SelectItem, multiple bool) ViewModel {
	return ViewModel{
		Model: SelectList{
			Name:     name,
			Multiple: multiple,
			Items:    items,
		},
		Localizer: loc,
	}
}

// LanguageSelectList lists every supported language, marking current.
func LanguageSelectList(loc localizer.Localizer, current string) ViewModel {
	items := make([]SelectItem, 0, len(localizer.SupportedLanguages))
	for _, lang := range localizer.SupportedLanguages {
		items = append(items, SelectItem{
			Value:    lang,
			Tag:      "shared.language." + lang,
			Selected: lang == current,
		})
	}
	return CreateSelectListViewModel(loc, "language", items, false)
}
