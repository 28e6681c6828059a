package form

import "fmt"

// Tab is one step of the product composition screen
type Tab string

const (
	TabBasic        Tab = "basic"
	TabOrganization Tab = "organization"
	TabPricing      Tab = "pricing"
	TabVariants     Tab = "variants"
	TabImages       Tab = "images"
	TabSettings     Tab = "settings"
	TabSummary      Tab = "summary"
)

var tabs = []Tab{TabBasic, TabOrganization, TabPricing, TabVariants, TabImages, TabSettings, TabSummary}

// Tabs returns the tab sequence in order
func Tabs() []Tab {
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

func ParseTab(s string) (Tab, error) {
	for _, t := range tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Wizard walks the tab sequence. Advancing never validates; the whole form is
// validated once, on submit from the summary tab.
type Wizard struct {
	index int
}

func NewWizard() *Wizard {
	return &Wizard{}
}

// WizardAt starts a wizard on tab
func WizardAt(tab Tab) (*Wizard, error) {
	w := NewWizard()
	if err := w.Goto(tab); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Wizard) Current() Tab {
	return tabs[w.index]
}

// Next advances one tab and reports whether it moved
func (w *Wizard) Next() (Tab, bool) {
	if w.index == len(tabs)-1 {
		return w.Current(), false
	}
	w.index++
	return w.Current(), true
}

// Back steps one tab back and reports whether it moved
func (w *Wizard) Back() (Tab, bool) {
	if w.index == 0 {
		return w.Current(), false
	}
	w.index--
	return w.Current(), true
}

func (w *Wizard) Goto(tab Tab) error {
	for i, t := range tabs {
		if t == tab {
			w.index = i
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", tab)
}

// Peek returns the previous and next tabs without moving; empty at the ends
func (w *Wizard) Peek() (prev, next Tab) {
	if w.index > 0 {
		prev = tabs[w.index-1]
	}
	if w.index < len(tabs)-1 {
		next = tabs[w.index+1]
	}
	return prev, next
}

// CanSubmit is true only on the summary tab
func (w *Wizard) CanSubmit() bool {
	return w.Current() == TabSummary
}
