// Package navigation models the page's navigation state: which section is
// active and whether the mobile menu is open.
//
// The same transitions run in two places. The Go State type drives the server
// render (deep links, initial signals) and the *Expr helpers emit the datastar
// expressions that perform the identical transition in the browser.
package navigation

import (
	"fmt"
	"strings"
)

// Section identifies a scroll target on the page. Every value except Home
// is also the id of a <section> element.
type Section string

// Page sections in document order.
const (
	Home       Section = "home"
	Features   Section = "features"
	HowItWorks Section = "how-it-works"
	Pricing    Section = "pricing"
	Privacy    Section = "privacy"
	Terms      Section = "terms"
	Support    Section = "support"
)

// Sections lists every section in document order.
var Sections = []Section{Home, Features, HowItWorks, Pricing, Privacy, Terms, Support}

// Item is a navigation control.
type Item struct {
	Label   string
	Section Section
}

// Items are the navigation entries shown in the mobile menu and footer.
var Items = []Item{
	{Label: "Features", Section: Features},
	{Label: "How It Works", Section: HowItWorks},
	{Label: "Pricing", Section: Pricing},
	{Label: "Privacy", Section: Privacy},
	{Label: "Terms", Section: Terms},
	{Label: "Support", Section: Support},
}

// desktopItemCount is how many Items fit in the desktop header.
const desktopItemCount = 3

// DesktopItems returns the entries shown in the desktop header.
func DesktopItems() []Item {
	return Items[:desktopItemCount]
}

// ParseSection converts a section identifier into a Section.
func ParseSection(s string) (Section, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// ElementID returns the DOM id the section scrolls to. Home has none and
// scrolls to the top of the page.
func (s Section) ElementID() string {
	if s == Home {
		return ""
	}
	return string(s)
}

// State holds the ephemeral UI flags. The zero value is the initial state:
// nothing scrolled to yet and the mobile menu closed.
type State struct {
	Active   Section
	MenuOpen bool
}

// NewState returns the state a fresh page load starts in.
func NewState() State {
	return State{Active: Home}
}

// Activate marks section as active and closes the mobile menu.
func (s *State) Activate(section Section) {
	s.Active = section
	s.MenuOpen = false
}

// ToggleMenu flips the mobile menu between open and closed.
func (s *State) ToggleMenu() {
	s.MenuOpen = !s.MenuOpen
}

// IsActive reports whether section is the active one.
func (s State) IsActive(section Section) bool {
	active := s.Active
	if active == "" {
		active = Home
	}
	return active == section
}

// Signals returns the datastar signal object for the initial render.
func (s State) Signals() string {
	active := s.Active
	if active == "" {
		active = Home
	}
	return fmt.Sprintf("{activeSection: '%s', menuOpen: %t, scrollY: 0}", active, s.MenuOpen)
}

// ActivateExpr returns the client-side expression equivalent to Activate
// followed by the scroll to the section.
func ActivateExpr(section Section) string {
	return fmt.Sprintf("$activeSection = '%s'; $menuOpen = false; ", section) + ScrollExpr(section)
}

// ScrollExpr returns the client-side expression that smoothly scrolls to
// section: the top of the page for home, the element with its id otherwise.
func ScrollExpr(section Section) string {
	if section == Home || section == "" {
		return "window.scrollTo({top: 0, behavior: 'smooth'})"
	}
	return fmt.Sprintf("document.getElementById('%s')?.scrollIntoView({behavior: 'smooth'})", section.ElementID())
}

// ToggleMenuExpr returns the client-side expression equivalent to ToggleMenu.
func ToggleMenuExpr() string {
	return "$menuOpen = !$menuOpen"
}

// ActiveExpr returns a client-side boolean expression that is true while
// section is active.
func ActiveExpr(section Section) string {
	return fmt.Sprintf("$activeSection == '%s'", section)
}

// headerFadeDistance is the scroll distance over which the header background
// fades in.
const headerFadeDistance = 100.0

// maxHeaderOpacity is the header background opacity once fully scrolled.
const maxHeaderOpacity = 0.95

// HeaderOpacity maps a vertical scroll offset to the header background
// opacity, clamped to [0, maxHeaderOpacity].
func HeaderOpacity(scrollY float64) float64 {
	switch {
	case scrollY <= 0:
		return 0
	case scrollY >= headerFadeDistance:
		return maxHeaderOpacity
	default:
		return scrollY / headerFadeDistance * maxHeaderOpacity
	}
}

// HeaderBackgroundExpr returns the client-side style expression for the
// header background, mirroring HeaderOpacity.
func HeaderBackgroundExpr() string {
	return fmt.Sprintf("'background: rgba(9,9,11,' + Math.min(Math.max($scrollY, 0) / %g, 1) * %g + ')'",
		headerFadeDistance, maxHeaderOpacity)
}
