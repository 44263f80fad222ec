package restaurant

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Staff is an employee. Staff members form a hierarchy: each has at most one
// manager, and a manager sees every staff member pointing at them in its
// subordinate list.
type Staff struct {
	fullName  string
	role      string
	email     string
	languages []string

	manager      *Staff
	subordinates []*Staff
	registry     *Registry
}

// NewStaff creates a staff member and registers it in the staff extent.
func (r *Registry) NewStaff(fullName, role string) (*Staff, error) {
	fullName, err := requireText("full name", fullName)
	if err != nil {
		return nil, err
	}
	role, err = requireText("role", role)
	if err != nil {
		return nil, err
	}
	s := &Staff{fullName: fullName, role: role, languages: []string{}, registry: r}
	r.staff.add(s)
	return s, nil
}

func (s *Staff) FullName() string { return s.fullName }
func (s *Staff) Role() string     { return s.role }

// SetFullName replaces the trimmed full name.
func (s *Staff) SetFullName(name string) error {
	name, err := requireText("full name", name)
	if err != nil {
		return err
	}
	s.fullName = name
	return nil
}

// SetRole replaces the trimmed role.
func (s *Staff) SetRole(role string) error {
	role, err := requireText("role", role)
	if err != nil {
		return err
	}
	s.role = role
	return nil
}

// Email returns the email address, if one is set.
func (s *Staff) Email() (string, bool) {
	return s.email, s.email != ""
}

// SetEmail sets the email address. A blank value clears it.
func (s *Staff) SetEmail(email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	s.email = email
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil
	}
	if !strings.Contains(email, "@") {
		return "", invalid("email", "must contain @")
	}
	return email, nil
}

// SpokenLanguages returns a copy of the spoken languages.
func (s *Staff) SpokenLanguages() []string {
	return slices.Clone(s.languages)
}

// SetSpokenLanguages replaces the spoken languages. nil is stored as an empty list.
func (s *Staff) SetSpokenLanguages(languages []string) {
	if languages == nil {
		languages = []string{}
	}
	s.languages = slices.Clone(languages)
}

// MinimumWage returns the minimum wage shared by every staff member of the registry.
func (s *Staff) MinimumWage() decimal.Decimal {
	return s.registry.MinimumWage()
}

// SetMinimumWage changes the shared minimum wage for every staff member of the registry.
func (s *Staff) SetMinimumWage(wage decimal.Decimal) error {
	return s.registry.SetMinimumWage(wage)
}

// Manager returns the manager, if any.
func (s *Staff) Manager() (*Staff, bool) {
	return s.manager, s.manager != nil
}

// Subordinates returns the staff members managed by s.
func (s *Staff) Subordinates() []*Staff {
	return slices.Clone(s.subordinates)
}

// HasSubordinate reports whether other is managed by s.
func (s *Staff) HasSubordinate(other *Staff) bool {
	return slices.Contains(s.subordinates, other)
}

// SetManager moves s under manager, detaching it from its previous manager.
// A nil manager removes the current one. Only direct self-management is
// rejected; longer cycles are not checked.
func (s *Staff) SetManager(manager *Staff) error {
	if manager == s {
		return ErrSelfManagement
	}
	if manager == s.manager {
		return nil
	}

	if s.manager != nil {
		s.manager.removeSubordinate(s)
	}
	s.manager = manager
	if manager != nil {
		manager.subordinates = append(manager.subordinates, s)
	}
	return nil
}

// RemoveManager clears the manager.
func (s *Staff) RemoveManager() {
	// never fails: nil is not s
	_ = s.SetManager(nil)
}

// AddSubordinate makes s the manager of sub.
func (s *Staff) AddSubordinate(sub *Staff) error {
	if sub == nil {
		return invalid("subordinate", "cannot be nil")
	}
	return sub.SetManager(s)
}

// RemoveSubordinate clears the manager of sub, which must currently report to s.
func (s *Staff) RemoveSubordinate(sub *Staff) error {
	if sub == nil {
		return invalid("subordinate", "cannot be nil")
	}
	if !s.HasSubordinate(sub) {
		return ErrNotSubordinate
	}
	return sub.SetManager(nil)
}

func (s *Staff) removeSubordinate(sub *Staff) {
	if idx := slices.Index(s.subordinates, sub); idx >= 0 {
		s.subordinates = slices.Delete(s.subordinates, idx, idx+1)
	}
}
