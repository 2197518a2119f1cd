// Package gaps provides the coverage gap sweep: brute-force
// enumeration of sign-in scenarios to find combinations the configured
// policies leave unprotected.
package gaps

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// PersonaSource selects which identities a sweep runs over
type PersonaSource string

const (
	// SourceGeneric sweeps synthetic member/admin/guest personas
	SourceGeneric PersonaSource = "generic"
	// SourceSelectedUser sweeps one externally resolved real user
	SourceSelectedUser PersonaSource = "selectedUser"
	// SourceMappedUsers sweeps a small set of externally resolved users
	SourceMappedUsers PersonaSource = "mappedUsers"
	// SourceSample sweeps the bundled sample personas
	SourceSample PersonaSource = "sample"
)

// Persona is a synthetic or resolved identity profile used as sweep
// input. Group and role memberships are already resolved; the sweep
// never performs directory lookups.
type Persona struct {
	Name       string         `json:"name"`
	UserID     string         `json:"userId"`
	UserType   types.UserType `json:"userType"`
	GroupIDs   []string       `json:"groupIds,omitempty"`
	RoleIDs    []string       `json:"roleIds,omitempty"`
	IsExternal bool           `json:"isExternal,omitempty"`
}

// GlobalAdministratorRoleID is the well-known directory role held by
// the synthetic admin persona
const GlobalAdministratorRoleID = "62e90394-69f5-4237-9190-012177145e10"

// GenericPersonas returns the three synthetic baseline personas:
// an ordinary member, a global administrator, and a guest.
func GenericPersonas() []Persona {
	return []Persona{
		{
			Name:     "generic-member",
			UserID:   "persona-member",
			UserType: types.UserTypeMember,
		},
		{
			Name:     "generic-admin",
			UserID:   "persona-admin",
			UserType: types.UserTypeMember,
			RoleIDs:  []string{GlobalAdministratorRoleID},
		},
		{
			Name:       "generic-guest",
			UserID:     "persona-guest",
			UserType:   types.UserTypeGuest,
			IsExternal: true,
		},
	}
}

// SamplePersonas returns a small mapped set of demo identities with
// group memberships, used when no real directory data is wired in
func SamplePersonas() []Persona {
	return []Persona{
		{
			Name:     "sample-finance-user",
			UserID:   "3f2a8c1e-5b77-4d04-9c02-6f3f1a2b9d10",
			UserType: types.UserTypeMember,
			GroupIDs: []string{"finance-team"},
		},
		{
			Name:     "sample-helpdesk-admin",
			UserID:   "9a4b7d62-1c3e-48f5-b5a9-0e8d2c4f6a21",
			UserType: types.UserTypeMember,
			GroupIDs: []string{"helpdesk"},
			RoleIDs:  []string{"729827e3-9c14-49f7-bb1b-9608f156bbb8"}, // Helpdesk Administrator
		},
		{
			Name:       "sample-partner-guest",
			UserID:     "c1d9e0f3-7a25-4b68-8d41-5e2f9b0c7a32",
			UserType:   types.UserTypeGuest,
			IsExternal: true,
		},
	}
}

// DefaultApplications are the swept target applications
func DefaultApplications() []string {
	return []string{
		"00000002-0000-0ff1-ce00-000000000000", // Exchange Online
		"00000003-0000-0ff1-ce00-000000000000", // SharePoint Online
		"797f4846-ba00-4fd7-ba43-dac1f8f63013", // Azure management
	}
}

// Options selects the persona source and scenario dimensions of one
// sweep. Zero-valued dimension lists fall back to the defaults.
type Options struct {
	PersonaSource PersonaSource `json:"personaSource"`
	// Personas supplies the resolved identities for SourceSelectedUser
	// and SourceMappedUsers
	Personas []Persona `json:"personas,omitempty"`

	Applications   []string `json:"applications,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`
	ClientAppTypes []string `json:"clientAppTypes,omitempty"`
	LocationTrusts []bool   `json:"locationTrusts,omitempty"`
	SignInRisks    []string `json:"signInRisks,omitempty"`
	UserRisks      []string `json:"userRisks,omitempty"`

	// Workers parallelizes the outer persona loop; results are
	// re-ordered deterministically before grouping
	Workers int `json:"workers,omitempty"`
}

// DefaultOptions returns the standard sweep: 3 generic personas x
// 3 applications x 5 platforms x 4 client app types x 2 location trust
// values x 4 sign-in risks x 4 user risks.
func DefaultOptions() Options {
	return Options{
		PersonaSource:  SourceGeneric,
		Applications:   DefaultApplications(),
		Platforms:      []string{"windows", "macOS", "iOS", "android", "linux"},
		ClientAppTypes: []string{types.ClientAppBrowser, types.ClientAppMobileAppsAndDesktopClients, types.ClientAppExchangeActiveSync, types.ClientAppOther},
		LocationTrusts: []bool{false, true},
		SignInRisks:    []string{types.RiskNone, types.RiskLow, types.RiskMedium, types.RiskHigh},
		UserRisks:      []string{types.RiskNone, types.RiskLow, types.RiskMedium, types.RiskHigh},
	}
}

// normalized fills unset dimensions from the defaults and resolves the
// persona set
func (o Options) normalized() Options {
	defaults := DefaultOptions()
	if o.PersonaSource == "" {
		o.PersonaSource = defaults.PersonaSource
	}
	if len(o.Applications) == 0 {
		o.Applications = defaults.Applications
	}
	if len(o.Platforms) == 0 {
		o.Platforms = defaults.Platforms
	}
	if len(o.ClientAppTypes) == 0 {
		o.ClientAppTypes = defaults.ClientAppTypes
	}
	if len(o.LocationTrusts) == 0 {
		o.LocationTrusts = defaults.LocationTrusts
	}
	if len(o.SignInRisks) == 0 {
		o.SignInRisks = defaults.SignInRisks
	}
	if len(o.UserRisks) == 0 {
		o.UserRisks = defaults.UserRisks
	}
	return o
}

// resolvePersonas returns the identities the sweep runs over
func (o Options) resolvePersonas() []Persona {
	switch o.PersonaSource {
	case SourceSelectedUser, SourceMappedUsers:
		return o.Personas
	case SourceSample:
		return SamplePersonas()
	default:
		return GenericPersonas()
	}
}

// ScenariosPerPersona returns the size of the per-persona cross product
func (o Options) ScenariosPerPersona() int {
	n := o.normalized()
	return len(n.Applications) * len(n.Platforms) * len(n.ClientAppTypes) *
		len(n.LocationTrusts) * len(n.SignInRisks) * len(n.UserRisks)
}
