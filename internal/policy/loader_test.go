package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-engine/go-core/pkg/types"
)

const singlePolicyYAML = `
id: require-mfa
displayName: Require MFA for all users
state: enabled
conditions:
  users:
    includeUsers: ["All"]
  applications:
    includeApplications: ["All"]
grantControls:
  operator: OR
  builtInControls: [mfa]
`

const multiPolicyYAML = `
policies:
  - id: block-legacy
    displayName: Block legacy authentication
    state: enabled
    conditions:
      users:
        includeUsers: ["All"]
      applications:
        includeApplications: ["All"]
      clientAppTypes: [exchangeActiveSync, other]
    grantControls:
      operator: OR
      builtInControls: [block]
  - id: admin-mfa
    displayName: Require MFA for admins
    state: reportOnly
    conditions:
      users:
        includeRoles: ["62e90394-69f5-4237-9190-012177145e10"]
      applications:
        includeApplications: ["All"]
    grantControls:
      operator: OR
      builtInControls: [mfa]
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_SinglePolicyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mfa.yaml", singlePolicyYAML)

	loader := NewLoader(nil)
	policies, err := loader.LoadFromDirectory(dir)
	require.NoError(t, err)
	require.Len(t, policies, 1)

	p := policies[0]
	assert.Equal(t, "require-mfa", p.ID)
	assert.Equal(t, types.StateEnabled, p.State)
	require.NotNil(t, p.Grant)
	assert.Equal(t, types.OperatorOR, p.Grant.Operator)
	assert.Equal(t, []string{types.ControlMFA}, p.Grant.BuiltInControls)
	assert.Equal(t, []string{types.TargetAll}, p.Conditions.Users.IncludeUsers)
}

func TestLoader_MultiPolicyDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "baseline.yaml", multiPolicyYAML)

	loader := NewLoader(nil)
	policies, err := loader.LoadFromDirectory(dir)
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "block-legacy", policies[0].ID)
	assert.Equal(t, "admin-mfa", policies[1].ID)
	assert.Equal(t, types.StateReportOnly, policies[1].State)
}

func TestLoader_JSONPolicy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "policy.json", `{
  "id": "json-policy",
  "displayName": "JSON policy",
  "state": "enabled",
  "conditions": {
    "users": {"includeUsers": ["All"]},
    "applications": {"includeApplications": ["All"]}
  }
}`)

	loader := NewLoader(nil)
	policies, err := loader.LoadFromDirectory(dir)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "json-policy", policies[0].ID)
}

func TestLoader_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", singlePolicyYAML)
	writeFile(t, dir, "broken.yaml", "{{{not yaml")
	writeFile(t, dir, "invalid.yaml", `
id: ""
displayName: Missing ID
state: enabled
`)
	writeFile(t, dir, "notes.txt", "not a policy file")

	loader := NewLoader(nil)
	policies, err := loader.LoadFromDirectory(dir)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "require-mfa", policies[0].ID)
}

func TestLoader_MissingDirectory(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.LoadFromDirectory("/nonexistent-policy-dir")
	assert.Error(t, err)
}

func TestLoader_LoadIntoStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "baseline.yaml", multiPolicyYAML)

	store := NewMemoryStore()
	require.NoError(t, store.Add(testPolicy("stale", types.StateEnabled)))

	loader := NewLoader(nil)
	count, err := loader.LoadIntoStore(dir, store)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.Count())

	_, err = store.Get("stale")
	assert.Error(t, err)
}
