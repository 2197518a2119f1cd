package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ca-engine/go-core/pkg/types"
)

// Loader loads and parses policy files from disk. Policy documents are
// YAML or JSON, one or more policies per file.
type Loader struct {
	logger    *zap.Logger
	validator *Validator
}

// NewLoader creates a new policy loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger:    logger,
		validator: NewValidator(),
	}
}

// LoadFromDirectory loads all policy files from a directory. A file
// that fails to parse or validate is logged and skipped; it never
// aborts the load.
func (l *Loader) LoadFromDirectory(path string) ([]*types.Policy, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var policies []*types.Policy
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		filePath := filepath.Join(path, entry.Name())
		loaded, err := l.LoadFromFile(filePath)
		if err != nil {
			l.logger.Warn("Failed to load policy file",
				zap.String("file", filePath),
				zap.Error(err),
			)
			continue
		}

		policies = append(policies, loaded...)
	}

	return policies, nil
}

// policyDocument is the on-disk shape: either a single policy or a
// document with a policies list
type policyDocument struct {
	Policies []*types.Policy `json:"policies" yaml:"policies"`
}

// LoadFromFile loads a single policy file
func (l *Loader) LoadFromFile(filePath string) ([]*types.Policy, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// yaml.Unmarshal handles JSON as a subset
	var doc policyDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy document: %w", err)
	}

	policies := doc.Policies
	if len(policies) == 0 {
		single := &types.Policy{}
		if err := yaml.Unmarshal(content, single); err != nil {
			return nil, fmt.Errorf("failed to parse policy: %w", err)
		}
		policies = []*types.Policy{single}
	}

	for _, p := range policies {
		if issues := l.validator.Validate(p); len(issues) > 0 {
			return nil, fmt.Errorf("policy %q is invalid: %s", p.ID, issues[0])
		}
	}

	return policies, nil
}

// LoadIntoStore loads a directory and replaces the store contents on
// success
func (l *Loader) LoadIntoStore(path string, store Store) (int, error) {
	policies, err := l.LoadFromDirectory(path)
	if err != nil {
		return 0, err
	}
	store.Replace(policies)
	return len(policies), nil
}
