package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"course_portal_backend/internal/statuses/repository"
	"course_portal_backend/platform/apperr"
	"course_portal_backend/platform/sanitize"

	"gopkg.in/yaml.v3"
)

// SeedStatus is one column of the optional first-boot seed file.
type SeedStatus struct {
	Name      string  `yaml:"name"`
	Color     *string `yaml:"color"`
	IsDefault bool    `yaml:"isDefault"`
}

type seedFile struct {
	Statuses []SeedStatus `yaml:"statuses"`
}

// LoadSeedFile reads a YAML seed file. An empty path yields no seed.
func LoadSeedFile(path string) ([]SeedStatus, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read status seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML and rejects blank or repeated names.
func ParseSeed(data []byte) ([]SeedStatus, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse status seed: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Statuses))
	for i := range file.Statuses {
		name := normalizeName(file.Statuses[i].Name)
		if name == "" {
			return nil, fmt.Errorf("parse status seed: entry %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("parse status seed: duplicate name %q", name)
		}
		seen[name] = struct{}{}
		file.Statuses[i].Name = name
	}
	return file.Statuses, nil
}

// EnsureDefault runs at startup. An empty board is populated from seed when
// given; afterwards, if no default exists, the configured default name is
// promoted or inserted at position 0.
func (s *Service) EnsureDefault(ctx context.Context, seed []SeedStatus) error {
	return s.repo.WithinTx(ctx, func(tx repository.Repository) error {
		count, err := tx.Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 && len(seed) > 0 {
			if err := s.applySeed(ctx, tx, seed); err != nil {
				return err
			}
		}

		hasDefault, err := hasDefaultStatus(ctx, tx)
		if err != nil || hasDefault {
			return err
		}

		existing, err := tx.GetByName(ctx, normalizeName(s.defaultName))
		switch {
		case err == nil:
			promote := true
			if _, err := tx.Update(ctx, repository.UpdateParams{ID: existing.ID, IsDefault: &promote}); err != nil {
				return err
			}
			s.log.Info("existing status promoted to default", "statusId", existing.ID, "name", existing.Name)
			return nil
		case apperr.Is(err, apperr.KindNotFound):
			_, err := s.insertDefault(ctx, tx)
			return err
		default:
			return err
		}
	})
}

func (s *Service) applySeed(ctx context.Context, tx repository.Repository, seed []SeedStatus) error {
	defaultIdx := -1
	for i, item := range seed {
		if item.IsDefault {
			defaultIdx = i
		}
	}

	for i, item := range seed {
		if _, err := tx.Create(ctx, repository.CreateParams{
			Name:      item.Name,
			IsDefault: i == defaultIdx,
			Color:     sanitize.TextPtr(item.Color),
			Order:     i,
		}); err != nil {
			return err
		}
	}
	s.log.Info("status board seeded", "count", len(seed))
	return nil
}
