// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ValidateMaterial validates a Material according to domain rules.
//
// Validation rules:
//   - Id must not be empty or blank
//   - Title must not be empty or blank
//   - Price must not be negative
//   - Type must be a known MaterialType
//
// NOT validated:
//   - Creator (anonymous and compilation materials have none)
//   - Year (historical materials predate any sensible lower bound)
//   - Media (nil is valid for non-playable materials)
func ValidateMaterial(material *Material) error {
	if material == nil {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrNilMaterial)
	}

	if strings.TrimSpace(material.Id) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrEmptyID)
	}

	if strings.TrimSpace(material.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrEmptyTitle)
	}

	if material.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrNegativePrice)
	}

	if err := ValidateMaterialType(material.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
	}

	return nil
}

// ValidateMaterialType validates that a MaterialType has a known value.
func ValidateMaterialType(mt MaterialType) error {
	if _, ok := materialTypeNames[mt]; !ok {
		return fmt.Errorf("%w: value %d", ErrInvalidMaterialType, mt)
	}
	return nil
}
