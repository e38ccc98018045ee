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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMaterial indicates a Material failed validation.
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrNilMaterial indicates a nil Material was passed where one is required.
	ErrNilMaterial = errors.New("material is nil")

	// ErrEmptyID indicates the Id field is empty.
	ErrEmptyID = errors.New("material id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("material title cannot be empty")

	// ErrNegativePrice indicates the Price field is negative.
	ErrNegativePrice = errors.New("material price cannot be negative")

	// ErrInvalidMaterialType indicates an invalid MaterialType value.
	ErrInvalidMaterialType = errors.New("invalid material type")
)
