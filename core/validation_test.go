package core

import (
	"errors"
	"testing"
)

func TestValidateMaterial(t *testing.T) {
	tests := []struct {
		name     string
		material *Material
		wantErr  error
	}{
		{
			name: "valid material",
			material: &Material{
				Id:      "B1",
				Title:   "Java Basics",
				Creator: "John Doe",
				Price:   29.95,
				Year:    2019,
				Type:    MaterialTypeBook,
			},
			wantErr: nil,
		},
		{
			name: "valid material without creator",
			material: &Material{
				Id:    "M1",
				Title: "Linux Format #312",
				Year:  2024,
				Type:  MaterialTypeMagazine,
			},
			wantErr: nil,
		},
		{
			name: "valid material with media fields",
			material: &Material{
				Id:    "V1",
				Title: "Concurrency Patterns",
				Price: 12.50,
				Year:  2021,
				Type:  MaterialTypeVideo,
				Media: &MediaFields{DurationSec: 3600, Format: "mkv"},
			},
			wantErr: nil,
		},
		{
			name:     "nil material",
			material: nil,
			wantErr:  ErrNilMaterial,
		},
		{
			name: "empty id",
			material: &Material{
				Title: "Java Basics",
				Type:  MaterialTypeBook,
			},
			wantErr: ErrEmptyID,
		},
		{
			name: "blank id",
			material: &Material{
				Id:    "   ",
				Title: "Java Basics",
				Type:  MaterialTypeBook,
			},
			wantErr: ErrEmptyID,
		},
		{
			name: "empty title",
			material: &Material{
				Id:   "B1",
				Type: MaterialTypeBook,
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "negative price",
			material: &Material{
				Id:    "B1",
				Title: "Java Basics",
				Price: -1,
				Type:  MaterialTypeBook,
			},
			wantErr: ErrNegativePrice,
		},
		{
			name: "invalid type",
			material: &Material{
				Id:    "B1",
				Title: "Java Basics",
				Type:  MaterialType(99),
			},
			wantErr: ErrInvalidMaterialType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMaterial(tt.material)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMaterial() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("ValidateMaterial() error %v should wrap ErrInvalidMaterial", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMaterial() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMaterialType(t *testing.T) {
	for mt := range materialTypeNames {
		if err := ValidateMaterialType(mt); err != nil {
			t.Errorf("ValidateMaterialType(%v) unexpected error: %v", mt, err)
		}
	}

	if err := ValidateMaterialType(MaterialType(0)); !errors.Is(err, ErrInvalidMaterialType) {
		t.Errorf("ValidateMaterialType(0) error = %v, want ErrInvalidMaterialType", err)
	}
}
