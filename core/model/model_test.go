package model

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/houseval/pkg/errors"
)

func sealedWeights() *ModelWeights {
	w := &ModelWeights{
		ModelType:       "LinearRegression",
		Version:         "1.0.0",
		Coefficients:    []float64{2.0, -0.5},
		Intercept:       1.25,
		Features:        []string{"LotArea", "OverallQual"},
		Hyperparameters: map[string]interface{}{"fit_intercept": true},
		Metadata:        map[string]interface{}{"n_samples": 10},
		IsFitted:        true,
	}
	w.Seal()
	return w
}

func TestBaseEstimator_CheckPredictable(t *testing.T) {
	var e BaseEstimator

	err := e.CheckPredictable("LinearRegression", "Predict", 1)
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}

	e.SetFitted(2)
	if e.NFeatures() != 2 {
		t.Errorf("NFeatures() = %d, want 2", e.NFeatures())
	}
	if err := e.CheckPredictable("LinearRegression", "Predict", 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = e.CheckPredictable("LinearRegression", "Predict", 1)
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Expected != 2 || dimErr.Got != 1 || dimErr.Axis != 1 {
		t.Errorf("unexpected dimension error: %+v", dimErr)
	}

	e.Reset()
	if e.IsFitted() || e.NFeatures() != 0 {
		t.Error("Reset should clear fitted state and feature count")
	}
}

func TestModelWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *ModelWeights)
		wantErr error
	}{
		{"valid", func(w *ModelWeights) {}, nil},
		{"missing type", func(w *ModelWeights) { w.ModelType = "" }, errors.ErrInvalidArgument},
		{"missing version", func(w *ModelWeights) { w.Version = "" }, errors.ErrInvalidArgument},
		{"fitted without coefficients", func(w *ModelWeights) { w.Coefficients = nil }, errors.ErrPreconditionViolation},
		{"feature names mismatch", func(w *ModelWeights) { w.Features = []string{"LotArea"} }, errors.ErrPreconditionViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sealedWeights()
			tt.mutate(w)
			err := w.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelWeights_ChecksumDetectsTampering(t *testing.T) {
	w := sealedWeights()
	w.Coefficients[0] = 3.0

	err := w.Validate()
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestModelWeights_Clone(t *testing.T) {
	w := sealedWeights()
	c := w.Clone()

	c.Coefficients[0] = 99
	c.Hyperparameters["fit_intercept"] = false

	if w.Coefficients[0] != 2.0 {
		t.Error("Clone must not share coefficient storage")
	}
	if w.Hyperparameters["fit_intercept"] != true {
		t.Error("Clone must not share hyperparameter map")
	}
}

func TestSaveLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linear_model.json")
	w := sealedWeights()

	if err := SaveWeights(w, path); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}

	loaded, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}

	if loaded.Intercept != w.Intercept {
		t.Errorf("Intercept = %v, want %v", loaded.Intercept, w.Intercept)
	}
	for i := range w.Coefficients {
		if loaded.Coefficients[i] != w.Coefficients[i] {
			t.Errorf("Coefficients[%d] = %v, want %v", i, loaded.Coefficients[i], w.Coefficients[i])
		}
	}
	if len(loaded.Features) != 2 || loaded.Features[1] != "OverallQual" {
		t.Errorf("Features = %v", loaded.Features)
	}
}

func TestLoadWeights_Errors(t *testing.T) {
	if _, err := LoadWeights(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWeights(path); err == nil {
		t.Error("expected decode error")
	}

	var buf bytes.Buffer
	unfitted := &ModelWeights{ModelType: "LinearRegression", Version: "1.0.0"}
	if err := SaveWeightsToWriter(unfitted, &buf); err != nil {
		t.Fatalf("unfitted weights without coefficients should be valid: %v", err)
	}
	if _, err := LoadWeightsFromReader(&buf); err != nil {
		t.Errorf("round trip of unfitted weights: %v", err)
	}
}
