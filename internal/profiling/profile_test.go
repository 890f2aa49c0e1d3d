package profiling

import (
	"math"
	"testing"
)

func TestProfile_BasicStatistics(t *testing.T) {
	data := []float64{100, 200, 300, 400, 500}
	p, err := Profile("kWh", data)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if p.Column != "kWh" {
		t.Errorf("Expected column kWh, got %s", p.Column)
	}
	if p.Count != 5 {
		t.Errorf("Expected count 5, got %d", p.Count)
	}
	if p.Mean != 300 {
		t.Errorf("Expected mean 300, got %v", p.Mean)
	}
	if p.Min != 100 || p.Max != 500 {
		t.Errorf("Expected range [100, 500], got [%v, %v]", p.Min, p.Max)
	}
	if p.Median != 300 {
		t.Errorf("Expected median 300, got %v", p.Median)
	}
	if p.Q25 >= p.Median || p.Q75 <= p.Median {
		t.Errorf("Quartile ordering violated: q25=%v median=%v q75=%v", p.Q25, p.Median, p.Q75)
	}
	// Symmetric data has zero skewness.
	if math.Abs(p.Skewness) > 1e-9 {
		t.Errorf("Expected zero skewness for symmetric data, got %v", p.Skewness)
	}
}

func TestProfile_TooFewValues(t *testing.T) {
	if _, err := Profile("kWh", []float64{1, 2}); err == nil {
		t.Error("Expected error for fewer than 3 values")
	}
	if _, err := Profile("kWh", nil); err == nil {
		t.Error("Expected error for empty data")
	}
}

func TestProfile_SkewedData(t *testing.T) {
	// Heavy right tail.
	data := []float64{100, 101, 99, 102, 98, 100, 101, 99, 100, 5000}
	p, err := Profile("kWh", data)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if p.Skewness <= 0 {
		t.Errorf("Expected positive skewness for right-tailed data, got %v", p.Skewness)
	}
	if p.IQROutliers != 1 {
		t.Errorf("Expected 1 IQR outlier, got %d", p.IQROutliers)
	}
	if p.IsNormal {
		t.Error("Heavily skewed data should not be flagged as normal")
	}
}

func TestProfile_ConstantData(t *testing.T) {
	p, err := Profile("kWh", []float64{100, 100, 100, 100})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.StdDev != 0 {
		t.Errorf("Expected zero std dev, got %v", p.StdDev)
	}
	// Shape statistics are undefined at zero variance and fall back to 0.
	if p.Skewness != 0 || p.Kurtosis != 0 {
		t.Errorf("Expected zero shape stats for constant data, got skew=%v kurt=%v",
			p.Skewness, p.Kurtosis)
	}
}

func TestProfile_NormalityBounds(t *testing.T) {
	data := []float64{95, 98, 99, 100, 100, 101, 101, 102, 103, 105}
	p, err := Profile("kWh", data)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.NormalityP < 0 || p.NormalityP > 1 {
		t.Errorf("Normality p-value out of range: %v", p.NormalityP)
	}
}
