package profiling

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ColumnProfile summarizes the distribution of one numeric consumption
// column. Profiles are informational only: they ride alongside the
// validation report and never influence the verdict.
type ColumnProfile struct {
	Column      string  `json:"column"`
	Count       int     `json:"count"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Median      float64 `json:"median"`
	Q25         float64 `json:"q25"`
	Q75         float64 `json:"q75"`
	Skewness    float64 `json:"skewness"`
	Kurtosis    float64 `json:"kurtosis"`
	IQROutliers int     `json:"iqr_outliers"`
	IsNormal    bool    `json:"is_normal"`
	NormalityP  float64 `json:"normality_p"`
}

// Profile computes summary statistics for a coerced numeric column.
// Requires at least three values for the shape statistics to be defined.
func Profile(column string, data []float64) (ColumnProfile, error) {
	p := ColumnProfile{Column: column, Count: len(data)}
	if len(data) < 3 {
		return p, fmt.Errorf("profile for %s needs at least 3 values, got %d", column, len(data))
	}

	var err error
	if p.Mean, err = stats.Mean(data); err != nil {
		return p, err
	}
	if p.StdDev, err = stats.StandardDeviation(data); err != nil {
		return p, err
	}
	if p.Min, err = stats.Min(data); err != nil {
		return p, err
	}
	if p.Max, err = stats.Max(data); err != nil {
		return p, err
	}
	if p.Median, err = stats.Median(data); err != nil {
		return p, err
	}
	if p.Q25, err = stats.Percentile(data, 25); err != nil {
		return p, err
	}
	if p.Q75, err = stats.Percentile(data, 75); err != nil {
		return p, err
	}

	p.Skewness = sampleSkewness(data, p.Mean, p.StdDev)
	p.Kurtosis = sampleKurtosis(data, p.Mean, p.StdDev)
	p.IQROutliers = iqrOutliers(data, p.Q25, p.Q75)
	p.IsNormal, p.NormalityP = approxNormality(p.Skewness, p.Kurtosis)

	return p, nil
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient.
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	skew := sum / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skew * correction
}

// sampleKurtosis computes total (not excess) sample kurtosis with bias
// correction.
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}

	kurtosis := sum / n
	excess := kurtosis - 3
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		excess = excess*correction + 6/(n+1)
	}
	return excess + 3
}

// approxNormality is a rough skewness/kurtosis test against a chi-square
// reference. Coarse on purpose: profiles flag shapes worth a second look,
// they are not a formal test result.
func approxNormality(skewness, kurtosis float64) (bool, float64) {
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}

func iqrOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}
