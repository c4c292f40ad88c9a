// Package metrics provides scoring functions for fitted pipelines. Inputs
// are assumed to be aligned row-wise.
package metrics

import "math"

// Accuracy returns the fraction of exactly matching labels.
func Accuracy(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	count := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			count++
		}
	}

	return float64(count) / float64(len(yTrue))
}

// MSE returns the mean squared error.
func MSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		sum += d * d
	}

	return sum / float64(len(yTrue))
}

// RMSE returns the root mean squared error.
func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

// MAE returns the mean absolute error.
func MAE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yPred[i] - yTrue[i])
	}

	return sum / float64(len(yTrue))
}

// R2 returns the coefficient of determination.
func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range yTrue {
		mean += v
	}
	mean /= float64(len(yTrue))

	ssTot, ssRes := 0.0, 0.0
	for i := range yTrue {
		d := yTrue[i] - mean
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}
