package bench

import "math"

type IntStats struct {
	N     int
	Best  int
	Worst int
	Mean  float64
	Std   float64
}

func CalcIntStats(values []int) IntStats {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	fs := CalcFloatStats(floats)
	return IntStats{
		N:     fs.N,
		Best:  int(fs.Best),
		Worst: int(fs.Worst),
		Mean:  fs.Mean,
		Std:   fs.Std,
	}
}

// FloatStats - минимум, максимум, среднее и выборочное стандартное отклонение.
type FloatStats struct {
	N     int
	Best  float64
	Worst float64
	Mean  float64
	Std   float64
}

func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best, worst := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		best = min(best, v)
		worst = max(worst, v)
		sum += v
	}
	mean := sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Best = best
	s.Worst = worst
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}
